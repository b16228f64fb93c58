package codegen

import (
	"bytes"
	"go/ast"
	"go/parser"
	"go/token"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/embedflate"
	"github.com/arloliu/embedflate/format"
)

const helloText = "Hello, 世界! Embedded text survives the round trip.\n"

// writeAssets writes files into a fresh directory and returns it.
func writeAssets(t *testing.T, files map[string][]byte) string {
	t.Helper()

	dir := t.TempDir()
	for name, data := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, data, 0o600))
	}

	return dir
}

func randomData(size int) []byte {
	rng := rand.New(rand.NewSource(42)) //nolint: gosec
	data := make([]byte, size)
	_, _ = rng.Read(data)

	return data
}

func defaultAssets(t *testing.T) string {
	return writeAssets(t, map[string][]byte{
		"hello.txt":       []byte(helloText),
		"one.txt":         []byte("1"),
		"static/page.css": bytes.Repeat([]byte("body { margin: 0; padding: 0; }\n"), 500),
		"random.bin":      randomData(1 << 20),
		"invalid.txt":     {'a', 'b', 'c', 0x9F},
		"empty.txt":       {},
	})
}

func newTestGenerator(t *testing.T, dir string, opts ...Option) (*Generator, *test.Hook) {
	t.Helper()

	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	gen, err := NewGenerator(append([]Option{WithBaseDir(dir), WithLogger(logger)}, opts...)...)
	require.NoError(t, err)

	return gen, hook
}

func mustParseResource(t *testing.T, spec string) Resource {
	t.Helper()

	res, err := ParseResource(spec)
	require.NoError(t, err)

	return res
}

func warnings(hook *test.Hook) []*logrus.Entry {
	var entries []*logrus.Entry
	for _, entry := range hook.AllEntries() {
		if entry.Level == logrus.WarnLevel {
			entries = append(entries, entry)
		}
	}

	return entries
}

func TestNewGenerator_Options(t *testing.T) {
	_, err := NewGenerator(WithBaseDir(""))
	require.Error(t, err)

	_, err = NewGenerator(WithRuntimeImport(""))
	require.ErrorIs(t, err, ErrInvalidConfig)

	_, err = NewGenerator(WithConfig(Config{Default: format.CompressionZstd}))
	require.ErrorIs(t, err, ErrAlgorithmDisabled)

	gen, err := NewGenerator(WithLogger(nil))
	require.NoError(t, err)
	require.Equal(t, DefaultConfig(), gen.Config())
}

func TestGenerator_CompileRoundTrip(t *testing.T) {
	dir := defaultAssets(t)
	gen, _ := newTestGenerator(t, dir)

	specs := []string{
		"Hello:str=hello.txt",
		"Hello:str=hello.txt@deflate",
		"Hello:str=hello.txt@zstd",
		"Hello:str=hello.txt@none",
		"Page=static/page.css@zstd",
		"Page=static/page.css@deflate",
		"Empty:str=empty.txt@zstd",
	}

	for _, spec := range specs {
		t.Run(spec, func(t *testing.T) {
			res := mustParseResource(t, spec)
			emb, err := gen.Compile(res)
			require.NoError(t, err)

			raw, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(res.Path)))
			require.NoError(t, err)

			decoded, err := embedflate.Decode(emb.Algorithm, string(emb.Data))
			require.NoError(t, err)
			require.True(t, bytes.Equal(raw, decoded))
			require.Equal(t, int64(len(raw)), emb.Stats.OriginalSize)
		})
	}
}

func TestGenerator_DefaultAlgorithm(t *testing.T) {
	dir := defaultAssets(t)
	res := mustParseResource(t, "Page=static/page.css")

	tests := []struct {
		name     string
		cfg      Config
		expected format.CompressionType
	}{
		{"deflate preferred", DefaultConfig(), format.CompressionDeflate},
		{"zstd when deflate disabled", Config{Algorithms: []format.CompressionType{format.CompressionZstd}}, format.CompressionZstd},
		{"none when nothing enabled", Config{}, format.CompressionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen, _ := newTestGenerator(t, dir, WithConfig(tt.cfg))
			emb, err := gen.Compile(res)
			require.NoError(t, err)
			require.Equal(t, tt.expected, emb.Algorithm)
		})
	}
}

func TestGenerator_CompileErrors(t *testing.T) {
	dir := defaultAssets(t)
	gen, _ := newTestGenerator(t, dir, WithConfig(Config{Algorithms: []format.CompressionType{format.CompressionDeflate}}))

	t.Run("absolute path", func(t *testing.T) {
		_, err := gen.Compile(Resource{Name: "Abs", Path: filepath.Join(dir, "hello.txt")})
		require.ErrorIs(t, err, ErrAbsolutePath)
	})

	t.Run("missing file names the path", func(t *testing.T) {
		_, err := gen.Compile(mustParseResource(t, "Missing=assets/missing.txt"))
		require.ErrorIs(t, err, os.ErrNotExist)
		require.Contains(t, err.Error(), "missing.txt")
		require.Contains(t, err.Error(), "Missing")
	})

	t.Run("invalid utf-8 text", func(t *testing.T) {
		_, err := gen.Compile(mustParseResource(t, "Bad:str=invalid.txt"))
		require.ErrorIs(t, err, ErrInvalidUTF8)
		require.Contains(t, err.Error(), "invalid.txt")
		require.Contains(t, err.Error(), "at byte 3")
	})

	t.Run("invalid utf-8 accepted as bytes", func(t *testing.T) {
		emb, err := gen.Compile(mustParseResource(t, "Bad=invalid.txt"))
		require.NoError(t, err)
		require.Equal(t, format.CompressionDeflate, emb.Algorithm)
	})

	t.Run("disabled algorithm", func(t *testing.T) {
		_, err := gen.Compile(mustParseResource(t, "Hello:str=hello.txt@zstd"))
		require.ErrorIs(t, err, ErrAlgorithmDisabled)
	})

	t.Run("none is always available", func(t *testing.T) {
		emb, err := gen.Compile(mustParseResource(t, "Hello:str=hello.txt@none"))
		require.NoError(t, err)
		require.Equal(t, []byte(helloText), emb.Data)
	})
}

func TestGenerator_CounterproductiveWarning(t *testing.T) {
	dir := defaultAssets(t)

	for _, algorithm := range []string{"deflate", "zstd"} {
		t.Run(algorithm, func(t *testing.T) {
			res := mustParseResource(t, "Random=random.bin@"+algorithm)

			gen, hook := newTestGenerator(t, dir)
			emb, err := gen.Compile(res)
			require.NoError(t, err)
			require.True(t, emb.Compressed())
			require.GreaterOrEqual(t, emb.Stats.CompressedSize, emb.Stats.OriginalSize)

			entries := warnings(hook)
			require.Len(t, entries, 1)
			require.Contains(t, entries[0].Message, "counter-productive")
			require.Equal(t, "Random", entries[0].Data["resource"])
			require.Equal(t, "random.bin", entries[0].Data["path"])
			require.Equal(t, algorithm, entries[0].Data["algorithm"])
			require.Equal(t, int64(1<<20), entries[0].Data["raw"])
			require.Equal(t, emb.Stats.CompressedSize, entries[0].Data["compressed"])

			quiet, quietHook := newTestGenerator(t, dir, WithConfig(Config{
				Algorithms:            DefaultConfig().Algorithms,
				NoCompressionWarnings: true,
			}))
			_, err = quiet.Compile(res)
			require.NoError(t, err)
			require.Empty(t, warnings(quietHook))
		})
	}
}

func TestGenerator_NoWarningWhenCompressionHelps(t *testing.T) {
	gen, hook := newTestGenerator(t, defaultAssets(t))

	_, err := gen.Compile(mustParseResource(t, "Page=static/page.css"))
	require.NoError(t, err)
	require.Empty(t, warnings(hook))
}

func TestGenerator_ConditionFallback(t *testing.T) {
	dir := defaultAssets(t)

	tests := []struct {
		spec       string
		compressed bool
	}{
		{"One=one.txt@deflate", true},
		{"One=one.txt@zstd?always", true},
		{"One=one.txt@deflate?less_than_original", false},
		{"One=one.txt@zstd?less_than_original", false},
		{"One=one.txt@zstd?ratio>10", false},
		{"Random=random.bin@zstd?less_than_original", false},
		{"Page=static/page.css@deflate?less_than_original", true},
		{"Page=static/page.css@zstd?ratio>50", true},
		{"Page=static/page.css@zstd?ratio>99.99", false},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			gen, hook := newTestGenerator(t, dir)
			res := mustParseResource(t, tt.spec)

			emb, err := gen.Compile(res)
			require.NoError(t, err)
			require.Equal(t, tt.compressed, emb.Compressed())

			holds, err := gen.Evaluate(res)
			require.NoError(t, err)
			require.Equal(t, tt.compressed, holds)

			if !tt.compressed {
				raw, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(res.Path)))
				require.NoError(t, err)
				require.Equal(t, raw, emb.Data)
				require.Empty(t, warnings(hook), "a rejected compressed form is not reported")
			}
		})
	}
}

func TestGenerator_EvaluateNone(t *testing.T) {
	gen, _ := newTestGenerator(t, defaultAssets(t))

	holds, err := gen.Evaluate(mustParseResource(t, "Page=static/page.css@none"))
	require.NoError(t, err)
	require.False(t, holds)

	_, err = gen.Evaluate(Resource{Name: "Abs", Path: "/etc/passwd"})
	require.ErrorIs(t, err, ErrAbsolutePath)
}

func TestGenerator_Generate(t *testing.T) {
	dir := defaultAssets(t)
	gen, _ := newTestGenerator(t, dir)

	resources := []Resource{
		mustParseResource(t, "Hello:str=hello.txt@zstd"),
		mustParseResource(t, "Page=static/page.css"),
		mustParseResource(t, "One:str=one.txt?less_than_original"),
		mustParseResource(t, "Empty=empty.txt@zstd"),
	}

	src, err := gen.Generate("assets", resources)
	require.NoError(t, err)

	text := string(src)
	require.True(t, strings.HasPrefix(text, Header+"\n"))
	require.Contains(t, text, "package assets\n")
	require.Contains(t, text, `import embedflate "github.com/arloliu/embedflate"`)
	require.Contains(t, text, "var Hello = embedflate.ZstdText(flateHello)")
	require.Contains(t, text, "var Page = embedflate.DeflateBytes(flatePage)")
	require.Contains(t, text, "var One = embedflate.RawText(flateOne)")
	require.Contains(t, text, "var Empty = embedflate.ZstdBytes(flateEmpty)")
	require.Contains(t, text, "// Page inflates static/page.css on first use.")
	require.Contains(t, text, "// One exposes one.txt on first use.")
	require.NotContains(t, text, dir, "generated source must not leak absolute paths")

	constants := parseConstants(t, src)
	require.Len(t, constants, len(resources))

	hello, err := embedflate.DecodeText(format.CompressionZstd, constants["flateHello"])
	require.NoError(t, err)
	require.Equal(t, helloText, hello)

	one, err := embedflate.DecodeText(format.CompressionNone, constants["flateOne"])
	require.NoError(t, err)
	require.Equal(t, "1", one)

	page, err := embedflate.Decode(format.CompressionDeflate, constants["flatePage"])
	require.NoError(t, err)
	require.Equal(t, bytes.Repeat([]byte("body { margin: 0; padding: 0; }\n"), 500), page)
}

func TestGenerator_GenerateDeterministic(t *testing.T) {
	dir := defaultAssets(t)
	resources := []Resource{
		mustParseResource(t, "Random=random.bin@deflate"),
		mustParseResource(t, "Page=static/page.css@zstd"),
		mustParseResource(t, "Hello:str=hello.txt"),
	}

	first, _ := newTestGenerator(t, dir)
	second, _ := newTestGenerator(t, dir)

	a, err := first.Generate("assets", resources)
	require.NoError(t, err)
	b, err := first.Generate("assets", resources)
	require.NoError(t, err)
	c, err := second.Generate("assets", resources)
	require.NoError(t, err)

	require.True(t, bytes.Equal(a, b))
	require.True(t, bytes.Equal(a, c))
}

func TestGenerator_GenerateErrors(t *testing.T) {
	dir := defaultAssets(t)
	gen, _ := newTestGenerator(t, dir)
	hello := mustParseResource(t, "Hello:str=hello.txt")

	tests := []struct {
		name      string
		pkg       string
		resources []Resource
		wantErr   error
	}{
		{"no resources", "assets", nil, ErrNoResources},
		{"bad package", "my-assets", []Resource{hello}, ErrInvalidPackage},
		{"duplicate name", "assets", []Resource{hello, hello}, ErrDuplicateName},
		{"colliding constants", "assets", []Resource{hello, mustParseResource(t, "hello=one.txt")}, ErrDuplicateName},
		{"shadowed import", "assets", []Resource{mustParseResource(t, "embedflate=one.txt")}, ErrDuplicateName},
		{"variable named like a constant", "assets", []Resource{hello, mustParseResource(t, "flateHello=one.txt")}, ErrDuplicateName},
		{"invalid resource", "assets", []Resource{{Name: "X"}}, ErrInvalidResource},
		{"invalid text", "assets", []Resource{mustParseResource(t, "Bad:str=invalid.txt")}, ErrInvalidUTF8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := gen.Generate(tt.pkg, tt.resources)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestGenerator_RuntimeImport(t *testing.T) {
	gen, _ := newTestGenerator(t, defaultAssets(t), WithRuntimeImport("example.com/vendored/flate"))

	src, err := gen.Generate("assets", []Resource{mustParseResource(t, "One=one.txt")})
	require.NoError(t, err)
	require.Contains(t, string(src), `import embedflate "example.com/vendored/flate"`)
}

// parseConstants parses generated source and returns the value of every string constant.
func parseConstants(t *testing.T, src []byte) map[string]string {
	t.Helper()

	file, err := parser.ParseFile(token.NewFileSet(), "generated.go", src, parser.ParseComments)
	require.NoError(t, err)

	constants := make(map[string]string)
	for _, decl := range file.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.CONST {
			continue
		}
		for _, spec := range gen.Specs {
			value := spec.(*ast.ValueSpec)
			lit := value.Values[0].(*ast.BasicLit)
			unquoted, err := strconv.Unquote(lit.Value)
			require.NoError(t, err)
			constants[value.Names[0].Name] = unquoted
		}
	}

	return constants
}
