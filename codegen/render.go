package codegen

import (
	"bytes"
	"fmt"
	"go/format"
	"go/token"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/template"
	"unicode"
	"unicode/utf8"

	"github.com/dustin/go-humanize"

	fmtype "github.com/arloliu/embedflate/format"
	"github.com/arloliu/embedflate/internal/hash"
	"github.com/arloliu/embedflate/internal/pool"
)

// Header is the first line of every generated file.
const Header = "// Code generated by embedflate. DO NOT EDIT."

var fileTemplate = template.Must(template.New("file").Parse(`{{.Header}}

package {{.Package}}

import embedflate "{{.Import}}"
{{range .Entries}}
// {{.Const}} holds {{.Path}} ({{.Summary}}).
const {{.Const}} = {{.Literal}}

// {{.Name}} {{.Verb}} {{.Path}} on first use.
var {{.Name}} = embedflate.{{.Constructor}}({{.Const}})
{{end}}`))

type fileData struct {
	Header  string
	Package string
	Import  string
	Entries []entryData
}

type entryData struct {
	Name        string
	Const       string
	Path        string
	Summary     string
	Verb        string
	Literal     string
	Constructor string
}

func render(pkg, runtimeImport string, embeddings []*Embedding) ([]byte, error) {
	data := fileData{
		Header:  Header,
		Package: pkg,
		Import:  runtimeImport,
		Entries: make([]entryData, 0, len(embeddings)),
	}

	for _, emb := range embeddings {
		constructor, err := constructorName(emb.Algorithm, emb.Resource.Type)
		if err != nil {
			return nil, fmt.Errorf("resource %s: %w", emb.Resource.Name, err)
		}

		verb := "inflates"
		if !emb.Compressed() {
			verb = "exposes"
		}

		data.Entries = append(data.Entries, entryData{
			Name:        emb.Resource.Name,
			Const:       constName(emb.Resource.Name),
			Path:        commentPath(emb.Resource.Path),
			Summary:     summary(emb),
			Verb:        verb,
			Literal:     quoteBytes(emb.Data),
			Constructor: constructor,
		})
	}

	buf := pool.GetSourceBuffer()
	defer pool.PutSourceBuffer(buf)

	if err := fileTemplate.Execute(buf, data); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format generated source: %w", err)
	}

	return src, nil
}

// CheckFile returns ErrStale unless the file at path holds exactly src.
func CheckFile(path string, src []byte) error {
	current, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("%w: %s does not exist", ErrStale, path)
	}
	if err != nil {
		return err
	}
	if !bytes.Equal(current, src) {
		return fmt.Errorf("%w: %s", ErrStale, path)
	}

	return nil
}

// WriteFile replaces the file at path with src. The file is written next to its destination
// and renamed into place, so readers never see a partial file.
func WriteFile(path string, src []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name()) //nolint: errcheck

	if _, err := tmp.Write(src); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), path)
}

func constructorName(algorithm fmtype.CompressionType, valueType fmtype.ValueType) (string, error) {
	var prefix string
	switch algorithm {
	case fmtype.CompressionNone:
		prefix = "Raw"
	case fmtype.CompressionDeflate:
		prefix = "Deflate"
	case fmtype.CompressionZstd:
		prefix = "Zstd"
	default:
		return "", fmt.Errorf("unsupported algorithm %s", algorithm)
	}

	if valueType == fmtype.TypeText {
		return prefix + "Text", nil
	}

	return prefix + "Bytes", nil
}

// constName returns the identifier of the constant backing a resource variable.
func constName(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if size == 0 {
		return "flate"
	}

	return "flate" + string(unicode.ToUpper(r)) + name[size:]
}

func validatePackage(pkg string) error {
	if !token.IsIdentifier(pkg) || pkg == "_" {
		return fmt.Errorf("%w: %q", ErrInvalidPackage, pkg)
	}

	return nil
}

// commentPath keeps paths printable inside a line comment.
func commentPath(p string) string {
	p = filepath.ToSlash(p)
	if strings.ContainsFunc(p, func(r rune) bool { return !unicode.IsPrint(r) }) {
		return strconv.Quote(p)
	}

	return p
}

func summary(emb *Embedding) string {
	stored := fmt.Sprintf("%s, %s", emb.Algorithm.Name(), humanize.Bytes(uint64(len(emb.Data))))
	if emb.Compressed() {
		stored += " from " + humanize.Bytes(uint64(emb.Stats.OriginalSize))
	}

	return stored + ", " + hash.FormatDigest(emb.Digest)
}

const hexDigits = "0123456789abcdef"

// quoteBytes renders data as an interpreted Go string literal. Printable ASCII is kept as is
// and every other byte is written as \xNN, so the literal round-trips arbitrary bytes.
func quoteBytes(data []byte) string {
	buf := pool.GetSourceBuffer()
	defer pool.PutSourceBuffer(buf)
	buf.Grow(len(data)*4 + 2)

	_ = buf.WriteByte('"')
	for _, b := range data {
		if b >= 0x20 && b < 0x7f && b != '"' && b != '\\' {
			_ = buf.WriteByte(b)
			continue
		}
		_, _ = buf.WriteString(`\x`)
		_ = buf.WriteByte(hexDigits[b>>4])
		_ = buf.WriteByte(hexDigits[b&0x0f])
	}
	_ = buf.WriteByte('"')

	return buf.String()
}
