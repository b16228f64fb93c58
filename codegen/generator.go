package codegen

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"

	"github.com/arloliu/embedflate/compress"
	"github.com/arloliu/embedflate/format"
	"github.com/arloliu/embedflate/internal/collision"
	"github.com/arloliu/embedflate/internal/hash"
	"github.com/arloliu/embedflate/internal/options"
)

// DefaultRuntimeImport is the import path of the runtime package used by generated code.
const DefaultRuntimeImport = "github.com/arloliu/embedflate"

// Generator compiles resources into embeddable Go source.
//
// A Generator is not safe for concurrent use; `go generate` runs one per directive.
type Generator struct {
	config        Config
	baseDir       string
	logger        logrus.FieldLogger
	runtimeImport string
}

// Embedding is a compiled resource.
type Embedding struct {
	Resource Resource

	// Algorithm is the algorithm the stored bytes are encoded with. It is None when the
	// resource's condition rejected the compressed form.
	Algorithm format.CompressionType

	// Data holds the bytes written into the generated constant.
	Data []byte

	// Stats describes compression with the requested algorithm, whether or not it was kept.
	Stats compress.CompressionStats

	// Digest is the xxh64 digest of the raw file contents.
	Digest uint64
}

// Compressed reports whether the stored bytes are compressed.
func (e *Embedding) Compressed() bool {
	return e.Algorithm != format.CompressionNone
}

// NewGenerator creates a generator with DefaultConfig unless overridden by opts.
func NewGenerator(opts ...Option) (*Generator, error) {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	g := &Generator{
		config:        DefaultConfig(),
		baseDir:       ".",
		logger:        discard,
		runtimeImport: DefaultRuntimeImport,
	}

	if err := options.Apply(g, opts...); err != nil {
		return nil, err
	}

	return g, nil
}

// Config returns the generator's configuration.
func (g *Generator) Config() Config {
	return g.config
}

// Compile reads, validates and compresses one resource.
//
// A compressed form that is not smaller than the input is still used unless the resource's
// condition rejects it; a warning is logged in that case unless NoCompressionWarnings is set.
func (g *Generator) Compile(res Resource) (*Embedding, error) {
	raw, algorithm, err := g.load(res)
	if err != nil {
		return nil, err
	}

	compressed, stats, err := compressResource(res, algorithm, raw)
	if err != nil {
		return nil, err
	}

	emb := &Embedding{
		Resource:  res,
		Algorithm: algorithm,
		Data:      compressed,
		Stats:     stats,
		Digest:    hash.Digest(raw),
	}

	fields := logrus.Fields{
		"resource":   res.Name,
		"path":       res.Path,
		"algorithm":  algorithm.Name(),
		"raw":        stats.OriginalSize,
		"compressed": stats.CompressedSize,
	}

	if emb.Compressed() && !res.Condition.Holds(stats) {
		g.logger.WithFields(fields).Infof("condition %s not met, storing uncompressed", res.Condition)
		emb.Algorithm = format.CompressionNone
		emb.Data = raw

		return emb, nil
	}

	if emb.Compressed() && stats.Counterproductive() && !g.config.NoCompressionWarnings {
		g.logger.WithFields(fields).Warnf("compression is counter-productive: %s compressed to %s",
			humanize.Bytes(uint64(stats.OriginalSize)), humanize.Bytes(uint64(stats.CompressedSize)))
	}

	g.logger.WithFields(fields).Debugf("embedded %s (%.1f%% saved)", res.Path, stats.SpaceSavings())

	return emb, nil
}

// Evaluate reports whether Compile would store the resource compressed, that is whether an
// algorithm other than none applies and the resource's condition holds for the file.
func (g *Generator) Evaluate(res Resource) (bool, error) {
	raw, algorithm, err := g.load(res)
	if err != nil {
		return false, err
	}
	if algorithm == format.CompressionNone {
		return false, nil
	}

	_, stats, err := compressResource(res, algorithm, raw)
	if err != nil {
		return false, err
	}

	return res.Condition.Holds(stats), nil
}

// Generate compiles resources in order and renders them as a Go file of package pkg.
func (g *Generator) Generate(pkg string, resources []Resource) ([]byte, error) {
	if len(resources) == 0 {
		return nil, ErrNoResources
	}
	if err := validatePackage(pkg); err != nil {
		return nil, err
	}

	idents := collision.NewTracker()
	idents.Reserve("embedflate", "the runtime import")

	embeddings := make([]*Embedding, 0, len(resources))
	for _, res := range resources {
		if err := res.Validate(); err != nil {
			return nil, err
		}
		if err := idents.Track(res.Name, res.Name, constName(res.Name)); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDuplicateName, err)
		}

		emb, err := g.Compile(res)
		if err != nil {
			return nil, err
		}
		embeddings = append(embeddings, emb)
	}

	return render(pkg, g.runtimeImport, embeddings)
}

// load reads the resource file and resolves its algorithm.
func (g *Generator) load(res Resource) ([]byte, format.CompressionType, error) {
	if err := res.Validate(); err != nil {
		return nil, 0, err
	}
	if filepath.IsAbs(res.Path) || path.IsAbs(filepath.ToSlash(res.Path)) {
		return nil, 0, fmt.Errorf("resource %s: %s: %w", res.Name, res.Path, ErrAbsolutePath)
	}

	algorithm, err := g.resolveAlgorithm(res)
	if err != nil {
		return nil, 0, err
	}

	raw, err := os.ReadFile(filepath.Join(g.baseDir, filepath.FromSlash(res.Path)))
	if err != nil {
		return nil, 0, fmt.Errorf("resource %s: %w", res.Name, err)
	}

	if res.IsText() && !utf8.Valid(raw) {
		return nil, 0, fmt.Errorf("resource %s: %s: %w at byte %d", res.Name, res.Path, ErrInvalidUTF8, invalidUTF8Offset(raw))
	}

	return raw, algorithm, nil
}

func (g *Generator) resolveAlgorithm(res Resource) (format.CompressionType, error) {
	algorithm := res.Algorithm
	if algorithm == 0 {
		algorithm = g.config.DefaultAlgorithm()
	}

	if !g.config.Enabled(algorithm) {
		return 0, fmt.Errorf("resource %s: %s: %w", res.Name, algorithm.Name(), ErrAlgorithmDisabled)
	}

	return algorithm, nil
}

func compressResource(res Resource, algorithm format.CompressionType, raw []byte) ([]byte, compress.CompressionStats, error) {
	codec, err := compress.GetCodec(algorithm)
	if err != nil {
		return nil, compress.CompressionStats{}, fmt.Errorf("resource %s: %w", res.Name, err)
	}

	compressed, err := codec.Compress(raw)
	if err != nil {
		return nil, compress.CompressionStats{}, fmt.Errorf("resource %s: %s compression failed: %w", res.Name, algorithm.Name(), err)
	}

	return compressed, compress.NewCompressionStats(algorithm, raw, compressed), nil
}

func invalidUTF8Offset(data []byte) int {
	offset := 0
	for offset < len(data) {
		r, size := utf8.DecodeRune(data[offset:])
		if r == utf8.RuneError && size == 1 {
			return offset
		}
		offset += size
	}

	return offset
}
