package embedflate

import (
	"errors"
	"fmt"

	"github.com/arloliu/embedflate/format"
)

var (
	// ErrInvalidUTF8 is returned when a text resource does not decompress to valid UTF-8.
	ErrInvalidUTF8 = errors.New("decompressed data is not valid UTF-8")
	// ErrUnsupportedCompression is returned by Decode for compression types outside the closed set.
	ErrUnsupportedCompression = errors.New("unsupported compression type")
)

// CorruptionError is the panic value of a cell whose embedded data cannot be decoded.
//
// Generated code only embeds data the generator has just compressed and validated, so this
// error means the binary or the generated file was altered after generation.
type CorruptionError struct {
	// Algorithm is the compression algorithm fixed at the call site.
	Algorithm format.CompressionType
	// Err is the underlying decompression or validation error.
	Err error
}

func (e *CorruptionError) Error() string {
	return fmt.Sprintf("embedflate: embedded %s data is corrupted: %v", e.Algorithm, e.Err)
}

func (e *CorruptionError) Unwrap() error {
	return e.Err
}
