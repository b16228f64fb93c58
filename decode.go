package embedflate

import (
	"fmt"
	"unicode/utf8"

	"github.com/arloliu/embedflate/compress"
	"github.com/arloliu/embedflate/format"
)

// Decode decompresses data that was embedded with the given algorithm.
//
// It is the error-returning counterpart of the cell constructors, for callers that decode
// embedded data themselves. The result is a freshly allocated, caller-owned slice; an empty
// resource decodes to an empty, non-nil slice.
func Decode(algorithm format.CompressionType, data string) ([]byte, error) {
	switch algorithm {
	case format.CompressionNone:
		return []byte(data), nil
	case format.CompressionDeflate:
		return decodeDeflate(data)
	case format.CompressionZstd:
		return decodeZstd(data)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCompression, algorithm)
	}
}

// DecodeText decompresses data like Decode and validates that the result is UTF-8.
func DecodeText(algorithm format.CompressionType, data string) (string, error) {
	if algorithm == format.CompressionNone {
		if !utf8.ValidString(data) {
			return "", ErrInvalidUTF8
		}

		return data, nil
	}

	decoded, err := Decode(algorithm, data)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(decoded) {
		return "", ErrInvalidUTF8
	}

	return string(decoded), nil
}

func decodeDeflate(data string) ([]byte, error) {
	decoded, err := compress.NewDeflateCompressor().Decompress([]byte(data))
	if err != nil {
		return nil, err
	}

	return nonNil(decoded), nil
}

func decodeZstd(data string) ([]byte, error) {
	decoded, err := compress.NewZstdCompressor().Decompress([]byte(data))
	if err != nil {
		return nil, err
	}

	return nonNil(decoded), nil
}

func nonNil(b []byte) []byte {
	if b == nil {
		return []byte{}
	}

	return b
}

// mustBytes turns a decode failure into a CorruptionError panic.
func mustBytes(algorithm format.CompressionType, decoded []byte, err error) []byte {
	if err != nil {
		panic(&CorruptionError{Algorithm: algorithm, Err: err})
	}

	return decoded
}

// mustText is mustBytes followed by UTF-8 validation.
func mustText(algorithm format.CompressionType, decoded []byte, err error) string {
	decoded = mustBytes(algorithm, decoded, err)
	if !utf8.Valid(decoded) {
		panic(&CorruptionError{Algorithm: algorithm, Err: ErrInvalidUTF8})
	}

	return string(decoded)
}
