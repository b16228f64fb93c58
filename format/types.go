package format

import (
	"fmt"
	"strings"
)

type (
	CompressionType uint8
	ValueType       uint8
)

const (
	CompressionNone    CompressionType = 0x1 // CompressionNone stores the raw bytes.
	CompressionDeflate CompressionType = 0x2 // CompressionDeflate represents raw DEFLATE (RFC 1951).
	CompressionZstd    CompressionType = 0x3 // CompressionZstd represents Zstandard compression.

	TypeBytes ValueType = 0x1 // TypeBytes exposes the decompressed resource as []byte.
	TypeText  ValueType = 0x2 // TypeText exposes the decompressed resource as a UTF-8 string.
)

// CompressionTypes lists every supported compression type in declaration order.
var CompressionTypes = []CompressionType{CompressionNone, CompressionDeflate, CompressionZstd}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionDeflate:
		return "Deflate"
	case CompressionZstd:
		return "Zstd"
	default:
		return "Unknown"
	}
}

// Name returns the lower-case name used in resource specs and configuration files.
func (c CompressionType) Name() string {
	return strings.ToLower(c.String())
}

// IsValid reports whether c is one of the supported compression types.
func (c CompressionType) IsValid() bool {
	switch c {
	case CompressionNone, CompressionDeflate, CompressionZstd:
		return true
	default:
		return false
	}
}

// ParseCompressionType parses a compression type from its case-insensitive name.
func ParseCompressionType(name string) (CompressionType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "none":
		return CompressionNone, nil
	case "deflate":
		return CompressionDeflate, nil
	case "zstd":
		return CompressionZstd, nil
	default:
		return 0, fmt.Errorf("unknown compression type: %q", name)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (c CompressionType) MarshalText() ([]byte, error) {
	if !c.IsValid() {
		return nil, fmt.Errorf("invalid compression type: %d", uint8(c))
	}

	return []byte(c.Name()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *CompressionType) UnmarshalText(text []byte) error {
	parsed, err := ParseCompressionType(string(text))
	if err != nil {
		return err
	}
	*c = parsed

	return nil
}

func (v ValueType) String() string {
	switch v {
	case TypeBytes:
		return "Bytes"
	case TypeText:
		return "Text"
	default:
		return "Unknown"
	}
}

// ParseValueType parses a value type. Both the Go spelling ("[]byte", "string") and the short
// forms ("bytes", "str", "text") are accepted.
func ParseValueType(name string) (ValueType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "bytes", "[]byte":
		return TypeBytes, nil
	case "str", "string", "text":
		return TypeText, nil
	default:
		return 0, fmt.Errorf("unknown value type: %q", name)
	}
}
