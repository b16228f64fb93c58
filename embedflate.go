// Package embedflate embeds compressed files into Go programs and inflates them lazily.
//
// The cmd/embedflate generator runs under `go generate`: it reads files, compresses them and
// writes a Go file holding each compressed resource as a string constant together with a
// package-level Cell that decompresses it on first use. This package is the runtime side that
// the generated file imports.
//
// # Basic Usage
//
// Add a directive next to the files to embed:
//
//	//go:generate go run github.com/arloliu/embedflate/cmd/embedflate Index:str=static/index.html Logo=static/logo.svg@zstd
//
// Running `go generate` produces a file along these lines:
//
//	const flateIndex = "\xec\xbd..."
//
//	// Index inflates static/index.html on first use.
//	var Index = embedflate.DeflateText(flateIndex)
//
// and the program reads the resource through the cell:
//
//	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
//	    io.WriteString(w, assets.Index.Get())
//	})
//
// # Algorithms
//
// Each constructor is bound to one algorithm, so the decompression path of every resource is
// fixed when the file is generated and nothing about the algorithm is stored in the binary:
//
//   - DeflateBytes / DeflateText: raw DEFLATE
//   - ZstdBytes / ZstdText: Zstandard
//   - RawBytes / RawText: stored uncompressed
//
// # Failure Semantics
//
// Embedded data is produced and validated by the generator, so a decoding failure at run time
// means the build output was corrupted. Cells panic with a *CorruptionError in that case and
// never return empty or truncated data. Decode and DecodeText offer the same decoding with
// error returns for code that handles embedded data itself.
package embedflate

import (
	"unicode/utf8"

	"github.com/arloliu/embedflate/format"
)

// DeflateBytes returns a cell that inflates DEFLATE-compressed data on first access.
func DeflateBytes(data string) *Cell[[]byte] {
	return NewCell(func() []byte {
		decoded, err := decodeDeflate(data)
		return mustBytes(format.CompressionDeflate, decoded, err)
	})
}

// DeflateText returns a cell that inflates DEFLATE-compressed UTF-8 text on first access.
func DeflateText(data string) *Cell[string] {
	return NewCell(func() string {
		decoded, err := decodeDeflate(data)
		return mustText(format.CompressionDeflate, decoded, err)
	})
}

// ZstdBytes returns a cell that decompresses a Zstandard frame on first access.
func ZstdBytes(data string) *Cell[[]byte] {
	return NewCell(func() []byte {
		decoded, err := decodeZstd(data)
		return mustBytes(format.CompressionZstd, decoded, err)
	})
}

// ZstdText returns a cell that decompresses Zstandard-compressed UTF-8 text on first access.
func ZstdText(data string) *Cell[string] {
	return NewCell(func() string {
		decoded, err := decodeZstd(data)
		return mustText(format.CompressionZstd, decoded, err)
	})
}

// RawBytes returns a cell holding a copy of data, made on first access.
func RawBytes(data string) *Cell[[]byte] {
	return NewCell(func() []byte {
		return []byte(data)
	})
}

// RawText returns a cell holding data after checking that it is UTF-8.
func RawText(data string) *Cell[string] {
	return NewCell(func() string {
		if !utf8.ValidString(data) {
			panic(&CorruptionError{Algorithm: format.CompressionNone, Err: ErrInvalidUTF8})
		}

		return data
	})
}
