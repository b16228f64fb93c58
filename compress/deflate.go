package compress

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/flate"
)

// deflateLevel trades generation time for embedded size; resources are compressed once per build.
const deflateLevel = flate.BestCompression

// deflateWriterPool pools flate writers; a flate.Writer carries large match tables that are
// worth reusing across resources.
var deflateWriterPool = sync.Pool{
	New: func() any {
		writer, err := flate.NewWriter(nil, deflateLevel)
		if err != nil {
			// This should never happen with a valid level
			panic(fmt.Sprintf("failed to create deflate writer for pool: %v", err))
		}

		return writer
	},
}

// deflateReaderPool pools flate readers. Readers returned by flate.NewReader implement
// flate.Resetter and can be rewound onto new input.
var deflateReaderPool = sync.Pool{
	New: func() any {
		return flate.NewReader(bytes.NewReader(nil))
	},
}

// DeflateCompressor provides raw DEFLATE (RFC 1951) compression without zlib or gzip framing.
//
// Deflate decodes quickly with a tiny state footprint, which makes it the default choice for
// embedded resources that are inflated once at startup.
type DeflateCompressor struct{}

var _ Codec = (*DeflateCompressor)(nil)

// NewDeflateCompressor creates a new deflate codec.
//
// Returns:
//   - DeflateCompressor: New deflate codec instance
func NewDeflateCompressor() DeflateCompressor {
	return DeflateCompressor{}
}

// Compress compresses the input data at flate.BestCompression.
//
// Parameters:
//   - data: Input data to compress
//
// Returns:
//   - []byte: Compressed data (nil if input is empty)
//   - error: Compression error if any
func (c DeflateCompressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var buf bytes.Buffer
	buf.Grow(len(data) / 2)

	writer, _ := deflateWriterPool.Get().(*flate.Writer)
	defer deflateWriterPool.Put(writer)
	writer.Reset(&buf)

	if _, err := writer.Write(data); err != nil {
		return nil, fmt.Errorf("deflate compression failed: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("deflate compression failed: %w", err)
	}

	return buf.Bytes(), nil
}

// Decompress inflates DEFLATE-compressed data.
//
// Truncated or corrupted streams are reported as errors; the partial output is discarded.
//
// Parameters:
//   - data: Compressed data to decompress
//
// Returns:
//   - []byte: Decompressed data (nil if input is empty)
//   - error: Decompression error if the stream is invalid
func (c DeflateCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	reader, _ := deflateReaderPool.Get().(io.ReadCloser)
	defer deflateReaderPool.Put(reader)

	if err := reader.(flate.Resetter).Reset(bytes.NewReader(data), nil); err != nil {
		return nil, fmt.Errorf("deflate decompression failed: %w", err)
	}

	decompressed, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("deflate decompression failed: %w", err)
	}

	return decompressed, nil
}
