// Package compress provides the compression codecs shared by the embedflate generator and
// its runtime.
//
// The generator compresses each resource once per build; the runtime decompresses it once per
// process, on first access. Both sides must agree on the algorithm, which is fixed when the
// Go source is generated and never recorded in the embedded bytes.
//
// # Architecture
//
// The package defines three core interfaces:
//
//	type Compressor interface {
//	    Compress(data []byte) ([]byte, error)
//	}
//
//	type Decompressor interface {
//	    Decompress(data []byte) ([]byte, error)
//	}
//
//	type Codec interface {
//	    Compressor
//	    Decompressor
//	}
//
// # Supported Algorithms
//
// **NoOp** (format.CompressionNone)
//
//	codec := compress.NewNoOpCompressor()
//	stored, _ := codec.Compress(data)  // Returns data unchanged
//
// Use for already-compressed assets (PNG, JPEG, archives) or when compression is disabled.
//
// **Deflate** (format.CompressionDeflate)
//
//	codec := compress.NewDeflateCompressor()
//	compressed, _ := codec.Compress(data)
//	original, _ := codec.Decompress(compressed)
//
// Raw DEFLATE stream (RFC 1951) at flate.BestCompression. Small decoder state, fast inflation.
// This is the default algorithm.
//
// **Zstandard** (format.CompressionZstd)
//
//	codec := compress.NewZstdCompressor()
//	compressed, _ := codec.Compress(data)
//	original, _ := codec.Decompress(compressed)
//
// Better ratio on text and structured data. Frames carry a CRC so corruption is detected.
// Build with -tags gozstd (and cgo) to use libzstd through github.com/valyala/gozstd.
//
// # Determinism
//
// Every codec is deterministic for a given library version: the same input produces the same
// bytes, so `go generate` output is reproducible and can be checked into version control.
//
// # Thread Safety
//
// All codec implementations are stateless values backed by sync.Pool and can be shared across
// goroutines.
//
// # Error Handling
//
// Compression does not fail in practice. Decompression fails on corrupted, truncated or
// mismatched input; errors are wrapped with the algorithm name.
package compress
