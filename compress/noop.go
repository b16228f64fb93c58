package compress

// NoOpCompressor stores resources as-is.
//
// It backs format.CompressionNone: resources that do not compress well, or that were
// generated with compression disabled, are embedded verbatim.
type NoOpCompressor struct{}

var _ Codec = (*NoOpCompressor)(nil)

// NewNoOpCompressor creates a new no-operation codec.
func NewNoOpCompressor() NoOpCompressor {
	return NoOpCompressor{}
}

// Compress returns the input slice as-is, without copying.
//
// Note: The returned slice shares the same underlying memory as the input.
func (c NoOpCompressor) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns the input slice as-is, without copying.
//
// Note: The returned slice shares the same underlying memory as the input.
// Callers that hand the result out as a mutable value must copy it first.
func (c NoOpCompressor) Decompress(data []byte) ([]byte, error) {
	return data, nil
}
