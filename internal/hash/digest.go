// Package hash computes the content digests recorded in generated files.
package hash

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Digest computes the xxHash64 of the given bytes.
func Digest(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// FormatDigest renders a digest as "xxh64:" followed by 16 lower-case hex digits.
func FormatDigest(digest uint64) string {
	return fmt.Sprintf("xxh64:%016x", digest)
}
