package hash

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDigest(t *testing.T) {
	tests := []struct {
		name   string
		data   []byte
		digest uint64
	}{
		{"nil", nil, 0xef46db3751d8e999},
		{"empty", []byte{}, 0xef46db3751d8e999},
		{"short", []byte("test"), 0x4fdcca5ddb678139},
		{"long", []byte("this is a longer test string to hash"), 0x69275f7f7ee59dbd},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.digest, Digest(tt.data))
		})
	}
}

func TestFormatDigest(t *testing.T) {
	require.Equal(t, "xxh64:ef46db3751d8e999", FormatDigest(Digest(nil)))
	require.Equal(t, "xxh64:000000000000002a", FormatDigest(42))
}
