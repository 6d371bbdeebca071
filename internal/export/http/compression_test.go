package http

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompressor_Roundtrip(t *testing.T) {
	payload := []byte(`{"window":0,"counts":[2,2,0,0]}` + "\n")

	tests := []struct {
		algorithm  string
		encoding   string
		decompress func([]byte) ([]byte, error)
	}{
		{CompressionGzip, "gzip", DecompressGzip},
		{CompressionZstd, "zstd", DecompressZstd},
		{CompressionSnappy, "snappy", DecompressSnappy},
	}

	for _, tt := range tests {
		t.Run(tt.algorithm, func(t *testing.T) {
			c, err := NewCompressor(tt.algorithm)
			require.NoError(t, err)
			defer c.Close()

			assert.Equal(t, tt.encoding, c.ContentEncoding())

			compressed, err := c.Compress(payload)
			require.NoError(t, err)

			decompressed, err := tt.decompress(compressed)
			require.NoError(t, err)
			assert.Equal(t, payload, decompressed)
		})
	}
}

func TestCompressor_None(t *testing.T) {
	c, err := NewCompressor(CompressionNone)
	require.NoError(t, err)
	defer c.Close()

	data := []byte("passthrough")

	out, err := c.Compress(data)
	require.NoError(t, err)

	assert.Equal(t, data, out)
	assert.Empty(t, c.ContentEncoding())
}

func TestCompressor_Unsupported(t *testing.T) {
	c, err := NewCompressor("lz4")
	require.NoError(t, err)

	_, err = c.Compress([]byte("data"))
	assert.Error(t, err)
}
