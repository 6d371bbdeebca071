package http

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"

	"github.com/golang/snappy"
	"github.com/klauspost/compress/zstd"
)

// Compression type constants.
const (
	CompressionNone   = "none"
	CompressionGzip   = "gzip"
	CompressionZstd   = "zstd"
	CompressionSnappy = "snappy"
)

// Compressor compresses export payloads with a configured algorithm.
type Compressor struct {
	algorithm string
	encoder   *zstd.Encoder
}

// NewCompressor creates a Compressor for the given algorithm.
func NewCompressor(algorithm string) (*Compressor, error) {
	c := &Compressor{algorithm: algorithm}

	// The zstd encoder is expensive to create, so build it once.
	if algorithm == CompressionZstd {
		encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return nil, fmt.Errorf("creating zstd encoder: %w", err)
		}

		c.encoder = encoder
	}

	return c, nil
}

// Compress compresses data with the configured algorithm.
func (c *Compressor) Compress(data []byte) ([]byte, error) {
	switch c.algorithm {
	case CompressionNone, "":
		return data, nil
	case CompressionGzip:
		var buf bytes.Buffer

		w := gzip.NewWriter(&buf)
		if _, err := w.Write(data); err != nil {
			return nil, fmt.Errorf("gzip write: %w", err)
		}

		if err := w.Close(); err != nil {
			return nil, fmt.Errorf("gzip close: %w", err)
		}

		return buf.Bytes(), nil
	case CompressionZstd:
		return c.encoder.EncodeAll(data, make([]byte, 0, len(data))), nil
	case CompressionSnappy:
		return snappy.Encode(nil, data), nil
	default:
		return nil, fmt.Errorf("unsupported compression algorithm: %s", c.algorithm)
	}
}

// ContentEncoding returns the Content-Encoding header value.
func (c *Compressor) ContentEncoding() string {
	switch c.algorithm {
	case CompressionGzip:
		return "gzip"
	case CompressionZstd:
		return "zstd"
	case CompressionSnappy:
		return "snappy"
	default:
		return ""
	}
}

// Close releases compressor resources.
func (c *Compressor) Close() error {
	if c.encoder != nil {
		return c.encoder.Close()
	}

	return nil
}

// DecompressGzip decompresses gzip data (for testing).
func DecompressGzip(data []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return io.ReadAll(r)
}

// DecompressZstd decompresses zstd data (for testing).
func DecompressZstd(data []byte) ([]byte, error) {
	decoder, err := zstd.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer decoder.Close()

	return io.ReadAll(decoder)
}

// DecompressSnappy decompresses snappy data (for testing).
func DecompressSnappy(data []byte) ([]byte, error) {
	return snappy.Decode(nil, data)
}
