package messages

import (
	"fmt"

	"github.com/golang/snappy"
	"github.com/klauspost/compress/zstd"
)

// Codec compresses whole frames.
type Codec interface {
	Name() string
	Compress(b []byte) ([]byte, error)
	Decompress(b []byte) ([]byte, error)
}

// NewCodec returns the codec registered under name: zstd, snappy or none.
func NewCodec(name string) (Codec, error) {
	switch name {
	case "zstd":
		return newZstdCodec()
	case "snappy":
		return snappyCodec{}, nil
	case "none", "":
		return noneCodec{}, nil
	default:
		return nil, fmt.Errorf("unknown compression codec %q", name)
	}
}

type zstdCodec struct {
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

func newZstdCodec() (*zstdCodec, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd writer: %v", err)
	}
	decoder, err := zstd.NewReader(nil, zstd.WithDecoderMaxMemory(MaxDecodedSize))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd reader: %v", err)
	}
	return &zstdCodec{encoder: encoder, decoder: decoder}, nil
}

func (c *zstdCodec) Name() string {
	return "zstd"
}

func (c *zstdCodec) Compress(b []byte) ([]byte, error) {
	return c.encoder.EncodeAll(b, make([]byte, 0, len(b))), nil
}

func (c *zstdCodec) Decompress(b []byte) ([]byte, error) {
	out, err := c.decoder.DecodeAll(b, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress zstd frame: %v", err)
	}
	return out, nil
}

type snappyCodec struct{}

func (snappyCodec) Name() string {
	return "snappy"
}

func (snappyCodec) Compress(b []byte) ([]byte, error) {
	return snappy.Encode(nil, b), nil
}

func (snappyCodec) Decompress(b []byte) ([]byte, error) {
	n, err := snappy.DecodedLen(b)
	if err != nil {
		return nil, fmt.Errorf("failed to read snappy frame length: %v", err)
	}
	if n > MaxDecodedSize {
		return nil, fmt.Errorf("snappy frame of %d bytes exceeds limit", n)
	}
	out, err := snappy.Decode(nil, b)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress snappy frame: %v", err)
	}
	return out, nil
}

type noneCodec struct{}

func (noneCodec) Name() string {
	return "none"
}

func (noneCodec) Compress(b []byte) ([]byte, error) {
	return b, nil
}

func (noneCodec) Decompress(b []byte) ([]byte, error) {
	return b, nil
}
