package pebblestorage

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/klauspost/compress/zstd"
)

// Codec encodes values as canonical CBOR compressed with Zstandard.
type Codec struct {
	encoder      cbor.EncMode
	compressor   *zstd.Encoder
	decompressor *zstd.Decoder
}

// NewCodec creates a new Codec.
func NewCodec() (*Codec, error) {
	encoder, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		return nil, fmt.Errorf("could not initialize encoder: %w", err)
	}

	compressor, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("could not initialize compressor: %w", err)
	}

	decompressor, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("could not initialize decompressor: %w", err)
	}

	return &Codec{
		encoder:      encoder,
		compressor:   compressor,
		decompressor: decompressor,
	}, nil
}

// Marshal encodes and compresses v.
func (c *Codec) Marshal(v interface{}) ([]byte, error) {
	b, err := c.encoder.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("unable to encode value: %w", err)
	}
	return c.compressor.EncodeAll(b, nil), nil
}

// Unmarshal decompresses b and decodes it into value.
func (c *Codec) Unmarshal(b []byte, value interface{}) error {
	val, err := c.decompressor.DecodeAll(b, nil)
	if err != nil {
		return fmt.Errorf("unable to decompress value: %w", err)
	}

	err = cbor.Unmarshal(val, value)
	if err != nil {
		return fmt.Errorf("unable to decode value: %w", err)
	}

	return nil
}

// Close releases the decompressor goroutines.
func (c *Codec) Close() {
	c.decompressor.Close()
}
