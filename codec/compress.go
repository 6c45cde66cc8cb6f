package codec

import (
	"github.com/klauspost/compress/s2"
)

// Compressed wraps a base codec with S2 block compression.
//
// Node records grow linearly with capacity; on remote stores (Redis, S3,
// DynamoDB) compressing the record can cut the per-round-trip transfer
// noticeably. For the in-memory and local stores it is rarely worth it.
type Compressed struct {
	// Base is the codec whose output is compressed. Defaults to Default.
	Base Codec
}

func (c Compressed) base() Codec {
	if c.Base == nil {
		return Default
	}
	return c.Base
}

// Marshal encodes the value with the base codec and compresses the result.
func (c Compressed) Marshal(v any) ([]byte, error) {
	b, err := c.base().Marshal(v)
	if err != nil {
		return nil, err
	}
	return s2.Encode(nil, b), nil
}

// Unmarshal decompresses the data and decodes it with the base codec.
func (c Compressed) Unmarshal(data []byte, v any) error {
	b, err := s2.Decode(nil, data)
	if err != nil {
		return err
	}
	return c.base().Unmarshal(b, v)
}

// Name returns the unique name of the codec, e.g. "go-json+s2".
func (c Compressed) Name() string { return c.base().Name() + "+s2" }
