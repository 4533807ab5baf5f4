// SPDX-License-Identifier: MIT

package checkpoint

import (
	"fmt"
	"sync"

	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Codec selects the payload compression.
type Codec uint8

const (
	// None stores the payload uncompressed.
	None Codec = iota

	// Zstd favours ratio (klauspost/compress/zstd).
	Zstd

	// S2 favours speed (klauspost/compress/s2).
	S2

	// LZ4 is the block format of pierrec/lz4.
	LZ4

	codecCount
)

// String implements fmt.Stringer.
func (c Codec) String() string {
	switch c {
	case None:
		return "none"
	case Zstd:
		return "zstd"
	case S2:
		return "s2"
	case LZ4:
		return "lz4"
	default:
		return fmt.Sprintf("Codec(%d)", uint8(c))
	}
}

// Valid reports whether c is a known codec.
func (c Codec) Valid() bool { return c < codecCount }

var zstdEncoders = sync.Pool{
	New: func() any {
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault), zstd.WithEncoderCRC(false))
		if err != nil {
			panic(fmt.Sprintf("checkpoint: zstd encoder: %v", err))
		}

		return enc
	},
}

var zstdDecoders = sync.Pool{
	New: func() any {
		dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
		if err != nil {
			panic(fmt.Sprintf("checkpoint: zstd decoder: %v", err))
		}

		return dec
	},
}

var lz4Compressors = sync.Pool{
	New: func() any { return &lz4.Compressor{} },
}

// compress returns the encoded payload and the codec actually used.
func compress(c Codec, raw []byte) ([]byte, Codec, error) {
	switch c {
	case None:
		return raw, None, nil
	case Zstd:
		enc := zstdEncoders.Get().(*zstd.Encoder)
		defer zstdEncoders.Put(enc)

		return enc.EncodeAll(raw, nil), Zstd, nil
	case S2:
		return s2.Encode(nil, raw), S2, nil
	case LZ4:
		if len(raw) == 0 {
			return raw, None, nil
		}
		dst := make([]byte, lz4.CompressBlockBound(len(raw)))
		lc := lz4Compressors.Get().(*lz4.Compressor)
		n, err := lc.CompressBlock(raw, dst)
		lz4Compressors.Put(lc)
		if err != nil {
			return nil, c, err
		}
		if n == 0 || n >= len(raw) {
			return raw, None, nil
		}

		return dst[:n], LZ4, nil
	default:
		return nil, c, ErrUnknownCodec
	}
}

// decompress decodes payload into exactly size bytes.
func decompress(c Codec, payload []byte, size int) ([]byte, error) {
	var (
		raw []byte
		err error
	)
	switch c {
	case None:
		raw = payload
	case Zstd:
		dec := zstdDecoders.Get().(*zstd.Decoder)
		defer zstdDecoders.Put(dec)
		raw, err = dec.DecodeAll(payload, make([]byte, 0, size))
	case S2:
		raw, err = s2.Decode(nil, payload)
	case LZ4:
		raw = make([]byte, size)
		var n int
		n, err = lz4.UncompressBlock(payload, raw)
		raw = raw[:max(n, 0)]
	default:
		return nil, ErrUnknownCodec
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %v: %w", c, err, ErrCorruptPayload)
	}
	if len(raw) != size {
		return nil, fmt.Errorf("%s: %d bytes, want %d: %w", c, len(raw), size, ErrCorruptPayload)
	}

	return raw, nil
}
