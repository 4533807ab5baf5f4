// SPDX-License-Identifier: MIT

package checkpoint

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/cespare/xxhash/v2"
	"github.com/katalvlaran/factorgraph/core"
)

// Version is the format version written by Encode.
const Version = 1

const (
	headerSize  = 32
	trailerSize = 8
)

var magic = [4]byte{'F', 'G', 'C', 'K'}

// Sentinel errors returned by Decode.
var (
	ErrTruncated          = errors.New("checkpoint: data truncated")
	ErrBadMagic           = errors.New("checkpoint: bad magic")
	ErrUnsupportedVersion = errors.New("checkpoint: unsupported version")
	ErrUnknownCodec       = errors.New("checkpoint: unknown codec")
	ErrLayoutMismatch     = errors.New("checkpoint: layout mismatch")
	ErrCorruptPayload     = errors.New("checkpoint: corrupt payload")
	ErrChecksum           = errors.New("checkpoint: checksum mismatch")
)

// Header describes a snapshot without decoding its payload.
type Header struct {
	Version     uint8
	Codec       Codec
	Fingerprint uint64
	Count       uint64
	PayloadLen  uint64
}

// Encode serializes a's storage with codec c.
//
// Errors:
//   - ErrUnknownCodec if c is not a known codec.
//
// Complexity: O(StorageDim) plus compression.
func Encode(a *core.Assignments, c Codec) ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("Encode: %w", ErrUnknownCodec)
	}
	storage := a.StorageView()
	raw := make([]byte, 8*len(storage))
	for i, v := range storage {
		binary.LittleEndian.PutUint64(raw[8*i:], math.Float64bits(v))
	}
	payload, used, err := compress(c, raw)
	if err != nil {
		return nil, fmt.Errorf("Encode: %s: %w", c, err)
	}

	out := make([]byte, headerSize, headerSize+len(payload)+trailerSize)
	copy(out[0:4], magic[:])
	out[4] = Version
	out[5] = byte(used)
	binary.LittleEndian.PutUint64(out[8:], a.Layout().Fingerprint())
	binary.LittleEndian.PutUint64(out[16:], uint64(len(storage)))
	binary.LittleEndian.PutUint64(out[24:], uint64(len(payload)))
	out = append(out, payload...)
	out = binary.LittleEndian.AppendUint64(out, xxhash.Sum64(raw))

	return out, nil
}

// ReadHeader parses and validates the fixed header of data.
//
// Errors:
//   - ErrTruncated, ErrBadMagic, ErrUnsupportedVersion, ErrUnknownCodec.
func ReadHeader(data []byte) (Header, error) {
	if len(data) < headerSize {
		return Header{}, ErrTruncated
	}
	if !bytes.Equal(data[0:4], magic[:]) {
		return Header{}, ErrBadMagic
	}
	h := Header{
		Version:     data[4],
		Codec:       Codec(data[5]),
		Fingerprint: binary.LittleEndian.Uint64(data[8:]),
		Count:       binary.LittleEndian.Uint64(data[16:]),
		PayloadLen:  binary.LittleEndian.Uint64(data[24:]),
	}
	if h.Version != Version {
		return Header{}, fmt.Errorf("version %d: %w", h.Version, ErrUnsupportedVersion)
	}
	if !h.Codec.Valid() {
		return Header{}, fmt.Errorf("%s: %w", h.Codec, ErrUnknownCodec)
	}

	return h, nil
}

// Decode rebuilds an assignment store over layout from data.
//
// Errors: see the package documentation.
// Complexity: O(StorageDim) plus decompression.
func Decode(data []byte, layout *core.Layout) (*core.Assignments, error) {
	h, err := ReadHeader(data)
	if err != nil {
		return nil, fmt.Errorf("Decode: %w", err)
	}
	if h.Fingerprint != layout.Fingerprint() || h.Count != uint64(layout.StorageDim()) {
		return nil, fmt.Errorf("Decode: %w", ErrLayoutMismatch)
	}
	if h.PayloadLen > uint64(len(data)-headerSize) || uint64(len(data)-headerSize)-h.PayloadLen < trailerSize {
		return nil, fmt.Errorf("Decode: %w", ErrTruncated)
	}
	end := headerSize + int(h.PayloadLen)
	payload := data[headerSize:end]
	sum := binary.LittleEndian.Uint64(data[end:])

	raw, err := decompress(h.Codec, payload, 8*int(h.Count))
	if err != nil {
		return nil, fmt.Errorf("Decode: %w", err)
	}
	if xxhash.Sum64(raw) != sum {
		return nil, fmt.Errorf("Decode: %w", ErrChecksum)
	}

	storage := make([]float64, h.Count)
	for i := range storage {
		storage[i] = math.Float64frombits(binary.LittleEndian.Uint64(raw[8*i:]))
	}
	a, err := core.NewAssignmentsFromStorage(layout, storage)
	if err != nil {
		return nil, fmt.Errorf("Decode: %w", err)
	}

	return a, nil
}

// Write encodes a to w.
func Write(w io.Writer, a *core.Assignments, c Codec) error {
	data, err := Encode(a, c)
	if err != nil {
		return err
	}
	if _, err = w.Write(data); err != nil {
		return fmt.Errorf("Write: %w", err)
	}

	return nil
}

// Read decodes one snapshot from r, reading it to EOF.
func Read(r io.Reader, layout *core.Layout) (*core.Assignments, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("Read: %w", err)
	}

	return Decode(data, layout)
}
