// Package checkpoint writes and reads compact snapshots of an assignment
// store, so long solves can be resumed and results archived.
//
// Format (all integers little-endian):
//
//	offset size field
//	0      4    magic "FGCK"
//	4      1    version (1)
//	5      1    codec (None, Zstd, S2, LZ4)
//	6      2    reserved, zero
//	8      8    layout fingerprint (core.Layout.Fingerprint)
//	16     8    scalar count (core.Layout.StorageDim)
//	24     8    payload length in bytes
//	32     n    payload: the storage as float64 bits, compressed by codec
//	32+n   8    xxhash64 of the uncompressed payload
//
// A snapshot carries no variable identities: Decode rebuilds a store over a
// caller-supplied layout and refuses one whose fingerprint or size differs.
// LZ4 falls back to None for incompressible payloads; the header records the
// codec actually used.
//
// Errors (sentinel):
//
//	– ErrTruncated          data shorter than its header or declared payload.
//	– ErrBadMagic           not a checkpoint.
//	– ErrUnsupportedVersion written by an unknown format version.
//	– ErrUnknownCodec       codec byte out of range.
//	– ErrLayoutMismatch     fingerprint or scalar count differs from the layout.
//	– ErrCorruptPayload     payload fails to decompress to the declared size.
//	– ErrChecksum           payload decompresses but its checksum differs.
package checkpoint
