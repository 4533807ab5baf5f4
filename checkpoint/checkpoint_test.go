package checkpoint_test

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/katalvlaran/factorgraph/checkpoint"
	"github.com/katalvlaran/factorgraph/core"
	"github.com/katalvlaran/factorgraph/geometry"
	"github.com/stretchr/testify/require"
)

var codecs = []checkpoint.Codec{checkpoint.None, checkpoint.Zstd, checkpoint.S2, checkpoint.LZ4}

// poses returns n SE2 variables on a regular grid (compressible storage).
func poses(t *testing.T, n int) *core.Assignments {
	t.Helper()
	vars := make([]*core.Variable, n)
	values := make(map[*core.Variable]any, n)
	for i := range vars {
		vars[i] = core.NewVariable(geometry.SE2Type{})
		values[vars[i]] = geometry.SE2FromXYTheta(float64(i%10), float64(i/10), 0)
	}
	a, err := core.NewAssignmentsFromValues(vars, values, geometry.NewRegistry())
	require.NoError(t, err)

	return a
}

func TestRoundTrip(t *testing.T) {
	a := poses(t, 200)
	for _, c := range codecs {
		data, err := checkpoint.Encode(a, c)
		require.NoError(t, err, c.String())

		h, err := checkpoint.ReadHeader(data)
		require.NoError(t, err)
		require.Equal(t, c, h.Codec)
		require.Equal(t, uint64(a.Layout().StorageDim()), h.Count)
		require.Equal(t, a.Layout().Fingerprint(), h.Fingerprint)

		back, err := checkpoint.Decode(data, a.Layout())
		require.NoError(t, err, c.String())
		require.Equal(t, a.Storage(), back.Storage(), c.String())
		require.Same(t, a.Layout(), back.Layout())

		if c != checkpoint.None {
			raw, err := checkpoint.Encode(a, checkpoint.None)
			require.NoError(t, err)
			require.Less(t, len(data), len(raw), "%s compresses a grid", c)
		}
	}
}

func TestWriteRead(t *testing.T) {
	a := poses(t, 10)
	var buf bytes.Buffer
	require.NoError(t, checkpoint.Write(&buf, a, checkpoint.Zstd))
	back, err := checkpoint.Read(&buf, a.Layout())
	require.NoError(t, err)
	require.Equal(t, a.Storage(), back.Storage())
}

func TestLZ4_IncompressibleFallsBackToNone(t *testing.T) {
	v := core.NewVariable(core.RealVector(64))
	rng := rand.New(rand.NewSource(1))
	raw := make([]float64, 64)
	for i := range raw {
		raw[i] = rng.NormFloat64()
	}
	a, err := core.NewAssignmentsFromValues([]*core.Variable{v}, map[*core.Variable]any{v: raw}, nil)
	require.NoError(t, err)

	data, err := checkpoint.Encode(a, checkpoint.LZ4)
	require.NoError(t, err)
	h, err := checkpoint.ReadHeader(data)
	require.NoError(t, err)
	require.Equal(t, checkpoint.None, h.Codec)
	back, err := checkpoint.Decode(data, a.Layout())
	require.NoError(t, err)
	require.Equal(t, raw, back.Storage())
}

func TestDecode_DetectsCorruption(t *testing.T) {
	a := poses(t, 50)

	for _, c := range codecs {
		data, err := checkpoint.Encode(a, c)
		require.NoError(t, err)

		// Checksum trailer flipped.
		bad := append([]byte(nil), data...)
		bad[len(bad)-1] ^= 0xFF
		_, err = checkpoint.Decode(bad, a.Layout())
		require.ErrorIs(t, err, checkpoint.ErrChecksum, c.String())

		// Payload cut short.
		_, err = checkpoint.Decode(data[:len(data)-9], a.Layout())
		require.ErrorIs(t, err, checkpoint.ErrTruncated, c.String())
	}

	// A flipped payload bit in an uncompressed snapshot is caught by the checksum.
	data, err := checkpoint.Encode(a, checkpoint.None)
	require.NoError(t, err)
	data[40] ^= 0x01
	_, err = checkpoint.Decode(data, a.Layout())
	require.ErrorIs(t, err, checkpoint.ErrChecksum)
}

func TestDecode_HeaderErrors(t *testing.T) {
	a := poses(t, 3)
	data, err := checkpoint.Encode(a, checkpoint.S2)
	require.NoError(t, err)

	_, err = checkpoint.Decode(data[:10], a.Layout())
	require.ErrorIs(t, err, checkpoint.ErrTruncated)

	bad := append([]byte(nil), data...)
	bad[0] = 'X'
	_, err = checkpoint.Decode(bad, a.Layout())
	require.ErrorIs(t, err, checkpoint.ErrBadMagic)

	bad = append([]byte(nil), data...)
	bad[4] = 9
	_, err = checkpoint.Decode(bad, a.Layout())
	require.ErrorIs(t, err, checkpoint.ErrUnsupportedVersion)

	bad = append([]byte(nil), data...)
	bad[5] = 42
	_, err = checkpoint.Decode(bad, a.Layout())
	require.ErrorIs(t, err, checkpoint.ErrUnknownCodec)

	other := poses(t, 4)
	_, err = checkpoint.Decode(data, other.Layout())
	require.ErrorIs(t, err, checkpoint.ErrLayoutMismatch)

	_, err = checkpoint.Encode(a, checkpoint.Codec(200))
	require.ErrorIs(t, err, checkpoint.ErrUnknownCodec)
	require.Equal(t, "Codec(200)", checkpoint.Codec(200).String())
}

func TestDecode_SameShapeOtherVariables(t *testing.T) {
	a := poses(t, 5)
	data, err := checkpoint.Encode(a, checkpoint.Zstd)
	require.NoError(t, err)

	// Fingerprints cover shape only, so a fresh layout of the same shape accepts the snapshot.
	b := poses(t, 5)
	back, err := checkpoint.Decode(data, b.Layout())
	require.NoError(t, err)
	require.Equal(t, a.Storage(), back.Storage())
}
