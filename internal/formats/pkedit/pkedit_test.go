package pkedit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terrapower/armicontrib-dif3d/internal/binfile"
	"github.com/terrapower/armicontrib-dif3d/internal/diskmanager/mockdm"
	"github.com/terrapower/armicontrib-dif3d/internal/formats/pkedit"
	"github.com/terrapower/armicontrib-dif3d/internal/mesh"
	"github.com/terrapower/armicontrib-dif3d/internal/testutil"
)

func TestRead_BandedPeak(t *testing.T) {
	const im, jm, km, njblok = 4, 10, 3, 3
	dm := mockdm.NewMockDiskManager()
	dm.Put("PKEDIT", testutil.LittleEndian().PKEDIT(im, jm, km, njblok, 1.0083).Build())
	codec := binfile.NewCodec(dm)

	f, err := pkedit.Read(codec, "PKEDIT")
	require.NoError(t, err)

	peak, err := f.Peak()
	require.NoError(t, err)
	assert.Equal(t, []int{im, jm, km}, peak.Shape())

	for k := range km {
		for j := range jm {
			for i := range im {
				v, err := peak.At(i, j, k)
				require.NoError(t, err)
				assert.Equal(t, testutil.PeakPlane(i, j, k), v)
				assert.GreaterOrEqual(t, v, 0.0)
			}
		}
	}

	keff, err := f.Keff()
	require.NoError(t, err)
	assert.InDelta(t, 1.0083, keff, 1e-6)
	nj, _ := f.Metadata.Int("NJBLOK")
	assert.Equal(t, njblok, nj)
}

func TestWrite_RoundTrip(t *testing.T) {
	for _, njblok := range []int{1, 2, 3, 7, 12} {
		raw := testutil.LittleEndian().PKEDIT(3, 7, 2, njblok, 1).Build()
		dm := mockdm.NewMockDiskManager()
		dm.Put("PKEDIT", raw)
		codec := binfile.NewCodec(dm)

		f, err := pkedit.Read(codec, "PKEDIT")
		require.NoError(t, err, "njblok=%d", njblok)
		require.NoError(t, codec.WriteBinary(f.Container, "PKEDIT2"))

		out, _ := dm.File("PKEDIT2")
		assert.Equal(t, raw, out.Bytes(), "njblok=%d", njblok)
	}
}

func TestNewContainer(t *testing.T) {
	peak, err := mesh.New[float64](2, 5, 1)
	require.NoError(t, err)
	for i := range peak.Data() {
		peak.Data()[i] = float64(i)
	}

	c, err := pkedit.NewContainer(peak, 2)
	require.NoError(t, err)

	dm := mockdm.NewMockDiskManager()
	codec := binfile.NewCodec(dm)
	require.NoError(t, codec.WriteBinary(c, "PKEDIT"))

	f, err := pkedit.Read(codec, "PKEDIT")
	require.NoError(t, err)
	got, err := f.Peak()
	require.NoError(t, err)
	assert.Equal(t, peak.Data(), got.Data())

	flat, err := mesh.New[float64](10)
	require.NoError(t, err)
	_, err = pkedit.NewContainer(flat, 1)
	assert.Error(t, err)
}
