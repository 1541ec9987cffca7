package pwdint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terrapower/armicontrib-dif3d/internal/binfile"
	"github.com/terrapower/armicontrib-dif3d/internal/diskmanager/mockdm"
	"github.com/terrapower/armicontrib-dif3d/internal/formats/pwdint"
	"github.com/terrapower/armicontrib-dif3d/internal/mesh"
	"github.com/terrapower/armicontrib-dif3d/internal/testutil"
)

func TestRead(t *testing.T) {
	const im, jm, km = 3, 4, 2
	dm := mockdm.NewMockDiskManager()
	dm.Put("PWDINT", testutil.LittleEndian().PWDINT(im, jm, km, 2, 1.002).Build())

	f, err := pwdint.Read(binfile.NewCodec(dm), "PWDINT")
	require.NoError(t, err)

	pwr, err := f.Density()
	require.NoError(t, err)
	require.Equal(t, []int{im, jm, km}, pwr.Shape())
	for k := range km {
		for j := range jm {
			for i := range im {
				v, err := pwr.At(i, j, k)
				require.NoError(t, err)
				assert.Equal(t, float64(testutil.PowerValue(i, j, k)), v)
			}
		}
	}

	keff, err := f.Keff()
	require.NoError(t, err)
	assert.InDelta(t, 1.002, keff, 1e-6)
}

func TestWrite_RoundTrip(t *testing.T) {
	for _, nblok := range []int{1, 2, 5} {
		raw := testutil.LittleEndian().PWDINT(2, 5, 3, nblok, 1).Build()
		dm := mockdm.NewMockDiskManager()
		dm.Put("PWDINT", raw)
		codec := binfile.NewCodec(dm)

		f, err := pwdint.Read(codec, "PWDINT")
		require.NoError(t, err, "nblok=%d", nblok)
		require.NoError(t, codec.WriteBinary(f.Container, "out"))
		out, _ := dm.File("out")
		assert.Equal(t, raw, out.Bytes(), "nblok=%d", nblok)
	}
}

func TestNewContainer(t *testing.T) {
	density, err := mesh.FromSlice([]float64{0.5, 1.5, 2.5, 3.5}, 2, 2, 1)
	require.NoError(t, err)
	c, err := pwdint.NewContainer(density, 1, 2)
	require.NoError(t, err)

	dm := mockdm.NewMockDiskManager()
	codec := binfile.NewCodec(dm)
	require.NoError(t, codec.WriteBinary(c, "PWDINT"))

	f, err := pwdint.Read(codec, "PWDINT")
	require.NoError(t, err)
	got, err := f.Density()
	require.NoError(t, err)
	assert.Equal(t, density.Data(), got.Data())

	flat, err := mesh.FromSlice([]float64{1}, 1)
	require.NoError(t, err)
	_, err = pwdint.NewContainer(flat, 1, 1)
	assert.Error(t, err)
}
