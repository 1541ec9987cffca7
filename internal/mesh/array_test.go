package mesh_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terrapower/armicontrib-dif3d/internal/mesh"
)

func TestArray_ColumnMajor(t *testing.T) {
	a, err := mesh.New[float64](2, 3, 2)
	require.NoError(t, err)
	require.Equal(t, 12, a.Len())

	require.NoError(t, a.Set(7, 1, 2, 1))
	assert.Equal(t, 7.0, a.Data()[1+2*(2+3*1)])

	v, err := a.At(1, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, 7.0, v)

	_, err = a.At(2, 0, 0)
	assert.Error(t, err)
	_, err = a.At(0, 0)
	assert.Error(t, err)
}

func TestArray_InvalidShape(t *testing.T) {
	_, err := mesh.New[int32](3, 0, 2)
	assert.Error(t, err)
	_, err = mesh.New[int32]()
	assert.Error(t, err)
	_, err = mesh.FromSlice([]float32{1, 2, 3}, 2, 2)
	assert.Error(t, err)
}

func TestArray_Slab(t *testing.T) {
	data := make([]float64, 3*4*2*2)
	for i := range data {
		data[i] = float64(i)
	}
	a, err := mesh.FromSlice(data, 3, 4, 2, 2)
	require.NoError(t, err)

	slab := a.Slab(1, 2, 1, 1)
	require.Len(t, slab, 6)
	want := 3 * (1 + 4*(1+2*1))
	assert.Equal(t, float64(want), slab[0])

	slab[0] = -1
	v, _ := a.At(0, 1, 1, 1)
	assert.Equal(t, -1.0, v, "slab aliases the array")

	assert.Empty(t, a.Slab(3, 2, 0, 0))
}

func TestArray_GatherAndCells(t *testing.T) {
	regions, err := mesh.FromSlice([]int32{1, 2, 2, 0}, 2, 2, 1)
	require.NoError(t, err)

	cells := regions.Cells(func(v int32) bool { return v == 2 })
	assert.Equal(t, []mesh.Index{{I: 1, J: 0, K: 0}, {I: 0, J: 1, K: 0}}, cells)

	flux, err := mesh.FromSlice([]float64{1, 2, 3, 4, 10, 20, 30, 40}, 2, 2, 1, 2)
	require.NoError(t, err)
	vals, err := flux.Gather(cells, 1)
	require.NoError(t, err)
	assert.Equal(t, []float64{20, 30}, vals)

	_, err = regions.Gather(cells, 1)
	assert.Error(t, err)
	assert.Equal(t, 1, regions.Dim(3))
}
