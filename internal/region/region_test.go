package region_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terrapower/armicontrib-dif3d/internal/mesh"
	"github.com/terrapower/armicontrib-dif3d/internal/region"
)

// fiveDigitRow is a label row from a model with more than 10,000 regions.
const fiveDigitRow = "     REGION    10009  A9017710010  A9017810011  A9016A10012  A9016B10013  A9016C10014  A9016D10015  A9016E10016  A9016F10017  A9016G\n"

func assignments(t *testing.T, data []int32, shape ...int) *mesh.Array[int32] {
	t.Helper()
	a, err := mesh.FromSlice(data, shape...)
	require.NoError(t, err)
	return a
}

func TestColumnLabels_FiveDigitRegions(t *testing.T) {
	labels, err := region.ColumnLabels(fiveDigitRow)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"A90177", "A90178", "A9016A", "A9016B", "A9016C",
		"A9016D", "A9016E", "A9016F", "A9016G",
	}, labels)
}

func TestColumnLabels_SeparatedColumns(t *testing.T) {
	labels, err := region.ColumnLabels("     REGION         1  A1001A     2  A1001B     3  RADREF")
	require.NoError(t, err)
	assert.Equal(t, []string{"A1001A", "A1001B", "RADREF"}, labels)
}

func TestColumnLabels_Errors(t *testing.T) {
	_, err := region.ColumnLabels("     REGION")
	assert.Error(t, err)
	_, err = region.ColumnLabels("     REGION         1  A1001A     2")
	assert.Error(t, err)
}

func TestResolve(t *testing.T) {
	mr := assignments(t, []int32{
		1, 2,
		2, 0,
		3, 3,
		1, 2,
	}, 2, 2, 2)
	r, err := region.NewResolver([]string{"FUEL  ", "CLAD", "REFL"}, mr)
	require.NoError(t, err)

	cells, idx, err := r.Resolve("CLAD")
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
	assert.Equal(t, []mesh.Index{{I: 1, J: 0, K: 0}, {I: 0, J: 1, K: 0}, {I: 1, J: 1, K: 1}}, cells)

	cells, idx, err = r.Resolve("FUEL")
	require.NoError(t, err)
	assert.Equal(t, 0, idx)
	assert.Equal(t, []mesh.Index{{I: 0, J: 0, K: 0}, {I: 0, J: 1, K: 1}}, cells)

	_, _, err = r.Resolve("REFL    ")
	require.NoError(t, err)
	assert.Equal(t, []string{"FUEL", "CLAD", "REFL"}, r.Labels())
}

func TestResolve_LookupErrors(t *testing.T) {
	mr := assignments(t, []int32{1, 2, 3, 4}, 2, 2, 1)
	r, err := region.NewResolver([]string{"A", "B", "A", "C"}, mr)
	require.NoError(t, err)

	_, idx, err := r.Resolve("MISSING")
	assert.Equal(t, -1, idx)
	assert.True(t, errors.Is(err, region.ErrLabelNotFound))
	var le *region.LookupError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, "MISSING", le.Label)

	_, _, err = r.Resolve("A")
	assert.True(t, errors.Is(err, region.ErrLabelAmbiguous))
	require.ErrorAs(t, err, &le)
	assert.Equal(t, []int{0, 2}, le.Matches)
}

func TestResolve_Totality(t *testing.T) {
	const n = 7
	im, jm, km := 4, 3, 5
	data := make([]int32, im*jm*km)
	nonZero := 0
	for c := range data {
		data[c] = int32(c % (n + 1))
		if data[c] != 0 {
			nonZero++
		}
	}
	labels := make([]string, n)
	for i := range labels {
		labels[i] = fmt.Sprintf("R%05d", i+1)
	}
	r, err := region.NewResolver(labels, assignments(t, data, im, jm, km))
	require.NoError(t, err)

	seen := make(map[mesh.Index]bool)
	for i, l := range labels {
		cells, idx, err := r.Resolve(l)
		require.NoError(t, err)
		assert.Equal(t, i, idx)
		assert.NotEmpty(t, cells, l)
		for _, c := range cells {
			assert.False(t, seen[c], "cell %v claimed twice", c)
			seen[c] = true
		}
	}
	assert.Len(t, seen, nonZero)
	assert.Empty(t, r.Unassigned())
}

func TestUnassigned_Ordered(t *testing.T) {
	mr := assignments(t, []int32{9, 1, 7, 12, 2, 5, 0, 8}, 4, 2, 1)
	r, err := region.NewResolver([]string{"A", "B"}, mr)
	require.NoError(t, err)

	for range 20 {
		assert.Equal(t, []int32{5, 7, 8, 9, 12}, r.Unassigned())
	}
}

func TestNewResolver_Errors(t *testing.T) {
	_, err := region.NewResolver([]string{"A"}, nil)
	assert.Error(t, err)
	_, err = region.NewResolver([]string{"A"}, assignments(t, []int32{1, 1}, 2))
	assert.Error(t, err)
}

func TestNewResolverFromRows(t *testing.T) {
	mr := assignments(t, make([]int32, 9), 3, 3, 1)
	for i := range mr.Data() {
		mr.Data()[i] = int32(i + 1)
	}
	r, err := region.NewResolverFromRows([]string{fiveDigitRow}, mr)
	require.NoError(t, err)

	cells, idx, err := r.Resolve("A9016F")
	require.NoError(t, err)
	assert.Equal(t, 7, idx)
	assert.Equal(t, []mesh.Index{{I: 1, J: 2, K: 0}}, cells)

	_, err = region.NewResolverFromRows([]string{"short"}, mr)
	assert.Error(t, err)
}

func TestLocatorLabel(t *testing.T) {
	for _, tc := range []struct {
		ring, pos, axial int
		want             string
	}{
		{3, 2, 4, "A3002E"},
		{0, 1, 0, "A0001A"},
		{12, 34, 26, "B2034" + "0"},
		{25, 999, 36, "C5999["},
		{9, 7, 67, "A9007z"},
	} {
		got, err := region.LocatorLabel(tc.ring, tc.pos, tc.axial)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got)
	}
	assert.Len(t, region.AxialChars, 68)

	for _, bad := range [][3]int{{26, 1, 0}, {1, 1000, 0}, {-1, 1, 0}, {1, 1, 68}, {1, 1, -1}} {
		_, err := region.LocatorLabel(bad[0], bad[1], bad[2])
		assert.Error(t, err, "%v", bad)
	}
}

func TestBlockName(t *testing.T) {
	got, err := region.BlockName(42, 3)
	require.NoError(t, err)
	assert.Equal(t, "B0042D", got)
	_, err = region.BlockName(10000, 0)
	assert.Error(t, err)
}
