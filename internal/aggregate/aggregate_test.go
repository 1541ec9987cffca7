package aggregate_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terrapower/armicontrib-dif3d/internal/aggregate"
	"github.com/terrapower/armicontrib-dif3d/internal/mesh"
)

// field holds value 1..8 at the cells of a 2x2x2 mesh, i fastest.
func field(t *testing.T) *mesh.Array[float64] {
	t.Helper()
	a, err := mesh.FromSlice([]float64{1, 2, 3, 4, 5, 6, 7, 8}, 2, 2, 2)
	require.NoError(t, err)
	return a
}

var cells = []mesh.Index{{I: 0, J: 0, K: 0}, {I: 1, J: 1, K: 0}, {I: 1, J: 0, K: 1}}

func TestScalarRules(t *testing.T) {
	f := field(t)

	mean, err := aggregate.Mean(f, cells)
	require.NoError(t, err)
	assert.InDelta(t, (1.0+4+6)/3, mean, 1e-12)

	peak, err := aggregate.Max(f, cells)
	require.NoError(t, err)
	assert.Equal(t, 6.0, peak)

	sum, err := aggregate.Sum(f, cells)
	require.NoError(t, err)
	assert.Equal(t, 11.0, sum)

	power, err := aggregate.VolumeWeighted(f, cells, 3)
	require.NoError(t, err)
	assert.InDelta(t, 11.0, power, 1e-12)

	for rule, want := range map[aggregate.Rule]float64{aggregate.MaxRule: 6, aggregate.SumRule: 11} {
		got, err := aggregate.Reduce(f, cells, rule)
		require.NoError(t, err, rule.String())
		assert.Equal(t, want, got, rule.String())
	}
	_, err = aggregate.Reduce(f, cells, aggregate.Rule(9))
	assert.Error(t, err)
}

func TestRules_IntegerField(t *testing.T) {
	a, err := mesh.FromSlice([]int32{2, 4}, 2, 1, 1)
	require.NoError(t, err)
	m, err := aggregate.Mean(a, []mesh.Index{{I: 0}, {I: 1}})
	require.NoError(t, err)
	assert.Equal(t, 3.0, m)
}

func TestRules_EmptyAndOutOfRange(t *testing.T) {
	f := field(t)
	_, err := aggregate.Mean(f, nil)
	assert.True(t, errors.Is(err, aggregate.ErrNoCells))
	_, err = aggregate.Max(f, nil)
	assert.True(t, errors.Is(err, aggregate.ErrNoCells))
	_, err = aggregate.Sum(f, []mesh.Index{{I: 5}})
	assert.Error(t, err)
}

func TestGroupMeans(t *testing.T) {
	// Two groups on a 2x1x1 mesh; group g holds 10^g times the cell value.
	a, err := mesh.FromSlice([]float64{1, 3, 10, 30}, 2, 1, 1, 2)
	require.NoError(t, err)

	g, err := aggregate.GroupMeans(a, []mesh.Index{{I: 0}, {I: 1}})
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 20}, g)
	assert.Equal(t, 22.0, aggregate.Total(g))

	g, err = aggregate.GroupMeans(a, []mesh.Index{{I: 1}})
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 30}, g)

	_, err = aggregate.GroupMeans(field(t), cells)
	assert.Error(t, err)
	_, err = aggregate.GroupMeans(a, nil)
	assert.True(t, errors.Is(err, aggregate.ErrNoCells))
}

func TestCheckKeff(t *testing.T) {
	_, warn := aggregate.CheckKeff("RTFLUX", 1.0083017198449564, 1.00830172, aggregate.DefaultKeffTolerance)
	assert.False(t, warn)

	w, warn := aggregate.CheckKeff("ATFLUX", 1.0, 1.001, aggregate.DefaultKeffTolerance)
	require.True(t, warn)
	assert.Equal(t, "ATFLUX", w.Source)
	assert.Contains(t, w.String(), "ATFLUX: keff 1.001")

	_, warn = aggregate.CheckKeff("PWDINT", 0, 0, aggregate.DefaultKeffTolerance)
	assert.False(t, warn)
	_, warn = aggregate.CheckKeff("PWDINT", 0, 1, aggregate.DefaultKeffTolerance)
	assert.True(t, warn)
}
