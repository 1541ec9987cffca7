package metadata_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/terrapower/armicontrib-dif3d/internal/metadata"
)

func TestMap_Order(t *testing.T) {
	m := metadata.New()
	m.SetString("HNAME", "DIF3D   ")
	m.SetInt("IPROBT", 0)
	m.SetDouble("EFFK", 1.0083017198449564)
	m.SetFloat("XKEFF", 1.25)
	m.SetInt("IPROBT", 1)

	want := []metadata.Entry{
		{Name: "HNAME", Value: "DIF3D   "},
		{Name: "IPROBT", Value: 1},
		{Name: "EFFK", Value: 1.0083017198449564},
		{Name: "XKEFF", Value: float32(1.25)},
	}
	if diff := cmp.Diff(want, m.Entries()); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{"HNAME", "IPROBT", "EFFK", "XKEFF"}, m.Keys())
	assert.Equal(t, 4, m.Len())
}

func TestMap_TypedGetters(t *testing.T) {
	m := metadata.New()
	m.SetInt("NGROUP", 33)
	m.SetFloat("POWIN", 2.5)
	m.SetDouble("SIGBAR", 0.750317601546759)
	m.SetString("HSETID", "ABC")

	n, err := m.Int("NGROUP")
	require.NoError(t, err)
	assert.Equal(t, 33, n)

	_, err = m.Double("NGROUP")
	assert.Error(t, err)
	_, err = m.Int("MISSING")
	assert.Error(t, err)

	p, err := m.Float("POWIN")
	require.NoError(t, err)
	assert.Equal(t, float32(2.5), p)

	x, err := m.Number("POWIN")
	require.NoError(t, err)
	assert.Equal(t, 2.5, x)
	x, err = m.Number("NGROUP")
	require.NoError(t, err)
	assert.Equal(t, 33.0, x)
	_, err = m.Number("HSETID")
	assert.Error(t, err)

	assert.Equal(t, 7, m.IntOr("NBLOK", 7))
	assert.Equal(t, 33, m.IntOr("NGROUP", 7))

	require.NoError(t, m.Set("NDIM", int32(3)))
	assert.Equal(t, 3, m.IntOr("NDIM", 0))
	assert.Error(t, m.Set("BAD", []int{1}))
}

func TestMap_Clone(t *testing.T) {
	m := metadata.New()
	m.SetInt("IM", 4)
	c := m.Clone()
	c.SetInt("IM", 5)
	c.SetInt("JM", 6)
	assert.Equal(t, 4, m.IntOr("IM", 0))
	assert.False(t, m.Has("JM"))
	assert.True(t, c.Has("JM"))
}

func TestMap_MarshalYAML(t *testing.T) {
	m := metadata.New()
	m.SetString("HNAME", "PKEDIT  ")
	m.SetInt("NJBLOK", 3)
	m.SetDouble("EFFK", 1.5)

	out, err := yaml.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, "HNAME: PKEDIT\nNJBLOK: 3\nEFFK: 1.5\n", string(out))
}
