package dif3d_test

import (
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terrapower/armicontrib-dif3d"
	"github.com/terrapower/armicontrib-dif3d/internal/mesh"
	"github.com/terrapower/armicontrib-dif3d/internal/record"
	"github.com/terrapower/armicontrib-dif3d/internal/testutil"
)

func TestSchemaFor(t *testing.T) {
	for _, name := range dif3d.Formats() {
		s, err := dif3d.SchemaFor(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, s.Name)
		assert.NoError(t, s.Validate(), name)
	}
	s, err := dif3d.SchemaFor(" pkedit ")
	require.NoError(t, err)
	assert.Equal(t, "PKEDIT", s.Name)

	_, err = dif3d.SchemaFor("ISOTXS")
	assert.Error(t, err)
	assert.Len(t, dif3d.Formats(), 7)
}

func TestReadWriteBinary_BigEndianOnDisk(t *testing.T) {
	dir := t.TempDir()
	raw := testutil.NewBuilder(binary.BigEndian, 8).PKEDIT(3, 4, 2, 2, 1.01).Build()
	in := filepath.Join(dir, "PKEDIT")
	require.NoError(t, os.WriteFile(in, raw, 0644))

	layout := dif3d.WithLayout(record.Layout{Order: binary.BigEndian, MarkerSize: 8})
	c, err := dif3d.ReadBinary(dif3d.PKEDITSchema, in, layout)
	require.NoError(t, err)

	out := filepath.Join(dir, "PKEDIT.copy")
	require.NoError(t, dif3d.WriteBinary(c, out, layout))
	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, raw, got)

	_, err = dif3d.ReadBinary(dif3d.PKEDITSchema, filepath.Join(dir, "missing"))
	assert.True(t, errors.Is(err, record.ErrNotFound))
	_, err = dif3d.ReadBinary(dif3d.PKEDITSchema, in)
	assert.True(t, errors.Is(err, record.ErrFormat))
}

func TestResolveAndAggregate(t *testing.T) {
	mr, err := mesh.FromSlice([]int32{1, 2, 2, 1}, 2, 2, 1)
	require.NoError(t, err)
	r, err := dif3d.NewResolver([]string{"A", "B"}, mr)
	require.NoError(t, err)
	cells, idx, err := r.Resolve("B")
	require.NoError(t, err)
	assert.Equal(t, 1, idx)

	field, err := mesh.FromSlice([]float64{1, 2, 4, 8}, 2, 2, 1)
	require.NoError(t, err)
	for rule, want := range map[dif3d.Rule]float64{dif3d.Mean: 3, dif3d.Max: 4, dif3d.Sum: 6} {
		got, err := dif3d.Aggregate(field, cells, rule)
		require.NoError(t, err)
		assert.Equal(t, want, got, rule.String())
	}
}

func TestNewReader_OnDisk(t *testing.T) {
	dir := t.TempDir()
	c := testutil.DefaultCase()
	for name, data := range c.Files() {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0644))
	}
	cfg := dif3d.DefaultConfig()
	cfg.RunDir = dir
	cfg.Label = c.Label

	r, err := dif3d.NewReader(cfg, nil)
	require.NoError(t, err)
	res, err := r.Apply([]dif3d.Object{{ID: "b1", Label: "A1001A"}})
	require.NoError(t, err)
	power, ok := res.Scalar("b1", "power")
	require.True(t, ok)
	assert.InDelta(t, 7.5, power, 1e-9)

	_, err = dif3d.NewReader(dif3d.DefaultConfig().WithRunDir(t.TempDir()), nil)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
