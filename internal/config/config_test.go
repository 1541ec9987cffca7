package config_test

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terrapower/armicontrib-dif3d/internal/config"
	"github.com/terrapower/armicontrib-dif3d/internal/formats/dif3d"
)

func write(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "run.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	c := config.DefaultConfig()
	require.NoError(t, c.Validate())

	l, err := c.Layout()
	require.NoError(t, err)
	assert.Equal(t, binary.LittleEndian, l.Order)
	assert.Equal(t, 4, l.MarkerSize)

	st, err := c.SolutionType()
	require.NoError(t, err)
	assert.Equal(t, dif3d.Real, st)
	assert.Equal(t, filepath.Join(".", "dif3d.out"), c.OutputPath())
	assert.Equal(t, 1e-5, c.KeffTolerance)
}

func TestFillDefaults(t *testing.T) {
	c := &config.Config{Label: "case1", Files: config.Files{RTFLUX: "RTFLUX.bin"}}
	c.FillDefaults()
	assert.Equal(t, "case1", c.Label)
	assert.Equal(t, "RTFLUX.bin", c.Files.RTFLUX)
	assert.Equal(t, "ATFLUX", c.Files.ATFLUX)
	assert.Equal(t, "little", c.ByteOrder)
	assert.Equal(t, 4, c.MarkerSize)
}

func TestLoad(t *testing.T) {
	path := write(t, `
run_dir = "case"
label = "c1"
solution = "real_and_adjoint"
byte_order = "big"
record_marker_size = 8
keff_tolerance = 1e-4

[files]
pkedit = "PKEDIT.001"
`)
	c, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(filepath.Dir(path), "case"), c.RunDir)
	assert.Equal(t, filepath.Join(c.RunDir, "c1.out"), c.OutputPath())
	assert.Equal(t, filepath.Join(c.RunDir, "PKEDIT.001"), c.Path(c.Files.PKEDIT))
	assert.Equal(t, "DIF3D", c.Files.DIF3D)
	assert.Equal(t, 1e-4, c.KeffTolerance)

	st, err := c.SolutionType()
	require.NoError(t, err)
	assert.True(t, st.HasReal())
	assert.True(t, st.HasAdjoint())

	l, err := c.Layout()
	require.NoError(t, err)
	assert.Equal(t, binary.BigEndian, l.Order)
	assert.Equal(t, 8, l.MarkerSize)

	other := c.WithRunDir("/tmp/other")
	assert.Equal(t, "/tmp/other", other.RunDir)
	assert.NotEqual(t, other.RunDir, c.RunDir)
}

func TestLoad_Errors(t *testing.T) {
	for name, body := range map[string]string{
		"bad toml":       "label = ",
		"unknown key":    "lable = \"x\"\n",
		"bad solution":   "solution = \"forward\"\n",
		"bad order":      "byte_order = \"middle\"\n",
		"bad marker":     "record_marker_size = 2\n",
		"neg tolerance":  "keff_tolerance = -1.0\n",
		"wrong key type": "record_marker_size = \"four\"\n",
	} {
		_, err := config.Load(write(t, body))
		assert.Error(t, err, name)
	}
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
