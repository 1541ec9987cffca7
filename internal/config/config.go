// Package config provides the run configuration for reading a DIF3D case
// back into a model: where the files live, how they are encoded and which
// solutions were requested.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/terrapower/armicontrib-dif3d/internal/formats/dif3d"
	"github.com/terrapower/armicontrib-dif3d/internal/record"
)

const (
	defaultLabel         = "dif3d"
	defaultSolution      = "real"
	defaultByteOrder     = "little"
	defaultMarkerSize    = record.DefaultMarkerSize
	defaultKeffTolerance = 1e-5
)

// Files names the interface files inside the run directory.
type Files struct {
	DIF3D  string `toml:"dif3d"`
	PKEDIT string `toml:"pkedit"`
	RTFLUX string `toml:"rtflux"`
	ATFLUX string `toml:"atflux"`
	PWDINT string `toml:"pwdint"`
	GEODST string `toml:"geodst"`
	LABELS string `toml:"labels"`
}

// Config holds the settings of one read-and-apply pass.
type Config struct {
	RunDir string `toml:"run_dir"`
	// Label is the case name; the printed output is <Label>.out.
	Label         string  `toml:"label"`
	Solution      string  `toml:"solution"`
	ByteOrder     string  `toml:"byte_order"`
	MarkerSize    int     `toml:"record_marker_size"`
	KeffTolerance float64 `toml:"keff_tolerance"`
	Files         Files   `toml:"files"`
}

// DefaultConfig returns a Config populated with default values.
func DefaultConfig() *Config {
	return &Config{
		RunDir:        ".",
		Label:         defaultLabel,
		Solution:      defaultSolution,
		ByteOrder:     defaultByteOrder,
		MarkerSize:    defaultMarkerSize,
		KeffTolerance: defaultKeffTolerance,
		Files: Files{
			DIF3D:  "DIF3D",
			PKEDIT: "PKEDIT",
			RTFLUX: "RTFLUX",
			ATFLUX: "ATFLUX",
			PWDINT: "PWDINT",
			GEODST: "GEODST",
			LABELS: "LABELS",
		},
	}
}

// FillDefaults sets any zero-value fields in the Config to their default values.
func (c *Config) FillDefaults() {
	def := DefaultConfig()
	fill := func(v *string, d string) {
		if strings.TrimSpace(*v) == "" {
			*v = d
		}
	}
	fill(&c.RunDir, def.RunDir)
	fill(&c.Label, def.Label)
	fill(&c.Solution, def.Solution)
	fill(&c.ByteOrder, def.ByteOrder)
	if c.MarkerSize == 0 {
		c.MarkerSize = def.MarkerSize
	}
	if c.KeffTolerance == 0 {
		c.KeffTolerance = def.KeffTolerance
	}
	fill(&c.Files.DIF3D, def.Files.DIF3D)
	fill(&c.Files.PKEDIT, def.Files.PKEDIT)
	fill(&c.Files.RTFLUX, def.Files.RTFLUX)
	fill(&c.Files.ATFLUX, def.Files.ATFLUX)
	fill(&c.Files.PWDINT, def.Files.PWDINT)
	fill(&c.Files.GEODST, def.Files.GEODST)
	fill(&c.Files.LABELS, def.Files.LABELS)
}

// Load reads a TOML run configuration, fills defaults and validates it.
// A relative run_dir is taken relative to the configuration file.
func Load(path string) (*Config, error) {
	var c Config
	meta, err := toml.DecodeFile(path, &c)
	if err != nil {
		return nil, fmt.Errorf("load run config %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("load run config %s: unknown keys %v", path, undecoded)
	}
	if meta.IsDefined("run_dir") && !filepath.IsAbs(c.RunDir) {
		c.RunDir = filepath.Join(filepath.Dir(path), c.RunDir)
	}
	c.FillDefaults()
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("load run config %s: %w", path, err)
	}
	return &c, nil
}

// Validate checks the settings that have a closed set of values.
func (c *Config) Validate() error {
	if _, err := c.SolutionType(); err != nil {
		return err
	}
	if _, err := c.Layout(); err != nil {
		return err
	}
	if c.KeffTolerance < 0 {
		return fmt.Errorf("keff_tolerance must not be negative, got %g", c.KeffTolerance)
	}
	return nil
}

// SolutionType returns the requested solutions.
func (c *Config) SolutionType() (dif3d.SolutionType, error) {
	return dif3d.ParseSolutionType(c.Solution)
}

// Layout returns the record layout the interface files are written with.
func (c *Config) Layout() (record.Layout, error) {
	order, err := record.ParseByteOrder(c.ByteOrder)
	if err != nil {
		return record.Layout{}, err
	}
	l := record.Layout{Order: order, MarkerSize: c.MarkerSize}
	if err := l.Validate(); err != nil {
		return record.Layout{}, err
	}
	return l, nil
}

// Path returns name inside the run directory.
func (c *Config) Path(name string) string {
	return filepath.Join(c.RunDir, name)
}

// OutputPath returns the printed output of the case.
func (c *Config) OutputPath() string {
	return c.Path(c.Label + ".out")
}

// WithRunDir returns a copy of c reading from dir.
func (c *Config) WithRunDir(dir string) *Config {
	cp := *c
	cp.RunDir = dir
	return &cp
}
