// Package dif3d reads and writes the binary interface files of the DIF3D
// neutronics solver and maps its mesh results onto the regions of a host
// reactor model.
//
// Interface files are sequences of Fortran unformatted records. Each format
// is described by a Schema, and the same schema drives reading and writing,
// so a file that is read and written back is reproduced byte for byte.
//
// Example usage:
//
//	c, err := dif3d.ReadBinary(dif3d.DIF3DSchema, "/path/to/run/DIF3D")
//	if err != nil {
//		log.Fatal(err)
//	}
//	keff, _ := c.Metadata.Double("EFFK")
//
//	cfg, err := dif3d.LoadConfig("/path/to/run.toml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	r, err := dif3d.NewReader(cfg, logger)
//	if err != nil {
//		log.Fatal(err)
//	}
//	results, err := r.Apply([]dif3d.Object{{ID: "blk-1", Label: "A3002E"}})
package dif3d

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/terrapower/armicontrib-dif3d/internal/aggregate"
	"github.com/terrapower/armicontrib-dif3d/internal/binfile"
	"github.com/terrapower/armicontrib-dif3d/internal/config"
	d3 "github.com/terrapower/armicontrib-dif3d/internal/formats/dif3d"
	"github.com/terrapower/armicontrib-dif3d/internal/formats/geodst"
	"github.com/terrapower/armicontrib-dif3d/internal/formats/labels"
	"github.com/terrapower/armicontrib-dif3d/internal/formats/pkedit"
	"github.com/terrapower/armicontrib-dif3d/internal/formats/pwdint"
	"github.com/terrapower/armicontrib-dif3d/internal/formats/rtflux"
	"github.com/terrapower/armicontrib-dif3d/internal/mesh"
	"github.com/terrapower/armicontrib-dif3d/internal/pipeline"
	"github.com/terrapower/armicontrib-dif3d/internal/region"
)

// Config is an alias for config.Config, re-exported for user convenience.
type Config = config.Config

// DefaultConfig returns a Config populated with default values.
var DefaultConfig = config.DefaultConfig

// LoadConfig reads a TOML run configuration.
var LoadConfig = config.Load

type (
	// Container is the decoded content of one interface file.
	Container = binfile.Container
	// Schema is the record layout of one interface file format.
	Schema = binfile.Schema
	// Option configures file access.
	Option = binfile.Option
	// Object is a host domain object located by its region label.
	Object = pipeline.Object
	// Results maps object IDs to computed fields.
	Results = pipeline.Results
	// Rule is a scalar reduction over mesh cells.
	Rule = aggregate.Rule
)

// Reductions accepted by Aggregate.
const (
	Mean = aggregate.MeanRule
	Max  = aggregate.MaxRule
	Sum  = aggregate.SumRule
)

var (
	// WithLayout sets the byte order and record marker size.
	WithLayout = binfile.WithLayout
	// WithLogger sets the logger for per-file debug output.
	WithLogger = binfile.WithLogger
)

// Schemas of the supported interface files.
var (
	DIF3DSchema  = d3.Schema
	PKEDITSchema = pkedit.Schema
	RTFLUXSchema = rtflux.RealSchema
	ATFLUXSchema = rtflux.AdjointSchema
	PWDINTSchema = pwdint.Schema
	GEODSTSchema = geodst.Schema
	LABELSSchema = labels.Schema
)

// NewDIF3DContainer returns a DIF3D container with every word zero, ready
// for controls to be set before writing.
var NewDIF3DContainer = d3.NewContainer

var schemas = map[string]Schema{
	d3.Name:       DIF3DSchema,
	pkedit.Name:   PKEDITSchema,
	rtflux.RTFLUX: RTFLUXSchema,
	rtflux.ATFLUX: ATFLUXSchema,
	pwdint.Name:   PWDINTSchema,
	geodst.Name:   GEODSTSchema,
	labels.Name:   LABELSSchema,
}

// SchemaFor returns the schema of a format by file name, e.g. "PKEDIT".
func SchemaFor(format string) (Schema, error) {
	s, ok := schemas[strings.ToUpper(strings.TrimSpace(format))]
	if !ok {
		return Schema{}, fmt.Errorf("unknown interface file format %q (known: %s)", format, strings.Join(Formats(), ", "))
	}
	return s, nil
}

// Formats lists the supported format names.
func Formats() []string {
	out := make([]string, 0, len(schemas))
	for name := range schemas {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// ReadBinary decodes the file at path with schema.
//
// A missing file yields an error matching record.ErrNotFound; a file that
// does not follow the schema yields a *record.FormatError. Records after
// those the schema reads are counted in Container.Trailing.
func ReadBinary(schema Schema, path string, opts ...Option) (*Container, error) {
	return binfile.NewCodec(nil, opts...).ReadBinary(schema, path)
}

// WriteBinary encodes c to path with the schema it was read or built with.
// The file is removed again if encoding fails.
func WriteBinary(c *Container, path string, opts ...Option) error {
	return binfile.NewCodec(nil, opts...).WriteBinary(c, path)
}

// NewResolver indexes region names against a region-assignment array, where
// region number n is names[n-1].
func NewResolver(names []string, assignments *mesh.Array[int32]) (*region.Resolver, error) {
	return region.NewResolver(names, assignments)
}

// Aggregate reduces a 3-D field over cells.
func Aggregate(field *mesh.Array[float64], cells []mesh.Index, rule Rule) (float64, error) {
	return aggregate.Reduce(field, cells, rule)
}

// NewReader checks a finished run and prepares it for Apply.
func NewReader(cfg *Config, logger *zap.Logger) (*pipeline.Reader, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return pipeline.NewReader(cfg, nil, logger)
}
