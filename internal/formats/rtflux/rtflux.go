// Package rtflux describes the CCCC RTFLUX (regular total flux) and ATFLUX
// (adjoint total flux) files. Both share one layout; ATFLUX stores its
// groups from highest to lowest.
package rtflux

import (
	"fmt"

	"github.com/terrapower/armicontrib-dif3d/internal/binfile"
	"github.com/terrapower/armicontrib-dif3d/internal/formats/cccc"
	"github.com/terrapower/armicontrib-dif3d/internal/mesh"
)

const (
	// RTFLUX is the real flux file name
	RTFLUX = "RTFLUX"
	// ATFLUX is the adjoint flux file name
	ATFLUX = "ATFLUX"
	// FluxArray is the container array holding group fluxes, shape (I, J, K, G)
	FluxArray = "FLUX"
)

func schema(name string, reverse bool) binfile.Schema {
	return binfile.Schema{
		Name: name,
		Steps: []binfile.Step{
			cccc.FileID(),
			binfile.Scalars{Record: "1D", Fields: []binfile.Field{
				binfile.IntField("NDIM"),
				binfile.IntField("NGROUP"),
				binfile.IntField("NINTI"),
				binfile.IntField("NINTJ"),
				binfile.IntField("NINTK"),
				binfile.IntField("ITER"),
				binfile.FloatField("EFFK"),
				binfile.FloatField("POWER"),
				binfile.IntField("NBLOK"),
			}},
			binfile.Planes{
				Record:        "3D",
				Array:         FluxArray,
				Dims:          cccc.MeshDims,
				Blocks:        binfile.Dim("NBLOK"),
				Groups:        binfile.Dim("NGROUP"),
				Elem:          binfile.Double,
				ReverseGroups: reverse,
			},
		},
	}
}

// RealSchema is the RTFLUX layout.
var RealSchema = schema(RTFLUX, false)

// AdjointSchema is the ATFLUX layout.
var AdjointSchema = schema(ATFLUX, true)

// File gives typed access to a decoded flux file.
type File struct {
	*binfile.Container
}

// ReadReal decodes an RTFLUX file.
func ReadReal(codec *binfile.Codec, path string) (*File, error) {
	return read(codec, RealSchema, path)
}

// ReadAdjoint decodes an ATFLUX file.
func ReadAdjoint(codec *binfile.Codec, path string) (*File, error) {
	return read(codec, AdjointSchema, path)
}

func read(codec *binfile.Codec, s binfile.Schema, path string) (*File, error) {
	c, err := codec.ReadBinary(s, path)
	if err != nil {
		return nil, err
	}
	return &File{Container: c}, nil
}

// NewContainer builds a flux container around a 4-D flux array in energy
// group order.
func NewContainer(s binfile.Schema, flux *mesh.Array[float64], effk float32, nblok int) (*binfile.Container, error) {
	if flux.Rank() != 4 {
		return nil, fmt.Errorf("%s flux array must be 4-D, got shape %v", s.Name, flux.Shape())
	}
	c := binfile.NewContainer(s)
	cccc.SetFileID(c, s.Name, 1)
	md := c.Metadata
	md.SetInt("NDIM", 3)
	md.SetInt("NGROUP", flux.Dim(3))
	md.SetInt("NINTI", flux.Dim(0))
	md.SetInt("NINTJ", flux.Dim(1))
	md.SetInt("NINTK", flux.Dim(2))
	md.SetInt("ITER", 0)
	md.SetFloat("EFFK", effk)
	md.SetFloat("POWER", 0)
	md.SetInt("NBLOK", nblok)
	c.Doubles[FluxArray] = flux
	return c, nil
}

// Flux returns the group flux array, shape (I, J, K, G), groups in energy order.
func (f *File) Flux() (*mesh.Array[float64], error) { return f.Double(FluxArray) }

// Groups returns NGROUP.
func (f *File) Groups() (int, error) { return f.Metadata.Int("NGROUP") }

// Keff returns the multiplication factor stored with the flux.
func (f *File) Keff() (float64, error) { return f.Metadata.Number("EFFK") }
