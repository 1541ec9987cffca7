// Package pwdint describes the CCCC PWDINT file: power density by fine mesh
// interval.
package pwdint

import (
	"fmt"

	"github.com/terrapower/armicontrib-dif3d/internal/binfile"
	"github.com/terrapower/armicontrib-dif3d/internal/formats/cccc"
	"github.com/terrapower/armicontrib-dif3d/internal/mesh"
)

// Name is the file name.
const Name = "PWDINT"

// DensityArray is the container array holding power density, shape (I, J, K).
const DensityArray = "PWR"

// Schema is FILEID, the 1D specifications, then one single-precision record
// per (plane, J band).
var Schema = binfile.Schema{
	Name: Name,
	Steps: []binfile.Step{
		cccc.FileID(),
		binfile.Scalars{Record: "1D", Fields: []binfile.Field{
			binfile.FloatField("TIME"),
			binfile.FloatField("POWER"),
			binfile.FloatField("VOL"),
			binfile.FloatField("EFFK"),
			binfile.IntField("ITPS"),
			binfile.IntField("NDIM"),
			binfile.IntField("NINTI"),
			binfile.IntField("NINTJ"),
			binfile.IntField("NINTK"),
			binfile.IntField("NBLOK"),
		}},
		binfile.Planes{
			Record: "2D",
			Array:  DensityArray,
			Dims:   cccc.MeshDims,
			Blocks: binfile.Dim("NBLOK"),
			Elem:   binfile.Float,
		},
	},
}

// File gives typed access to a decoded PWDINT container.
type File struct {
	*binfile.Container
}

// Read decodes the PWDINT file at path.
func Read(codec *binfile.Codec, path string) (*File, error) {
	c, err := codec.ReadBinary(Schema, path)
	if err != nil {
		return nil, err
	}
	return &File{Container: c}, nil
}

// NewContainer builds a PWDINT container around a 3-D density array.
func NewContainer(density *mesh.Array[float64], effk float32, nblok int) (*binfile.Container, error) {
	if density.Rank() != 3 {
		return nil, fmt.Errorf("%s density array must be 3-D, got shape %v", Name, density.Shape())
	}
	c := binfile.NewContainer(Schema)
	cccc.SetFileID(c, Name, 1)
	md := c.Metadata
	md.SetFloat("TIME", 0)
	md.SetFloat("POWER", 0)
	md.SetFloat("VOL", 0)
	md.SetFloat("EFFK", effk)
	md.SetInt("ITPS", 0)
	md.SetInt("NDIM", 3)
	md.SetInt("NINTI", density.Dim(0))
	md.SetInt("NINTJ", density.Dim(1))
	md.SetInt("NINTK", density.Dim(2))
	md.SetInt("NBLOK", nblok)
	c.Doubles[DensityArray] = density
	return c, nil
}

// Density returns the power density array.
func (f *File) Density() (*mesh.Array[float64], error) { return f.Double(DensityArray) }

// Keff returns the multiplication factor stored with the power.
func (f *File) Keff() (float64, error) { return f.Metadata.Number("EFFK") }
