// Package pkedit describes the PKEDIT file DIF3D writes with the peak power
// density of every mesh cell.
package pkedit

import (
	"fmt"

	"github.com/terrapower/armicontrib-dif3d/internal/binfile"
	"github.com/terrapower/armicontrib-dif3d/internal/mesh"
)

// Name is the file name DIF3D writes.
const Name = "PKEDIT"

// PeakArray is the container array holding peak power density.
const PeakArray = "PEAK"

// Schema is FILEID, the 2D control record, then one record of doubles per
// (plane, J band).
var Schema = binfile.Schema{
	Name: Name,
	Steps: []binfile.Step{
		binfile.Scalars{Record: "FILEID", Fields: []binfile.Field{binfile.StringField("LABEL", 28)}},
		binfile.Scalars{Record: "2D", Fields: []binfile.Field{
			binfile.IntField("NDIM"),
			binfile.IntField("NGROUP"),
			binfile.IntField("IM"),
			binfile.IntField("JM"),
			binfile.IntField("KM"),
			binfile.IntField("NOUTIT"),
			binfile.FloatField("XKEFF"),
			binfile.FloatField("POWIN"),
			binfile.IntField("NJBLOK"),
		}},
		binfile.Planes{
			Record: "3D",
			Array:  PeakArray,
			Dims:   [3]binfile.Extent{binfile.Dim("IM"), binfile.Dim("JM"), binfile.Dim("KM")},
			Blocks: binfile.Dim("NJBLOK"),
			Elem:   binfile.Double,
		},
	},
}

// File gives typed access to a decoded PKEDIT container.
type File struct {
	*binfile.Container
}

// Read decodes the PKEDIT file at path.
func Read(codec *binfile.Codec, path string) (*File, error) {
	c, err := codec.ReadBinary(Schema, path)
	if err != nil {
		return nil, err
	}
	return &File{Container: c}, nil
}

// NewContainer builds a PKEDIT container around peak, whose shape sets IM,
// JM and KM.
func NewContainer(peak *mesh.Array[float64], njblok int) (*binfile.Container, error) {
	if peak.Rank() != 3 {
		return nil, fmt.Errorf("%s peak array must be 3-D, got shape %v", Name, peak.Shape())
	}
	c := binfile.NewContainer(Schema)
	md := c.Metadata
	md.SetString("LABEL", fmt.Sprintf("%-28s", Name))
	md.SetInt("NDIM", 3)
	md.SetInt("NGROUP", 1)
	md.SetInt("IM", peak.Dim(0))
	md.SetInt("JM", peak.Dim(1))
	md.SetInt("KM", peak.Dim(2))
	md.SetInt("NOUTIT", 0)
	md.SetFloat("XKEFF", 0)
	md.SetFloat("POWIN", 0)
	md.SetInt("NJBLOK", njblok)
	c.Doubles[PeakArray] = peak
	return c, nil
}

// Peak returns the peak power density array, shape (IM, JM, KM).
func (f *File) Peak() (*mesh.Array[float64], error) { return f.Double(PeakArray) }

// Keff returns XKEFF as written by DIF3D.
func (f *File) Keff() (float64, error) { return f.Metadata.Number("XKEFF") }
