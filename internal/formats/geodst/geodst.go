// Package geodst describes the CCCC GEODST file: mesh boundaries, region
// volumes and the assignment of regions to mesh intervals.
package geodst

import (
	"fmt"

	"github.com/terrapower/armicontrib-dif3d/internal/binfile"
	"github.com/terrapower/armicontrib-dif3d/internal/formats/cccc"
	"github.com/terrapower/armicontrib-dif3d/internal/mesh"
)

// Name is the file name.
const Name = "GEODST"

const (
	// CoarseRegions holds region numbers by coarse mesh interval (NRASS=0)
	CoarseRegions = "MR"
	// FineRegions holds region numbers by fine mesh interval (NRASS=1)
	FineRegions = "MRFINE"
	// Volumes holds region volumes, indexed by region number - 1
	Volumes = "VOLR"
)

// SpecKeys lists the 1D record in file order.
var SpecKeys = []string{
	"IGOM", "NZONE", "NREG", "NZCL", "NCINTI", "NCINTJ", "NCINTK",
	"NINTI", "NINTJ", "NINTK", "IMB1", "IMB2", "JMB1", "JMB2", "KMB1", "KMB2",
	"NBS", "NBCS", "NIBCS", "NZWBB", "NTRIAG", "NRASS", "NTHPT",
	"NGOP1", "NGOP2", "NGOP3", "NGOP4",
}

var (
	oneD   = binfile.IntBetween("IGOM", 1, 3)
	twoD   = binfile.IntBetween("IGOM", 6, 13)
	threeD = binfile.IntAtLeast("IGOM", 14)
)

func specFields() []binfile.Field {
	out := make([]binfile.Field, len(SpecKeys))
	for i, k := range SpecKeys {
		out[i] = binfile.IntField(k)
	}
	return out
}

func boundaries(axis, count string) binfile.Vector {
	return binfile.Vector{Name: axis + "MESH", Kind: binfile.Double, Len: binfile.DimPlus(count, 1)}
}

func intervals(axis, count string) binfile.Vector {
	return binfile.Vector{Name: axis + "FINTS", Kind: binfile.Int, Len: binfile.Dim(count)}
}

func regionPlanes(record, array string, dims [3]binfile.Extent, when binfile.Predicate) binfile.Planes {
	return binfile.Planes{Record: record, Array: array, Dims: dims, Elem: binfile.Int, When: when}
}

// Schema covers the 1-D, 2-D and 3-D mesh layouts selected by IGOM and the
// coarse or fine region assignment selected by NRASS.
var Schema = binfile.Schema{
	Name: Name,
	Steps: []binfile.Step{
		cccc.FileID(),
		binfile.Scalars{Record: "1D", Fields: specFields()},
		binfile.Vectors{Record: "2D", When: oneD, Items: []binfile.Vector{
			boundaries("X", "NCINTI"), intervals("I", "NCINTI"),
		}},
		binfile.Vectors{Record: "3D", When: twoD, Items: []binfile.Vector{
			boundaries("X", "NCINTI"), boundaries("Y", "NCINTJ"),
			intervals("I", "NCINTI"), intervals("J", "NCINTJ"),
		}},
		binfile.Vectors{Record: "4D", When: threeD, Items: []binfile.Vector{
			boundaries("X", "NCINTI"), boundaries("Y", "NCINTJ"), boundaries("Z", "NCINTK"),
			intervals("I", "NCINTI"), intervals("J", "NCINTJ"), intervals("K", "NCINTK"),
		}},
		binfile.Vectors{Record: "5D", Items: []binfile.Vector{
			{Name: Volumes, Kind: binfile.Double, Len: binfile.Dim("NREG")},
			{Name: "BSQ", Kind: binfile.Double, Len: binfile.Dim("NZCL")},
			{Name: "BNDC", Kind: binfile.Double, Len: binfile.Dim("NBCS")},
			{Name: "BNCI", Kind: binfile.Double, Len: binfile.Dim("NIBCS")},
			{Name: "NZHBB", Kind: binfile.Int, Len: binfile.Dim("NZWBB")},
			{Name: "NZC", Kind: binfile.Int, Len: binfile.Dim("NZCL")},
			{Name: "NZNR", Kind: binfile.Int, Len: binfile.Dim("NREG")},
		}},
		regionPlanes("6D", CoarseRegions,
			[3]binfile.Extent{binfile.Dim("NCINTI"), binfile.Dim("NCINTJ"), binfile.Dim("NCINTK")},
			binfile.IntEquals("NRASS", 0)),
		regionPlanes("7D", FineRegions, cccc.MeshDims, binfile.IntEquals("NRASS", 1)),
	},
}

// File gives typed access to a decoded GEODST container.
type File struct {
	*binfile.Container
}

// Read decodes the GEODST file at path.
func Read(codec *binfile.Codec, path string) (*File, error) {
	c, err := codec.ReadBinary(Schema, path)
	if err != nil {
		return nil, err
	}
	return &File{Container: c}, nil
}

// RegionVolume returns the volume of the zero-based region index.
func (f *File) RegionVolume(regionIndex int) (float64, error) {
	v, err := f.Double(Volumes)
	if err != nil {
		return 0, err
	}
	return v.At(regionIndex)
}

// Regions returns region numbers on the fine mesh, expanding the coarse
// assignment through the fine intervals per coarse interval when needed.
func (f *File) Regions() (*mesh.Array[int32], error) {
	nrass, err := f.Metadata.Int("NRASS")
	if err != nil {
		return nil, err
	}
	if nrass == 1 {
		return f.Int(FineRegions)
	}
	coarse, err := f.Int(CoarseRegions)
	if err != nil {
		return nil, err
	}
	maps := make([][]int, 3)
	for d, axis := range []string{"I", "J", "K"} {
		maps[d], err = f.fineToCoarse(axis+"FINTS", coarse.Dim(d))
		if err != nil {
			return nil, err
		}
	}

	fine, err := mesh.New[int32](len(maps[0]), len(maps[1]), len(maps[2]))
	if err != nil {
		return nil, err
	}
	for k, ck := range maps[2] {
		for j, cj := range maps[1] {
			for i, ci := range maps[0] {
				v, err := coarse.At(ci, cj, ck)
				if err != nil {
					return nil, err
				}
				if err := fine.Set(v, i, j, k); err != nil {
					return nil, err
				}
			}
		}
	}
	return fine, nil
}

// fineToCoarse maps each fine interval along one axis to its coarse
// interval. Axes without a fine-interval list map one to one.
func (f *File) fineToCoarse(name string, coarse int) ([]int, error) {
	counts, ok := f.Ints[name]
	if !ok {
		out := make([]int, coarse)
		for i := range out {
			out[i] = i
		}
		return out, nil
	}
	if counts.Len() != coarse {
		return nil, fmt.Errorf("%s %s has %d entries for %d coarse intervals", Name, name, counts.Len(), coarse)
	}
	var out []int
	for c, n := range counts.Data() {
		if n < 0 {
			return nil, fmt.Errorf("%s %s holds negative interval count %d", Name, name, n)
		}
		for range n {
			out = append(out, c)
		}
	}
	return out, nil
}
