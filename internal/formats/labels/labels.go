// Package labels describes the CCCC LABELS file: the names of zones,
// regions and areas.
package labels

import (
	"strings"

	"github.com/terrapower/armicontrib-dif3d/internal/binfile"
	"github.com/terrapower/armicontrib-dif3d/internal/formats/cccc"
)

// Name is the file name.
const Name = "LABELS"

const (
	// ZoneNames holds NZONE labels
	ZoneNames = "ZONNAM"
	// RegionNames holds NREG labels; region number n is entry n-1
	RegionNames = "REGNAM"
	// AreaNames holds NAREA labels
	AreaNames = "ARNAME"
	// LabelWidth is the width of every stored label
	LabelWidth = 8
)

// Schema reads the specifications and the name record. Area membership and
// later records are not decoded and are left in place on read.
var Schema = binfile.Schema{
	Name: Name,
	Steps: []binfile.Step{
		cccc.FileID(),
		binfile.Scalars{Record: "1D", Fields: []binfile.Field{
			binfile.IntField("NZONE"),
			binfile.IntField("NREG"),
			binfile.IntField("NAREA"),
			binfile.IntField("NHTS1"),
			binfile.IntField("NHTS2"),
			binfile.IntField("NSETVX"),
			binfile.IntField("NTRIAG"),
		}},
		binfile.Vectors{Record: "2D", Items: []binfile.Vector{
			{Name: ZoneNames, Kind: binfile.String, Len: binfile.Dim("NZONE"), Width: LabelWidth},
			{Name: RegionNames, Kind: binfile.String, Len: binfile.Dim("NREG"), Width: LabelWidth},
			{Name: AreaNames, Kind: binfile.String, Len: binfile.Dim("NAREA"), Width: LabelWidth},
		}},
	},
}

// File gives typed access to a decoded LABELS container.
type File struct {
	*binfile.Container
}

// Read decodes the LABELS file at path.
func Read(codec *binfile.Codec, path string) (*File, error) {
	c, err := codec.ReadBinary(Schema, path)
	if err != nil {
		return nil, err
	}
	return &File{Container: c}, nil
}

// NewContainer builds a LABELS container from zone, region and area names.
func NewContainer(zones, regions, areas []string) *binfile.Container {
	c := binfile.NewContainer(Schema)
	cccc.SetFileID(c, Name, 1)
	md := c.Metadata
	md.SetInt("NZONE", len(zones))
	md.SetInt("NREG", len(regions))
	md.SetInt("NAREA", len(areas))
	md.SetInt("NHTS1", 0)
	md.SetInt("NHTS2", 0)
	md.SetInt("NSETVX", 0)
	md.SetInt("NTRIAG", 0)
	for name, list := range map[string][]string{ZoneNames: zones, RegionNames: regions, AreaNames: areas} {
		if len(list) > 0 {
			c.Strings[name] = list
		}
	}
	return c
}

// Regions returns region labels with trailing blanks removed.
func (f *File) Regions() []string {
	raw := f.StringList(RegionNames)
	out := make([]string, len(raw))
	for i, s := range raw {
		out[i] = strings.TrimRight(s, " ")
	}
	return out
}
