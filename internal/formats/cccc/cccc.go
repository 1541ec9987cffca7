// Package cccc holds the pieces shared by the standard CCCC interface files.
package cccc

import "github.com/terrapower/armicontrib-dif3d/internal/binfile"

// FileID is the CCCC file identification record: HNAME, two user words and
// a version number.
func FileID() binfile.Scalars {
	return binfile.Scalars{Record: "FILEID", Fields: []binfile.Field{
		binfile.StringField("HNAME", 8),
		binfile.StringField("HUSE1", 8),
		binfile.StringField("HUSE2", 8),
		binfile.IntField("IVERS"),
	}}
}

// SetFileID fills the identification words of a new container.
func SetFileID(c *binfile.Container, hname string, version int) {
	c.Metadata.SetString("HNAME", hname)
	c.Metadata.SetString("HUSE1", "")
	c.Metadata.SetString("HUSE2", "")
	c.Metadata.SetInt("IVERS", version)
}

// MeshDims is the (I, J, K) extent triple of the fine mesh.
var MeshDims = [3]binfile.Extent{binfile.Dim("NINTI"), binfile.Dim("NINTJ"), binfile.Dim("NINTK")}
