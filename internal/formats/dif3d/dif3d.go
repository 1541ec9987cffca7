// Package dif3d describes the code-specific DIF3D interface file: run
// controls, keff and convergence state of a DIF3D solve.
//
// The layout follows the 10/31/00 file description in the REBUS manual.
package dif3d

import (
	"fmt"
	"strings"

	"github.com/terrapower/armicontrib-dif3d/internal/binfile"
	"github.com/terrapower/armicontrib-dif3d/internal/record"
)

// Name is the file name DIF3D reads and writes.
const Name = "DIF3D"

// FileIDWidth is the width of the FILEID label.
const FileIDWidth = 28

// IntControlKeys lists the 2D record in file order. The second IOMEG slot is
// stored as IOMEG2 so that every name is unique.
var IntControlKeys = []string{
	"IPROBT", "ISOLNT", "IXTRAP", "MINBSZ", "NOUTMX", "IRSTRT", "LIMTIM",
	"NUPMAX", "IOSAVE", "IOMEG", "INRMAX", "NUMORP", "IRETRN",
	"IEDF1", "IEDF2", "IEDF3", "IEDF4", "IEDF5", "IEDF6", "IEDF7", "IEDF8",
	"IEDF9", "IEDF10", "NOUTBQ", "IOFLUX", "NOEDIT", "NOD3ED", "ISRHED",
	"NSN", "NSWMAX", "NAPRX", "NAPRXZ", "NFMCMX", "NXYSWP", "NZSWP",
	"ISYMF", "NCMRZS", "ISEXTR", "NPNO", "NXTR", "IOMEG2", "IFULL",
	"NVFLAG", "ISIMPL", "IWNHFL", "IPERT", "IHARM",
}

// KeffKeys lists the named words of the 3D record; DUM1..DUM20 follow.
var KeffKeys = []string{
	"EPS1", "EPS2", "EPS3", "EFFK", "FISMIN", "PSINRM", "POWIN", "SIGBAR",
	"EFFKQ", "EPSWP",
}

const (
	dummyInts    = 25
	dummyDoubles = 20
)

func fields(keys []string, kind binfile.Kind) []binfile.Field {
	out := make([]binfile.Field, len(keys))
	for i, k := range keys {
		out[i] = binfile.Field{Name: k, Kind: kind}
	}
	return out
}

var baseSteps = []binfile.Step{
	binfile.Scalars{Record: "FILEID", Fields: []binfile.Field{binfile.StringField("LABEL", FileIDWidth)}},
	binfile.Scalars{Record: "1D", Fields: binfile.Numbered("IDUM", dummyInts, binfile.Int)},
	binfile.Scalars{Record: "2D", Fields: fields(IntControlKeys, binfile.Int)},
	binfile.Scalars{Record: "3D", Fields: append(
		fields(KeffKeys, binfile.Double),
		binfile.Numbered("DUM", dummyDoubles, binfile.Double)...,
	)},
}

// Schema reads and writes the FILEID, 1D, 2D and 3D records. Any 4D and 5D
// records that follow are left untouched on read.
var Schema = binfile.Schema{Name: Name, Steps: baseSteps}

// ExtendedSchema also declares the 4D over-relaxation factors and 5D axial
// coarse-mesh rebalance boundaries, which are not decoded.
var ExtendedSchema = binfile.Schema{
	Name: Name,
	Steps: append(append([]binfile.Step(nil), baseSteps...),
		binfile.Unsupported{Record: "4D", Reason: "optimum over-relaxation factors are not decoded"},
		binfile.Unsupported{Record: "5D", Reason: "axial coarse-mesh rebalance boundaries are not decoded"},
	),
}

// File gives typed access to a decoded DIF3D container.
type File struct {
	*binfile.Container
}

// Wrap checks that c holds a DIF3D file.
func Wrap(c *binfile.Container) (*File, error) {
	if c == nil || c.Format != Name {
		return nil, fmt.Errorf("container does not hold a %s file", Name)
	}
	return &File{Container: c}, nil
}

// Read decodes the DIF3D file at path.
func Read(codec *binfile.Codec, path string) (*File, error) {
	c, err := codec.ReadBinary(Schema, path)
	if err != nil {
		return nil, err
	}
	return &File{Container: c}, nil
}

// NewContainer returns a DIF3D container with every word zero and a blank
// label, ready for the host to set controls before writing.
func NewContainer() *binfile.Container {
	c := binfile.NewContainer(Schema)
	c.Metadata.SetString("LABEL", strings.Repeat(" ", FileIDWidth))
	for i := 1; i <= dummyInts; i++ {
		c.Metadata.SetInt(fmt.Sprintf("IDUM%d", i), 0)
	}
	for _, k := range IntControlKeys {
		c.Metadata.SetInt(k, 0)
	}
	for _, k := range KeffKeys {
		c.Metadata.SetDouble(k, 0)
	}
	for i := 1; i <= dummyDoubles; i++ {
		c.Metadata.SetDouble(fmt.Sprintf("DUM%d", i), 0)
	}
	return c
}

// Keff returns the converged multiplication factor (EFFK).
func (f *File) Keff() (float64, error) { return f.Metadata.Double("EFFK") }

// DominanceRatio returns SIGBAR.
func (f *File) DominanceRatio() (float64, error) { return f.Metadata.Double("SIGBAR") }

// Convergence classifies IRETRN.
func (f *File) Convergence() (Convergence, error) {
	v, err := f.Metadata.Int("IRETRN")
	if err != nil {
		return 0, err
	}
	c, err := ParseConvergence(v)
	if err != nil {
		return 0, &record.FormatError{File: Name, Record: "2D", Field: "IRETRN", Reason: err.Error()}
	}
	return c, nil
}

// ProblemType returns IPROBT.
func (f *File) ProblemType() (ProblemType, error) {
	v, err := f.Metadata.Int("IPROBT")
	return ProblemType(v), err
}

// SolutionType returns ISOLNT. A real-and-adjoint run leaves only the
// adjoint flag behind in the file.
func (f *File) SolutionType() (SolutionType, error) {
	v, err := f.Metadata.Int("ISOLNT")
	return SolutionType(v), err
}

// Summary returns short human-readable lines describing the run.
func (f *File) Summary() ([]string, error) {
	keff, err := f.Keff()
	if err != nil {
		return nil, err
	}
	sigbar, err := f.DominanceRatio()
	if err != nil {
		return nil, err
	}
	pt, err := f.ProblemType()
	if err != nil {
		return nil, err
	}
	st, err := f.SolutionType()
	if err != nil {
		return nil, err
	}
	restart, err := f.Metadata.Int("IRSTRT")
	if err != nil {
		return nil, err
	}
	conv, err := f.Convergence()
	if err != nil {
		return nil, err
	}
	return []string{
		fmt.Sprintf("| keff= %v", keff),
		fmt.Sprintf("| Dominance ratio= %v", sigbar),
		fmt.Sprintf("| Problem type= %s", pt),
		fmt.Sprintf("| Solution type= %s", st),
		fmt.Sprintf("| Restart= %d", restart),
		fmt.Sprintf("| Convergence= %s", conv),
	}, nil
}
