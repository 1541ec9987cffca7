package testutil

import (
	"fmt"
	"strings"
)

// Dif3dRun holds the words a DIF3D fixture varies.
type Dif3dRun struct {
	Label   string
	IPROBT  int
	ISOLNT  int
	IRSTRT  int
	IRETRN  int
	EFFK    float64
	SIGBAR  float64
	Extra4D bool
}

// DIF3D builds a DIF3D file. Control word n of the 2D record holds n+100
// unless it is one of the named words above; the 1D record holds 1..25.
func (b *Builder) DIF3D(run Dif3dRun) *Builder {
	b.Record(Pad(run.Label, 28))

	oneD := make([]int32, 25)
	for i := range oneD {
		oneD[i] = int32(i + 1)
	}
	b.Record(oneD)

	twoD := make([]int32, 47)
	for i := range twoD {
		twoD[i] = int32(i + 100)
	}
	twoD[0] = int32(run.IPROBT)
	twoD[1] = int32(run.ISOLNT)
	twoD[5] = int32(run.IRSTRT)
	twoD[12] = int32(run.IRETRN)
	b.Record(twoD)

	threeD := make([]float64, 30)
	threeD[0], threeD[1], threeD[2] = 1e-7, 1e-5, 1e-5
	threeD[3] = run.EFFK
	threeD[6] = 1.0e8
	threeD[7] = run.SIGBAR
	b.Record(threeD)

	if run.Extra4D {
		b.Record([]float64{1.5, 1.6})
	}
	return b
}

// PeakPlane returns the value PKEDIT fixtures store at (i, j, k).
func PeakPlane(i, j, k int) float64 {
	return float64(100*k+10*j+i) + 0.5
}

// PKEDIT builds a PKEDIT file of shape (im, jm, km) split into njblok bands
// per plane, using the CCCC blocking rule.
func (b *Builder) PKEDIT(im, jm, km, njblok int, xkeff float32) *Builder {
	b.Record(Pad("PKEDIT", 28))
	b.Record(3, 2, im, jm, km, 12, xkeff, float32(3.0e6), njblok)
	for k := range km {
		for band := range njblok {
			lo, hi := band*((jm-1)/njblok+1), min(jm, (band+1)*((jm-1)/njblok+1))-1
			var vals []float64
			for j := lo; j <= hi; j++ {
				for i := range im {
					vals = append(vals, PeakPlane(i, j, k))
				}
			}
			b.Record(vals)
		}
	}
	return b
}

// Blank returns n blanks.
func Blank(n int) string { return strings.Repeat(" ", n) }

// fileID writes a CCCC identification record.
func (b *Builder) fileID(name string) {
	b.Record(Pad(name, 8)+Blank(16), 1)
}

// bands returns the CCCC band limits of extent split into blocks.
func bands(extent, blocks int) [][2]int {
	size := (extent-1)/blocks + 1
	out := make([][2]int, blocks)
	for band := range blocks {
		lo := min(band*size, extent)
		out[band] = [2]int{lo, min(extent, (band+1)*size) - 1}
	}
	return out
}

// FluxValue returns the value flux fixtures store at (i, j, k, g).
func FluxValue(i, j, k, g int) float64 {
	return float64(1000*g+100*k+10*j+i) + 1
}

// Flux builds an RTFLUX or ATFLUX file of shape (im, jm, km, ng). The
// adjoint file writes its groups from last to first.
func (b *Builder) Flux(name string, im, jm, km, ng, nblok int, effk float32, adjoint bool) *Builder {
	b.fileID(name)
	b.Record(3, ng, im, jm, km, 7, effk, float32(1.0e8), nblok)
	for gi := range ng {
		g := gi
		if adjoint {
			g = ng - 1 - gi
		}
		for k := range km {
			for _, band := range bands(jm, nblok) {
				var vals []float64
				for j := band[0]; j <= band[1]; j++ {
					for i := range im {
						vals = append(vals, FluxValue(i, j, k, g))
					}
				}
				b.Record(vals)
			}
		}
	}
	return b
}

// PowerValue returns the value PWDINT fixtures store at (i, j, k).
func PowerValue(i, j, k int) float32 {
	return float32(100*k+10*j+i) + 0.25
}

// PWDINT builds a PWDINT file of shape (im, jm, km).
func (b *Builder) PWDINT(im, jm, km, nblok int, effk float32) *Builder {
	b.fileID("PWDINT")
	b.Record(float32(0), float32(1.0e8), float32(im*jm*km), effk, 0, 3, im, jm, km, nblok)
	for k := range km {
		for _, band := range bands(jm, nblok) {
			var vals []float32
			for j := band[0]; j <= band[1]; j++ {
				for i := range im {
					vals = append(vals, PowerValue(i, j, k))
				}
			}
			b.Record(vals)
		}
	}
	return b
}

// Geometry describes a 3-D GEODST fixture.
type Geometry struct {
	// Coarse gives the number of coarse intervals along I, J and K.
	Coarse [3]int
	// Fine gives the fine intervals in each coarse interval, per axis.
	Fine [3][]int32
	// Volumes holds one volume per region.
	Volumes []float64
	// Regions holds region numbers with i fastest, on the coarse mesh when
	// CoarseAssignment is set and on the fine mesh otherwise.
	Regions          []int32
	CoarseAssignment bool
}

func (g Geometry) fine(axis int) int {
	n := 0
	for _, v := range g.Fine[axis] {
		n += int(v)
	}
	return n
}

// GEODST builds a GEODST file for a 3-D Cartesian geometry (IGOM=14).
func (b *Builder) GEODST(g Geometry) *Builder {
	b.fileID("GEODST")
	nrass := 1
	im, jm, km := g.fine(0), g.fine(1), g.fine(2)
	if g.CoarseAssignment {
		nrass = 0
		im, jm, km = g.Coarse[0], g.Coarse[1], g.Coarse[2]
	}
	spec := []int32{
		14, int32(len(g.Volumes)), int32(len(g.Volumes)), 0,
		int32(g.Coarse[0]), int32(g.Coarse[1]), int32(g.Coarse[2]),
		int32(g.fine(0)), int32(g.fine(1)), int32(g.fine(2)),
		0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, int32(nrass), 0,
		0, 0, 0, 0,
	}
	b.Record(spec)

	var meshes []any
	for axis := range 3 {
		bounds := make([]float64, g.Coarse[axis]+1)
		for i := range bounds {
			bounds[i] = 10 * float64(i)
		}
		meshes = append(meshes, bounds)
	}
	for axis := range 3 {
		meshes = append(meshes, g.Fine[axis])
	}
	b.Record(meshes...)

	zones := make([]int32, len(g.Volumes))
	for i := range zones {
		zones[i] = int32(i + 1)
	}
	b.Record(g.Volumes, zones)

	for k := range km {
		b.Record(g.Regions[k*im*jm : (k+1)*im*jm])
	}
	return b
}

// LABELS builds a LABELS file naming one zone per region and no areas. When
// extra is set an area record follows the name record.
func (b *Builder) LABELS(regions []string, extra bool) *Builder {
	b.fileID("LABELS")
	n := len(regions)
	b.Record(n, n, 0, 0, 0, 0, 0)
	var names string
	for i := range regions {
		names += Pad(fmt.Sprintf("Z%d", i+1), 8)
	}
	for _, r := range regions {
		names += Pad(r, 8)
	}
	b.Record(names)
	if extra {
		b.Record(1, 2, 3)
	}
	return b
}
