package testutil

import (
	"strings"
)

// Case describes a small finished DIF3D run: a 2x2x1 mesh with region
// RegionLabels[0] on the j=0 row and RegionLabels[1] on the j=1 row, two
// energy groups and one band per plane.
type Case struct {
	Label      string
	Keff       float64
	IRETRN     int
	FluxKeff   float32
	PeakFluxes map[string]string
}

// RegionLabels are the region labels of a Case.
var RegionLabels = []string{"A1001A", "A1002A"}

// RegionVolumes are the region volumes of a Case.
var RegionVolumes = []float64{10, 20}

// DefaultCase returns a converged case whose files agree on keff.
func DefaultCase() Case {
	return Case{
		Label:    "case",
		Keff:     1.0083017198449564,
		IRETRN:   1,
		FluxKeff: 1.0083017,
		PeakFluxes: map[string]string{
			"A1001A": "1.0000E+15",
			"A1002A": "2.0000E+15",
		},
	}
}

// Files returns the interface files and printed output of c by file name.
func (c Case) Files() map[string][]byte {
	geo := Geometry{
		Coarse:  [3]int{2, 2, 1},
		Fine:    [3][]int32{{1, 1}, {1, 1}, {1}},
		Volumes: RegionVolumes,
		Regions: []int32{1, 1, 2, 2},
	}
	return map[string][]byte{
		"DIF3D":  LittleEndian().DIF3D(Dif3dRun{Label: c.Label, EFFK: c.Keff, IRETRN: c.IRETRN, SIGBAR: 0.5}).Build(),
		"GEODST": LittleEndian().GEODST(geo).Build(),
		"LABELS": LittleEndian().LABELS(RegionLabels, true).Build(),
		"PWDINT": LittleEndian().PWDINT(2, 2, 1, 1, c.FluxKeff).Build(),
		"PKEDIT": LittleEndian().PKEDIT(2, 2, 1, 1, c.FluxKeff).Build(),
		"RTFLUX": LittleEndian().Flux("RTFLUX", 2, 2, 1, 2, 1, c.FluxKeff, false).Build(),
		"ATFLUX": LittleEndian().Flux("ATFLUX", 2, 2, 1, 2, 1, c.FluxKeff, true).Build(),
		c.Label + ".out": []byte(c.output()),
	}
}

func (c Case) output() string {
	var b strings.Builder
	b.WriteString("1    DIF3D 11.0\n")
	b.WriteString("0" + strings.Repeat(" ", 55) + "REGION TOTALS\n")
	b.WriteString("     REGION         1  A1001A     2  A1002A\n")
	b.WriteString(" PEAK FLUX   ")
	for _, l := range RegionLabels {
		if v, ok := c.PeakFluxes[l]; ok {
			b.WriteString(" " + v)
		}
	}
	b.WriteString("\n")
	b.WriteString("0" + strings.Repeat(" ", 40) + "REACTION INTEGRALS IN DIRECTION OF CALCULATION\n")
	return b.String()
}
