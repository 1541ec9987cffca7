// Package aggregate reduces mesh fields over the cells of one region.
//
// Cells inside one region are treated as equal-volume, so the region average
// of a density is the plain mean of its cell values.
package aggregate

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/terrapower/armicontrib-dif3d/internal/mesh"
)

// ErrNoCells is returned when a reduction is asked for an empty cell set.
var ErrNoCells = errors.New("aggregate: region has no mesh cells")

// Rule names a scalar reduction.
type Rule int

const (
	// MeanRule averages cell values
	MeanRule Rule = iota
	// MaxRule takes the largest cell value
	MaxRule
	// SumRule adds cell values
	SumRule
)

func (r Rule) String() string {
	switch r {
	case MeanRule:
		return "mean"
	case MaxRule:
		return "max"
	case SumRule:
		return "sum"
	default:
		return fmt.Sprintf("rule(%d)", int(r))
	}
}

// Reduce applies rule to the values of a 3-D field at cells.
func Reduce[T mesh.Number](field *mesh.Array[T], cells []mesh.Index, rule Rule) (float64, error) {
	switch rule {
	case MeanRule:
		return Mean(field, cells)
	case MaxRule:
		return Max(field, cells)
	case SumRule:
		return Sum(field, cells)
	default:
		return 0, fmt.Errorf("aggregate: unknown rule %v", rule)
	}
}

func gather[T mesh.Number](field *mesh.Array[T], cells []mesh.Index, g int) ([]float64, error) {
	if len(cells) == 0 {
		return nil, ErrNoCells
	}
	return field.Gather(cells, g)
}

// Mean returns the average of field over cells.
func Mean[T mesh.Number](field *mesh.Array[T], cells []mesh.Index) (float64, error) {
	v, err := gather(field, cells, 0)
	if err != nil {
		return 0, err
	}
	return stat.Mean(v, nil), nil
}

// Max returns the largest value of field over cells.
func Max[T mesh.Number](field *mesh.Array[T], cells []mesh.Index) (float64, error) {
	v, err := gather(field, cells, 0)
	if err != nil {
		return 0, err
	}
	return floats.Max(v), nil
}

// Sum returns the total of field over cells.
func Sum[T mesh.Number](field *mesh.Array[T], cells []mesh.Index) (float64, error) {
	v, err := gather(field, cells, 0)
	if err != nil {
		return 0, err
	}
	return floats.Sum(v), nil
}

// VolumeWeighted returns volume times the mean of field over cells, e.g. the
// total power of a region from its power density.
func VolumeWeighted[T mesh.Number](field *mesh.Array[T], cells []mesh.Index, volume float64) (float64, error) {
	m, err := Mean(field, cells)
	if err != nil {
		return 0, err
	}
	return volume * m, nil
}

// GroupMeans returns, for each group of a 4-D field, the mean over cells.
// Groups are averaged independently; callers sum the result for a total.
func GroupMeans[T mesh.Number](field *mesh.Array[T], cells []mesh.Index) ([]float64, error) {
	if field.Rank() != 4 {
		return nil, fmt.Errorf("aggregate: group means need a 4-D field, got shape %v", field.Shape())
	}
	out := make([]float64, field.Dim(3))
	for g := range out {
		v, err := gather(field, cells, g)
		if err != nil {
			return nil, err
		}
		out[g] = stat.Mean(v, nil)
	}
	return out, nil
}

// Total sums a per-group vector.
func Total(groups []float64) float64 { return floats.Sum(groups) }

// DefaultKeffTolerance is the relative keff mismatch tolerated between files.
const DefaultKeffTolerance = 1e-5

// Warning is a non-fatal consistency finding.
type Warning struct {
	Source  string `yaml:"source"`
	Message string `yaml:"message"`
}

func (w Warning) String() string { return w.Source + ": " + w.Message }

// CheckKeff compares the keff stored with a field (local) against the run
// keff (global). It returns a warning when their relative difference exceeds
// tol.
func CheckKeff(source string, global, local, tol float64) (Warning, bool) {
	rel := math.Abs(local-global) / global
	if global == 0 || math.IsNaN(rel) {
		rel = math.Abs(local - global)
	}
	if rel <= tol {
		return Warning{}, false
	}
	return Warning{
		Source:  source,
		Message: fmt.Sprintf("keff %.10g differs from run keff %.10g (relative difference %.3g > %g)", local, global, rel, tol),
	}, true
}
