// Package region maps domain-object region labels onto mesh cells.
package region

import (
	"fmt"
	"slices"
	"strings"

	"github.com/terrapower/armicontrib-dif3d/internal/mesh"
)

// Resolver finds the mesh cells of a labelled region. Region number n in the
// assignment array corresponds to label n-1 of the table.
type Resolver struct {
	labels      []string
	positions   map[string][]int
	assignments *mesh.Array[int32]
	cells       map[int32][]mesh.Index
}

// NewResolver indexes a label table against a 3-D region-assignment array.
func NewResolver(labels []string, assignments *mesh.Array[int32]) (*Resolver, error) {
	if assignments == nil || assignments.Rank() != 3 {
		return nil, fmt.Errorf("region assignments must be a 3-D array")
	}
	r := &Resolver{
		labels:      make([]string, len(labels)),
		positions:   make(map[string][]int, len(labels)),
		assignments: assignments,
		cells:       make(map[int32][]mesh.Index),
	}
	for i, l := range labels {
		l = normalize(l)
		r.labels[i] = l
		r.positions[l] = append(r.positions[l], i)
	}

	// One pass over the mesh groups every cell by region number, in i-fastest order.
	im, jm, km := assignments.Dim(0), assignments.Dim(1), assignments.Dim(2)
	data := assignments.Data()
	for k := range km {
		for j := range jm {
			for i := range im {
				n := data[i+im*(j+jm*k)]
				if n > 0 {
					r.cells[n] = append(r.cells[n], mesh.Index{I: i, J: j, K: k})
				}
			}
		}
	}
	return r, nil
}

func normalize(label string) string {
	return strings.TrimRight(label, " ")
}

// Labels returns the label table with trailing blanks removed.
func (r *Resolver) Labels() []string { return append([]string(nil), r.labels...) }

// Resolve returns the cells assigned to label and its zero-based region
// index. A label that is absent from the table or listed twice yields a
// *LookupError.
func (r *Resolver) Resolve(label string) ([]mesh.Index, int, error) {
	label = normalize(label)
	pos := r.positions[label]
	if len(pos) != 1 {
		return nil, -1, &LookupError{Label: label, Matches: append([]int(nil), pos...)}
	}
	regionIndex := pos[0]
	return append([]mesh.Index(nil), r.cells[int32(regionIndex+1)]...), regionIndex, nil
}

// Unassigned returns the region numbers used by the assignment array that
// have no entry in the label table, in ascending order.
func (r *Resolver) Unassigned() []int32 {
	var out []int32
	for n := range r.cells {
		if int(n) > len(r.labels) {
			out = append(out, n)
		}
	}
	slices.Sort(out)
	return out
}
