package region

import (
	"fmt"
	"strings"

	"github.com/terrapower/armicontrib-dif3d/internal/mesh"
)

const (
	// rowPrefix is the width of the tag that opens a label row.
	rowPrefix = 15
	// columnWidth holds a region number, blanks and a label.
	columnWidth = 13
)

// ColumnLabels decodes the region labels of one fixed-width table row such as
//
//	     REGION     1001  A1001A 1002  A1001B
//
// Each column is read as a 13-character window and the label is its second
// token. Once region numbers reach five digits the blank before the next
// number disappears, so splitting the whole row on blanks would merge
// columns.
func ColumnLabels(line string) ([]string, error) {
	if len(line) <= rowPrefix {
		return nil, fmt.Errorf("label row %q is shorter than its %d-character prefix", line, rowPrefix)
	}
	data := strings.TrimSpace(line[rowPrefix:])
	var out []string
	for lo := 0; lo < len(data); lo += columnWidth {
		window := data[lo:min(lo+columnWidth, len(data))]
		tokens := strings.Fields(window)
		if len(tokens) < 2 {
			return nil, fmt.Errorf("label row column %d %q has no label", len(out)+1, window)
		}
		out = append(out, tokens[1])
	}
	return out, nil
}

// NewResolverFromRows builds the label table from table rows in order and
// indexes it against assignments.
func NewResolverFromRows(rows []string, assignments *mesh.Array[int32]) (*Resolver, error) {
	var labels []string
	for i, row := range rows {
		l, err := ColumnLabels(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		labels = append(labels, l...)
	}
	return NewResolver(labels, assignments)
}
