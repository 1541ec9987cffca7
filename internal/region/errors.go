package region

import (
	"errors"
	"fmt"
)

var (
	// ErrLabelNotFound means the label table has no entry for a region label.
	ErrLabelNotFound = errors.New("region label not found")
	// ErrLabelAmbiguous means the label table names a region more than once.
	ErrLabelAmbiguous = errors.New("region label is ambiguous")
)

// LookupError reports a region label that cannot be resolved to exactly one
// region of the label table.
type LookupError struct {
	Label string
	// Matches holds the zero-based table positions carrying the label.
	Matches []int
}

func (e *LookupError) Error() string {
	if len(e.Matches) == 0 {
		return fmt.Sprintf("region %q: not in the label table", e.Label)
	}
	return fmt.Sprintf("region %q: label table carries it at positions %v", e.Label, e.Matches)
}

func (e *LookupError) Unwrap() error {
	if len(e.Matches) == 0 {
		return ErrLabelNotFound
	}
	return ErrLabelAmbiguous
}
