package record

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

var (
	// ErrNotFound is returned when an interface file does not exist
	ErrNotFound = fmt.Errorf("record: interface file not found: %w", os.ErrNotExist)
	// ErrFormat is the class of all structural decoding and encoding failures
	ErrFormat = errors.New("record: format error")
	// ErrUnsupportedRecord marks records that are declared but not implemented
	ErrUnsupportedRecord = errors.New("record: unsupported record")
)

// FormatError describes where a record stream stopped matching its schema.
type FormatError struct {
	File   string
	Record string
	Field  string
	Offset int64
	Reason string
}

func (e *FormatError) Error() string {
	var b strings.Builder
	b.WriteString("format error")
	if e.File != "" {
		fmt.Fprintf(&b, " in %s", e.File)
	}
	if e.Record != "" {
		fmt.Fprintf(&b, " record %s", e.Record)
	}
	if e.Field != "" {
		fmt.Fprintf(&b, " field %s", e.Field)
	}
	fmt.Fprintf(&b, " at offset %d: %s", e.Offset, e.Reason)
	return b.String()
}

func (e *FormatError) Unwrap() error { return ErrFormat }

// UnsupportedRecordError is returned when a schema reaches a record it
// declares but cannot decode.
type UnsupportedRecordError struct {
	File   string
	Record string
	Reason string
}

func (e *UnsupportedRecordError) Error() string {
	msg := fmt.Sprintf("unsupported record %s in %s", e.Record, e.File)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

func (e *UnsupportedRecordError) Unwrap() error { return ErrUnsupportedRecord }

// NotFound wraps ErrNotFound with the missing path.
func NotFound(path string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, path)
}
