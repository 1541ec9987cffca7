package record

import (
	"encoding/binary"
	"fmt"
)

// Mode selects the direction of a stream
type Mode int

const (
	// Read decodes records from an existing file
	Read Mode = iota
	// Write encodes records into a new or truncated file
	Write
)

func (m Mode) String() string {
	switch m {
	case Read:
		return "read"
	case Write:
		return "write"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Layout describes the physical encoding of a record stream.
type Layout struct {
	Order      binary.ByteOrder
	MarkerSize int
}

// DefaultLayout returns the little-endian, 4-byte-marker layout.
func DefaultLayout() Layout {
	return Layout{
		Order:      binary.LittleEndian,
		MarkerSize: DefaultMarkerSize,
	}
}

// Validate reports whether the layout can be used by a stream.
func (l Layout) Validate() error {
	if l.Order == nil {
		return fmt.Errorf("record layout: byte order is not set")
	}
	if l.MarkerSize != DefaultMarkerSize && l.MarkerSize != LongMarkerSize {
		return fmt.Errorf("record layout: marker size must be %d or %d, got %d",
			DefaultMarkerSize, LongMarkerSize, l.MarkerSize)
	}
	return nil
}

// ParseByteOrder maps "little" or "big" to a binary.ByteOrder.
func ParseByteOrder(name string) (binary.ByteOrder, error) {
	switch name {
	case "little", "":
		return binary.LittleEndian, nil
	case "big":
		return binary.BigEndian, nil
	default:
		return nil, fmt.Errorf("unknown byte order %q", name)
	}
}
