// Package testutil builds raw Fortran record streams for tests without
// going through the record codec.
package testutil

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"
)

// Builder accumulates records in a byte buffer.
type Builder struct {
	order  binary.ByteOrder
	marker int
	buf    bytes.Buffer
}

// NewBuilder returns a builder for the given byte order and marker width.
func NewBuilder(order binary.ByteOrder, markerSize int) *Builder {
	return &Builder{order: order, marker: markerSize}
}

// LittleEndian returns a builder for the default 4-byte-marker layout.
func LittleEndian() *Builder {
	return NewBuilder(binary.LittleEndian, 4)
}

// Pad blank-pads or truncates s to width characters.
func Pad(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	return s + strings.Repeat(" ", width-len(s))
}

// Payload encodes values the way a Fortran WRITE would. Supported values are
// int (as a 32-bit word), int32, float32, float64, string (raw bytes) and
// slices of int32, float32 and float64.
func (b *Builder) Payload(values ...any) []byte {
	var p bytes.Buffer
	for _, v := range values {
		switch x := v.(type) {
		case int:
			_ = binary.Write(&p, b.order, int32(x))
		case string:
			p.WriteString(x)
		case int32, float32, float64, []int32, []float32, []float64:
			_ = binary.Write(&p, b.order, x)
		default:
			panic(fmt.Sprintf("testutil: unsupported value %T", v))
		}
	}
	return p.Bytes()
}

// Record appends one well-formed record holding values.
func (b *Builder) Record(values ...any) *Builder {
	payload := b.Payload(values...)
	return b.Raw(payload, int64(len(payload)), int64(len(payload)))
}

// Raw appends a record with explicit leading and trailing markers.
func (b *Builder) Raw(payload []byte, leading, trailing int64) *Builder {
	b.writeMarker(leading)
	b.buf.Write(payload)
	b.writeMarker(trailing)
	return b
}

// Bytes appends arbitrary bytes, useful for truncated streams.
func (b *Builder) Bytes(p []byte) *Builder {
	b.buf.Write(p)
	return b
}

// Build returns a copy of the accumulated stream.
func (b *Builder) Build() []byte {
	return bytes.Clone(b.buf.Bytes())
}

func (b *Builder) writeMarker(n int64) {
	if b.marker == 8 {
		_ = binary.Write(&b.buf, b.order, n)
		return
	}
	_ = binary.Write(&b.buf, b.order, int32(n))
}
