package record

import (
	"fmt"
	"math"
)

// Record is the scope of one record inside a Stream. Every operation is
// symmetric: in read mode the passed value is ignored and the decoded value
// is returned, in write mode the value is encoded and returned unchanged.
//
// The first failure is kept; later operations become no-ops and return
// their zero value.
type Record struct {
	stream *Stream
	name   string
	base   int64
	buf    []byte
	pos    int
	err    error
}

// Name returns the record name used in error context.
func (r *Record) Name() string { return r.name }

// Reading reports whether the record is being decoded.
func (r *Record) Reading() bool { return r.stream.mode == Read }

// Err returns the sticky error of the record, if any.
func (r *Record) Err() error { return r.err }

// Remaining returns the number of payload bytes not yet consumed on read.
func (r *Record) Remaining() int {
	if !r.Reading() {
		return 0
	}
	return len(r.buf) - r.pos
}

// Fail records a schema-level failure for field.
func (r *Record) Fail(field, reason string) {
	if r.err != nil {
		return
	}
	r.err = &FormatError{
		File:   r.stream.file,
		Record: r.name,
		Field:  field,
		Offset: r.base + int64(r.pos),
		Reason: reason,
	}
}

func (r *Record) finish(err error) error {
	if r.err != nil {
		return r.err
	}
	return err
}

// take returns the next n payload bytes, or nil after recording a failure.
func (r *Record) take(field string, n int) []byte {
	if r.err != nil {
		return nil
	}
	if n > len(r.buf)-r.pos {
		r.Fail(field, fmt.Sprintf("needs %d bytes, record has %d left", n, len(r.buf)-r.pos))
		return nil
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b
}

// grow appends n zero bytes to the write buffer and returns them.
func (r *Record) grow(n int) []byte {
	start := len(r.buf)
	r.buf = append(r.buf, make([]byte, n)...)
	return r.buf[start:]
}

// String handles a fixed-width character field. Longer values are truncated
// and shorter ones padded with blanks on write.
func (r *Record) String(name, v string, width int) string {
	if r.err != nil {
		return ""
	}
	if width <= 0 {
		r.Fail(name, fmt.Sprintf("invalid string width %d", width))
		return ""
	}
	if r.Reading() {
		b := r.take(name, width)
		if b == nil {
			return ""
		}
		return string(b)
	}
	out := r.grow(width)
	n := copy(out, v)
	for i := n; i < width; i++ {
		out[i] = blank
	}
	return v
}

// Int handles a 32-bit integer word.
func (r *Record) Int(name string, v int) int {
	if r.err != nil {
		return 0
	}
	order := r.stream.layout.Order
	if r.Reading() {
		b := r.take(name, IntSize)
		if b == nil {
			return 0
		}
		return int(int32(order.Uint32(b)))
	}
	if v < math.MinInt32 || v > math.MaxInt32 {
		r.Fail(name, fmt.Sprintf("value %d does not fit in a 32-bit integer", v))
		return 0
	}
	order.PutUint32(r.grow(IntSize), uint32(int32(v)))
	return v
}

// Float handles a 32-bit IEEE-754 word.
func (r *Record) Float(name string, v float32) float32 {
	if r.err != nil {
		return 0
	}
	order := r.stream.layout.Order
	if r.Reading() {
		b := r.take(name, FloatSize)
		if b == nil {
			return 0
		}
		return math.Float32frombits(order.Uint32(b))
	}
	order.PutUint32(r.grow(FloatSize), math.Float32bits(v))
	return v
}

// Double handles a 64-bit IEEE-754 word.
func (r *Record) Double(name string, v float64) float64 {
	if r.err != nil {
		return 0
	}
	order := r.stream.layout.Order
	if r.Reading() {
		b := r.take(name, DoubleSize)
		if b == nil {
			return 0
		}
		return math.Float64frombits(order.Uint64(b))
	}
	order.PutUint64(r.grow(DoubleSize), math.Float64bits(v))
	return v
}

// DoubleMatrix handles a rows x cols block of doubles stored with the row
// index varying fastest.
func (r *Record) DoubleMatrix(name string, v []float64, rows, cols int) []float64 {
	n, ok := r.matrixLen(name, len(v), rows, cols)
	if !ok {
		return nil
	}
	order := r.stream.layout.Order
	if r.Reading() {
		b := r.take(name, n*DoubleSize)
		if b == nil {
			return nil
		}
		out := make([]float64, n)
		for i := range out {
			out[i] = math.Float64frombits(order.Uint64(b[i*DoubleSize:]))
		}
		return out
	}
	b := r.grow(n * DoubleSize)
	for i, x := range v {
		order.PutUint64(b[i*DoubleSize:], math.Float64bits(x))
	}
	return v
}

// FloatMatrix handles a rows x cols block of single-precision reals.
func (r *Record) FloatMatrix(name string, v []float32, rows, cols int) []float32 {
	n, ok := r.matrixLen(name, len(v), rows, cols)
	if !ok {
		return nil
	}
	order := r.stream.layout.Order
	if r.Reading() {
		b := r.take(name, n*FloatSize)
		if b == nil {
			return nil
		}
		out := make([]float32, n)
		for i := range out {
			out[i] = math.Float32frombits(order.Uint32(b[i*FloatSize:]))
		}
		return out
	}
	b := r.grow(n * FloatSize)
	for i, x := range v {
		order.PutUint32(b[i*FloatSize:], math.Float32bits(x))
	}
	return v
}

// IntMatrix handles a rows x cols block of 32-bit integers.
func (r *Record) IntMatrix(name string, v []int32, rows, cols int) []int32 {
	n, ok := r.matrixLen(name, len(v), rows, cols)
	if !ok {
		return nil
	}
	order := r.stream.layout.Order
	if r.Reading() {
		b := r.take(name, n*IntSize)
		if b == nil {
			return nil
		}
		out := make([]int32, n)
		for i := range out {
			out[i] = int32(order.Uint32(b[i*IntSize:]))
		}
		return out
	}
	b := r.grow(n * IntSize)
	for i, x := range v {
		order.PutUint32(b[i*IntSize:], uint32(x))
	}
	return v
}

func (r *Record) matrixLen(name string, have, rows, cols int) (int, bool) {
	if r.err != nil {
		return 0, false
	}
	if rows < 0 || cols < 0 {
		r.Fail(name, fmt.Sprintf("invalid matrix shape %dx%d", rows, cols))
		return 0, false
	}
	n := rows * cols
	if !r.Reading() && have != n {
		r.Fail(name, fmt.Sprintf("matrix shape %dx%d needs %d values, got %d", rows, cols, n, have))
		return 0, false
	}
	return n, true
}
