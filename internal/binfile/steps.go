package binfile

import (
	"fmt"

	"github.com/terrapower/armicontrib-dif3d/internal/mesh"
	"github.com/terrapower/armicontrib-dif3d/internal/record"
)

// exchange is one replay of a schema in either direction.
type exchange struct {
	st *record.Stream
	c  *Container
}

func (x *exchange) reading() bool { return x.st.Mode() == record.Read }

func (x *exchange) fail(rec, field, reason string) error {
	return &record.FormatError{
		File:   x.st.File(),
		Record: rec,
		Field:  field,
		Offset: x.st.Offset(),
		Reason: reason,
	}
}

func (s Scalars) run(x *exchange) error {
	md := x.c.Metadata
	return x.st.Record(s.Record, func(r *record.Record) error {
		for _, f := range s.Fields {
			switch f.Kind {
			case Int:
				v, err := scalarIn(r, f, md.Int)
				if err == nil {
					md.SetInt(f.Name, r.Int(f.Name, v))
				}
			case Float:
				v, err := scalarIn(r, f, md.Float)
				if err == nil {
					md.SetFloat(f.Name, r.Float(f.Name, v))
				}
			case Double:
				v, err := scalarIn(r, f, md.Double)
				if err == nil {
					md.SetDouble(f.Name, r.Double(f.Name, v))
				}
			case String:
				v, err := scalarIn(r, f, md.String)
				if err == nil {
					md.SetString(f.Name, r.String(f.Name, v, f.Width))
				}
			default:
				r.Fail(f.Name, fmt.Sprintf("unknown field kind %v", f.Kind))
			}
			if r.Err() != nil {
				return nil
			}
		}
		return nil
	})
}

// scalarIn fetches the value to encode on write. On read it returns the zero
// value, since the codec ignores it.
func scalarIn[T any](r *record.Record, f Field, get func(string) (T, error)) (T, error) {
	var zero T
	if r.Reading() {
		return zero, nil
	}
	v, err := get(f.Name)
	if err != nil {
		r.Fail(f.Name, err.Error())
		return zero, err
	}
	return v, nil
}

func (s Vectors) run(x *exchange) error {
	md := x.c.Metadata
	return x.st.Record(s.Record, func(r *record.Record) error {
		for _, item := range s.Items {
			n, err := item.Len(md)
			if err != nil {
				r.Fail(item.Name, err.Error())
				return nil
			}
			if n < 0 {
				r.Fail(item.Name, fmt.Sprintf("negative length %d", n))
				return nil
			}
			x.vector(r, item, n)
			if r.Err() != nil {
				return nil
			}
		}
		return nil
	})
}

func (x *exchange) vector(r *record.Record, item Vector, n int) {
	switch item.Kind {
	case String:
		x.stringVector(r, item, n)
	case Int:
		var have []int32
		if !r.Reading() {
			have = x.intValues(r, item.Name, n)
		}
		got := r.IntMatrix(item.Name, have, n, 1)
		if r.Reading() && r.Err() == nil && n > 0 {
			a, _ := mesh.FromSlice(got, n)
			x.c.Ints[item.Name] = a
		}
	case Float, Double:
		var have []float64
		if !r.Reading() {
			have = x.doubleValues(r, item.Name, n)
		}
		got := exchangeReals(r, item.Name, item.Kind, have, n, 1)
		if r.Reading() && r.Err() == nil && n > 0 {
			a, _ := mesh.FromSlice(got, n)
			x.c.Doubles[item.Name] = a
		}
	default:
		r.Fail(item.Name, fmt.Sprintf("unknown vector kind %v", item.Kind))
	}
}

func (x *exchange) stringVector(r *record.Record, item Vector, n int) {
	if r.Reading() {
		if n*item.Width > r.Remaining() {
			r.Fail(item.Name, fmt.Sprintf("%d names of width %d exceed the %d bytes left", n, item.Width, r.Remaining()))
			return
		}
		var out []string
		for range n {
			out = append(out, r.String(item.Name, "", item.Width))
		}
		if r.Err() == nil && n > 0 {
			x.c.Strings[item.Name] = out
		}
		return
	}
	have := x.c.Strings[item.Name]
	if len(have) != n {
		r.Fail(item.Name, fmt.Sprintf("container holds %d names, metadata implies %d", len(have), n))
		return
	}
	for _, s := range have {
		r.String(item.Name, s, item.Width)
	}
}

func (x *exchange) intValues(r *record.Record, name string, n int) []int32 {
	if n == 0 {
		return nil
	}
	a, ok := x.c.Ints[name]
	if !ok || a.Len() != n {
		r.Fail(name, fmt.Sprintf("container array does not hold the %d values metadata implies", n))
		return nil
	}
	return a.Data()
}

func (x *exchange) doubleValues(r *record.Record, name string, n int) []float64 {
	if n == 0 {
		return nil
	}
	a, ok := x.c.Doubles[name]
	if !ok || a.Len() != n {
		r.Fail(name, fmt.Sprintf("container array does not hold the %d values metadata implies", n))
		return nil
	}
	return a.Data()
}

// exchangeReals moves a rows x cols block of reals stored as float64 in
// memory and as either 4- or 8-byte words on disk.
func exchangeReals(r *record.Record, name string, kind Kind, v []float64, rows, cols int) []float64 {
	if kind == Double {
		return r.DoubleMatrix(name, v, rows, cols)
	}
	var narrow []float32
	if !r.Reading() {
		narrow = make([]float32, len(v))
		for i, f := range v {
			narrow[i] = float32(f)
		}
	}
	got := r.FloatMatrix(name, narrow, rows, cols)
	if !r.Reading() {
		return v
	}
	wide := make([]float64, len(got))
	for i, f := range got {
		wide[i] = float64(f)
	}
	return wide
}

func elemSize(k Kind) int {
	switch k {
	case Double:
		return record.DoubleSize
	case Float:
		return record.FloatSize
	default:
		return record.IntSize
	}
}

type planeDims struct {
	im, jm, km int
	ng         int
	blocks     int
	grouped    bool
}

func (p Planes) dims(x *exchange) (planeDims, error) {
	md := x.c.Metadata
	var d planeDims
	ext := [3]*int{&d.im, &d.jm, &d.km}
	for i, e := range p.Dims {
		if e == nil {
			return d, x.fail(p.Record, p.Array, fmt.Sprintf("dimension %d is not declared", i+1))
		}
		v, err := e(md)
		if err != nil {
			return d, x.fail(p.Record, p.Array, err.Error())
		}
		*ext[i] = v
	}
	d.ng, d.blocks = 1, 1
	if p.Groups != nil {
		v, err := p.Groups(md)
		if err != nil {
			return d, x.fail(p.Record, p.Array, err.Error())
		}
		d.ng, d.grouped = v, true
	}
	if p.Blocks != nil {
		v, err := p.Blocks(md)
		if err != nil {
			return d, x.fail(p.Record, p.Array, err.Error())
		}
		d.blocks = v
	}
	if d.im <= 0 || d.jm <= 0 || d.km <= 0 || d.ng <= 0 {
		return d, x.fail(p.Record, p.Array,
			fmt.Sprintf("declared dimensions (%d,%d,%d,%d) must be positive", d.im, d.jm, d.km, d.ng))
	}
	if d.blocks <= 0 {
		return d, x.fail(p.Record, p.Array, fmt.Sprintf("declared band count %d must be positive", d.blocks))
	}
	return d, nil
}

func (d planeDims) shape() []int {
	if d.grouped {
		return []int{d.im, d.jm, d.km, d.ng}
	}
	return []int{d.im, d.jm, d.km}
}

func (p Planes) run(x *exchange) error {
	d, err := p.dims(x)
	if err != nil {
		return err
	}
	shape := d.shape()
	n, err := mesh.Size(shape...)
	if err != nil {
		return x.fail(p.Record, p.Array, err.Error())
	}

	if x.reading() {
		if int64(n)*int64(elemSize(p.Elem)) > x.st.Remaining() {
			return x.fail(p.Record, p.Array,
				fmt.Sprintf("shape %v needs %d bytes, %d remain in file", shape, n*elemSize(p.Elem), x.st.Remaining()))
		}
	}

	bands, err := record.Bands(d.jm, d.blocks)
	if err != nil {
		return x.fail(p.Record, p.Array, err.Error())
	}

	if p.Elem == Int {
		a, err := planeArray(x, p, shape, x.c.Ints)
		if err != nil {
			return err
		}
		return p.each(x, d, bands, func(r *record.Record, field string, b record.Range, k, g int) {
			slab := a.Slab(b.Lo, b.Hi, k, g)
			got := r.IntMatrix(field, slab, d.im, b.Len())
			if r.Reading() && r.Err() == nil {
				copy(slab, got)
			}
		})
	}

	a, err := planeArray(x, p, shape, x.c.Doubles)
	if err != nil {
		return err
	}
	return p.each(x, d, bands, func(r *record.Record, field string, b record.Range, k, g int) {
		slab := a.Slab(b.Lo, b.Hi, k, g)
		got := exchangeReals(r, field, p.Elem, slab, d.im, b.Len())
		if r.Reading() && r.Err() == nil {
			copy(slab, got)
		}
	})
}

// planeArray allocates the target array on read, once dimensions are known,
// or checks the host array against metadata on write.
func planeArray[T mesh.Number](x *exchange, p Planes, shape []int, store map[string]*mesh.Array[T]) (*mesh.Array[T], error) {
	if x.reading() {
		a, err := mesh.New[T](shape...)
		if err != nil {
			return nil, x.fail(p.Record, p.Array, err.Error())
		}
		store[p.Array] = a
		return a, nil
	}
	a, ok := store[p.Array]
	if !ok {
		return nil, x.fail(p.Record, p.Array, "container has no such array")
	}
	if !sameShape(a.Shape(), shape) {
		return nil, x.fail(p.Record, p.Array,
			fmt.Sprintf("array shape %v disagrees with metadata shape %v", a.Shape(), shape))
	}
	return a, nil
}

func (p Planes) each(x *exchange, d planeDims, bands []record.Range,
	fn func(r *record.Record, field string, b record.Range, k, g int)) error {
	for gi := 0; gi < d.ng; gi++ {
		g := gi
		if p.ReverseGroups {
			g = d.ng - 1 - gi
		}
		for k := 0; k < d.km; k++ {
			for bi, b := range bands {
				field := fmt.Sprintf("%s(k=%d,band=%d)", p.Array, k+1, bi+1)
				if d.grouped {
					field = fmt.Sprintf("%s(g=%d,k=%d,band=%d)", p.Array, g+1, k+1, bi+1)
				}
				err := x.st.Record(p.Record, func(r *record.Record) error {
					fn(r, field, b, k, g)
					return nil
				})
				if err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func sameShape(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (s Unsupported) run(x *exchange) error {
	return &record.UnsupportedRecordError{
		File:   x.st.File(),
		Record: s.Record,
		Reason: s.Reason,
	}
}
