// Package binfile replays an interface-file schema against a record stream.
//
// A Schema is plain data: an ordered list of steps, each naming one record
// (or one family of banded records) and the fields it holds. The same schema
// drives both the read and the write direction, which is what makes a read
// followed by a write reproduce the file byte for byte.
package binfile

import (
	"fmt"

	"github.com/terrapower/armicontrib-dif3d/internal/metadata"
)

// Kind is the storage type of a field.
type Kind int

const (
	// Int is a 32-bit integer word
	Int Kind = iota
	// Float is a 32-bit real word
	Float
	// Double is a 64-bit real word
	Double
	// String is a fixed-width character field
	String
)

func (k Kind) String() string {
	switch k {
	case Int:
		return "int"
	case Float:
		return "float"
	case Double:
		return "double"
	case String:
		return "string"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Field describes one scalar word of a record.
type Field struct {
	Name  string
	Kind  Kind
	Width int
}

// IntField declares a 32-bit integer scalar.
func IntField(name string) Field { return Field{Name: name, Kind: Int} }

// FloatField declares a single-precision scalar.
func FloatField(name string) Field { return Field{Name: name, Kind: Float} }

// DoubleField declares a double-precision scalar.
func DoubleField(name string) Field { return Field{Name: name, Kind: Double} }

// StringField declares a fixed-width character scalar.
func StringField(name string, width int) Field {
	return Field{Name: name, Kind: String, Width: width}
}

// Numbered declares prefix1..prefixN fields of the same kind.
func Numbered(prefix string, n int, kind Kind) []Field {
	out := make([]Field, n)
	for i := range out {
		out[i] = Field{Name: fmt.Sprintf("%s%d", prefix, i+1), Kind: kind}
	}
	return out
}

// Predicate decides from metadata already read whether a step is present.
type Predicate func(md *metadata.Map) bool

// Extent computes a dimension from metadata already read.
type Extent func(md *metadata.Map) (int, error)

// Dim takes an extent from an integer metadata entry.
func Dim(key string) Extent {
	return func(md *metadata.Map) (int, error) { return md.Int(key) }
}

// DimPlus takes an extent from an integer metadata entry plus n.
func DimPlus(key string, n int) Extent {
	return func(md *metadata.Map) (int, error) {
		v, err := md.Int(key)
		return v + n, err
	}
}

// Product multiplies integer metadata entries.
func Product(keys ...string) Extent {
	return func(md *metadata.Map) (int, error) {
		n := 1
		for _, k := range keys {
			v, err := md.Int(k)
			if err != nil {
				return 0, err
			}
			n *= v
		}
		return n, nil
	}
}

// Fixed is a constant extent.
func Fixed(n int) Extent {
	return func(*metadata.Map) (int, error) { return n, nil }
}

// IntEquals holds when key is an integer equal to v.
func IntEquals(key string, v int) Predicate {
	return func(md *metadata.Map) bool {
		got, err := md.Int(key)
		return err == nil && got == v
	}
}

// IntAtLeast holds when key is an integer not below v.
func IntAtLeast(key string, v int) Predicate {
	return func(md *metadata.Map) bool {
		got, err := md.Int(key)
		return err == nil && got >= v
	}
}

// IntBetween holds when key is an integer in [lo, hi].
func IntBetween(key string, lo, hi int) Predicate {
	return func(md *metadata.Map) bool {
		got, err := md.Int(key)
		return err == nil && got >= lo && got <= hi
	}
}

// All holds when every predicate holds.
func All(preds ...Predicate) Predicate {
	return func(md *metadata.Map) bool {
		for _, p := range preds {
			if !p(md) {
				return false
			}
		}
		return true
	}
}

// Any holds when at least one predicate holds.
func Any(preds ...Predicate) Predicate {
	return func(md *metadata.Map) bool {
		for _, p := range preds {
			if p(md) {
				return true
			}
		}
		return false
	}
}

// Step is one entry of a schema: Scalars, Vectors, Planes or Unsupported.
type Step interface {
	recordName() string
	predicate() Predicate
	names() []string
	run(x *exchange) error
}

// Scalars is one record of named scalars stored in container metadata.
type Scalars struct {
	Record string
	Fields []Field
	When   Predicate
}

// Vector is a metadata-sized list inside a Vectors record.
type Vector struct {
	Name  string
	Kind  Kind
	Len   Extent
	Width int
}

// Vectors is one record of consecutive 1-D lists.
type Vectors struct {
	Record string
	Items  []Vector
	When   Predicate
}

// Planes is a 3-D or 4-D array written as one record per (group, plane,
// band). Inside a record the i index varies fastest.
type Planes struct {
	Record string
	Array  string
	// Dims gives the I, J and K extents.
	Dims [3]Extent
	// Blocks is the number of J bands per plane; nil means one.
	Blocks Extent
	// Groups adds a fourth dimension; nil means a 3-D array.
	Groups Extent
	Elem   Kind
	// ReverseGroups stores the highest group first.
	ReverseGroups bool
	When          Predicate
}

// Unsupported is a record the schema knows about but cannot decode.
type Unsupported struct {
	Record string
	Reason string
	When   Predicate
}

func (s Scalars) recordName() string     { return s.Record }
func (s Vectors) recordName() string     { return s.Record }
func (s Planes) recordName() string      { return s.Record }
func (s Unsupported) recordName() string { return s.Record }

func (s Scalars) predicate() Predicate     { return s.When }
func (s Vectors) predicate() Predicate     { return s.When }
func (s Planes) predicate() Predicate      { return s.When }
func (s Unsupported) predicate() Predicate { return s.When }

func (s Scalars) names() []string {
	out := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		out[i] = f.Name
	}
	return out
}

func (s Vectors) names() []string {
	out := make([]string, len(s.Items))
	for i, v := range s.Items {
		out[i] = v.Name
	}
	return out
}

func (s Planes) names() []string      { return []string{s.Array} }
func (s Unsupported) names() []string { return nil }

// Schema is the ordered layout of one interface file.
type Schema struct {
	Name  string
	Steps []Step
}

// Validate checks that the schema is well formed. Names written by
// different steps may repeat only when the steps are guarded by predicates,
// as with alternative layouts selected by a control word.
func (s Schema) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("binfile: schema has no name")
	}
	seen := make(map[string]bool)
	for i, step := range s.Steps {
		if step.recordName() == "" {
			return fmt.Errorf("binfile: schema %s step %d has no record name", s.Name, i)
		}
		inStep := make(map[string]bool)
		for _, n := range step.names() {
			if n == "" {
				return fmt.Errorf("binfile: schema %s record %s has an unnamed field", s.Name, step.recordName())
			}
			if inStep[n] {
				return fmt.Errorf("binfile: schema %s record %s repeats field %s", s.Name, step.recordName(), n)
			}
			inStep[n] = true
			if seen[n] && step.predicate() == nil {
				return fmt.Errorf("binfile: schema %s field %s is declared twice", s.Name, n)
			}
			seen[n] = true
		}
	}
	return nil
}
