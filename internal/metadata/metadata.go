// Package metadata holds the ordered scalar block decoded from the head of an
// interface file.
package metadata

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Entry is one named scalar. Value is an int, float32, float64 or string.
type Entry struct {
	Name  string
	Value any
}

// Map is an insertion-ordered name to scalar mapping.
type Map struct {
	keys   []string
	values map[string]any
}

// New returns an empty map.
func New() *Map {
	return &Map{values: make(map[string]any)}
}

// Len returns the number of entries.
func (m *Map) Len() int { return len(m.keys) }

// Keys returns the names in insertion order.
func (m *Map) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Entries returns all entries in insertion order.
func (m *Map) Entries() []Entry {
	out := make([]Entry, 0, len(m.keys))
	for _, k := range m.keys {
		out = append(out, Entry{Name: k, Value: m.values[k]})
	}
	return out
}

// Has reports whether name is present.
func (m *Map) Has(name string) bool {
	_, ok := m.values[name]
	return ok
}

// Get returns the raw value stored under name.
func (m *Map) Get(name string) (any, bool) {
	v, ok := m.values[name]
	return v, ok
}

func (m *Map) set(name string, v any) {
	if _, ok := m.values[name]; !ok {
		m.keys = append(m.keys, name)
	}
	m.values[name] = v
}

// SetInt stores an integer word. An existing name keeps its position.
func (m *Map) SetInt(name string, v int) { m.set(name, v) }

// SetFloat stores a single-precision real.
func (m *Map) SetFloat(name string, v float32) { m.set(name, v) }

// SetDouble stores a double-precision real.
func (m *Map) SetDouble(name string, v float64) { m.set(name, v) }

// SetString stores a character field.
func (m *Map) SetString(name string, v string) { m.set(name, v) }

// Set stores any supported scalar.
func (m *Map) Set(name string, v any) error {
	switch x := v.(type) {
	case int:
		m.SetInt(name, x)
	case int32:
		m.SetInt(name, int(x))
	case float32:
		m.SetFloat(name, x)
	case float64:
		m.SetDouble(name, x)
	case string:
		m.SetString(name, x)
	default:
		return fmt.Errorf("metadata %s: unsupported value type %T", name, v)
	}
	return nil
}

// Int returns the integer stored under name.
func (m *Map) Int(name string) (int, error) {
	v, err := m.lookup(name)
	if err != nil {
		return 0, err
	}
	i, ok := v.(int)
	if !ok {
		return 0, typeError(name, "int", v)
	}
	return i, nil
}

// Float returns the single-precision real stored under name.
func (m *Map) Float(name string) (float32, error) {
	v, err := m.lookup(name)
	if err != nil {
		return 0, err
	}
	f, ok := v.(float32)
	if !ok {
		return 0, typeError(name, "float32", v)
	}
	return f, nil
}

// Double returns the double-precision real stored under name.
func (m *Map) Double(name string) (float64, error) {
	v, err := m.lookup(name)
	if err != nil {
		return 0, err
	}
	d, ok := v.(float64)
	if !ok {
		return 0, typeError(name, "float64", v)
	}
	return d, nil
}

// String returns the character field stored under name.
func (m *Map) String(name string) (string, error) {
	v, err := m.lookup(name)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", typeError(name, "string", v)
	}
	return s, nil
}

// Number returns any numeric entry widened to float64.
func (m *Map) Number(name string) (float64, error) {
	v, err := m.lookup(name)
	if err != nil {
		return 0, err
	}
	switch x := v.(type) {
	case int:
		return float64(x), nil
	case float32:
		return float64(x), nil
	case float64:
		return x, nil
	default:
		return 0, typeError(name, "number", v)
	}
}

// IntOr returns the integer under name, or def when it is absent or not an int.
func (m *Map) IntOr(name string, def int) int {
	if v, err := m.Int(name); err == nil {
		return v
	}
	return def
}

// Clone returns an independent copy.
func (m *Map) Clone() *Map {
	out := New()
	for _, k := range m.keys {
		out.set(k, m.values[k])
	}
	return out
}

func (m *Map) lookup(name string) (any, error) {
	v, ok := m.values[name]
	if !ok {
		return nil, fmt.Errorf("metadata %s is not set", name)
	}
	return v, nil
}

func typeError(name, want string, got any) error {
	return fmt.Errorf("metadata %s holds %T, not %s", name, got, want)
}

// MarshalYAML renders the map as an ordered YAML mapping. Character fields
// are emitted with trailing blanks removed.
func (m *Map) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, k := range m.keys {
		v := m.values[k]
		if s, ok := v.(string); ok {
			v = strings.TrimRight(s, " ")
		}
		var val yaml.Node
		if err := val.Encode(v); err != nil {
			return nil, fmt.Errorf("metadata %s: %w", k, err)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
			&val,
		)
	}
	return node, nil
}
