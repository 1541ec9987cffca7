package binfile

import (
	"fmt"

	"github.com/terrapower/armicontrib-dif3d/internal/mesh"
	"github.com/terrapower/armicontrib-dif3d/internal/metadata"
)

// Container is the in-memory content of one interface file.
type Container struct {
	Format   string
	Schema   Schema
	Metadata *metadata.Map
	Doubles  map[string]*mesh.Array[float64]
	Ints     map[string]*mesh.Array[int32]
	Strings  map[string][]string
	// Trailing counts the bytes after the last record the schema reads.
	// WriteBinary never reproduces them.
	Trailing int64
}

// NewContainer returns an empty container for schema, ready to be filled by
// a host before WriteBinary.
func NewContainer(schema Schema) *Container {
	return &Container{
		Format:   schema.Name,
		Schema:   schema,
		Metadata: metadata.New(),
		Doubles:  make(map[string]*mesh.Array[float64]),
		Ints:     make(map[string]*mesh.Array[int32]),
		Strings:  make(map[string][]string),
	}
}

// Double returns the real-valued array stored under name.
func (c *Container) Double(name string) (*mesh.Array[float64], error) {
	a, ok := c.Doubles[name]
	if !ok {
		return nil, fmt.Errorf("%s has no array %s", c.Format, name)
	}
	return a, nil
}

// Int returns the integer array stored under name.
func (c *Container) Int(name string) (*mesh.Array[int32], error) {
	a, ok := c.Ints[name]
	if !ok {
		return nil, fmt.Errorf("%s has no integer array %s", c.Format, name)
	}
	return a, nil
}

// StringList returns the character list stored under name. Lists of
// length zero are never stored, so a missing name yields an empty list.
func (c *Container) StringList(name string) []string {
	return c.Strings[name]
}
