// Package mesh provides dense column-major arrays over the solver's
// (I, J, K[, G]) mesh.
package mesh

import (
	"fmt"
	"math"
)

// Index addresses one mesh cell, zero-based.
type Index struct {
	I, J, K int
}

func (x Index) String() string { return fmt.Sprintf("(%d,%d,%d)", x.I, x.J, x.K) }

// Number is the element type of an Array.
type Number interface {
	~int32 | ~float32 | ~float64
}

// Array is a dense array whose first index varies fastest.
type Array[T Number] struct {
	shape []int
	data  []T
}

// New allocates a zero-filled array. Every extent must be positive.
func New[T Number](shape ...int) (*Array[T], error) {
	n, err := Size(shape...)
	if err != nil {
		return nil, err
	}
	return &Array[T]{shape: append([]int(nil), shape...), data: make([]T, n)}, nil
}

// FromSlice wraps data with the given shape; len(data) must match.
func FromSlice[T Number](data []T, shape ...int) (*Array[T], error) {
	n, err := Size(shape...)
	if err != nil {
		return nil, err
	}
	if len(data) != n {
		return nil, fmt.Errorf("mesh: shape %v needs %d values, got %d", shape, n, len(data))
	}
	return &Array[T]{shape: append([]int(nil), shape...), data: data}, nil
}

// Size returns the element count implied by shape.
func Size(shape ...int) (int, error) {
	if len(shape) == 0 {
		return 0, fmt.Errorf("mesh: empty shape")
	}
	n := 1
	for _, d := range shape {
		if d <= 0 {
			return 0, fmt.Errorf("mesh: non-positive extent in shape %v", shape)
		}
		if n > math.MaxInt/d {
			return 0, fmt.Errorf("mesh: shape %v overflows", shape)
		}
		n *= d
	}
	return n, nil
}

// Shape returns a copy of the extents.
func (a *Array[T]) Shape() []int { return append([]int(nil), a.shape...) }

// Rank returns the number of dimensions.
func (a *Array[T]) Rank() int { return len(a.shape) }

// Dim returns extent d, or 1 past the rank so 3-D arrays read as one group.
func (a *Array[T]) Dim(d int) int {
	if d >= len(a.shape) {
		return 1
	}
	return a.shape[d]
}

// Len returns the number of elements.
func (a *Array[T]) Len() int { return len(a.data) }

// Data exposes the backing slice in storage order.
func (a *Array[T]) Data() []T { return a.data }

func (a *Array[T]) offset(idx []int) (int, error) {
	if len(idx) != len(a.shape) {
		return 0, fmt.Errorf("mesh: index %v has rank %d, array has rank %d", idx, len(idx), len(a.shape))
	}
	off, stride := 0, 1
	for d, x := range idx {
		if x < 0 || x >= a.shape[d] {
			return 0, fmt.Errorf("mesh: index %v out of bounds for shape %v", idx, a.shape)
		}
		off += x * stride
		stride *= a.shape[d]
	}
	return off, nil
}

// At returns the element at idx.
func (a *Array[T]) At(idx ...int) (T, error) {
	off, err := a.offset(idx)
	if err != nil {
		var zero T
		return zero, err
	}
	return a.data[off], nil
}

// Set stores v at idx.
func (a *Array[T]) Set(v T, idx ...int) error {
	off, err := a.offset(idx)
	if err != nil {
		return err
	}
	a.data[off] = v
	return nil
}

// Slab returns the contiguous run of elements for j in [lo, hi] of plane k
// of group g: all I values of each j, i fastest. The slice aliases the array.
func (a *Array[T]) Slab(lo, hi, k, g int) []T {
	im, jm, km := a.Dim(0), a.Dim(1), a.Dim(2)
	if hi < lo {
		return a.data[:0]
	}
	start := im * (lo + jm*(k+km*g))
	end := im * (hi + 1 + jm*(k+km*g))
	return a.data[start:end]
}

// Gather returns the values of group g at cells, widened to float64.
func (a *Array[T]) Gather(cells []Index, g int) ([]float64, error) {
	out := make([]float64, 0, len(cells))
	for _, c := range cells {
		idx := []int{c.I, c.J, c.K}
		if a.Rank() == 4 {
			idx = append(idx, g)
		} else if g != 0 {
			return nil, fmt.Errorf("mesh: group %d requested from a %d-D array", g, a.Rank())
		}
		v, err := a.At(idx...)
		if err != nil {
			return nil, err
		}
		out = append(out, float64(v))
	}
	return out, nil
}

// Cells returns every index whose value satisfies match, in storage order.
// Only the first three dimensions are scanned.
func (a *Array[T]) Cells(match func(T) bool) []Index {
	im, jm, km := a.Dim(0), a.Dim(1), a.Dim(2)
	var out []Index
	for k := 0; k < km; k++ {
		for j := 0; j < jm; j++ {
			for i := 0; i < im; i++ {
				if match(a.data[i+im*(j+jm*k)]) {
					out = append(out, Index{I: i, J: j, K: k})
				}
			}
		}
	}
	return out
}
