package record

import "fmt"

// Range is an inclusive, zero-based index range. Lo > Hi denotes an empty range.
type Range struct {
	Lo int
	Hi int
}

// Len returns the number of indices in the range.
func (r Range) Len() int {
	if r.Hi < r.Lo {
		return 0
	}
	return r.Hi - r.Lo + 1
}

// Band returns the inclusive bounds of the zero-based block of an axis of
// length extent split into blocks bands. All bands but the last hold
// (extent-1)/blocks+1 indices; the last takes the remainder and trailing
// bands may be empty. blocks must be at least 1.
func Band(block, extent, blocks int) (lo, hi int) {
	size := (extent-1)/blocks + 1
	lo = block * size
	hi = min(extent, (block+1)*size) - 1
	return lo, hi
}

// Bands returns every band of the axis in order. Their union is [0, extent)
// and they are pairwise disjoint.
func Bands(extent, blocks int) ([]Range, error) {
	if extent < 0 {
		return nil, fmt.Errorf("band: negative extent %d", extent)
	}
	if blocks < 1 {
		return nil, fmt.Errorf("band: block count must be positive, got %d", blocks)
	}
	out := make([]Range, blocks)
	for b := range blocks {
		lo, hi := Band(b, extent, blocks)
		if hi < lo {
			lo = min(lo, extent)
			hi = lo - 1
		}
		out[b] = Range{Lo: lo, Hi: hi}
	}
	return out, nil
}
