package record_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terrapower/armicontrib-dif3d/internal/record"
)

func TestBand(t *testing.T) {
	tests := []struct {
		extent, blocks int
		want           []record.Range
	}{
		{10, 1, []record.Range{{0, 9}}},
		{10, 3, []record.Range{{0, 3}, {4, 7}, {8, 9}}},
		{9, 3, []record.Range{{0, 2}, {3, 5}, {6, 8}}},
		{5, 4, []record.Range{{0, 1}, {2, 3}, {4, 4}, {5, 4}}},
		{1, 2, []record.Range{{0, 0}, {1, 0}}},
	}
	for _, tc := range tests {
		got, err := record.Bands(tc.extent, tc.blocks)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "extent=%d blocks=%d", tc.extent, tc.blocks)
	}
}

func TestBands_CoverAxis(t *testing.T) {
	for extent := 0; extent <= 40; extent++ {
		for blocks := 1; blocks <= 12; blocks++ {
			bands, err := record.Bands(extent, blocks)
			require.NoError(t, err)
			require.Len(t, bands, blocks)

			next, total := 0, 0
			for _, b := range bands {
				if b.Len() == 0 {
					continue
				}
				require.Equal(t, next, b.Lo, "extent=%d blocks=%d: bands must be contiguous", extent, blocks)
				next = b.Hi + 1
				total += b.Len()
			}
			require.Equal(t, extent, total, "extent=%d blocks=%d", extent, blocks)
			require.Equal(t, extent, next)
		}
	}
}

func TestBands_Invalid(t *testing.T) {
	_, err := record.Bands(10, 0)
	assert.Error(t, err)
	_, err = record.Bands(-1, 2)
	assert.Error(t, err)
}
