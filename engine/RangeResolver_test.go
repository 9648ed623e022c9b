package engine

import (
	"gridCalc/contracts"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRangeResolver_Expand(t *testing.T) {
	resolver := NewRangeResolver()
	expand := func(token string) []string {
		addresses, err := resolver.Expand(token)
		require.NoError(t, err, token)
		return addresses
	}

	t.Run("row_major", func(t *testing.T) {
		assert.Equal(t,
			[]string{"A1", "B1", "A2", "B2", "A3", "B3"},
			expand("A1:B3"),
		)
	})

	t.Run("single_column", func(t *testing.T) {
		assert.Equal(t, []string{"D2", "D3", "D4", "D5"}, expand("D2:D5"))
	})

	t.Run("single_cell_range", func(t *testing.T) {
		assert.Equal(t, []string{"C3"}, expand("C3:C3"))
	})

	t.Run("bare_reference", func(t *testing.T) {
		assert.Equal(t, []string{"A1"}, expand("A1"))
	})

	t.Run("undecodable_side", func(t *testing.T) {
		assert.Equal(t, []string{"A1:"}, expand("A1:"))
		assert.Equal(t, []string{"a1:B2"}, expand("a1:B2"))
		assert.Equal(t, []string{""}, expand(""))
	})

	t.Run("reversed_bounds", func(t *testing.T) {
		assert.Empty(t, expand("B3:A1"))
		assert.Empty(t, expand("A3:A1"))
		assert.Empty(t, expand("B1:A3"))
	})
}

func TestRangeResolver_Iterate(t *testing.T) {
	resolver := NewRangeResolver()

	t.Run("lazy", func(t *testing.T) {
		addresses, err := resolver.Iterate("A1:XFD1048576")
		assert.ErrorIs(t, err, RangeTooLargeError)
		assert.Nil(t, addresses)

		addresses, err = resolver.Iterate("A1:A1048576")
		require.NoError(t, err)

		var visited []string
		for address := range addresses {
			visited = append(visited, address)
			if len(visited) == 3 {
				break
			}
		}
		assert.Equal(t, []string{"A1", "A2", "A3"}, visited)
	})

	t.Run("cap", func(t *testing.T) {
		_, err := resolver.Iterate("A1:A1048577")
		assert.ErrorIs(t, err, RangeTooLargeError)

		_, err = resolver.Expand("B1:XFD1048576")
		assert.ErrorIs(t, err, RangeTooLargeError)

		_, err = resolver.Iterate("B1:A1048577")
		assert.NoError(t, err)
	})
}

func TestCellCount(t *testing.T) {
	assert.Equal(t, 6, CellCount(CellAddress{Row: 0, Column: 0}, CellAddress{Row: 2, Column: 1}))
	assert.Equal(t, 0, CellCount(CellAddress{Row: 2, Column: 0}, CellAddress{Row: 0, Column: 1}))
	assert.Equal(t, math.MaxInt, CellCount(CellAddress{}, CellAddress{Row: math.MaxInt - 1, Column: math.MaxInt - 1}))
}

func TestRangeResolver_ParseRange(t *testing.T) {
	resolver := NewRangeResolver()

	start, end, err := resolver.ParseRange("B2:C10")
	assert.NoError(t, err)
	assert.Equal(t, CellAddress{Row: 1, Column: 1}, start)
	assert.Equal(t, CellAddress{Row: 9, Column: 2}, end)

	_, _, err = resolver.ParseRange("B2")
	assert.ErrorIs(t, err, contracts.InvalidRangeError)

	_, _, err = resolver.ParseRange("B2:x")
	assert.ErrorIs(t, err, contracts.InvalidRangeError)
	assert.ErrorIs(t, err, contracts.InvalidAddressError)
}
