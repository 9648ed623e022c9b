package engine

import (
	"errors"
	"fmt"
	"gridCalc/contracts"
	"iter"
	"math"
	"slices"
	"strings"
)

const RangeSeparator = ":"

// MaxRangeCells caps how many cells one range may span: a full sheet column
const MaxRangeCells = 1 << 20

var RangeTooLargeError = errors.New("range spans too many cells")

type RangeResolver struct{}

func NewRangeResolver() *RangeResolver {
	return &RangeResolver{}
}

// Iterate yields the addresses of `START:END` row by row without building the
// list. A token which is not a well-formed range is yielded as the only
// element, so a bare reference takes the same path as a range. Reversed bounds
// yield nothing. A range over MaxRangeCells is refused up front.
func (r *RangeResolver) Iterate(token string) (iter.Seq[string], error) {
	start, end, err := r.ParseRange(token)
	if err != nil {
		return func(yield func(string) bool) {
			yield(token)
		}, nil
	}

	count := CellCount(start, end)
	if count > MaxRangeCells {
		return nil, fmt.Errorf("`%s`: %w", token, RangeTooLargeError)
	}

	return func(yield func(string) bool) {
		if count == 0 {
			return
		}

		for row := start.Row; row <= end.Row; row++ {
			for column := start.Column; column <= end.Column; column++ {
				if !yield(EncodeAddress(row, column)) {
					return
				}
			}
		}
	}, nil
}

// Expand collects Iterate into a list
func (r *RangeResolver) Expand(token string) ([]string, error) {
	addresses, err := r.Iterate(token)
	if err != nil {
		return nil, err
	}

	return slices.Collect(addresses), nil
}

// CellCount is the number of cells between two corners. Reversed bounds count
// zero and a product that does not fit an int saturates.
func CellCount(start CellAddress, end CellAddress) int {
	if start.Row > end.Row || start.Column > end.Column {
		return 0
	}

	rows := end.Row - start.Row + 1
	columns := end.Column - start.Column + 1
	if rows > math.MaxInt/columns {
		return math.MaxInt
	}

	return rows * columns
}

// ParseRange splits `START:END` and decodes both sides
func (r *RangeResolver) ParseRange(token string) (start CellAddress, end CellAddress, err error) {
	startToken, endToken, found := strings.Cut(token, RangeSeparator)
	if !found {
		err = fmt.Errorf("`%s`: %w", token, contracts.InvalidRangeError)
		return
	}

	start, err = DecodeAddress(startToken)
	if err == nil {
		end, err = DecodeAddress(endToken)
	}

	if err != nil {
		err = fmt.Errorf("`%s`: %w: %w", token, contracts.InvalidRangeError, err)
	}

	return
}
