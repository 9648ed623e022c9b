package engine

import (
	"fmt"
	"gridCalc/contracts"
	"math"
	"sort"
)

const alphabetSize = 26

// CellAddress is a zero-based (row, column) pair
type CellAddress struct {
	Row    int
	Column int
}

func (a CellAddress) String() string {
	return EncodeAddress(a.Row, a.Column)
}

// EncodeAddress renders a zero-based coordinate as "A1" style identifier.
// Columns use bijective base-26 (A..Z, AA..ZZ, AAA..), rows are printed one-based.
// Negative coordinates have no identifier and encode to "", and so does a
// coordinate of math.MaxInt, whose one-based form does not fit an int.
func EncodeAddress(row int, column int) string {
	if row < 0 || column < 0 || row == math.MaxInt || column == math.MaxInt {
		return ""
	}

	return ColumnLabel(column) + fmt.Sprint(row+1)
}

// ColumnLabel returns the letters for a zero-based column index: 0 -> A, 25 -> Z, 26 -> AA
func ColumnLabel(column int) string {
	if column < 0 {
		return ""
	}

	var label [16]byte
	position := len(label)
	for n := column; n >= 0; n = n/alphabetSize - 1 {
		position--
		label[position] = byte('A' + n%alphabetSize)
	}

	return string(label[position:])
}

// DecodeAddress parses the canonical form `[A-Z]+[1-9][0-9]*` and nothing else
func DecodeAddress(address string) (CellAddress, error) {
	invalid := func() (CellAddress, error) {
		return CellAddress{}, fmt.Errorf("`%s`: %w", address, contracts.InvalidAddressError)
	}

	index := 0
	column := 0
	for ; index < len(address) && address[index] >= 'A' && address[index] <= 'Z'; index++ {
		letter := int(address[index]-'A') + 1
		if column > (math.MaxInt-letter)/alphabetSize {
			return invalid()
		}
		column = column*alphabetSize + letter
	}

	if index == 0 || index == len(address) || address[index] == '0' {
		return invalid()
	}

	row := 0
	for ; index < len(address); index++ {
		digit := address[index]
		if digit < '0' || digit > '9' {
			return invalid()
		}
		if row > (math.MaxInt-int(digit-'0'))/10 {
			return invalid()
		}
		row = row*10 + int(digit-'0')
	}

	return CellAddress{Row: row - 1, Column: column - 1}, nil
}

func IsAddress(address string) bool {
	_, err := DecodeAddress(address)
	return err == nil
}

// SortAddresses orders identifiers row-major; undecodable ones go last in lexical order
func SortAddresses(addresses []string) {
	sort.SliceStable(addresses, func(i, j int) bool {
		left, leftErr := DecodeAddress(addresses[i])
		right, rightErr := DecodeAddress(addresses[j])

		switch {
		case leftErr != nil && rightErr != nil:
			return addresses[i] < addresses[j]
		case leftErr != nil:
			return false
		case rightErr != nil:
			return true
		case left.Row != right.Row:
			return left.Row < right.Row
		default:
			return left.Column < right.Column
		}
	})
}
