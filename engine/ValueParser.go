package engine

import (
	"gridCalc/contracts"
	"strconv"
	"strings"
)

const FormulaPrefix = "="

func IsFormula(input string) bool {
	return strings.HasPrefix(input, FormulaPrefix)
}

// ParseInput splits raw cell input into a formula or a literal value.
// Numeric text becomes a number, blank text the empty value.
func ParseInput(input string) (value contracts.Value, formula string) {
	if IsFormula(input) {
		return contracts.EmptyValue, input
	}

	return ParseLiteral(input), ""
}

func ParseLiteral(input string) contracts.Value {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return contracts.EmptyValue
	}

	if number, err := strconv.ParseFloat(trimmed, 64); err == nil && isFinite(number) && !hasWordLiteral(trimmed) {
		return contracts.NumberValue(number)
	}

	return contracts.TextValue(input)
}

// hasWordLiteral rejects spellings ParseFloat accepts but a user means as text (Inf, NaN, 0x1p3)
func hasWordLiteral(s string) bool {
	return strings.ContainsAny(s, "iInNxXpP_")
}

// SetInput writes raw cell input to the store: formulas through SetFormula,
// everything else as a parsed literal.
func SetInput(store contracts.CellStore, address string, input string) error {
	value, formula := ParseInput(input)
	if formula != "" {
		return store.SetFormula(address, formula)
	}

	return store.SetValue(address, value)
}
