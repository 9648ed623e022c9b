package main

import (
	"strings"
)

// Canonicalizer normalizes identifiers taken from request paths.
// Sheet ids are case-insensitive, cell ids and ranges are upper-cased
// so `a1` and `A1` address the same cell.
type Canonicalizer struct {
	replacer *strings.Replacer
}

func NewCanonicalizer() *Canonicalizer {
	return &Canonicalizer{
		// absolute markers are accepted and ignored: `$A$1` is `A1`
		replacer: strings.NewReplacer("$", "", " ", ""),
	}
}

func (c *Canonicalizer) CanonicalizeSheetId(sheetId string) string {
	return strings.ToLower(strings.TrimSpace(sheetId))
}

func (c *Canonicalizer) CanonicalizeCellId(cellId string) string {
	return c.replacer.Replace(strings.ToUpper(strings.TrimSpace(cellId)))
}
