package main

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestCanonicalizer_CanonicalizeSheetId(t *testing.T) {
	canonicalizer := NewCanonicalizer()

	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, "", canonicalizer.CanonicalizeSheetId(""))
	})

	t.Run("lower case", func(t *testing.T) {
		assert.Equal(t, "sheet1", canonicalizer.CanonicalizeSheetId("Sheet1"))
		assert.Equal(t, "sheet1", canonicalizer.CanonicalizeSheetId(" SHEET1 "))
		assert.Equal(t, "my_sheet", canonicalizer.CanonicalizeSheetId("my_sheet"))
	})
}

func TestCanonicalizer_CanonicalizeCellId(t *testing.T) {
	canonicalizer := NewCanonicalizer()

	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, "", canonicalizer.CanonicalizeCellId(""))
	})

	t.Run("Simple cell names", func(t *testing.T) {
		assert.Equal(t, "A1", canonicalizer.CanonicalizeCellId("A1"))
		assert.Equal(t, "A1", canonicalizer.CanonicalizeCellId("a1"))
		assert.Equal(t, "AB12", canonicalizer.CanonicalizeCellId(" aB12\t"))
	})

	t.Run("Absolute references", func(t *testing.T) {
		assert.Equal(t, "A1", canonicalizer.CanonicalizeCellId("$A$1"))
		assert.Equal(t, "B2", canonicalizer.CanonicalizeCellId("b$2"))
	})

	t.Run("Ranges", func(t *testing.T) {
		assert.Equal(t, "A1:B2", canonicalizer.CanonicalizeCellId("a1:b2"))
		assert.Equal(t, "A1:B2", canonicalizer.CanonicalizeCellId("a1 : b2"))
	})

	t.Run("Invalid names are kept for validation", func(t *testing.T) {
		assert.Equal(t, "CELL_1", canonicalizer.CanonicalizeCellId("cell_1"))
		assert.Equal(t, "A01", canonicalizer.CanonicalizeCellId("a01"))
	})
}
