package edits

import (
	"gridCalc/contracts"
	"gridCalc/engine"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSheet(t *testing.T, inputs map[string]string) *engine.Sheet {
	sheet := engine.NewSheet()
	for address, input := range inputs {
		value, formula := engine.ParseInput(input)
		if formula != "" {
			require.NoError(t, sheet.SetFormula(address, formula))
		} else {
			require.NoError(t, sheet.SetValue(address, value))
		}
	}

	return sheet
}

func inputsOf(sheet *engine.Sheet) map[string]string {
	inputs := map[string]string{}
	for _, address := range sheet.Addresses() {
		cell, _ := sheet.GetCell(address)
		inputs[address] = cell.Input()
	}

	return inputs
}

func TestSheetEditor_InsertRow(t *testing.T) {
	sheet := newTestSheet(t, map[string]string{
		"A1": "1",
		"A2": "2",
		"A3": "=A1+A2",
		"B1": "=SUM(A1:A2)",
	})

	assert.NoError(t, NewSheetEditor(sheet).InsertRow(1))

	assert.Equal(t, map[string]string{
		"A1": "1",
		"A3": "2",
		"A4": "=A1+A3",
		"B1": "=SUM(A1:A3)",
	}, inputsOf(sheet))
	assert.ElementsMatch(t, []string{"A4", "B1"}, sheet.FindDependents("A3"))
	assert.Empty(t, sheet.FindDependents("A2"))

	evaluator := engine.NewFormulaEvaluator(sheet, 0)
	assert.Equal(t, contracts.NumberValue(3), evaluator.Resolve("A4"))
	assert.Equal(t, contracts.NumberValue(3), evaluator.Resolve("B1"))
}

func TestSheetEditor_Shift_movesStyle(t *testing.T) {
	bold := true
	sheet := newTestSheet(t, map[string]string{"A2": "2"})
	require.NoError(t, sheet.SetStyle("A2", contracts.CellStyle{Bold: &bold}))
	require.NoError(t, sheet.SetStyle("B3", contracts.CellStyle{Bold: &bold}))

	assert.NoError(t, NewSheetEditor(sheet).InsertRow(0))

	assert.Equal(t, []string{"A3", "B4"}, sheet.Addresses())
	cell, _ := sheet.GetCell("A3")
	assert.Equal(t, &bold, cell.Style.Bold)
	assert.Equal(t, contracts.NumberValue(2), cell.Value)

	assert.NoError(t, NewSheetEditor(sheet).DeleteRow(3))
	assert.Equal(t, []string{"A3"}, sheet.Addresses())
}

func TestSheetEditor_DeleteRow(t *testing.T) {
	sheet := newTestSheet(t, map[string]string{
		"A1": "1",
		"A2": "2",
		"A3": "3",
		"B1": "=A1+A3",
		"B2": "=A2*2",
		"C1": "=A2",
	})

	assert.NoError(t, NewSheetEditor(sheet).DeleteRow(1))

	assert.Equal(t, map[string]string{
		"A1": "1",
		"A2": "3",
		"B1": "=A1+A2",
		"C1": "=#REF!",
	}, inputsOf(sheet))

	evaluator := engine.NewFormulaEvaluator(sheet, 0)
	assert.Equal(t, contracts.NumberValue(4), evaluator.Resolve("B1"))
	assert.Equal(t, contracts.ErrorValue, evaluator.Resolve("C1"))
	assert.Equal(t, []string{"B1"}, sheet.FindDependents("A2"))
}

func TestSheetEditor_InsertColumn(t *testing.T) {
	sheet := newTestSheet(t, map[string]string{
		"A1": "1",
		"B1": "2",
		"C1": "=A1*B1",
		"A2": "=B1",
	})

	assert.NoError(t, NewSheetEditor(sheet).InsertColumn(0))

	assert.Equal(t, map[string]string{
		"B1": "1",
		"C1": "2",
		"D1": "=B1*C1",
		"B2": "=C1",
	}, inputsOf(sheet))
}

func TestSheetEditor_DeleteColumn(t *testing.T) {
	sheet := newTestSheet(t, map[string]string{
		"A1": "1",
		"B1": "2",
		"C1": "3",
		"D1": "=SUM(A1:C1)",
		"D2": "=B1+C1",
	})

	assert.NoError(t, NewSheetEditor(sheet).DeleteColumn(1))

	assert.Equal(t, map[string]string{
		"A1": "1",
		"B1": "3",
		"C1": "=SUM(A1:B1)",
		"C2": "=#REF!+B1",
	}, inputsOf(sheet))

	evaluator := engine.NewFormulaEvaluator(sheet, 0)
	assert.Equal(t, contracts.NumberValue(4), evaluator.Resolve("C1"))
	assert.Equal(t, contracts.ErrorValue, evaluator.Resolve("C2"))
}

func TestSheetEditor_Shift_invalidIndex(t *testing.T) {
	sheet := newTestSheet(t, map[string]string{"A1": "1"})
	editor := NewSheetEditor(sheet)

	assert.ErrorIs(t, editor.InsertRow(-1), InvalidIndexError)
	assert.ErrorIs(t, editor.DeleteColumn(-2), InvalidIndexError)
	assert.Equal(t, map[string]string{"A1": "1"}, inputsOf(sheet))
}

func TestSheetEditor_FindReplace(t *testing.T) {
	t.Run("replaces_literals_in_range", func(t *testing.T) {
		sheet := newTestSheet(t, map[string]string{
			"A1": "hello world",
			"A2": "=A1",
			"A3": "world 2",
			"A4": "x1",
			"B1": "world",
		})
		editor := NewSheetEditor(sheet)

		changed, err := editor.FindReplace("A1:A4", "world", "there")
		assert.NoError(t, err)
		assert.Equal(t, 2, changed)

		changed, err = editor.FindReplace("A4", "x", "")
		assert.NoError(t, err)
		assert.Equal(t, 1, changed)

		assert.Equal(t, map[string]string{
			"A1": "hello there",
			"A2": "=A1",
			"A3": "there 2",
			"A4": "1",
			"B1": "world",
		}, inputsOf(sheet))

		cell, _ := sheet.GetCell("A4")
		assert.Equal(t, contracts.NumberValue(1), cell.Value)
	})

	t.Run("empty_find", func(t *testing.T) {
		sheet := newTestSheet(t, map[string]string{"A1": "abc"})

		changed, err := NewSheetEditor(sheet).FindReplace("A1:A1", "", "x")
		assert.NoError(t, err)
		assert.Equal(t, 0, changed)
		assert.Equal(t, map[string]string{"A1": "abc"}, inputsOf(sheet))
	})

	t.Run("invalid_range", func(t *testing.T) {
		sheet := newTestSheet(t, map[string]string{"A1": "abc"})

		_, err := NewSheetEditor(sheet).FindReplace("a1:B2", "a", "b")
		assert.ErrorIs(t, err, contracts.InvalidRangeError)

		_, err = NewSheetEditor(sheet).FindReplace("A1:XFD1048576", "a", "b")
		assert.ErrorIs(t, err, engine.RangeTooLargeError)
	})
}

func TestSheetEditor_RemoveDuplicates(t *testing.T) {
	t.Run("clears_repeated_rows", func(t *testing.T) {
		sheet := newTestSheet(t, map[string]string{
			"A1": "1", "B1": "x",
			"A2": "1", "B2": "x",
			"A3": "2", "B3": "x",
			"A4": "1", "B4": "x",
			"C4": "outside",
			"A6": "=A1", "B6": "x",
			"A7": "=A1", "B7": "x",
		})

		removed, err := NewSheetEditor(sheet).RemoveDuplicates("A1:B7")
		assert.NoError(t, err)
		assert.Equal(t, 3, removed)

		assert.Equal(t, map[string]string{
			"A1": "1", "B1": "x",
			"A3": "2", "B3": "x",
			"C4": "outside",
			"A6": "=A1", "B6": "x",
		}, inputsOf(sheet))
	})

	t.Run("requires_range", func(t *testing.T) {
		sheet := newTestSheet(t, map[string]string{"A1": "1"})

		_, err := NewSheetEditor(sheet).RemoveDuplicates("A1")
		assert.ErrorIs(t, err, contracts.InvalidRangeError)
	})

	t.Run("oversized_range", func(t *testing.T) {
		sheet := newTestSheet(t, map[string]string{"A1": "1", "A2": "1"})

		removed, err := NewSheetEditor(sheet).RemoveDuplicates("A1:XFD1048576")
		assert.ErrorIs(t, err, engine.RangeTooLargeError)
		assert.Equal(t, 0, removed)
		assert.Equal(t, map[string]string{"A1": "1", "A2": "1"}, inputsOf(sheet))
	})
}
