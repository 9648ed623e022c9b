package edits

import (
	"errors"
	"fmt"
	"gridCalc/contracts"
	"gridCalc/engine"
	"strings"
)

const ReferenceErrorMarker = "#REF!"

var InvalidIndexError = errors.New("invalid row or column index")

// SheetEditor runs structural and bulk edits against a cell store. It only
// goes through the store contract, so dependencies are always recomputed by
// the store itself.
type SheetEditor struct {
	store  contracts.CellStore
	ranges *engine.RangeResolver
}

func NewSheetEditor(store contracts.CellStore) *SheetEditor {
	return &SheetEditor{
		store:  store,
		ranges: engine.NewRangeResolver(),
	}
}

// InsertRow inserts an empty row before the zero-based row index
func (e *SheetEditor) InsertRow(index int) error {
	return e.shift(axisShift{rows: true, index: index, delta: 1})
}

// DeleteRow removes the zero-based row index and moves the rows below it up
func (e *SheetEditor) DeleteRow(index int) error {
	return e.shift(axisShift{rows: true, index: index, delta: -1})
}

func (e *SheetEditor) InsertColumn(index int) error {
	return e.shift(axisShift{rows: false, index: index, delta: 1})
}

func (e *SheetEditor) DeleteColumn(index int) error {
	return e.shift(axisShift{rows: false, index: index, delta: -1})
}

// FindReplace replaces every occurrence of find in the literal cells of the
// range and returns how many cells changed. Formula cells are left alone.
func (e *SheetEditor) FindReplace(rangeToken string, find string, replace string) (int, error) {
	addresses, err := e.expand(rangeToken)
	if err != nil || find == "" {
		return 0, err
	}

	changed := 0
	for _, address := range addresses {
		cell, ok := e.store.GetCell(address)
		if !ok || cell.Formula != "" {
			continue
		}

		text := cell.Value.String()
		if !strings.Contains(text, find) {
			continue
		}

		if err = e.store.SetValue(address, engine.ParseLiteral(strings.ReplaceAll(text, find, replace))); err != nil {
			return changed, err
		}
		changed++
	}

	return changed, nil
}

// RemoveDuplicates clears each row of the range whose cells repeat the inputs
// of an earlier row of the same range. Blank rows are ignored. Returns the
// number of cleared rows.
func (e *SheetEditor) RemoveDuplicates(rangeToken string) (int, error) {
	start, end, err := e.ranges.ParseRange(rangeToken)
	if err != nil {
		return 0, err
	}

	if engine.CellCount(start, end) > engine.MaxRangeCells {
		return 0, fmt.Errorf("`%s`: %w", rangeToken, engine.RangeTooLargeError)
	}

	seen := map[string]bool{}
	removed := 0
	for row := start.Row; row <= end.Row; row++ {
		inputs := make([]string, 0, end.Column-start.Column+1)
		blank := true
		for column := start.Column; column <= end.Column; column++ {
			cell, _ := e.store.GetCell(engine.EncodeAddress(row, column))
			inputs = append(inputs, cell.Input())
			blank = blank && cell.IsEmpty()
		}

		if blank {
			continue
		}

		key := strings.Join(inputs, "\x1f")
		if !seen[key] {
			seen[key] = true
			continue
		}

		for column := start.Column; column <= end.Column; column++ {
			if err = e.clear(engine.EncodeAddress(row, column)); err != nil {
				return removed, err
			}
		}
		removed++
	}

	return removed, nil
}

func (e *SheetEditor) expand(rangeToken string) ([]string, error) {
	addresses, err := e.ranges.Expand(rangeToken)
	if err != nil {
		return nil, err
	}

	for _, address := range addresses {
		if !engine.IsAddress(address) {
			return nil, fmt.Errorf("`%s`: %w", rangeToken, contracts.InvalidRangeError)
		}
	}

	return addresses, nil
}

type movedCell struct {
	address string
	cell    contracts.Cell
}

// shift re-keys every cell behind the boundary and rewrites the references of
// every formula, so the same cells stay referenced after the move.
func (e *SheetEditor) shift(s axisShift) error {
	if s.index < 0 {
		return fmt.Errorf("%d: %w", s.index, InvalidIndexError)
	}

	var cleared []string
	var written []movedCell

	for _, address := range e.store.Addresses() {
		cell, ok := e.store.GetCell(address)
		if !ok {
			continue
		}

		position, err := engine.DecodeAddress(address)
		if err != nil {
			return err
		}

		formula := cell.Formula
		if formula != "" {
			cell.Formula = engine.RewriteReferences(formula, s.rewriteReference)
		}

		target, keep := s.move(position)
		if keep && target == position && cell.Formula == formula {
			continue
		}

		cleared = append(cleared, address)
		if keep {
			written = append(written, movedCell{address: target.String(), cell: cell})
		}
	}

	for _, address := range cleared {
		if err := e.clear(address); err != nil {
			return err
		}
	}

	for _, moved := range written {
		if err := e.write(moved.address, moved.cell); err != nil {
			return err
		}
	}

	return nil
}

func (e *SheetEditor) clear(address string) error {
	if err := e.store.SetValue(address, contracts.EmptyValue); err != nil {
		return err
	}

	return e.store.SetStyle(address, contracts.CellStyle{})
}

func (e *SheetEditor) write(address string, cell contracts.Cell) error {
	if err := e.store.SetValue(address, cell.Value); err != nil {
		return err
	}

	if err := e.store.SetStyle(address, cell.Style); err != nil {
		return err
	}

	if cell.Formula == "" {
		return nil
	}

	return e.store.SetFormula(address, cell.Formula)
}

// axisShift moves the rows (or columns) from index onwards by delta.
// A negative delta deletes the row at index itself.
type axisShift struct {
	rows  bool
	index int
	delta int
}

func (s axisShift) move(address engine.CellAddress) (engine.CellAddress, bool) {
	position := &address.Column
	if s.rows {
		position = &address.Row
	}

	switch {
	case s.delta < 0 && *position == s.index:
		return address, false
	case s.delta > 0 && *position >= s.index, s.delta < 0 && *position > s.index:
		*position += s.delta
	}

	return address, true
}

func (s axisShift) rewriteReference(reference string) string {
	address, err := engine.DecodeAddress(reference)
	if err != nil {
		return reference
	}

	target, keep := s.move(address)
	if !keep {
		return ReferenceErrorMarker
	}

	return target.String()
}
