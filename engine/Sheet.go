package engine

import (
	"fmt"
	"gridCalc/contracts"
)

// Sheet is the in-memory cell store. It is the single source of truth for
// values and formulas; evaluation only reads it.
type Sheet struct {
	cells   map[string]*contracts.Cell
	tracker *DependencyTracker
}

func NewSheet() *Sheet {
	return &Sheet{
		cells:   map[string]*contracts.Cell{},
		tracker: NewDependencyTracker(),
	}
}

func (s *Sheet) GetCell(address string) (contracts.Cell, bool) {
	cell, ok := s.cells[address]
	if !ok {
		return contracts.Cell{}, false
	}

	cellCopy := *cell
	cellCopy.Dependencies = append([]string(nil), cell.Dependencies...)
	return cellCopy, true
}

// SetValue stores a literal and drops any formula the cell had. The style is kept.
func (s *Sheet) SetValue(address string, value contracts.Value) error {
	if err := s.validate(address); err != nil {
		return err
	}

	s.tracker.SetDependsOn(address, nil)

	cell := &contracts.Cell{Value: value}
	if previous, ok := s.cells[address]; ok {
		cell.Style = previous.Style
	}
	s.put(address, cell)

	return nil
}

// SetStyle replaces the style of the cell. A zero style removes it.
func (s *Sheet) SetStyle(address string, style contracts.CellStyle) error {
	if err := s.validate(address); err != nil {
		return err
	}

	cell, ok := s.cells[address]
	if !ok {
		cell = &contracts.Cell{}
	}

	cell.Style = style
	s.put(address, cell)

	return nil
}

// SetFormula stores formula text and recomputes its dependencies from scratch.
// The cell value is kept as a last-known cache and never read for display.
// Text without the `=` prefix is stored as a literal, empty text clears the formula.
func (s *Sheet) SetFormula(address string, formula string) error {
	if err := s.validate(address); err != nil {
		return err
	}

	if formula != "" && !IsFormula(formula) {
		return s.SetValue(address, ParseLiteral(formula))
	}

	cell, ok := s.cells[address]
	if !ok {
		cell = &contracts.Cell{}
	}

	cell.Formula = formula
	cell.Dependencies = nil
	if formula != "" {
		cell.Dependencies = s.tracker.ExtractReferences(formula)
	}
	s.tracker.SetDependsOn(address, cell.Dependencies)
	s.put(address, cell)

	return nil
}

// put drops cells left with neither content nor style
func (s *Sheet) put(address string, cell *contracts.Cell) {
	if cell.IsEmpty() && cell.Style.IsZero() {
		delete(s.cells, address)
		return
	}

	s.cells[address] = cell
}

// Clone copies the cells and rebuilds the dependency index of the copy
func (s *Sheet) Clone() *Sheet {
	clone := NewSheet()
	for address, cell := range s.cells {
		cellCopy := *cell
		cellCopy.Dependencies = append([]string(nil), cell.Dependencies...)
		clone.cells[address] = &cellCopy
		clone.tracker.SetDependsOn(address, cellCopy.Dependencies)
	}

	return clone
}

// Restore makes the sheet hold what snapshot holds. Holders of the sheet
// pointer see the restored cells.
func (s *Sheet) Restore(snapshot *Sheet) {
	restored := snapshot.Clone()
	s.cells = restored.cells
	s.tracker = restored.tracker
}

// Addresses lists populated cells row by row
func (s *Sheet) Addresses() []string {
	addresses := make([]string, 0, len(s.cells))
	for address := range s.cells {
		addresses = append(addresses, address)
	}
	SortAddresses(addresses)

	return addresses
}

func (s *Sheet) Len() int {
	return len(s.cells)
}

func (s *Sheet) FindDependents(address string) []string {
	return s.tracker.FindDependents(address)
}

func (s *Sheet) FindAllDependents(address string) []string {
	return s.tracker.FindAllDependents(address)
}

func (s *Sheet) ExtractReferences(formula string) []string {
	return s.tracker.ExtractReferences(formula)
}

func (s *Sheet) validate(address string) error {
	if _, err := DecodeAddress(address); err != nil {
		return fmt.Errorf("set cell: %w", err)
	}

	return nil
}
