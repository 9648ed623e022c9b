package main

import (
	"fmt"
	"gridCalc/contracts"
	"gridCalc/edits"
	"gridCalc/engine"
	"log/slog"
	"sync"
)

// SheetRepository keeps every sheet in memory. Each sheet has its own lock:
// reads share it, writes and structural edits take it exclusively.
type SheetRepository struct {
	mutex             sync.RWMutex
	sheets            map[string]*sheetEntry
	canonicalizer     contracts.Canonicalizer
	webhookDispatcher contracts.WebhookDispatcher
	maxDepth          int
	historyLimit      int
	logger            *slog.Logger
}

type sheetEntry struct {
	mutex     sync.RWMutex
	sheet     *engine.Sheet
	evaluator *engine.FormulaEvaluator
	editor    *edits.SheetEditor
	history   *engine.History
}

func NewSheetRepository(
	canonicalizer contracts.Canonicalizer, webhookDispatcher contracts.WebhookDispatcher,
	maxDepth int, historyLimit int, logger *slog.Logger,
) *SheetRepository {
	return &SheetRepository{
		sheets:            map[string]*sheetEntry{},
		canonicalizer:     canonicalizer,
		webhookDispatcher: webhookDispatcher,
		maxDepth:          maxDepth,
		historyLimit:      historyLimit,
		logger:            logger,
	}
}

// SetCell stores the input typed into the cell and returns it with its
// resolved result. Subscribers of the cell and of every cell depending on
// it are notified with fresh results.
func (s *SheetRepository) SetCell(sheetId string, cellId string, input string) (cell *contracts.CellView, err error) {
	sheetId = s.canonicalizer.CanonicalizeSheetId(sheetId)
	cellId = s.canonicalizer.CanonicalizeCellId(cellId)

	if _, err = engine.DecodeAddress(cellId); err != nil {
		return nil, fmt.Errorf("cell_id `%s`: %w", cellId, err)
	}

	entry := s.getOrCreateSheet(sheetId)

	entry.mutex.Lock()
	before := entry.sheet.Clone()
	if err = engine.SetInput(entry.sheet, cellId, input); err != nil {
		entry.mutex.Unlock()
		return nil, err
	}
	entry.history.Record(before)

	cell = entry.view(cellId)
	changed := []*contracts.CellView{cell}
	for _, dependantCellId := range entry.sheet.FindAllDependents(cellId) {
		changed = append(changed, entry.view(dependantCellId))
	}
	entry.mutex.Unlock()

	s.logger.Debug("cell updated", "sheet", sheetId, "cell", cellId, "dependents", len(changed)-1)

	if s.webhookDispatcher != nil {
		s.webhookDispatcher.Notify(sheetId, changed)
	}

	return cell, nil
}

// SetStyle merges the set fields of style into the style of the cell
func (s *SheetRepository) SetStyle(sheetId string, cellId string, style contracts.CellStyle) (*contracts.CellView, error) {
	sheetId = s.canonicalizer.CanonicalizeSheetId(sheetId)
	cellId = s.canonicalizer.CanonicalizeCellId(cellId)

	if _, err := engine.DecodeAddress(cellId); err != nil {
		return nil, fmt.Errorf("cell_id `%s`: %w", cellId, err)
	}

	entry := s.getOrCreateSheet(sheetId)

	entry.mutex.Lock()
	defer entry.mutex.Unlock()

	cell, _ := entry.sheet.GetCell(cellId)
	before := entry.sheet.Clone()
	if err := entry.sheet.SetStyle(cellId, cell.Style.Merge(style)); err != nil {
		return nil, err
	}
	entry.history.Record(before)

	s.logger.Debug("cell styled", "sheet", sheetId, "cell", cellId)

	return entry.view(cellId), nil
}

// Undo reverts the last change of the sheet and returns its cells
func (s *SheetRepository) Undo(sheetId string) (*contracts.CellViewList, error) {
	return s.travel(sheetId, "undo", (*engine.History).Undo)
}

// Redo reapplies the last undone change of the sheet and returns its cells
func (s *SheetRepository) Redo(sheetId string) (*contracts.CellViewList, error) {
	return s.travel(sheetId, "redo", (*engine.History).Redo)
}

func (s *SheetRepository) travel(
	sheetId string, operation string, step func(history *engine.History, sheet *engine.Sheet) bool,
) (*contracts.CellViewList, error) {
	sheetId = s.canonicalizer.CanonicalizeSheetId(sheetId)

	entry, err := s.getSheet(sheetId)
	if err != nil {
		return nil, err
	}

	entry.mutex.Lock()
	defer entry.mutex.Unlock()

	if !step(entry.history, entry.sheet) {
		return nil, fmt.Errorf("%s %s: %w", operation, sheetId, contracts.HistoryEmptyError)
	}

	s.logger.Info(operation, "sheet", sheetId, "undo", entry.history.UndoLen(), "redo", entry.history.RedoLen())

	return entry.list(), nil
}

func (s *SheetRepository) GetCell(sheetId string, cellId string) (*contracts.CellView, error) {
	sheetId = s.canonicalizer.CanonicalizeSheetId(sheetId)
	cellId = s.canonicalizer.CanonicalizeCellId(cellId)

	entry, err := s.getSheet(sheetId)
	if err != nil {
		return nil, err
	}

	entry.mutex.RLock()
	defer entry.mutex.RUnlock()

	if _, ok := entry.sheet.GetCell(cellId); !ok {
		return nil, fmt.Errorf("%s: %w", cellId, contracts.CellNotFoundError)
	}

	return entry.view(cellId), nil
}

func (s *SheetRepository) GetCellList(sheetId string) (*contracts.CellViewList, error) {
	sheetId = s.canonicalizer.CanonicalizeSheetId(sheetId)

	entry, err := s.getSheet(sheetId)
	if err != nil {
		return nil, err
	}

	entry.mutex.RLock()
	defer entry.mutex.RUnlock()

	return entry.list(), nil
}

// GetDependents lists the cells whose formula references the cell directly
func (s *SheetRepository) GetDependents(sheetId string, cellId string) ([]string, error) {
	sheetId = s.canonicalizer.CanonicalizeSheetId(sheetId)
	cellId = s.canonicalizer.CanonicalizeCellId(cellId)

	if _, err := engine.DecodeAddress(cellId); err != nil {
		return nil, fmt.Errorf("cell_id `%s`: %w", cellId, err)
	}

	entry, err := s.getSheet(sheetId)
	if err != nil {
		return nil, err
	}

	entry.mutex.RLock()
	defer entry.mutex.RUnlock()

	return entry.sheet.FindDependents(cellId), nil
}

func (s *SheetRepository) InsertRow(sheetId string, cellId string) error {
	return s.shift(sheetId, cellId, "insert row", func(editor *edits.SheetEditor, address engine.CellAddress) error {
		return editor.InsertRow(address.Row)
	})
}

func (s *SheetRepository) DeleteRow(sheetId string, cellId string) error {
	return s.shift(sheetId, cellId, "delete row", func(editor *edits.SheetEditor, address engine.CellAddress) error {
		return editor.DeleteRow(address.Row)
	})
}

func (s *SheetRepository) InsertColumn(sheetId string, cellId string) error {
	return s.shift(sheetId, cellId, "insert column", func(editor *edits.SheetEditor, address engine.CellAddress) error {
		return editor.InsertColumn(address.Column)
	})
}

func (s *SheetRepository) DeleteColumn(sheetId string, cellId string) error {
	return s.shift(sheetId, cellId, "delete column", func(editor *edits.SheetEditor, address engine.CellAddress) error {
		return editor.DeleteColumn(address.Column)
	})
}

func (s *SheetRepository) FindReplace(sheetId string, rangeToken string, find string, replace string) (changed int, err error) {
	err = s.edit(sheetId, func(editor *edits.SheetEditor) (err error) {
		changed, err = editor.FindReplace(s.canonicalizer.CanonicalizeCellId(rangeToken), find, replace)
		return
	})

	s.logger.Info("find and replace", "sheet", sheetId, "range", rangeToken, "changed", changed)
	return
}

func (s *SheetRepository) RemoveDuplicates(sheetId string, rangeToken string) (removed int, err error) {
	err = s.edit(sheetId, func(editor *edits.SheetEditor) (err error) {
		removed, err = editor.RemoveDuplicates(s.canonicalizer.CanonicalizeCellId(rangeToken))
		return
	})

	s.logger.Info("remove duplicates", "sheet", sheetId, "range", rangeToken, "removed", removed)
	return
}

func (s *SheetRepository) shift(
	sheetId string, cellId string, operation string,
	apply func(editor *edits.SheetEditor, address engine.CellAddress) error,
) error {
	cellId = s.canonicalizer.CanonicalizeCellId(cellId)
	address, err := engine.DecodeAddress(cellId)
	if err != nil {
		return fmt.Errorf("cell_id `%s`: %w", cellId, err)
	}

	err = s.edit(sheetId, func(editor *edits.SheetEditor) error {
		return apply(editor, address)
	})
	if err == nil {
		s.logger.Info(operation, "sheet", sheetId, "cell", cellId)
	}

	return err
}

func (s *SheetRepository) edit(sheetId string, apply func(editor *edits.SheetEditor) error) error {
	entry, err := s.getSheet(s.canonicalizer.CanonicalizeSheetId(sheetId))
	if err != nil {
		return err
	}

	entry.mutex.Lock()
	defer entry.mutex.Unlock()

	before := entry.sheet.Clone()
	if err = apply(entry.editor); err != nil {
		return err
	}
	entry.history.Record(before)

	return nil
}

func (s *SheetRepository) getSheet(canonicalSheetId string) (*sheetEntry, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	entry, ok := s.sheets[canonicalSheetId]
	if !ok {
		return nil, fmt.Errorf("%s: %w", canonicalSheetId, contracts.SheetNotFoundError)
	}

	return entry, nil
}

func (s *SheetRepository) getOrCreateSheet(canonicalSheetId string) *sheetEntry {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	entry, ok := s.sheets[canonicalSheetId]
	if !ok {
		sheet := engine.NewSheet()
		entry = &sheetEntry{
			sheet:     sheet,
			evaluator: engine.NewFormulaEvaluator(sheet, s.maxDepth),
			editor:    edits.NewSheetEditor(sheet),
			history:   engine.NewHistory(s.historyLimit),
		}
		s.sheets[canonicalSheetId] = entry
	}

	return entry
}

// view must be called with the sheet lock held
func (e *sheetEntry) view(cellId string) *contracts.CellView {
	cell, _ := e.sheet.GetCell(cellId)

	view := &contracts.CellView{
		Address: cellId,
		Value:   cell.Input(),
		Result:  e.evaluator.Resolve(cellId).String(),
	}
	if !cell.Style.IsZero() {
		view.Style = &cell.Style
	}

	return view
}

// list must be called with the sheet lock held
func (e *sheetEntry) list() *contracts.CellViewList {
	cellList := contracts.CellViewList{}
	for _, cellId := range e.sheet.Addresses() {
		cellList[cellId] = e.view(cellId)
	}

	return &cellList
}
