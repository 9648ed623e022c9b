package contracts

import "errors"

type SheetRepository interface {
	SetCell(sheetId string, cellId string, input string) (*CellView, error)
	GetCell(sheetId string, cellId string) (*CellView, error)
	GetCellList(sheetId string) (*CellViewList, error)
	GetDependents(sheetId string, cellId string) ([]string, error)
	SetStyle(sheetId string, cellId string, style CellStyle) (*CellView, error)

	Undo(sheetId string) (*CellViewList, error)
	Redo(sheetId string) (*CellViewList, error)

	InsertRow(sheetId string, cellId string) error
	DeleteRow(sheetId string, cellId string) error
	InsertColumn(sheetId string, cellId string) error
	DeleteColumn(sheetId string, cellId string) error
	FindReplace(sheetId string, rangeToken string, find string, replace string) (int, error)
	RemoveDuplicates(sheetId string, rangeToken string) (int, error)
}

var SheetNotFoundError = errors.New("sheet not found")

var HistoryEmptyError = errors.New("nothing to undo or redo")
