package main

import (
	"errors"
	"fmt"
	"gridCalc/contracts"
	"gridCalc/engine"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"
)

var WorkbookSheetNotFoundError = errors.New("workbook sheet not found")

// WorkbookImporter copies the literals and formulas of one worksheet of an
// .xlsx file into a cell store. Cached formula results are kept as the cell
// value, the formula is recomputed on read.
type WorkbookImporter struct {
	logger *slog.Logger
}

func NewWorkbookImporter(logger *slog.Logger) *WorkbookImporter {
	return &WorkbookImporter{logger: logger}
}

// ImportFile imports sheetName, or the first worksheet when sheetName is empty.
// Returns the number of populated cells.
func (i *WorkbookImporter) ImportFile(path string, sheetName string, store contracts.CellStore) (imported int, err error) {
	workbook, err := excelize.OpenFile(path)
	if err != nil {
		return 0, fmt.Errorf("open workbook `%s`: %w", path, err)
	}
	defer func() {
		if closeErr := workbook.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	sheetName, err = i.resolveSheetName(workbook, sheetName)
	if err != nil {
		return 0, err
	}

	rows, err := workbook.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return 0, fmt.Errorf("read sheet `%s`: %w", sheetName, err)
	}

	for rowIndex, row := range rows {
		for columnIndex, text := range row {
			ok, err := i.importCell(workbook, sheetName, rowIndex, columnIndex, text, store)
			if err != nil {
				return imported, err
			}
			if ok {
				imported++
			}
		}
	}

	i.logger.Info("workbook imported", "path", path, "sheet", sheetName, "cells", imported)
	return imported, nil
}

func (i *WorkbookImporter) importCell(
	workbook *excelize.File, sheetName string, rowIndex int, columnIndex int, text string, store contracts.CellStore,
) (bool, error) {
	cellName, err := excelize.CoordinatesToCellName(columnIndex+1, rowIndex+1)
	if err != nil {
		return false, err
	}

	formula, err := workbook.GetCellFormula(sheetName, cellName)
	if err != nil {
		return false, fmt.Errorf("read formula %s: %w", cellName, err)
	}

	if formula == "" && text == "" {
		return false, nil
	}

	address := engine.EncodeAddress(rowIndex, columnIndex)
	if err = store.SetValue(address, engine.ParseLiteral(text)); err != nil {
		return false, err
	}

	if formula != "" {
		formula = engine.FormulaPrefix + strings.ReplaceAll(formula, "$", "")
		if err = store.SetFormula(address, formula); err != nil {
			return false, err
		}
	}

	styleIndex, err := workbook.GetCellStyle(sheetName, cellName)
	if err != nil {
		return false, fmt.Errorf("read style %s: %w", cellName, err)
	}

	if styleIndex != 0 {
		style, err := workbook.GetStyle(styleIndex)
		if err != nil {
			return false, fmt.Errorf("read style %s: %w", cellName, err)
		}

		if err = store.SetStyle(address, cellStyleOf(style)); err != nil {
			return false, err
		}
	}

	return true, nil
}

// cellStyleOf keeps the font, fill colour and horizontal alignment of a workbook style
func cellStyleOf(style *excelize.Style) (cellStyle contracts.CellStyle) {
	if font := style.Font; font != nil {
		if font.Bold {
			cellStyle.Bold = &font.Bold
		}
		if font.Italic {
			cellStyle.Italic = &font.Italic
		}
		if font.Size > 0 {
			cellStyle.FontSize = &font.Size
		}
		if font.Color != "" {
			cellStyle.Color = &font.Color
		}
	}

	if style.Fill.Type == "pattern" && style.Fill.Pattern == 1 && len(style.Fill.Color) > 0 {
		cellStyle.BackgroundColor = &style.Fill.Color[0]
	}

	if alignment := style.Alignment; alignment != nil {
		switch alignment.Horizontal {
		case "left", "center", "right":
			cellStyle.TextAlign = &alignment.Horizontal
		}
	}

	return cellStyle
}

func (i *WorkbookImporter) resolveSheetName(workbook *excelize.File, sheetName string) (string, error) {
	sheets := workbook.GetSheetList()
	if sheetName == "" && len(sheets) > 0 {
		return sheets[0], nil
	}

	for _, name := range sheets {
		if name == sheetName {
			return name, nil
		}
	}

	return "", fmt.Errorf("`%s`: %w", sheetName, WorkbookSheetNotFoundError)
}
