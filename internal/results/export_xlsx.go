package results

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"
)

const xlsxSheetName = "Counters"

func cellName(col int, row int) (name string) {
	columnName, err := excelize.ColumnNumberToName(col)
	if err != nil {
		return
	}
	name, err = excelize.JoinCellName(columnName, row)
	if err != nil {
		return
	}
	return
}

// ExportXLSX writes the counter table to a spreadsheet at path, one column
// per record with a bold name header. Like ExportCSV, an empty accumulator
// is a no-op that leaves the filesystem untouched.
func (a *Accumulator) ExportXLSX(path string) error {
	if a.Len() == 0 {
		slog.Info("no counter records to export", slog.String("path", path))
		return nil
	}
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			slog.Error("failed to close excel file", slog.String("error", err.Error()))
		}
	}()
	if _, err := f.NewSheet(xlsxSheetName); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to remove default sheet: %w", err)
	}
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
	})
	for i, record := range a.records {
		col := i + 1
		_ = f.SetCellValue(xlsxSheetName, cellName(col, 1), record.Name)
		_ = f.SetCellStyle(xlsxSheetName, cellName(col, 1), cellName(col, 1), headerStyle)
		_ = f.SetCellValue(xlsxSheetName, cellName(col, 2), record.Value)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save excel file: %w", err)
	}
	return nil
}
