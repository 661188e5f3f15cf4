package results

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteTable(t *testing.T) {
	acc := NewAccumulator()
	acc.Add("A", 10)
	acc.Add("B", 20)
	var buf bytes.Buffer
	require.NoError(t, acc.WriteTable(&buf))
	assert.Equal(t, "A,B\n10,20\n", buf.String())
}

func TestWriteTableRoundTrip(t *testing.T) {
	acc := NewAccumulator()
	acc.Add("Instructions", 123456789)
	acc.Add("CPUCycles", 987654321)
	acc.Add("L1D_Read_Miss", 0)
	var buf bytes.Buffer
	require.NoError(t, acc.WriteTable(&buf))
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	names := strings.Split(lines[0], ",")
	values := strings.Split(lines[1], ",")
	require.Equal(t, len(names), len(values))
	require.Len(t, names, acc.Len())
	for i, record := range acc.Records() {
		assert.Equal(t, record.Name, names[i])
		value, err := strconv.ParseUint(values[i], 10, 64)
		require.NoError(t, err)
		assert.Equal(t, record.Value, value)
	}
}

func TestExportCSVWritesExactBytes(t *testing.T) {
	acc := NewAccumulator()
	acc.Add("A", 10)
	acc.Add("B", 20)
	path := filepath.Join(t.TempDir(), "counters.csv")
	require.NoError(t, acc.ExportCSV(path))
	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "A,B\n10,20\n", string(contents))
}

func TestExportCSVEmptyAccumulatorTouchesNothing(t *testing.T) {
	acc := NewAccumulator()
	path := filepath.Join(t.TempDir(), "counters.csv")
	require.NoError(t, acc.ExportCSV(path))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "no file should be created for an empty accumulator")
}

func TestExportCSVCreateFailurePropagates(t *testing.T) {
	acc := NewAccumulator()
	acc.Add("A", 1)
	path := filepath.Join(t.TempDir(), "missing", "counters.csv")
	assert.Error(t, acc.ExportCSV(path))
}

func TestAccumulatorAppendsAcrossCalls(t *testing.T) {
	acc := NewAccumulator()
	acc.Add("A", 1)
	acc.Add("B", 2)
	acc.Add("A", 3)
	require.Equal(t, 3, acc.Len())
	assert.Equal(t, []Record{{"A", 1}, {"B", 2}, {"A", 3}}, acc.Records())
}

func TestExportXLSX(t *testing.T) {
	acc := NewAccumulator()
	acc.Add("Instructions", 42)
	acc.Add("TaskClock", 7)
	path := filepath.Join(t.TempDir(), "counters.xlsx")
	require.NoError(t, acc.ExportXLSX(path))
	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	name, err := f.GetCellValue(xlsxSheetName, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Instructions", name)
	value, err := f.GetCellValue(xlsxSheetName, "B2")
	require.NoError(t, err)
	assert.Equal(t, "7", value)
}

func TestExportXLSXEmptyAccumulatorTouchesNothing(t *testing.T) {
	acc := NewAccumulator()
	path := filepath.Join(t.TempDir(), "counters.xlsx")
	require.NoError(t, acc.ExportXLSX(path))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}
