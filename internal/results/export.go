package results

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// WriteTable writes the accumulated records as exactly two newline-terminated
// lines: comma-joined names, then comma-joined decimal values. No quoting,
// no trailing delimiter.
func (a *Accumulator) WriteTable(w io.Writer) error {
	names := make([]string, 0, len(a.records))
	values := make([]string, 0, len(a.records))
	for _, record := range a.records {
		names = append(names, record.Name)
		values = append(values, strconv.FormatUint(record.Value, 10))
	}
	if _, err := fmt.Fprintf(w, "%s\n%s\n", strings.Join(names, ","), strings.Join(values, ",")); err != nil {
		return fmt.Errorf("failed to write counter table: %w", err)
	}
	return nil
}

// ExportCSV writes the two-line counter table to the file at path. When the
// accumulator holds no records, nothing is created or modified and ExportCSV
// returns nil. Any I/O error while creating, writing, or flushing the file
// is returned to the caller.
func (a *Accumulator) ExportCSV(path string) error {
	if a.Len() == 0 {
		slog.Info("no counter records to export", slog.String("path", path))
		return nil
	}
	file, err := os.Create(path) // #nosec G304
	if err != nil {
		return fmt.Errorf("failed to create counter file: %w", err)
	}
	writer := bufio.NewWriter(file)
	if err := a.WriteTable(writer); err != nil {
		_ = file.Close()
		return err
	}
	if err := writer.Flush(); err != nil {
		_ = file.Close()
		return fmt.Errorf("failed to flush counter file: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close counter file: %w", err)
	}
	return nil
}
