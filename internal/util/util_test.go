package util

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "file.txt")
	exists, err := FileExists(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if exists {
		t.Error("expected file to not exist")
	}
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	exists, err = FileExists(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !exists {
		t.Error("expected file to exist")
	}
	// a directory is not a file
	if _, err = FileExists(dir); err == nil {
		t.Error("expected error for directory path")
	}
}

func TestDirectoryExists(t *testing.T) {
	dir := t.TempDir()
	exists, err := DirectoryExists(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !exists {
		t.Error("expected directory to exist")
	}
	exists, err = DirectoryExists(filepath.Join(dir, "missing"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if exists {
		t.Error("expected directory to not exist")
	}
	path := filepath.Join(dir, "file.txt")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	if _, err = DirectoryExists(path); err == nil {
		t.Error("expected error for file path")
	}
}

func TestExpandUser(t *testing.T) {
	if path := ExpandUser("/tmp/foo"); path != "/tmp/foo" {
		t.Errorf("expected path unchanged, got %s", path)
	}
	if path := ExpandUser("~"); path == "~" {
		t.Error("expected ~ to be expanded")
	}
}
