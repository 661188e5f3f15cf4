package target

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"os"
	"testing"
)

type fixedResolver struct {
	pid int
}

func (r fixedResolver) CurrentPID() int {
	return r.pid
}

func TestProcess(t *testing.T) {
	if pid := Process(1234).PID(); pid != 1234 {
		t.Errorf("expected 1234, got %d", pid)
	}
}

func TestResolve(t *testing.T) {
	if pid := Resolve(fixedResolver{pid: 42}).PID(); pid != 42 {
		t.Errorf("expected 42, got %d", pid)
	}
}

func TestSelf(t *testing.T) {
	if pid := Self().PID(); pid != os.Getpid() {
		t.Errorf("expected %d, got %d", os.Getpid(), pid)
	}
}
