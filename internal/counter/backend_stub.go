//go:build !linux

package counter

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"fmt"
	"runtime"

	"perfcount/internal/events"
)

// stubBackend stands in on platforms without perf events. Every Open fails,
// so groups built on it are empty and measurements produce no records.
type stubBackend struct{}

// NewPerfBackend returns the production counter backend.
func NewPerfBackend() Backend {
	return stubBackend{}
}

func (stubBackend) Open(desc events.Descriptor, pid int) (Handle, error) {
	return nil, fmt.Errorf("performance counters are not supported on %s", runtime.GOOS)
}
