/*
Package counter manages an ordered group of named performance counters bound
to one target process and drives the reset/start -> work -> stop/read
lifecycle around a single unit of work.
*/
package counter

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"perfcount/internal/events"
)

// Handle is one OS-level counting resource. A handle counts the activity of
// the process it was opened for, on every logical CPU, including activity of
// child threads and processes spawned after it was opened.
type Handle interface {
	// Reset zeroes the counter value.
	Reset() error
	// Start begins counting.
	Start() error
	// Stop halts counting. The value remains readable.
	Stop() error
	// Read returns the current counter value.
	Read() (uint64, error)
	// Close releases the OS resource. Close is safe to call regardless of
	// whether the counter is running.
	Close() error
}

// Backend creates counting resources. The production implementation opens
// perf events; tests substitute fakes.
type Backend interface {
	// Open creates a counter for the descriptor, attached to the process
	// identified by pid, observing all CPUs, inherited by children, with
	// kernel and idle activity excluded. Open returns an error when the
	// event is not supported by the CPU or kernel.
	Open(desc events.Descriptor, pid int) (Handle, error)
}
