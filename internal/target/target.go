/*
Package target identifies the process that a counter group attaches to.
*/
package target

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"os"
)

// Target is the process whose activity a counter group observes. It is
// immutable once a group has been constructed from it. Counters attached to
// a Target also observe activity of child threads and processes the target
// spawns after the counters are created.
type Target struct {
	pid int
}

// PID returns the target's process id.
func (t Target) PID() int {
	return t.pid
}

// Process returns a target for an explicit process id.
func Process(pid int) Target {
	return Target{pid: pid}
}

// Resolver supplies the calling process id. It exists so tests can resolve
// targets without touching OS state.
type Resolver interface {
	CurrentPID() int
}

// OSResolver resolves the calling process id from the OS.
type OSResolver struct{}

// CurrentPID returns the pid of the calling process.
func (OSResolver) CurrentPID() int {
	return os.Getpid()
}

// Resolve returns a target for the process identified by the resolver.
func Resolve(r Resolver) Target {
	return Process(r.CurrentPID())
}

// Self returns a target for the calling process.
func Self() Target {
	return Resolve(OSResolver{})
}
