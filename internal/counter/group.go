package counter

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"errors"
	"log/slog"

	mapset "github.com/deckarep/golang-set/v2"

	"perfcount/internal/events"
	"perfcount/internal/results"
	"perfcount/internal/target"
)

// entry is one registered counter. started records whether the most recent
// Measure call successfully started the counter; a counter that did not
// start is skipped at read time for that call only.
type entry struct {
	name    string
	handle  Handle
	started bool
	lastErr error
}

// Failure records a descriptor that could not be registered. Failed
// registrations are never group members; they are retained here so callers
// and tests can see why a counter is missing.
type Failure struct {
	Name string
	Err  error
}

// State is the observable per-counter status after registration and
// measurement, used by callers that need to know why a counter produced no
// record.
type State struct {
	Name    string
	Started bool
	Err     error
}

// Group is an ordered collection of named counters bound to one target
// process. Registration order is significant: it is the start/stop/read
// order during measurement and the column order of exported results. A
// Group is not safe for concurrent use.
type Group struct {
	target   target.Target
	backend  Backend
	acc      *results.Accumulator
	entries  []*entry
	failures []Failure
}

// NewGroup returns an empty group bound to the target. No OS resources are
// allocated until events are registered. Successful stop+read values are
// appended to acc on every Measure call.
func NewGroup(t target.Target, backend Backend, acc *results.Accumulator) *Group {
	return &Group{
		target:  t,
		backend: backend,
		acc:     acc,
	}
}

// add opens one counter for the descriptor. On failure the descriptor is
// skipped with a diagnostic; registration of other descriptors continues.
func (g *Group) add(desc events.Descriptor) {
	name := desc.Name()
	handle, err := g.backend.Open(desc, g.target.PID())
	if err != nil {
		slog.Warn("could not create counter", slog.String("counter", name), slog.Int("pid", g.target.PID()), slog.String("error", err.Error()))
		g.failures = append(g.failures, Failure{Name: name, Err: err})
		return
	}
	g.entries = append(g.entries, &entry{name: name, handle: handle})
}

// AddHardware registers one counter per hardware event kind, in the order
// given. Kinds whose counters cannot be created are skipped.
func (g *Group) AddHardware(kinds ...events.HardwareKind) {
	for _, kind := range kinds {
		g.add(events.NewHardware(kind))
	}
}

// AddSoftware registers one counter per software event kind, in the order
// given. Kinds whose counters cannot be created are skipped.
func (g *Group) AddSoftware(kinds ...events.SoftwareKind) {
	for _, kind := range kinds {
		g.add(events.NewSoftware(kind))
	}
}

// AddCacheEvent registers one counter for a single cache event combination.
func (g *Group) AddCacheEvent(unit events.CacheUnit, op events.CacheOp, outcome events.CacheOutcome) {
	g.add(events.NewCache(unit, op, outcome))
}

// AddCacheMatrix registers the full cross product of the given units with
// all operations and outcomes, in the catalog's fixed nested order.
// Combinations the hardware does not support are skipped individually.
func (g *Group) AddCacheMatrix(units mapset.Set[events.CacheUnit]) {
	for _, desc := range events.CacheMatrix(units) {
		g.add(desc)
	}
}

// Len returns the number of registered counters.
func (g *Group) Len() int {
	return len(g.entries)
}

// Names returns the counter names in registration order.
func (g *Group) Names() []string {
	names := make([]string, 0, len(g.entries))
	for _, e := range g.entries {
		names = append(names, e.name)
	}
	return names
}

// Failures returns the descriptors that could not be registered.
func (g *Group) Failures() []Failure {
	return g.failures
}

// States returns the per-counter status in registration order, reflecting
// the most recent Measure call.
func (g *Group) States() []State {
	states := make([]State, 0, len(g.entries))
	for _, e := range g.entries {
		states = append(states, State{Name: e.name, Started: e.started, Err: e.lastErr})
	}
	return states
}

// Results returns the accumulator that Measure appends to.
func (g *Group) Results() *results.Accumulator {
	return g.acc
}

// Measure counts the execution of work. Counters are reset and started in
// registration order, work runs exactly once on the calling goroutine, then
// counters are stopped and read in the same order. Each successful stop+read
// appends a (name, value) record to the group's accumulator; counters that
// fail to start, stop, or read contribute no record for this call and do not
// affect the others. Measure returns work's value unchanged.
//
// A panic raised by work propagates immediately without running the
// stop/read loop; already-started counters keep running until Close.
func Measure[R any](g *Group, work func() R) R {
	for _, e := range g.entries {
		e.started = false
		e.lastErr = nil
		if err := e.handle.Reset(); err != nil {
			slog.Warn("could not reset counter", slog.String("counter", e.name), slog.String("error", err.Error()))
		}
		if err := e.handle.Start(); err != nil {
			slog.Warn("could not start counter", slog.String("counter", e.name), slog.String("error", err.Error()))
			e.lastErr = err
			continue
		}
		e.started = true
	}
	result := work()
	for _, e := range g.entries {
		if err := e.handle.Stop(); err != nil {
			slog.Warn("could not stop counter", slog.String("counter", e.name), slog.String("error", err.Error()))
			// a never-started counter keeps its start failure as the
			// reason it produced no record
			if e.started {
				e.lastErr = err
			}
			continue
		}
		if !e.started {
			// a read of a counter that never started is meaningless
			continue
		}
		value, err := e.handle.Read()
		if err != nil {
			slog.Warn("could not read counter", slog.String("counter", e.name), slog.String("error", err.Error()))
			e.lastErr = err
			continue
		}
		g.acc.Add(e.name, value)
	}
	return result
}

// Close releases every counter's OS resource, regardless of lifecycle state.
// Running counters are stopped best-effort before release.
func (g *Group) Close() error {
	var errs []error
	for _, e := range g.entries {
		_ = e.handle.Stop()
		if err := e.handle.Close(); err != nil {
			slog.Warn("could not close counter", slog.String("counter", e.name), slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}
	g.entries = nil
	return errors.Join(errs...)
}
