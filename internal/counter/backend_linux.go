//go:build linux

package counter

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"fmt"

	"acln.ro/perf"

	"perfcount/internal/events"
)

// perfBackend opens counters through the Linux perf_event_open interface.
type perfBackend struct{}

// NewPerfBackend returns the production counter backend.
func NewPerfBackend() Backend {
	return perfBackend{}
}

var hardwareConfigs = map[events.HardwareKind]perf.HardwareCounter{
	events.Instructions:          perf.Instructions,
	events.CPUCycles:             perf.CPUCycles,
	events.CacheReferences:       perf.CacheReferences,
	events.CacheMisses:           perf.CacheMisses,
	events.BranchInstructions:    perf.BranchInstructions,
	events.BranchMisses:          perf.BranchMisses,
	events.BusCycles:             perf.BusCycles,
	events.StalledCyclesFrontend: perf.StalledCyclesFrontend,
	events.StalledCyclesBackend:  perf.StalledCyclesBackend,
	events.RefCPUCycles:          perf.RefCPUCycles,
}

var softwareConfigs = map[events.SoftwareKind]perf.SoftwareCounter{
	events.CPUClock:        perf.CPUClock,
	events.TaskClock:       perf.TaskClock,
	events.PageFaults:      perf.PageFaults,
	events.ContextSwitches: perf.ContextSwitches,
	events.CPUMigrations:   perf.CPUMigrations,
	events.MinorPageFaults: perf.MinorPageFaults,
	events.MajorPageFaults: perf.MajorPageFaults,
	events.AlignmentFaults: perf.AlignmentFaults,
	events.EmulationFaults: perf.EmulationFaults,
}

var cacheConfigs = map[events.CacheUnit]perf.Cache{
	events.L1Data:          perf.L1D,
	events.L1Instruction:   perf.L1I,
	events.LastLevel:       perf.LL,
	events.DataTLB:         perf.DTLB,
	events.InstructionTLB:  perf.ITLB,
	events.BranchPredictor: perf.BPU,
	events.Node:            perf.NODE,
}

var cacheOpConfigs = map[events.CacheOp]perf.CacheOp{
	events.Read:     perf.Read,
	events.Write:    perf.Write,
	events.Prefetch: perf.Prefetch,
}

var cacheOutcomeConfigs = map[events.CacheOutcome]perf.CacheOpResult{
	events.Access: perf.Access,
	events.Miss:   perf.Miss,
}

func attrFor(desc events.Descriptor) (*perf.Attr, error) {
	switch desc.Taxonomy {
	case events.TaxonomyHardware:
		config, ok := hardwareConfigs[desc.Hardware]
		if !ok {
			return nil, fmt.Errorf("no perf config for hardware event %s", desc.Hardware)
		}
		return &perf.Attr{Type: perf.HardwareEvent, Config: uint64(config)}, nil
	case events.TaxonomySoftware:
		config, ok := softwareConfigs[desc.Software]
		if !ok {
			return nil, fmt.Errorf("no perf config for software event %s", desc.Software)
		}
		return &perf.Attr{Type: perf.SoftwareEvent, Config: uint64(config)}, nil
	default:
		cache, ok := cacheConfigs[desc.Cache.Unit]
		if !ok {
			return nil, fmt.Errorf("no perf config for cache unit %s", desc.Cache.Unit)
		}
		op, ok := cacheOpConfigs[desc.Cache.Op]
		if !ok {
			return nil, fmt.Errorf("no perf config for cache op %s", desc.Cache.Op)
		}
		outcome, ok := cacheOutcomeConfigs[desc.Cache.Outcome]
		if !ok {
			return nil, fmt.Errorf("no perf config for cache outcome %s", desc.Cache.Outcome)
		}
		config := uint64(cache) | uint64(op)<<8 | uint64(outcome)<<16
		return &perf.Attr{Type: perf.HardwareCacheEvent, Config: config}, nil
	}
}

// Open creates a perf event for the descriptor: attached to pid, any CPU,
// inherited by children, kernel and idle activity excluded, created in the
// disabled state so no activity is counted before Start.
func (perfBackend) Open(desc events.Descriptor, pid int) (Handle, error) {
	attr, err := attrFor(desc)
	if err != nil {
		return nil, err
	}
	attr.Options = perf.Options{
		Disabled:      true,
		Inherit:       true,
		ExcludeKernel: true,
		ExcludeIdle:   true,
	}
	ev, err := perf.Open(attr, pid, perf.AnyCPU, nil, 0)
	if err != nil {
		return nil, err
	}
	return &perfHandle{ev: ev}, nil
}

type perfHandle struct {
	ev *perf.Event
}

func (h *perfHandle) Reset() error {
	return h.ev.Reset()
}

func (h *perfHandle) Start() error {
	return h.ev.Enable()
}

func (h *perfHandle) Stop() error {
	return h.ev.Disable()
}

func (h *perfHandle) Read() (uint64, error) {
	count, err := h.ev.ReadCount()
	if err != nil {
		return 0, err
	}
	return count.Value, nil
}

func (h *perfHandle) Close() error {
	return h.ev.Close()
}
