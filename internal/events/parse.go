package events

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

// parsing of command line and event file spellings into catalog values

import (
	"fmt"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

var hardwareNames = map[string]HardwareKind{
	"instructions":            Instructions,
	"cpu-cycles":              CPUCycles,
	"cache-references":        CacheReferences,
	"cache-misses":            CacheMisses,
	"branch-instructions":     BranchInstructions,
	"branch-misses":           BranchMisses,
	"bus-cycles":              BusCycles,
	"stalled-cycles-frontend": StalledCyclesFrontend,
	"stalled-cycles-backend":  StalledCyclesBackend,
	"ref-cpu-cycles":          RefCPUCycles,
}

var softwareNames = map[string]SoftwareKind{
	"cpu-clock":         CPUClock,
	"task-clock":        TaskClock,
	"page-faults":       PageFaults,
	"context-switches":  ContextSwitches,
	"cpu-migrations":    CPUMigrations,
	"minor-page-faults": MinorPageFaults,
	"major-page-faults": MajorPageFaults,
	"alignment-faults":  AlignmentFaults,
	"emulation-faults":  EmulationFaults,
}

var cacheUnitNames = map[string]CacheUnit{
	"l1d":  L1Data,
	"l1i":  L1Instruction,
	"ll":   LastLevel,
	"dtlb": DataTLB,
	"itlb": InstructionTLB,
	"bpu":  BranchPredictor,
	"node": Node,
}

// ParseHardware converts a command line spelling, e.g. "cpu-cycles", to its
// hardware event kind.
func ParseHardware(name string) (HardwareKind, error) {
	kind, ok := hardwareNames[strings.ToLower(name)]
	if !ok {
		return "", fmt.Errorf("unknown hardware event: %s", name)
	}
	return kind, nil
}

// ParseSoftware converts a command line spelling, e.g. "task-clock", to its
// software event kind.
func ParseSoftware(name string) (SoftwareKind, error) {
	kind, ok := softwareNames[strings.ToLower(name)]
	if !ok {
		return "", fmt.Errorf("unknown software event: %s", name)
	}
	return kind, nil
}

// ParseCacheUnits converts a command line token to a set of cache units. The
// token may name a single unit, e.g. "l1d", or one of the fixed groupings:
// "mem" (memory cache hierarchy), "tlb", or "bpu".
func ParseCacheUnits(token string) (mapset.Set[CacheUnit], error) {
	switch strings.ToLower(token) {
	case "mem":
		return MemoryCacheUnits(), nil
	case "tlb":
		return TLBUnits(), nil
	case "bpu":
		return BranchPredictionUnits(), nil
	}
	unit, ok := cacheUnitNames[strings.ToLower(token)]
	if !ok {
		return nil, fmt.Errorf("unknown cache unit or group: %s", token)
	}
	return mapset.NewSet(unit), nil
}
