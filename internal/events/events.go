/*
Package events defines the catalog of performance events that can be counted:
hardware events, software events, and hardware cache events parameterized by
cache unit, operation, and outcome.
*/
package events

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

// HardwareKind identifies a generalized hardware event. The value doubles as
// the counter's display name in exported output.
type HardwareKind string

const (
	Instructions          HardwareKind = "Instructions"
	CPUCycles             HardwareKind = "CPUCycles"
	CacheReferences       HardwareKind = "CacheReferences"
	CacheMisses           HardwareKind = "CacheMisses"
	BranchInstructions    HardwareKind = "BranchInstructions"
	BranchMisses          HardwareKind = "BranchMisses"
	BusCycles             HardwareKind = "BusCycles"
	StalledCyclesFrontend HardwareKind = "StalledCyclesFrontend"
	StalledCyclesBackend  HardwareKind = "StalledCyclesBackend"
	RefCPUCycles          HardwareKind = "RefCPUCycles"
)

// SoftwareKind identifies a kernel software event.
type SoftwareKind string

const (
	CPUClock        SoftwareKind = "CpuClock"
	TaskClock       SoftwareKind = "TaskClock"
	PageFaults      SoftwareKind = "PageFaults"
	ContextSwitches SoftwareKind = "ContextSwitches"
	CPUMigrations   SoftwareKind = "CpuMigrations"
	MinorPageFaults SoftwareKind = "PageFaultsMin"
	MajorPageFaults SoftwareKind = "PageFaultsMaj"
	AlignmentFaults SoftwareKind = "AlignmentFaults"
	EmulationFaults SoftwareKind = "EmulationFaults"
)

// CacheUnit identifies a cache-like hardware unit (a cache level, a TLB, the
// branch prediction unit, or the NUMA node interconnect).
type CacheUnit string

const (
	L1Data          CacheUnit = "L1D"
	L1Instruction   CacheUnit = "L1I"
	LastLevel       CacheUnit = "LL"
	DataTLB         CacheUnit = "DTLB"
	InstructionTLB  CacheUnit = "ITLB"
	BranchPredictor CacheUnit = "BPU"
	Node            CacheUnit = "NODE"
)

// CacheOp is the operation performed on a cache unit.
type CacheOp string

const (
	Read     CacheOp = "Read"
	Write    CacheOp = "Write"
	Prefetch CacheOp = "Prefetch"
)

// CacheOutcome is the result of a cache operation.
type CacheOutcome string

const (
	Access CacheOutcome = "Access"
	Miss   CacheOutcome = "Miss"
)

// CacheEvent is one (unit, operation, outcome) combination.
type CacheEvent struct {
	Unit    CacheUnit
	Op      CacheOp
	Outcome CacheOutcome
}

// Taxonomy distinguishes the three descriptor variants.
type Taxonomy int

const (
	TaxonomyHardware Taxonomy = iota
	TaxonomySoftware
	TaxonomyCache
)

// Descriptor identifies one countable event. Exactly one of the
// taxonomy-specific fields is meaningful, selected by Taxonomy.
type Descriptor struct {
	Taxonomy Taxonomy
	Hardware HardwareKind
	Software SoftwareKind
	Cache    CacheEvent
}

// NewHardware returns the descriptor for a hardware event.
func NewHardware(kind HardwareKind) Descriptor {
	return Descriptor{Taxonomy: TaxonomyHardware, Hardware: kind}
}

// NewSoftware returns the descriptor for a software event.
func NewSoftware(kind SoftwareKind) Descriptor {
	return Descriptor{Taxonomy: TaxonomySoftware, Software: kind}
}

// NewCache returns the descriptor for one cache event combination.
func NewCache(unit CacheUnit, op CacheOp, outcome CacheOutcome) Descriptor {
	return Descriptor{Taxonomy: TaxonomyCache, Cache: CacheEvent{Unit: unit, Op: op, Outcome: outcome}}
}

const nameDelimiter = "_"

// Name returns the descriptor's display name, used as the counter's identity
// in exported output. Cache event names join unit, operation, and outcome
// with an underscore, e.g. "L1D_Read_Miss". Names are deterministic per
// descriptor; registering the same descriptor twice yields two counters with
// the same name.
func (d Descriptor) Name() string {
	switch d.Taxonomy {
	case TaxonomyHardware:
		return string(d.Hardware)
	case TaxonomySoftware:
		return string(d.Software)
	default:
		return strings.Join([]string{string(d.Cache.Unit), string(d.Cache.Op), string(d.Cache.Outcome)}, nameDelimiter)
	}
}

// AllCacheUnits returns the cache units in catalog order. This order fixes
// the unit iteration order of CacheMatrix.
func AllCacheUnits() []CacheUnit {
	return []CacheUnit{L1Data, L1Instruction, LastLevel, DataTLB, InstructionTLB, BranchPredictor, Node}
}

// AllCacheOps returns the cache operations in catalog order.
func AllCacheOps() []CacheOp {
	return []CacheOp{Read, Write, Prefetch}
}

// AllCacheOutcomes returns the cache operation outcomes in catalog order.
func AllCacheOutcomes() []CacheOutcome {
	return []CacheOutcome{Access, Miss}
}

// AllHardwareKinds returns the hardware event kinds in catalog order.
func AllHardwareKinds() []HardwareKind {
	return []HardwareKind{
		Instructions,
		CPUCycles,
		CacheReferences,
		CacheMisses,
		BranchInstructions,
		BranchMisses,
		BusCycles,
		StalledCyclesFrontend,
		StalledCyclesBackend,
		RefCPUCycles,
	}
}

// AllSoftwareKinds returns the software event kinds in catalog order.
func AllSoftwareKinds() []SoftwareKind {
	return []SoftwareKind{
		CPUClock,
		TaskClock,
		PageFaults,
		ContextSwitches,
		CPUMigrations,
		MinorPageFaults,
		MajorPageFaults,
		AlignmentFaults,
		EmulationFaults,
	}
}

// CacheMatrix returns the cross product of the requested units with all
// operations and outcomes, six descriptors per unit. Nesting order is fixed:
// units outermost in catalog order, then operations, then outcomes. This is
// the registration order and therefore the eventual column order of any
// export that includes these counters.
func CacheMatrix(units mapset.Set[CacheUnit]) []Descriptor {
	descriptors := make([]Descriptor, 0, units.Cardinality()*len(AllCacheOps())*len(AllCacheOutcomes()))
	for _, unit := range AllCacheUnits() {
		if !units.Contains(unit) {
			continue
		}
		for _, op := range AllCacheOps() {
			for _, outcome := range AllCacheOutcomes() {
				descriptors = append(descriptors, NewCache(unit, op, outcome))
			}
		}
	}
	return descriptors
}
