package events

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"fmt"
	"strings"
	"testing"

	mapset "github.com/deckarep/golang-set/v2"
)

func TestDescriptorName(t *testing.T) {
	tests := []struct {
		descriptor Descriptor
		expected   string
	}{
		{NewHardware(Instructions), "Instructions"},
		{NewHardware(CPUCycles), "CPUCycles"},
		{NewSoftware(TaskClock), "TaskClock"},
		{NewSoftware(MinorPageFaults), "PageFaultsMin"},
		{NewCache(L1Data, Read, Access), "L1D_Read_Access"},
		{NewCache(DataTLB, Prefetch, Miss), "DTLB_Prefetch_Miss"},
		{NewCache(Node, Write, Miss), "NODE_Write_Miss"},
	}
	for _, test := range tests {
		if name := test.descriptor.Name(); name != test.expected {
			t.Errorf("expected %s, got %s", test.expected, name)
		}
	}
}

func TestCacheMatrixSize(t *testing.T) {
	tests := []struct {
		units    mapset.Set[CacheUnit]
		expected int
	}{
		{mapset.NewSet[CacheUnit](), 0},
		{mapset.NewSet(L1Data), 6},
		{mapset.NewSet(L1Data, LastLevel), 12},
		{MemoryCacheUnits(), 24},
		{TLBUnits(), 6},
		{BranchPredictionUnits(), 6},
	}
	for _, test := range tests {
		if n := len(CacheMatrix(test.units)); n != test.expected {
			t.Errorf("expected %d descriptors for %v, got %d", test.expected, test.units, n)
		}
	}
}

func TestCacheMatrixOrder(t *testing.T) {
	// nested order is fixed: units outermost in catalog order, then
	// operations, then outcomes
	descriptors := CacheMatrix(mapset.NewSet(LastLevel, L1Data))
	expected := []string{
		"L1D_Read_Access",
		"L1D_Read_Miss",
		"L1D_Write_Access",
		"L1D_Write_Miss",
		"L1D_Prefetch_Access",
		"L1D_Prefetch_Miss",
		"LL_Read_Access",
		"LL_Read_Miss",
		"LL_Write_Access",
		"LL_Write_Miss",
		"LL_Prefetch_Access",
		"LL_Prefetch_Miss",
	}
	if len(descriptors) != len(expected) {
		t.Fatalf("expected %d descriptors, got %d", len(expected), len(descriptors))
	}
	for i, descriptor := range descriptors {
		if descriptor.Name() != expected[i] {
			t.Errorf("position %d: expected %s, got %s", i, expected[i], descriptor.Name())
		}
	}
}

func TestCacheMatrixNamesContainAllDimensions(t *testing.T) {
	for _, descriptor := range CacheMatrix(MemoryCacheUnits()) {
		name := descriptor.Name()
		parts := strings.Split(name, "_")
		if len(parts) != 3 {
			t.Fatalf("expected 3 name parts in %s, got %d", name, len(parts))
		}
		if parts[0] != string(descriptor.Cache.Unit) || parts[1] != string(descriptor.Cache.Op) || parts[2] != string(descriptor.Cache.Outcome) {
			t.Errorf("name %s does not reflect descriptor %+v", name, descriptor)
		}
	}
}

func TestCatalogNamesUnique(t *testing.T) {
	seen := mapset.NewSet[string]()
	var descriptors []Descriptor
	for _, kind := range AllHardwareKinds() {
		descriptors = append(descriptors, NewHardware(kind))
	}
	for _, kind := range AllSoftwareKinds() {
		descriptors = append(descriptors, NewSoftware(kind))
	}
	descriptors = append(descriptors, CacheMatrix(mapset.NewSet(AllCacheUnits()...))...)
	for _, descriptor := range descriptors {
		name := descriptor.Name()
		if seen.Contains(name) {
			t.Errorf("duplicate name in catalog: %s", name)
		}
		seen.Add(name)
	}
}

func TestParseHardware(t *testing.T) {
	tests := []struct {
		name     string
		expected HardwareKind
		isErr    bool
	}{
		{"instructions", Instructions, false},
		{"cpu-cycles", CPUCycles, false},
		{"CPU-Cycles", CPUCycles, false}, // case insensitive
		{"ref-cpu-cycles", RefCPUCycles, false},
		{"cycles", "", true},
		{"", "", true},
	}
	for _, test := range tests {
		kind, err := ParseHardware(test.name)
		if test.isErr {
			if err == nil {
				t.Errorf("expected error for %q", test.name)
			}
			continue
		}
		if err != nil {
			t.Errorf("unexpected error for %q: %v", test.name, err)
		} else if kind != test.expected {
			t.Errorf("expected %s for %q, got %s", test.expected, test.name, kind)
		}
	}
}

func TestParseSoftware(t *testing.T) {
	tests := []struct {
		name     string
		expected SoftwareKind
		isErr    bool
	}{
		{"task-clock", TaskClock, false},
		{"page-faults", PageFaults, false},
		{"major-page-faults", MajorPageFaults, false},
		{"taskclock", "", true},
	}
	for _, test := range tests {
		kind, err := ParseSoftware(test.name)
		if test.isErr {
			if err == nil {
				t.Errorf("expected error for %q", test.name)
			}
			continue
		}
		if err != nil {
			t.Errorf("unexpected error for %q: %v", test.name, err)
		} else if kind != test.expected {
			t.Errorf("expected %s for %q, got %s", test.expected, test.name, kind)
		}
	}
}

func TestParseCacheUnits(t *testing.T) {
	tests := []struct {
		token    string
		expected mapset.Set[CacheUnit]
		isErr    bool
	}{
		{"mem", mapset.NewSet(L1Data, L1Instruction, LastLevel, Node), false},
		{"tlb", mapset.NewSet(DataTLB), false},
		{"bpu", mapset.NewSet(BranchPredictor), false},
		{"l1d", mapset.NewSet(L1Data), false},
		{"NODE", mapset.NewSet(Node), false},
		{"l2", nil, true},
	}
	for _, test := range tests {
		units, err := ParseCacheUnits(test.token)
		if test.isErr {
			if err == nil {
				t.Errorf("expected error for %q", test.token)
			}
			continue
		}
		if err != nil {
			t.Errorf("unexpected error for %q: %v", test.token, err)
		} else if !units.Equal(test.expected) {
			t.Errorf("expected %v for %q, got %v", test.expected, test.token, units)
		}
	}
}

func ExampleCacheMatrix() {
	for _, descriptor := range CacheMatrix(TLBUnits()) {
		fmt.Println(descriptor.Name())
	}
	// Output:
	// DTLB_Read_Access
	// DTLB_Read_Miss
	// DTLB_Write_Access
	// DTLB_Write_Miss
	// DTLB_Prefetch_Access
	// DTLB_Prefetch_Miss
}
