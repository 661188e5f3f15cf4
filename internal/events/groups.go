package events

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	mapset "github.com/deckarep/golang-set/v2"
)

// Fixed unit groupings. These are domain knowledge, not derived from the
// catalog.

// MemoryCacheUnits returns the units that make up the memory cache hierarchy.
func MemoryCacheUnits() mapset.Set[CacheUnit] {
	return mapset.NewSet(L1Data, L1Instruction, LastLevel, Node)
}

// TLBUnits returns the translation lookaside buffer units.
func TLBUnits() mapset.Set[CacheUnit] {
	return mapset.NewSet(DataTLB)
}

// BranchPredictionUnits returns the branch prediction units.
func BranchPredictionUnits() mapset.Set[CacheUnit] {
	return mapset.NewSet(BranchPredictor)
}
