/*
Package results accumulates counter readings across measurement calls and
renders them as a two-row table.
*/
package results

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

// Record is one counter reading.
type Record struct {
	Name  string
	Value uint64
}

// Accumulator is an append-only sequence of records. Records appear in the
// order they were produced: registration order within a measurement call,
// minus any counters that failed mid-lifecycle, and measurement calls in
// invocation order. Header and value rows of every export are drawn from
// this same sequence, so the exported table is always internally aligned
// even when the sequence diverges from the original registration order.
type Accumulator struct {
	records []Record
}

// NewAccumulator returns an empty accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{}
}

// Add appends one record.
func (a *Accumulator) Add(name string, value uint64) {
	a.records = append(a.records, Record{Name: name, Value: value})
}

// Len returns the number of accumulated records.
func (a *Accumulator) Len() int {
	return len(a.records)
}

// Records returns the accumulated records in production order.
func (a *Accumulator) Records() []Record {
	return a.records
}
