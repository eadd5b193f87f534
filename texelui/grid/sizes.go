// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/grid/sizes.go
// Summary: Size sequences for rows and columns, with lazily measured entries.

package grid

// Unknown marks a size that has not been measured yet. The scanner treats
// any negative entry as unresolved.
const Unknown = -1

// DefaultBatch caps how many entries a single measurement request covers.
const DefaultBatch = 25

// Axis selects the row or column size sequence.
type Axis int

const (
	AxisRows Axis = iota
	AxisCols
)

func (a Axis) String() string {
	if a == AxisCols {
		return "cols"
	}
	return "rows"
}

// MeasureFunc resolves sizes[start:start+count] of the given axis in place.
// For AxisRows it should also resolve the aligned macro heights. It must
// resolve at least the entry the engine asked for; it must not call back
// into the engine.
type MeasureFunc func(axis Axis, start, count int)

// Span is the result of scanning a size sequence: the resolved sizes that
// were crossed and, for rows, the macro heights aligned with them. Aux is
// nil for columns or when no macro sequence was supplied.
type Span struct {
	Start int
	Sizes []int
	Aux   []int
}

// Len returns the number of elements in the span.
func (s Span) Len() int { return len(s.Sizes) }

// End returns the index one past the last element of the span.
func (s Span) End() int { return s.Start + len(s.Sizes) }

// Unresolved reports whether v is the unmeasured sentinel.
func Unresolved(v int) bool { return v < 0 }

// Resolved reports whether every entry of sizes is measured.
func Resolved(sizes []int) bool {
	for _, v := range sizes {
		if v < 0 {
			return false
		}
	}
	return true
}

// Fill returns a sequence of n copies of v. Fill(n, Unknown) creates a
// sequence that will be measured on demand.
func Fill(n, v int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = v
	}
	return out
}

// Clone returns an independent copy of sizes.
func Clone(sizes []int) []int {
	if sizes == nil {
		return nil
	}
	out := make([]int, len(sizes))
	copy(out, sizes)
	return out
}

// Sum returns the total extent of sizes, counting unresolved entries as zero.
func Sum(sizes []int) int {
	total := 0
	for _, v := range sizes {
		if v > 0 {
			total += v
		}
	}
	return total
}
