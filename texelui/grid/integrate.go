// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/grid/integrate.go
// Summary: Prefix sums turning element sizes into absolute boundaries.

package grid

// Integrate converts sizes into boundaries: out[0] = start and
// out[i+1] = out[i] + max(0, sizes[i]). The result has len(sizes)+1 entries;
// the last one is the end of the last element. start is usually zero or the
// negated scroll offset of the first visible element.
func Integrate(start int, sizes []int) []int {
	out := make([]int, len(sizes)+1)
	out[0] = start
	for i, v := range sizes {
		out[i+1] = out[i] + max(0, v)
	}
	return out
}
