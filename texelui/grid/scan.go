// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/grid/scan.go
// Summary: Distance scanning over size sequences with batched lazy measurement.

package grid

import (
	"errors"
	"fmt"
)

var (
	// ErrUnresolvedSize is returned when the measurement callback leaves the
	// requested entry unresolved, or when no callback was supplied.
	ErrUnresolvedSize = errors.New("grid: size still unresolved after measurement")
	// ErrIndexOutOfRange is returned when a scan starts outside the sequence.
	ErrIndexOutOfRange = errors.New("grid: start index out of range")
)

// Scan walks sizes from start until the accumulated size reaches |distance|
// or the sequence boundary is hit. A positive distance scans forward, a
// negative one backward; backward scans decrement the index before reading
// it, so the size read belongs to the element before the boundary.
//
// Sizes count as max(0, size): collapsed entries advance the index without
// covering any distance. Unresolved entries are passed to measure in batches
// of at most batch entries (DefaultBatch when batch <= 0).
//
// Scan returns the index reached and the distance actually covered, which
// is smaller than |distance| only when the boundary was reached.
func Scan(sizes []int, start, distance int, measure func(start, count int), batch int) (end, covered int, err error) {
	n := len(sizes)
	if start < 0 || start > n {
		return start, 0, fmt.Errorf("%w: %d not in [0,%d]", ErrIndexOutOfRange, start, n)
	}
	if batch <= 0 {
		batch = DefaultBatch
	}
	target := distance
	forward := true
	if distance < 0 {
		target = -distance
		forward = false
	}

	i := start
	for covered < target {
		if forward {
			if i >= n {
				break
			}
		} else {
			if i <= 0 {
				break
			}
			i--
		}
		if sizes[i] < 0 {
			if err := resolve(sizes, i, forward, measure, batch); err != nil {
				return i, covered, err
			}
		}
		if sizes[i] > 0 {
			covered += sizes[i]
		}
		if forward {
			i++
		}
	}
	return i, covered, nil
}

// resolve asks measure for a batch that contains index i. Forward scans
// request [i, i+batch); backward scans request the batch ending at i.
func resolve(sizes []int, i int, forward bool, measure func(start, count int), batch int) error {
	if measure == nil {
		return fmt.Errorf("%w: index %d (no measure callback)", ErrUnresolvedSize, i)
	}
	start, count := i, min(batch, len(sizes)-i)
	if !forward {
		start = max(0, i-batch+1)
		count = i - start + 1
	}
	measure(start, count)
	if sizes[i] < 0 {
		return fmt.Errorf("%w: index %d", ErrUnresolvedSize, i)
	}
	return nil
}

// scanSpan scans forward from start over distance and collects the
// resolved sizes it crossed, plus the aligned aux values when aux is
// non-nil.
func scanSpan(sizes, aux []int, start, distance int, measure func(start, count int), batch int) (Span, int, error) {
	end, covered, err := Scan(sizes, start, distance, measure, batch)
	if err != nil {
		return Span{}, 0, err
	}
	span := Span{Start: start, Sizes: Clone(sizes[start:end])}
	if aux != nil {
		span.Aux = make([]int, end-start)
		for i := start; i < end; i++ {
			span.Aux[i-start] = max(0, aux[i])
		}
	}
	return span, covered, nil
}
