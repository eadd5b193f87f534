// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/grid/scan_test.go
// Summary: Exercises distance scanning, lazy measurement and prefix sums.

package grid

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestScanResolvedSequences(t *testing.T) {
	sizes := []int{10, 20, 0, 5, -0, 30}
	tests := []struct {
		name        string
		start, dist int
		wantEnd     int
		wantCovered int
	}{
		{"zero distance", 2, 0, 2, 0},
		{"exact prefix", 0, 30, 2, 30},
		{"smallest prefix reaching distance", 0, 31, 4, 35},
		{"collapsed entries skipped", 1, 21, 4, 25},
		{"boundary forward", 3, 1000, 6, 35},
		{"backward exact", 2, -20, 1, 20},
		{"backward partial", 4, -6, 1, 25},
		{"boundary backward", 3, -1000, 0, 30},
		{"start at end", 6, 10, 6, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			end, covered, err := Scan(sizes, tt.start, tt.dist, nil, 0)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if end != tt.wantEnd || covered != tt.wantCovered {
				t.Fatalf("Scan(%d,%d) = (%d,%d), want (%d,%d)", tt.start, tt.dist, end, covered, tt.wantEnd, tt.wantCovered)
			}
		})
	}
}

func TestScanMeasuresBatchAtUnresolvedIndex(t *testing.T) {
	sizes := []int{20, 20, 20, Unknown, 20, 20, 20, 20, 20, 20}
	var calls [][2]int
	measure := func(start, count int) {
		calls = append(calls, [2]int{start, count})
		sizes[3] = 25
	}

	end, covered, err := Scan(sizes, 0, 100, measure, 25)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([][2]int{{3, 7}}, calls); diff != "" {
		t.Fatalf("measure calls mismatch (-want +got):\n%s", diff)
	}
	if end != 5 || covered != 105 {
		t.Fatalf("expected (5,105), got (%d,%d)", end, covered)
	}
}

func TestScanBatchSizes(t *testing.T) {
	sizes := Fill(100, Unknown)
	var calls [][2]int
	measure := func(start, count int) {
		calls = append(calls, [2]int{start, count})
		for i := start; i < start+count; i++ {
			sizes[i] = 1
		}
	}

	if _, _, err := Scan(sizes, 0, 30, measure, 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([][2]int{{0, 10}, {10, 10}, {20, 10}}, calls); diff != "" {
		t.Fatalf("forward batches mismatch (-want +got):\n%s", diff)
	}

	calls = nil
	if _, _, err := Scan(sizes, 100, -5, measure, 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([][2]int{{90, 10}}, calls); diff != "" {
		t.Fatalf("backward batch mismatch (-want +got):\n%s", diff)
	}

	calls = nil
	if _, _, err := Scan(sizes, 5, -3, measure, 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(calls) != 0 {
		t.Fatalf("expected resolved entries not to be measured again, got %v", calls)
	}
}

func TestScanBackwardBatchNearStart(t *testing.T) {
	sizes := Fill(10, Unknown)
	var calls [][2]int
	measure := func(start, count int) {
		calls = append(calls, [2]int{start, count})
		for i := start; i < start+count; i++ {
			sizes[i] = 2
		}
	}
	if _, _, err := Scan(sizes, 3, -4, measure, 25); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([][2]int{{0, 3}}, calls); diff != "" {
		t.Fatalf("measure calls mismatch (-want +got):\n%s", diff)
	}
}

func TestScanErrors(t *testing.T) {
	if _, _, err := Scan([]int{1, 2}, 3, 1, nil, 0); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}
	if _, _, err := Scan([]int{1, Unknown}, 0, 5, nil, 0); !errors.Is(err, ErrUnresolvedSize) {
		t.Fatalf("expected ErrUnresolvedSize without measure, got %v", err)
	}
	lazy := func(start, count int) {}
	end, covered, err := Scan([]int{1, Unknown}, 0, 5, lazy, 0)
	if !errors.Is(err, ErrUnresolvedSize) {
		t.Fatalf("expected ErrUnresolvedSize from no-op measure, got %v", err)
	}
	if end != 1 || covered != 1 {
		t.Fatalf("expected partial progress (1,1), got (%d,%d)", end, covered)
	}
}

func TestIntegrate(t *testing.T) {
	sizes := []int{3, 0, -4, 7}
	got := Integrate(-2, sizes)
	if diff := cmp.Diff([]int{-2, 1, 1, 1, 8}, got); diff != "" {
		t.Fatalf("boundaries mismatch (-want +got):\n%s", diff)
	}
	for i, v := range sizes {
		if got[i+1]-got[i] != max(0, v) {
			t.Fatalf("boundary %d: width %d, want %d", i, got[i+1]-got[i], max(0, v))
		}
	}
	if got := Integrate(5, nil); len(got) != 1 || got[0] != 5 {
		t.Fatalf("expected single boundary for empty input, got %v", got)
	}
}

func TestSizeHelpers(t *testing.T) {
	if !Resolved([]int{0, 1, 2}) || Resolved([]int{1, Unknown}) {
		t.Fatalf("Resolved misreports sequences")
	}
	if got := Sum([]int{4, -1, 6}); got != 10 {
		t.Fatalf("Sum ignores negatives: got %d", got)
	}
	src := []int{1, 2}
	cp := Clone(src)
	cp[0] = 9
	if src[0] != 1 {
		t.Fatalf("Clone shares storage with its source")
	}
	if AxisRows.String() != "rows" || AxisCols.String() != "cols" {
		t.Fatalf("unexpected axis names %q %q", AxisRows, AxisCols)
	}
}
