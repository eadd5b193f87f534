// Copyright 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package scroll

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/framegrace/texelgrid/config"
	"github.com/framegrace/texelgrid/texelui/grid"
)

func TestApplyLargeIncrement(t *testing.T) {
	p := DefaultPolicy()
	tests := []struct {
		name     string
		top      int
		sizes    []int
		viewport int
		value    float64
		want     int
	}{
		{"exact page forward", 5, grid.Fill(20, 20), 100, 1, 10},
		{"partial last row stays visible", 0, grid.Fill(20, 30), 100, 1, 3},
		{"exact page backward", 10, grid.Fill(20, 20), 100, -1, 5},
		{"two pages", 0, grid.Fill(20, 20), 100, 2, 10},
		{"row taller than viewport still moves", 0, grid.Fill(5, 500), 100, 1, 1},
		{"clamped at end", 19, grid.Fill(20, 20), 100, 1, 19},
		{"clamped at start", 2, grid.Fill(20, 20), 100, -3, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.Apply(tt.top, tt.sizes, tt.viewport, nil, Request{Unit: UnitLarge, Value: tt.value})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("Apply = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestApplyLargeMeasuresLazily(t *testing.T) {
	p := DefaultPolicy()
	sizes := grid.Fill(50, grid.Unknown)
	var calls [][2]int
	measure := func(start, count int) {
		calls = append(calls, [2]int{start, count})
		for i := start; i < start+count; i++ {
			sizes[i] = 10
		}
	}
	got, err := p.Apply(0, sizes, 35, measure, Request{Unit: UnitLarge, Value: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 3 {
		t.Fatalf("Apply = %d, want 3", got)
	}
	if diff := cmp.Diff([][2]int{{0, 25}}, calls); diff != "" {
		t.Fatalf("measure calls mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyStepsAndJumps(t *testing.T) {
	p := DefaultPolicy()
	sizes := grid.Fill(21, grid.Unknown)
	tests := []struct {
		name string
		top  int
		req  Request
		want int
	}{
		{"small forward", 4, Request{UnitSmall, 1}, 5},
		{"small clamps at zero", 1, Request{UnitSmall, -3}, 0},
		{"small rounds value", 4, Request{UnitSmall, 1.6}, 6},
		{"medium", 4, Request{UnitMedium, 1}, 7},
		{"medium backward", 4, Request{UnitMedium, -1}, 1},
		{"absolute", 0, Request{UnitAbsolute, 7.4}, 7},
		{"absolute past end", 0, Request{UnitAbsolute, 999}, 20},
		{"proportional middle", 0, Request{UnitProportional, 0.5}, 10},
		{"proportional end", 0, Request{UnitProportional, 1}, 20},
		{"proportional start", 9, Request{UnitProportional, 0}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.Apply(tt.top, sizes, 10, nil, tt.req)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("Apply = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestApplyRejectsUnknownUnit(t *testing.T) {
	got, err := DefaultPolicy().Apply(3, grid.Fill(10, 1), 5, nil, Request{Unit: Unit(42), Value: 1})
	if !errors.Is(err, ErrUnknownUnit) {
		t.Fatalf("expected ErrUnknownUnit, got %v", err)
	}
	if got != 3 {
		t.Fatalf("top should be unchanged on error, got %d", got)
	}
	if Unit(42).String() != "unit(42)" || UnitLarge.String() != "large" {
		t.Fatalf("unexpected unit names")
	}
}

func TestApplyEmptySequence(t *testing.T) {
	got, err := DefaultPolicy().Apply(0, nil, 10, nil, Request{UnitLarge, 1})
	if err != nil || got != 0 {
		t.Fatalf("expected (0,nil) for empty sequence, got (%d,%v)", got, err)
	}
}

func TestPolicyFromConfig(t *testing.T) {
	cfg := config.Config{
		"grid":   map[string]interface{}{"measure_batch": float64(10)},
		"scroll": map[string]interface{}{"small_step": 2, "thumb_sample_pages": 0},
	}
	want := Policy{Batch: 10, SmallStep: 2, MediumStep: 3, ThumbSamplePages: 1}
	if diff := cmp.Diff(want, PolicyFromConfig(cfg)); diff != "" {
		t.Fatalf("policy mismatch (-want +got):\n%s", diff)
	}
}

func TestThumbMetrics(t *testing.T) {
	p := DefaultPolicy()
	sizes := grid.Fill(100, 10)

	m, err := p.Thumb(0, sizes, 50, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(Metrics{Position: 0, Proportion: 0.05, EstimatedTotal: 1000}, m); diff != "" {
		t.Fatalf("metrics at top mismatch (-want +got):\n%s", diff)
	}

	m, err = p.Thumb(99, sizes, 50, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Position != 1 || m.EstimatedTotal != 1000 {
		t.Fatalf("metrics at end: %+v", m)
	}

	m, err = p.Thumb(0, nil, 50, nil)
	if err != nil || m.Proportion != 1 {
		t.Fatalf("empty sequence should fill the track, got %+v %v", m, err)
	}

	m, err = p.Thumb(0, grid.Fill(3, 5), 50, nil)
	if err != nil || m.Proportion != 1 {
		t.Fatalf("content shorter than viewport should fill the track, got %+v %v", m, err)
	}
}
