// Copyright 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/scroll/policy.go
// Summary: Translates scroll requests into a new first visible index.
// Uses the grid distance scanner so page-sized moves respect variable sizes.

package scroll

import (
	"errors"
	"fmt"
	"math"

	"github.com/framegrace/texelgrid/config"
	"github.com/framegrace/texelgrid/texelui/grid"
)

// ErrUnknownUnit is returned for a Request whose Unit is not recognised.
var ErrUnknownUnit = errors.New("scroll: unknown scroll unit")

// Unit is the semantic unit of a scroll request.
type Unit int

const (
	// UnitAbsolute moves to the index given by Value.
	UnitAbsolute Unit = iota
	// UnitProportional moves to Value*(count-1), Value in [0,1].
	UnitProportional
	// UnitSmall moves by Value small steps (arrow keys).
	UnitSmall
	// UnitMedium moves by Value medium steps (mouse wheel).
	UnitMedium
	// UnitLarge moves by Value viewports (page keys).
	UnitLarge
)

func (u Unit) String() string {
	switch u {
	case UnitAbsolute:
		return "absolute"
	case UnitProportional:
		return "proportional"
	case UnitSmall:
		return "small"
	case UnitMedium:
		return "medium"
	case UnitLarge:
		return "large"
	}
	return fmt.Sprintf("unit(%d)", int(u))
}

func (u Unit) valid() bool { return u >= UnitAbsolute && u <= UnitLarge }

// Request is a scroll intent. The sign of Value gives the direction for
// incremental units.
type Request struct {
	Unit  Unit
	Value float64
}

// Policy holds the step sizes used to apply requests.
type Policy struct {
	Batch            int // measurement batch passed to the scanner
	SmallStep        int
	MediumStep       int
	ThumbSamplePages int // viewports sampled when estimating the thumb
}

// DefaultPolicy returns one index per arrow, three per wheel notch.
func DefaultPolicy() Policy {
	return Policy{
		Batch:            grid.DefaultBatch,
		SmallStep:        1,
		MediumStep:       3,
		ThumbSamplePages: 4,
	}
}

// PolicyFromConfig reads the "scroll" and "grid" sections of cfg.
func PolicyFromConfig(cfg config.Config) Policy {
	p := DefaultPolicy()
	p.Batch = cfg.GetInt("grid", "measure_batch", p.Batch)
	p.SmallStep = cfg.GetInt("scroll", "small_step", p.SmallStep)
	p.MediumStep = cfg.GetInt("scroll", "medium_step", p.MediumStep)
	p.ThumbSamplePages = cfg.GetInt("scroll", "thumb_sample_pages", p.ThumbSamplePages)
	if p.ThumbSamplePages < 1 {
		p.ThumbSamplePages = 1
	}
	return p
}

// Apply returns the first visible index after req, clamped to
// [0, len(sizes)-1]. viewport is the visible extent along the same axis;
// measure resolves unknown sizes for large increments.
func (p Policy) Apply(top int, sizes []int, viewport int, measure func(start, count int), req Request) (int, error) {
	if !req.Unit.valid() {
		return top, fmt.Errorf("%w: %s", ErrUnknownUnit, req.Unit)
	}
	count := len(sizes)
	if count == 0 {
		return 0, nil
	}

	var next float64
	switch req.Unit {
	case UnitAbsolute:
		next = req.Value
	case UnitProportional:
		next = req.Value * float64(count-1)
	case UnitSmall:
		next = float64(top) + math.Round(req.Value)*float64(p.SmallStep)
	case UnitMedium:
		next = float64(top) + math.Round(req.Value)*float64(p.MediumStep)
	case UnitLarge:
		idx, err := p.page(top, sizes, viewport, measure, req.Value)
		if err != nil {
			return top, err
		}
		next = float64(idx)
	default:
		return top, fmt.Errorf("%w: %s", ErrUnknownUnit, req.Unit)
	}
	return clampIndex(int(math.Round(next)), count), nil
}

// page moves by round(|pages|) viewports. Each page scans viewport cells in
// the scroll direction; when the last element crossed was only partly
// inside, it is not skipped so it stays visible.
func (p Policy) page(top int, sizes []int, viewport int, measure func(start, count int), pages float64) (int, error) {
	steps := int(math.Round(math.Abs(pages)))
	dir := 1
	if pages < 0 {
		dir = -1
	}
	for s := 0; s < steps; s++ {
		end, covered, err := grid.Scan(sizes, top, dir*viewport, measure, p.Batch)
		if err != nil {
			return top, err
		}
		n := end - top
		if n < 0 {
			n = -n
		}
		if covered > viewport {
			n--
		}
		n = max(1, n)
		top = clampIndex(top+dir*n, len(sizes))
	}
	return top, nil
}

func clampIndex(i, count int) int {
	if i < 0 {
		return 0
	}
	if i > count-1 {
		return count - 1
	}
	return i
}

// Metrics describes a scrollbar thumb.
type Metrics struct {
	// Position is the thumb start as a fraction of the track, in [0,1].
	Position float64
	// Proportion is the thumb length as a fraction of the track, in (0,1].
	Proportion float64
	// EstimatedTotal is the extrapolated extent of the whole sequence.
	EstimatedTotal int
}

// Thumb estimates scrollbar metrics. It samples ThumbSamplePages viewports
// forward from top (backward when at the end), takes the average element
// size, and extrapolates it to the whole sequence.
func (p Policy) Thumb(top int, sizes []int, viewport int, measure func(start, count int)) (Metrics, error) {
	count := len(sizes)
	if count == 0 || viewport <= 0 {
		return Metrics{Proportion: 1}, nil
	}
	top = clampIndex(top, count)
	sample := viewport * max(1, p.ThumbSamplePages)

	end, covered, err := grid.Scan(sizes, top, sample, measure, p.Batch)
	if err != nil {
		return Metrics{}, err
	}
	n := end - top
	if covered < sample && top > 0 {
		// Near the end: widen the sample backwards.
		back, extra, err := grid.Scan(sizes, top, -(sample - covered), measure, p.Batch)
		if err != nil {
			return Metrics{}, err
		}
		n += top - back
		covered += extra
	}

	m := Metrics{Proportion: 1}
	if count > 1 {
		m.Position = float64(top) / float64(count-1)
	}
	if n <= 0 || covered <= 0 {
		return m, nil
	}
	avg := float64(covered) / float64(n)
	m.EstimatedTotal = int(math.Round(avg * float64(count)))
	if m.EstimatedTotal > viewport {
		m.Proportion = float64(viewport) / float64(m.EstimatedTotal)
	}
	return m, nil
}
