// Package rect merges the boxes a rendering surface reports for one visual
// line of text into a single box.
package rect

import (
	"errors"
	"fmt"
)

// ErrNoRects is returned when there is nothing to merge.
var ErrNoRects = errors.New("no rects to merge")

// Rect is an axis-aligned box.
type Rect struct {
	Left   float64 `json:"left" yaml:"left"`
	Top    float64 `json:"top" yaml:"top"`
	Right  float64 `json:"right" yaml:"right"`
	Bottom float64 `json:"bottom" yaml:"bottom"`
}

// Width returns Right - Left.
func (r Rect) Width() float64 {
	return r.Right - r.Left
}

// Height returns Bottom - Top.
func (r Rect) Height() float64 {
	return r.Bottom - r.Top
}

// Union returns the smallest box covering r and o.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		Left:   min(r.Left, o.Left),
		Top:    min(r.Top, o.Top),
		Right:  max(r.Right, o.Right),
		Bottom: max(r.Bottom, o.Bottom),
	}
}

func (r Rect) String() string {
	return fmt.Sprintf("(%g,%g,%g,%g)", r.Left, r.Top, r.Right, r.Bottom)
}

// Line selects which visual line of a selection to merge.
type Line int

const (
	FirstLine Line = iota
	LastLine
)

// ParseLine maps "first" and "last" to a Line.
func ParseLine(s string) (Line, error) {
	switch s {
	case "first":
		return FirstLine, nil
	case "last":
		return LastLine, nil
	default:
		return 0, fmt.Errorf("unknown line %q: must be first or last", s)
	}
}

func (l Line) String() string {
	if l == LastLine {
		return "last"
	}
	return "first"
}

// MergeLine merges the rects of the first or last visual line.
//
// Surfaces mark a line wrap with a degenerate rect. For FirstLine the scan
// runs forward and stops before the first rect lying left of the viewport
// with a height of at most one; the rects before it are merged. If the very
// first rect is degenerate it is returned alone. For LastLine the scan runs
// backward and stops at the first zero-height rect; the rects after it are
// merged, or the zero-height rect alone when it is the last one.
func MergeLine(rects []Rect, line Line) (Rect, error) {
	if len(rects) == 0 {
		return Rect{}, ErrNoRects
	}

	var span []Rect
	switch line {
	case FirstLine:
		end := 0
		for i, r := range rects {
			if isFirstLineSentinel(r) {
				break
			}
			end = i
		}
		span = rects[:end+1]
	case LastLine:
		start := len(rects) - 1
		for i := len(rects) - 1; i >= 0; i-- {
			if rects[i].Height() == 0 {
				break
			}
			start = i
		}
		span = rects[start:]
	default:
		return Rect{}, fmt.Errorf("unknown line %d", line)
	}

	merged := span[0]
	for _, r := range span[1:] {
		merged = merged.Union(r)
	}
	return merged, nil
}

func isFirstLineSentinel(r Rect) bool {
	return r.Left < 0 && r.Right < 0 && r.Height() <= 1
}
