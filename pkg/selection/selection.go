// Package selection resolves selections on the rendering surface into the
// document blocks they touch.
package selection

import "github.com/yaklabco/blocksel/pkg/blocktree"

// Selection is the set of ranges a user has selected. Usually it holds
// exactly one range.
type Selection struct {
	Ranges []*Range
}

// NewSelection returns a selection of the given ranges.
func NewSelection(ranges ...*Range) *Selection {
	return &Selection{Ranges: ranges}
}

// RangeCount returns the number of ranges.
func (s *Selection) RangeCount() int {
	if s == nil {
		return 0
	}
	return len(s.Ranges)
}

// BlockRange is a block plus optional start and end offsets into its text.
// A nil position means "whole block" or "use the other bound".
type BlockRange struct {
	ID       blocktree.ID `json:"id" yaml:"id"`
	StartPos *int         `json:"startPos,omitempty" yaml:"start_pos,omitempty"`
	EndPos   *int         `json:"endPos,omitempty" yaml:"end_pos,omitempty"`
}

// Whole returns a BlockRange covering all of id.
func Whole(id blocktree.ID) BlockRange {
	return BlockRange{ID: id}
}

// At returns a BlockRange starting at offset.
func At(id blocktree.ID, offset int) BlockRange {
	return BlockRange{ID: id, StartPos: &offset}
}

// WithStart returns a copy of b with StartPos set.
func (b BlockRange) WithStart(offset int) BlockRange {
	b.StartPos = &offset
	return b
}

// WithEnd returns a copy of b with EndPos set.
func (b BlockRange) WithEnd(offset int) BlockRange {
	b.EndPos = &offset
	return b
}

// Offset returns StartPos, else EndPos, else 0.
func (b BlockRange) Offset() int {
	switch {
	case b.StartPos != nil:
		return *b.StartPos
	case b.EndPos != nil:
		return *b.EndPos
	default:
		return 0
	}
}
