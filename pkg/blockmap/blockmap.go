// Package blockmap ties the document model and the rendering surface
// together: it turns a selection into block ranges and block ranges back
// into a selection range.
package blockmap

import (
	"github.com/charmbracelet/log"
	"golang.org/x/net/html"

	"github.com/yaklabco/blocksel/internal/logging"
	"github.com/yaklabco/blocksel/pkg/blocktree"
	"github.com/yaklabco/blocksel/pkg/offsets"
	"github.com/yaklabco/blocksel/pkg/selection"
	"github.com/yaklabco/blocksel/pkg/traverse"
)

// Surface is everything the map needs from the rendering surface.
type Surface interface {
	selection.Surface
	offsets.Surface
}

// Map answers selection questions for one document and its surface.
type Map struct {
	model    blocktree.Model
	surface  Surface
	resolver *selection.Resolver
	mapper   *offsets.Mapper
	logger   *log.Logger
}

// Option configures a Map.
type Option func(*Map)

// WithLogger sets the logger used by the map and its resolver.
func WithLogger(logger *log.Logger) Option {
	return func(m *Map) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// New returns a map over model and surface.
func New(model blocktree.Model, surface Surface, opts ...Option) *Map {
	m := &Map{
		model:   model,
		surface: surface,
		logger:  logging.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.resolver = selection.NewResolver(model, surface, selection.WithLogger(m.logger))
	m.mapper = offsets.New(surface)
	return m
}

// Resolver returns the underlying selection resolver.
func (m *Map) Resolver() *selection.Resolver {
	return m.resolver
}

// Mapper returns the underlying offset mapper.
func (m *Map) Mapper() *offsets.Mapper {
	return m.mapper
}

// SelectedBlocks returns the blocks touched by the current range of sel in
// document order. The first block carries the start offset and the last the
// end offset when the range starts or ends inside them.
func (m *Map) SelectedBlocks(sel *selection.Selection) ([]selection.BlockRange, error) {
	rng, err := m.resolver.CurrentRange(sel)
	if err != nil {
		return nil, err
	}
	ids, err := m.resolver.ResolveRange(rng)
	if err != nil {
		return nil, err
	}

	blocks := make([]selection.BlockRange, 0, len(ids))
	for _, id := range ids {
		blocks = append(blocks, selection.Whole(id))
	}
	if len(blocks) == 0 {
		return blocks, nil
	}

	first, last := &blocks[0], &blocks[len(blocks)-1]

	if start := rng.Start(); m.within(first.ID, start.Node) {
		offset, err := m.mapper.ToBlockOffset(start.Node, start.Offset, true)
		if err != nil {
			return nil, err
		}
		first.StartPos = &offset
	}
	if end := rng.End(); m.within(last.ID, end.Node) {
		offset, err := m.mapper.ToBlockOffset(end.Node, end.Offset, false)
		if err != nil {
			return nil, err
		}
		last.EndPos = &offset
	}

	m.logger.Debug("selected blocks", logging.FieldBlocks, len(blocks))
	return blocks, nil
}

// Restore returns the surface range from one block position to another.
// start is resolved by its Offset; end prefers its EndPos.
func (m *Map) Restore(start, end selection.BlockRange) (*selection.Range, error) {
	from, err := m.mapper.ToRenderedPosition(start)
	if err != nil {
		return nil, err
	}
	if end.EndPos != nil {
		end = selection.BlockRange{ID: end.ID, EndPos: end.EndPos}
	}
	to, err := m.mapper.ToRenderedPosition(end)
	if err != nil {
		return nil, err
	}
	return selection.NewRange(from.Node, from.Offset, to.Node, to.Offset)
}

// Next returns the block after id in reading order.
func (m *Map) Next(id blocktree.ID) (blocktree.ID, error) {
	return traverse.Next(m.model, id)
}

// Previous returns the block before id in reading order.
func (m *Map) Previous(id blocktree.ID) (blocktree.ID, error) {
	return traverse.Previous(m.model, id)
}

// within reports whether n lies in the marked root of id and not in a
// nested block.
func (m *Map) within(id blocktree.ID, n *html.Node) bool {
	marked := m.surface.ClosestMarked(n)
	if marked == nil {
		return false
	}
	got, ok := m.surface.BlockID(marked)
	return ok && got == id
}
