package blocktree_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/blocksel/pkg/blocktree"
)

func TestNewAutoIncrement(t *testing.T) {
	t.Parallel()

	gen := blocktree.NewAutoIncrement()
	assert.Equal(t, blocktree.ID("0"), gen.Next())
	assert.Equal(t, blocktree.ID("1"), gen.Next())
	assert.Equal(t, blocktree.ID("2"), gen.Next())
}

func TestNewAutoIncrementByClient(t *testing.T) {
	t.Parallel()

	gen := blocktree.NewAutoIncrementByClient(42)
	assert.Equal(t, blocktree.ID("42:0"), gen.Next())
	assert.Equal(t, blocktree.ID("42:1"), gen.Next())
}

func TestNewUUID(t *testing.T) {
	t.Parallel()

	gen := blocktree.NewUUID()
	a, b := gen.Next(), gen.Next()

	assert.Len(t, string(a), 36)
	assert.NotEqual(t, a, b)
}
