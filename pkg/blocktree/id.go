package blocktree

import (
	"strconv"
	"sync/atomic"

	"github.com/gofrs/uuid"
)

// IDGenerator hands out block ids.
type IDGenerator interface {
	Next() ID
}

// IDGeneratorFunc adapts a function to IDGenerator.
type IDGeneratorFunc func() ID

// Next implements IDGenerator.
func (f IDGeneratorFunc) Next() ID {
	return f()
}

// NewAutoIncrement returns a generator producing "0", "1", "2", ...
func NewAutoIncrement() IDGenerator {
	var n atomic.Int64
	return IDGeneratorFunc(func() ID {
		return ID(strconv.FormatInt(n.Add(1)-1, 10))
	})
}

// NewAutoIncrementByClient returns a generator producing "<client>:0",
// "<client>:1", ... so ids from different clients never collide.
func NewAutoIncrementByClient(client int) IDGenerator {
	prefix := strconv.Itoa(client) + ":"
	var n atomic.Int64
	return IDGeneratorFunc(func() ID {
		return ID(prefix + strconv.FormatInt(n.Add(1)-1, 10))
	})
}

// NewUUID returns a generator producing random version 4 UUIDs.
func NewUUID() IDGenerator {
	return IDGeneratorFunc(func() ID {
		return ID(uuid.Must(uuid.NewV4()).String())
	})
}
