package matching

import (
	"strconv"
	"strings"
	"sync"
)

// idGenerator produces monotonic, zero-padded trade IDs ("T0001", "T0002",
// ...). Grounded on the teacher's IDGenerator (a counter plus a pooled
// strings.Builder), with a plain counter in place of the teacher's atomic
// one. Not safe for concurrent use — callers (matching.Engine) are
// single-threaded per spec §5, so the counter needs no atomic/mutex
// protection of its own.
type idGenerator struct {
	prefix      string
	pad         int
	counter     uint64
	builderPool sync.Pool
}

func newIDGenerator(prefix string, pad int) *idGenerator {
	return &idGenerator{
		prefix: prefix,
		pad:    pad,
		builderPool: sync.Pool{
			New: func() any {
				b := &strings.Builder{}
				b.Grow(24)
				return b
			},
		},
	}
}

// next returns the next unique, zero-padded ID, e.g. "T0001".
func (g *idGenerator) next() string {
	g.counter++
	count := g.counter

	b := g.builderPool.Get().(*strings.Builder)
	defer func() {
		b.Reset()
		g.builderPool.Put(b)
	}()

	b.WriteString(g.prefix)
	digits := strconv.FormatUint(count, 10)
	for i := len(digits); i < g.pad; i++ {
		b.WriteByte('0')
	}
	b.WriteString(digits)

	return b.String()
}
