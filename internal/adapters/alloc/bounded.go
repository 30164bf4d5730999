package alloc

import (
	"sync"

	"go.trai.ch/strbuf/internal/core/ports"
	"go.trai.ch/zerr"
)

// ErrBudgetExceeded is returned when an allocation would push the
// outstanding byte count over the configured budget.
var ErrBudgetExceeded = zerr.New("allocation budget exceeded")

// Bounded wraps an allocator with a budget on outstanding bytes. It makes
// allocation failure reachable for callers that treat a failed allocation
// as fatal, without exhausting real memory.
type Bounded struct {
	inner  ports.Allocator
	budget int

	mu          sync.Mutex
	outstanding int
}

// NewBounded wraps inner with a budget of outstanding bytes.
func NewBounded(inner ports.Allocator, budget int) *Bounded {
	return &Bounded{inner: inner, budget: budget}
}

// Alloc allocates from the inner allocator if the budget allows it.
func (b *Bounded) Alloc(size int) ([]byte, error) {
	b.mu.Lock()
	if b.outstanding+size > b.budget {
		outstanding := b.outstanding
		b.mu.Unlock()
		return nil, zerr.With(zerr.With(zerr.Wrap(ErrBudgetExceeded, "alloc rejected"), "requested", size), "outstanding", outstanding)
	}
	b.outstanding += size
	b.mu.Unlock()

	buf, err := b.inner.Alloc(size)
	if err != nil {
		b.mu.Lock()
		b.outstanding -= size
		b.mu.Unlock()
		return nil, err
	}
	return buf, nil
}

// Free returns the buffer to the inner allocator and its bytes to the
// budget. The refund uses len(buf), so callers must pass the buffer as
// allocated, not a shortened reslice.
func (b *Bounded) Free(buf []byte) {
	b.mu.Lock()
	b.outstanding -= len(buf)
	if b.outstanding < 0 {
		b.outstanding = 0
	}
	b.mu.Unlock()
	b.inner.Free(buf)
}

// Outstanding returns the bytes currently allocated and not yet freed.
func (b *Bounded) Outstanding() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.outstanding
}
