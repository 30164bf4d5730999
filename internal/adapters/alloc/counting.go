package alloc

import (
	"sync"

	"go.trai.ch/strbuf/internal/core/ports"
)

// Stats is a snapshot of a Counting allocator's bookkeeping.
type Stats struct {
	// Allocs is the number of buffers handed out.
	Allocs int
	// Frees is the number of first frees of known buffers.
	Frees int
	// LiveBuffers is Allocs - Frees.
	LiveBuffers int
	// LiveBytes is the total size of live buffers.
	LiveBytes int
	// DoubleFrees counts frees of buffers that were already freed.
	DoubleFrees int
	// ForeignFrees counts frees of buffers this allocator never produced.
	ForeignFrees int
}

// record tracks one buffer's lifetime by the identity of its first byte.
type record struct {
	size  int
	frees int
}

// Counting wraps an allocator and audits the free-exactly-once
// discipline: every buffer must come back exactly once, and only buffers
// that came from here may come back at all. It backs both lifecycle tests
// and the stats workload output.
type Counting struct {
	inner ports.Allocator

	mu      sync.Mutex
	records map[*byte]*record
	stats   Stats
}

// NewCounting wraps inner with alloc/free auditing.
func NewCounting(inner ports.Allocator) *Counting {
	return &Counting{inner: inner, records: make(map[*byte]*record)}
}

// Alloc allocates from the inner allocator and records the buffer.
func (c *Counting) Alloc(size int) ([]byte, error) {
	buf, err := c.inner.Alloc(size)
	if err != nil {
		return nil, err
	}
	if size > 0 {
		c.mu.Lock()
		c.records[&buf[0]] = &record{size: size}
		c.stats.Allocs++
		c.stats.LiveBuffers++
		c.stats.LiveBytes += size
		c.mu.Unlock()
	}
	return buf, nil
}

// Free records the buffer's return and forwards it to the inner
// allocator. A second free of the same buffer or a free of an unknown
// buffer is counted instead of forwarded.
func (c *Counting) Free(buf []byte) {
	if len(buf) == 0 {
		return
	}
	c.mu.Lock()
	rec, ok := c.records[&buf[0]]
	if !ok {
		c.stats.ForeignFrees++
		c.mu.Unlock()
		return
	}
	rec.frees++
	if rec.frees > 1 {
		c.stats.DoubleFrees++
		c.mu.Unlock()
		return
	}
	c.stats.Frees++
	c.stats.LiveBuffers--
	c.stats.LiveBytes -= rec.size
	c.mu.Unlock()
	c.inner.Free(buf)
}

// Stats returns a snapshot of the bookkeeping.
func (c *Counting) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// Reset clears the bookkeeping while keeping the inner allocator.
func (c *Counting) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records = make(map[*byte]*record)
	c.stats = Stats{}
}
