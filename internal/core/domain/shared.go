package domain

import "sync/atomic"

// sharedBuffer is the heap buffer behind Large values. Its reference count
// is the exact number of live StringValue instances pointing at it; the
// buffer is handed back to the allocator on the 1->0 transition and never
// while any reference remains.
//
// The count is atomic so Large values may be cloned and released from
// different goroutines. All other StringValue state is single-goroutine.
type sharedBuffer struct {
	buf  []byte
	refs atomic.Int32
}

func newSharedBuffer(buf []byte) *sharedBuffer {
	b := &sharedBuffer{buf: buf}
	b.refs.Store(1)
	return b
}

// acquire registers one more referencing value.
func (b *sharedBuffer) acquire() {
	b.refs.Add(1)
}

// release drops one reference and reports whether the caller now owns the
// buffer and must free it. The decrement and the zero check are a single
// atomic operation, so exactly one releaser observes the 1->0 transition.
func (b *sharedBuffer) release() bool {
	n := b.refs.Add(-1)
	if n < 0 {
		panic("strbuf: shared buffer refcount underflow")
	}
	return n == 0
}

// count returns the current number of referencing values.
func (b *sharedBuffer) count() int {
	return int(b.refs.Load())
}
