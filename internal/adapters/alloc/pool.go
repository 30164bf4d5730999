package alloc

import "sync"

// sizeClasses are the buffer capacities the pool recycles. Requests above
// the largest class fall through to plain allocation.
var sizeClasses = []int{64, 128, 256, 512, 1024, 2048, 4096, 8192, 16384, 32768, 65536}

// Pool recycles buffers through per-size-class sync.Pools to reduce GC
// pressure under clone/release-heavy workloads. Buffers are handed out
// sliced to the requested size with the class capacity behind them; Free
// routes a buffer back to its class by capacity.
type Pool struct {
	pools []sync.Pool
}

// NewPool creates a size-class pooled allocator.
func NewPool() *Pool {
	p := &Pool{pools: make([]sync.Pool, len(sizeClasses))}
	for i, class := range sizeClasses {
		class := class
		p.pools[i].New = func() any {
			buf := make([]byte, class)
			return &buf
		}
	}
	return p
}

// classIndex returns the smallest class holding size bytes, or -1 when
// the request is larger than every class.
func classIndex(size int) int {
	for i, class := range sizeClasses {
		if size <= class {
			return i
		}
	}
	return -1
}

// Alloc returns a buffer of size bytes, recycled when a class fits.
func (p *Pool) Alloc(size int) ([]byte, error) {
	i := classIndex(size)
	if i < 0 {
		return make([]byte, size), nil
	}
	buf := *p.pools[i].Get().(*[]byte)
	clear(buf)
	return buf[:size], nil
}

// Free returns the buffer to its size class. Buffers without a matching
// class capacity are dropped for the GC.
func (p *Pool) Free(buf []byte) {
	c := cap(buf)
	for i, class := range sizeClasses {
		if c == class {
			full := buf[:c]
			p.pools[i].Put(&full)
			return
		}
	}
}
