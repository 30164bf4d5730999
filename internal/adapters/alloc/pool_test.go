package alloc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/strbuf/internal/adapters/alloc"
)

func TestPool_AllocReturnsRequestedSize(t *testing.T) {
	p := alloc.NewPool()

	for _, size := range []int{1, 63, 64, 65, 1000, 65536} {
		buf, err := p.Alloc(size)
		require.NoError(t, err)
		assert.Len(t, buf, size)
		assert.GreaterOrEqual(t, cap(buf), size)
		p.Free(buf)
	}
}

func TestPool_AllocZeroesRecycledBuffers(t *testing.T) {
	p := alloc.NewPool()

	buf, err := p.Alloc(64)
	require.NoError(t, err)
	for i := range buf {
		buf[i] = 0xFF
	}
	p.Free(buf)

	// A recycled buffer must not leak the previous content.
	buf2, err := p.Alloc(64)
	require.NoError(t, err)
	for i, b := range buf2 {
		require.Zerof(t, b, "recycled buffer dirty at offset %d", i)
	}
}

func TestPool_OversizedRequestsBypassClasses(t *testing.T) {
	p := alloc.NewPool()

	buf, err := p.Alloc(1 << 20)
	require.NoError(t, err)
	assert.Len(t, buf, 1<<20)
	// Free of an unclassed buffer just drops it.
	p.Free(buf)
}
