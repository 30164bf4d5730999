// Package ports defines the core interfaces for the application.
package ports

// Allocator hands out and reclaims heap buffers for Medium and Large
// string values. Implementations may return a buffer with capacity larger
// than requested (size-class allocators do); callers slice to the size
// they asked for and hand back the original buffer on Free.
//
//go:generate go run go.uber.org/mock/mockgen -source=allocator.go -destination=mocks/mock_allocator.go -package=mocks
type Allocator interface {
	// Alloc returns a buffer of at least size bytes, or an error if the
	// allocation cannot be satisfied.
	Alloc(size int) ([]byte, error)

	// Free returns a buffer previously obtained from Alloc. Each buffer
	// must be freed exactly once.
	Free(buf []byte)
}
