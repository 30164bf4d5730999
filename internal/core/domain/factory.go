package domain

import (
	"fmt"
	"os"

	"go.trai.ch/strbuf/internal/core/ports"
	"go.trai.ch/zerr"
)

// FatalFunc handles an unrecoverable error (allocation failure, corrupted
// category). It must not return; the default terminates the process with
// the exit code for the error kind. Tests inject a panicking FatalFunc.
type FatalFunc func(err error)

// Factory constructs StringValues against one allocator and one category
// policy. The policy is fixed for the factory's lifetime, so every value
// it produces was categorized by the same thresholds.
type Factory struct {
	alloc  ports.Allocator
	policy Policy
	fatal  FatalFunc
	log    ports.Logger
}

// Option configures a Factory.
type Option func(*Factory)

// WithPolicy sets the category thresholds.
func WithPolicy(p Policy) Option {
	return func(f *Factory) { f.policy = p }
}

// WithFatalFunc replaces the default process-terminating fatal handler.
func WithFatalFunc(fn FatalFunc) Option {
	return func(f *Factory) { f.fatal = fn }
}

// WithLogger sets the logger used by the default fatal handler.
func WithLogger(log ports.Logger) Option {
	return func(f *Factory) { f.log = log }
}

// NewFactory creates a Factory over the given allocator. It returns
// ErrInvalidPolicy if the configured thresholds are malformed.
func NewFactory(alloc ports.Allocator, opts ...Option) (*Factory, error) {
	f := &Factory{alloc: alloc, policy: DefaultPolicy()}
	for _, opt := range opts {
		opt(f)
	}
	if err := f.policy.Validate(); err != nil {
		return nil, err
	}
	if f.fatal == nil {
		log := f.log
		f.fatal = func(err error) { exitFatal(log, err) }
	}
	return f, nil
}

// Policy returns the factory's category thresholds.
func (f *Factory) Policy() Policy {
	return f.policy
}

// Empty returns an empty Small value. No allocation happens and the call
// never fails.
func (f *Factory) Empty() StringValue {
	return StringValue{category: CategorySmall, owner: f}
}

// FromBytes constructs a value holding a copy of content. The category is
// chosen by the factory's policy from the content length; Medium and
// Large allocate a heap buffer, and a Large buffer starts with refcount 1.
// Allocation failure is fatal.
func (f *Factory) FromBytes(content []byte) StringValue {
	size := len(content)
	switch f.policy.Categorize(size) {
	case CategorySmall:
		v := StringValue{category: CategorySmall, size: size, owner: f}
		copy(v.inline[:], content)
		return v
	case CategoryMedium:
		buf := f.allocate(size)
		copy(buf, content)
		return StringValue{category: CategoryMedium, size: size, medium: buf, owner: f}
	default:
		buf := f.allocate(size)
		copy(buf, content)
		return StringValue{category: CategoryLarge, size: size, shared: newSharedBuffer(buf), owner: f}
	}
}

// FromString constructs a value holding a copy of s.
func (f *Factory) FromString(s string) StringValue {
	return f.FromBytes([]byte(s))
}

// allocate is the checked-allocation helper: it either returns a buffer
// of exactly size bytes or drives the fatal path. Callers never see a
// failed allocation.
func (f *Factory) allocate(size int) []byte {
	buf, err := f.alloc.Alloc(size)
	if err != nil {
		f.fail(zerr.With(zerr.With(zerr.Wrap(ErrAllocationFailure, "allocating buffer"), "size", size), "cause", err.Error()))
	}
	return buf[:size]
}

func (f *Factory) free(buf []byte) {
	f.alloc.Free(buf)
}

// fail invokes the fatal handler and guards against it returning.
func (f *Factory) fail(err error) {
	f.fatal(err)
	panic(err)
}

// exitFatal is the default fatal behavior: log the error and terminate
// with the exit code for its kind.
func exitFatal(log ports.Logger, err error) {
	if log != nil {
		log.Error(err)
	} else {
		_, _ = fmt.Fprintf(os.Stderr, "%+v\n", err)
	}
	os.Exit(ExitCode(err))
}
