package domain

import (
	"bytes"

	"go.trai.ch/zerr"
)

// StringValue is a string value whose copy cost depends on its category:
// Small content lives inline in the value, Medium content lives in a
// buffer owned by exactly one value, and Large content lives in a shared
// refcounted buffer.
//
// Values are created through a Factory and retired with Release. Copy a
// value with Clone, not by assignment: assignment duplicates the handle
// without adjusting ownership, so only one of the two may be released.
// The category is fixed at construction and never changes for a live
// value; a clone picks its own category relative to the source only.
type StringValue struct {
	category Category
	size     int
	inline   [InlineCapacity]byte
	medium   []byte
	shared   *sharedBuffer
	owner    *Factory
}

// Category returns the value's representation category.
func (v *StringValue) Category() Category {
	return v.category
}

// Len returns the byte length of the content.
func (v *StringValue) Len() int {
	return v.size
}

// view returns the content without copying. Callers must not retain or
// mutate the result. A corrupted category reads as empty; only ownership
// decisions (Clone, Release) treat it as fatal.
func (v *StringValue) view() []byte {
	switch v.category {
	case CategorySmall:
		return v.inline[:v.size]
	case CategoryMedium:
		return v.medium[:v.size]
	case CategoryLarge:
		if v.shared == nil {
			return nil
		}
		return v.shared.buf[:v.size]
	default:
		return nil
	}
}

// String returns a copy of the content as a string.
func (v *StringValue) String() string {
	return string(v.view())
}

// Bytes returns a copy of the content. The copy keeps callers from
// mutating a buffer they do not own.
func (v *StringValue) Bytes() []byte {
	return bytes.Clone(v.view())
}

// EqualBytes reports whether the content equals p, without copying.
func (v *StringValue) EqualBytes(p []byte) bool {
	return bytes.Equal(v.view(), p)
}

// SharedRefs returns the number of live values sharing this value's
// buffer. It is meaningful only for Large values; Small and Medium values
// have no shared buffer and report 0.
func (v *StringValue) SharedRefs() int {
	if v.category == CategoryLarge && v.shared != nil {
		return v.shared.count()
	}
	return 0
}

// Clone produces an independent value holding the same logical string.
// The cost is category-dependent: Small copies inline bytes, Medium
// allocates and copies a new exclusive buffer, Large shares the source
// buffer and increments its refcount. The source is never modified.
//
// A category outside the defined set is fatal: cloning a value with
// unknown ownership cannot be done safely.
func (v *StringValue) Clone() StringValue {
	switch v.category {
	case CategorySmall:
		return *v
	case CategoryMedium:
		buf := v.owner.allocate(v.size)
		copy(buf, v.medium[:v.size])
		return StringValue{category: CategoryMedium, size: v.size, medium: buf, owner: v.owner}
	case CategoryLarge:
		v.shared.acquire()
		return StringValue{category: CategoryLarge, size: v.size, shared: v.shared, owner: v.owner}
	default:
		v.fail(zerr.With(zerr.Wrap(ErrInvalidCategory, "clone dispatch"), "category", int(v.category)))
		return StringValue{}
	}
}

// Release retires the value and settles buffer ownership according to the
// value's own category at the time of the call: Medium frees its buffer
// unconditionally, Large drops one reference and frees only on the last
// one, Small holds no heap memory and only resets its length. Call Release exactly
// once per constructed or cloned value.
//
// After Release the value reads as empty. A category outside the defined
// set is fatal and performs no free.
func (v *StringValue) Release() {
	switch v.category {
	case CategorySmall:
		v.size = 0
	case CategoryMedium:
		if v.medium != nil {
			v.owner.free(v.medium)
			v.medium = nil
		}
		v.size = 0
	case CategoryLarge:
		if v.shared != nil {
			if v.shared.release() {
				v.owner.free(v.shared.buf)
				v.shared.buf = nil
			}
			v.shared = nil
		}
		v.size = 0
	default:
		v.fail(zerr.With(zerr.Wrap(ErrInvalidCategory, "release dispatch"), "category", int(v.category)))
	}
}

// fail routes a fatal error through the owning factory's FatalFunc, or
// the process-exit fallback for values that never had an owner.
func (v *StringValue) fail(err error) {
	if v.owner != nil {
		v.owner.fail(err)
		return
	}
	exitFatal(nil, err)
	panic(err)
}
