package domain

import "go.trai.ch/zerr"

// InlineCapacity is the number of content bytes a StringValue can hold
// inline. It bounds Policy.SmallMax: content longer than this cannot be
// stored without a heap buffer.
const InlineCapacity = 23

// DefaultSmallMax and DefaultMediumMax are the default category thresholds.
// Content of length <= SmallMax is Small, <= MediumMax is Medium, and
// anything longer is Large.
const (
	DefaultSmallMax  = InlineCapacity
	DefaultMediumMax = 255
)

// Policy holds the two fixed thresholds that map content length to a
// Category. The thresholds are policy constants chosen at construction
// time, not derived from content.
type Policy struct {
	// SmallMax is the largest content length stored inline.
	SmallMax int
	// MediumMax is the largest content length stored in an exclusively
	// owned buffer. Longer content uses a shared refcounted buffer.
	MediumMax int
}

// DefaultPolicy returns the default thresholds.
func DefaultPolicy() Policy {
	return Policy{SmallMax: DefaultSmallMax, MediumMax: DefaultMediumMax}
}

// Validate checks that the thresholds are ordered and representable.
func (p Policy) Validate() error {
	if p.SmallMax < 0 || p.SmallMax > InlineCapacity {
		return zerr.With(zerr.Wrap(ErrInvalidPolicy, "small threshold out of range"), "small_max", p.SmallMax)
	}
	if p.MediumMax <= p.SmallMax {
		return zerr.With(zerr.With(zerr.Wrap(ErrInvalidPolicy, "thresholds out of order"), "small_max", p.SmallMax), "medium_max", p.MediumMax)
	}
	return nil
}

// Categorize maps a content length to its Category under this policy.
func (p Policy) Categorize(size int) Category {
	switch {
	case size <= p.SmallMax:
		return CategorySmall
	case size <= p.MediumMax:
		return CategoryMedium
	default:
		return CategoryLarge
	}
}
