package domain

// Category identifies the representation of a StringValue and with it the
// ownership discipline of its buffer: inline (no buffer), exclusively owned,
// or shared with reference counting.
type Category uint8

const (
	// CategorySmall stores content inline in the value; no heap buffer exists.
	CategorySmall Category = iota
	// CategoryMedium owns its heap buffer exclusively; copies are deep.
	CategoryMedium
	// CategoryLarge shares a reference-counted heap buffer; copies are shallow.
	CategoryLarge
)

// String returns the string representation of the Category.
func (c Category) String() string {
	switch c {
	case CategorySmall:
		return "small"
	case CategoryMedium:
		return "medium"
	case CategoryLarge:
		return "large"
	default:
		return "invalid"
	}
}

// Valid reports whether c is one of the defined categories.
func (c Category) Valid() bool {
	return c <= CategoryLarge
}
