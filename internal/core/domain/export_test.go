package domain

// ForceCategory overwrites a value's category tag so tests can observe how
// ownership dispatch reacts to a corrupted value.
func ForceCategory(v *StringValue, c Category) {
	v.category = c
}

// SameBuffer reports whether two values point at the same heap buffer.
func SameBuffer(a, b *StringValue) bool {
	if a.shared != nil || b.shared != nil {
		return a.shared == b.shared
	}
	if len(a.medium) == 0 || len(b.medium) == 0 {
		return false
	}
	return &a.medium[0] == &b.medium[0]
}
