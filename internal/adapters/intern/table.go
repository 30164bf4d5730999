// Package intern deduplicates Large string content so equal content
// shares one refcounted buffer instead of allocating a copy per value.
package intern

import (
	"sync"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/strbuf/internal/core/domain"
)

// Table maps content fingerprints to retained Large values. Interning
// equal content returns clones of one shared buffer, with the usual
// refcount accounting; the table itself holds one reference per distinct
// content until Close.
//
// Only content that the factory's policy categorizes as Large is
// deduplicated. Small and Medium content is constructed normally: inline
// copies are already free, and Medium buffers must stay exclusive.
type Table struct {
	factory *domain.Factory

	mu      sync.Mutex
	entries map[uint64][]domain.StringValue
	count   int
}

// NewTable creates an interning table over the given factory.
func NewTable(f *domain.Factory) *Table {
	return &Table{factory: f, entries: make(map[uint64][]domain.StringValue)}
}

// Intern returns a value holding content. For Large content, equal bytes
// map to the same shared buffer; the returned value carries its own
// reference and must be released like any clone.
func (t *Table) Intern(content []byte) domain.StringValue {
	if t.factory.Policy().Categorize(len(content)) != domain.CategoryLarge {
		return t.factory.FromBytes(content)
	}

	sum := xxhash.Sum64(content)

	t.mu.Lock()
	defer t.mu.Unlock()

	bucket := t.entries[sum]
	for i := range bucket {
		e := &bucket[i]
		if e.Len() == len(content) && e.EqualBytes(content) {
			return e.Clone()
		}
	}

	v := t.factory.FromBytes(content)
	retained := v.Clone()
	t.entries[sum] = append(bucket, retained)
	t.count++
	return v
}

// InternString is Intern for string content.
func (t *Table) InternString(s string) domain.StringValue {
	return t.Intern([]byte(s))
}

// Len returns the number of distinct contents the table retains.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.count
}

// Close releases the table's retained references. Values handed out
// earlier stay valid until their own Release; buffers nobody else shares
// are freed here.
func (t *Table) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for sum, bucket := range t.entries {
		for i := range bucket {
			bucket[i].Release()
		}
		delete(t.entries, sum)
	}
	t.count = 0
}
