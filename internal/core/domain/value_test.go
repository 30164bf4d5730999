package domain_test

import (
	"bytes"
	"errors"
	"testing"

	"go.trai.ch/strbuf/internal/adapters/alloc"
	"go.trai.ch/strbuf/internal/core/domain"
)

// newAuditedFactory builds a factory over a counting heap allocator with
// a panicking fatal handler so tests observe fatal errors instead of the
// process exiting.
func newAuditedFactory(t *testing.T, opts ...domain.Option) (*domain.Factory, *alloc.Counting) {
	t.Helper()
	counting := alloc.NewCounting(alloc.NewHeap())
	opts = append([]domain.Option{
		domain.WithFatalFunc(func(err error) { panic(err) }),
	}, opts...)
	f, err := domain.NewFactory(counting, opts...)
	if err != nil {
		t.Fatalf("NewFactory failed: %v", err)
	}
	return f, counting
}

func content(n int) []byte {
	p := make([]byte, n)
	for i := range p {
		p[i] = byte('a' + i%26)
	}
	return p
}

func TestFactory_Empty(t *testing.T) {
	f, counting := newAuditedFactory(t)

	// Two empty values are fully independent and carry no heap state.
	v1 := f.Empty()
	v2 := f.Empty()

	if v1.Category() != domain.CategorySmall {
		t.Errorf("expected small category, got %s", v1.Category())
	}
	if v1.Len() != 0 || v2.Len() != 0 {
		t.Errorf("expected size 0, got %d and %d", v1.Len(), v2.Len())
	}
	if got := counting.Stats().Allocs; got != 0 {
		t.Errorf("empty construction must not allocate, got %d allocations", got)
	}

	v1.Release()
	v2.Release()
	if got := counting.Stats().Frees; got != 0 {
		t.Errorf("releasing small values must not free, got %d frees", got)
	}
}

func TestFactory_FromBytes_Small(t *testing.T) {
	f, counting := newAuditedFactory(t)

	v := f.FromString("hi")
	if v.Category() != domain.CategorySmall {
		t.Fatalf("expected small category, got %s", v.Category())
	}
	if v.String() != "hi" {
		t.Errorf("expected content %q, got %q", "hi", v.String())
	}
	if got := counting.Stats().Allocs; got != 0 {
		t.Errorf("small construction must not allocate, got %d allocations", got)
	}

	v.Release()
	if got := counting.Stats().Frees; got != 0 {
		t.Errorf("small release must not free, got %d frees", got)
	}
}

func TestFactory_FromBytes_ChoosesCategoryByThresholds(t *testing.T) {
	f, _ := newAuditedFactory(t)

	tests := []struct {
		size int
		want domain.Category
	}{
		{0, domain.CategorySmall},
		{domain.DefaultSmallMax, domain.CategorySmall},
		{domain.DefaultSmallMax + 1, domain.CategoryMedium},
		{domain.DefaultMediumMax, domain.CategoryMedium},
		{domain.DefaultMediumMax + 1, domain.CategoryLarge},
		{1000, domain.CategoryLarge},
	}

	for _, tt := range tests {
		v := f.FromBytes(content(tt.size))
		if v.Category() != tt.want {
			t.Errorf("size %d: expected %s, got %s", tt.size, tt.want, v.Category())
		}
		if v.Len() != tt.size {
			t.Errorf("size %d: Len() = %d", tt.size, v.Len())
		}
		v.Release()
	}
}

func TestStringValue_ContentRoundTrip(t *testing.T) {
	f, _ := newAuditedFactory(t)

	for _, size := range []int{0, 5, 23, 24, 100, 255, 256, 1000} {
		p := content(size)
		v := f.FromBytes(p)
		if !bytes.Equal(v.Bytes(), p) {
			t.Errorf("size %d: content mismatch", size)
		}
		if !v.EqualBytes(p) {
			t.Errorf("size %d: EqualBytes reported false", size)
		}
		if v.EqualBytes(append(bytes.Clone(p), 'x')) {
			t.Errorf("size %d: EqualBytes matched different content", size)
		}
		v.Release()
	}
}

func TestClone_Small_NoSharedState(t *testing.T) {
	f, counting := newAuditedFactory(t)

	v := f.FromString("short")
	c := v.Clone()

	if c.Category() != domain.CategorySmall {
		t.Errorf("expected small clone, got %s", c.Category())
	}
	if c.String() != "short" {
		t.Errorf("expected content %q, got %q", "short", c.String())
	}
	if got := counting.Stats().Allocs; got != 0 {
		t.Errorf("small clone must not allocate, got %d allocations", got)
	}

	c.Release()
	v.Release()
}

func TestClone_Medium_DeepCopies(t *testing.T) {
	f, counting := newAuditedFactory(t)

	p := content(50)
	v := f.FromBytes(p)
	c := v.Clone()

	// The clone owns a distinct buffer with equal content; the source is
	// untouched.
	if c.Category() != domain.CategoryMedium {
		t.Fatalf("expected medium clone, got %s", c.Category())
	}
	if domain.SameBuffer(&v, &c) {
		t.Error("medium clone must not alias the source buffer")
	}
	if !c.EqualBytes(p) || !v.EqualBytes(p) {
		t.Error("content mismatch after clone")
	}
	if got := counting.Stats().Allocs; got != 2 {
		t.Errorf("expected 2 allocations (source + deep copy), got %d", got)
	}

	// Releasing the copy does not affect the original's buffer.
	c.Release()
	if !v.EqualBytes(p) {
		t.Error("source corrupted by releasing its clone")
	}
	if got := counting.Stats().Frees; got != 1 {
		t.Errorf("expected 1 free after releasing the clone, got %d", got)
	}

	v.Release()
	stats := counting.Stats()
	if stats.Frees != 2 || stats.LiveBuffers != 0 {
		t.Errorf("expected 2 independent frees and no live buffers, got %+v", stats)
	}
	if stats.DoubleFrees != 0 {
		t.Errorf("expected no double frees, got %d", stats.DoubleFrees)
	}
}

func TestClone_Large_SharesBufferAndCountsRefs(t *testing.T) {
	f, counting := newAuditedFactory(t)

	p := content(1000)
	v := f.FromBytes(p)
	if v.SharedRefs() != 1 {
		t.Fatalf("expected refcount 1 after construction, got %d", v.SharedRefs())
	}

	c := v.Clone()
	if !domain.SameBuffer(&v, &c) {
		t.Fatal("large clone must share the source buffer")
	}
	if v.SharedRefs() != 2 || c.SharedRefs() != 2 {
		t.Errorf("expected refcount 2, got %d and %d", v.SharedRefs(), c.SharedRefs())
	}
	if got := counting.Stats().Allocs; got != 1 {
		t.Errorf("large clone must not allocate, got %d allocations", got)
	}

	// Releasing one value leaves the buffer alive for the other.
	v.Release()
	if got := c.SharedRefs(); got != 1 {
		t.Errorf("expected refcount 1 after one release, got %d", got)
	}
	if got := counting.Stats().Frees; got != 0 {
		t.Errorf("buffer freed while still referenced, frees = %d", got)
	}
	if !c.EqualBytes(p) {
		t.Error("surviving value lost its content")
	}

	// The last release frees the buffer exactly once.
	c.Release()
	stats := counting.Stats()
	if stats.Frees != 1 {
		t.Errorf("expected exactly 1 free, got %d", stats.Frees)
	}
	if stats.DoubleFrees != 0 || stats.LiveBuffers != 0 {
		t.Errorf("expected clean audit, got %+v", stats)
	}
}

func TestClone_DoesNotChangeSourceCategory(t *testing.T) {
	f, _ := newAuditedFactory(t)

	for _, size := range []int{5, 50, 1000} {
		v := f.FromBytes(content(size))
		want := v.Category()
		c := v.Clone()
		if v.Category() != want {
			t.Errorf("size %d: source category changed from %s to %s", size, want, v.Category())
		}
		c.Release()
		if v.Category() != want {
			t.Errorf("size %d: source category changed by clone release", size)
		}
		v.Release()
	}
}

func TestRelease_CorruptedCategoryIsFatalWithoutFree(t *testing.T) {
	var fatalErr error
	counting := alloc.NewCounting(alloc.NewHeap())
	f, err := domain.NewFactory(counting, domain.WithFatalFunc(func(err error) { fatalErr = err }))
	if err != nil {
		t.Fatalf("NewFactory failed: %v", err)
	}

	v := f.FromBytes(content(50))
	domain.ForceCategory(&v, domain.Category(97))

	func() {
		defer func() {
			if recover() == nil {
				t.Error("expected release of corrupted value to panic")
			}
		}()
		v.Release()
	}()

	if !errors.Is(fatalErr, domain.ErrInvalidCategory) {
		t.Errorf("expected ErrInvalidCategory, got: %v", fatalErr)
	}
	if domain.ExitCode(fatalErr) != domain.ExitInvalidCategory {
		t.Errorf("expected exit code %d, got %d", domain.ExitInvalidCategory, domain.ExitCode(fatalErr))
	}
	if got := counting.Stats().Frees; got != 0 {
		t.Errorf("corrupted release must not free, got %d frees", got)
	}
}

func TestClone_CorruptedCategoryIsFatal(t *testing.T) {
	var fatalErr error
	f, err := domain.NewFactory(alloc.NewHeap(), domain.WithFatalFunc(func(err error) { fatalErr = err }))
	if err != nil {
		t.Fatalf("NewFactory failed: %v", err)
	}

	v := f.FromBytes(content(50))
	domain.ForceCategory(&v, domain.Category(200))

	func() {
		defer func() {
			if recover() == nil {
				t.Error("expected clone of corrupted value to panic")
			}
		}()
		_ = v.Clone()
	}()

	if !errors.Is(fatalErr, domain.ErrInvalidCategory) {
		t.Errorf("expected ErrInvalidCategory, got: %v", fatalErr)
	}
}

func TestStringValue_ZeroValueIsEmptySmall(t *testing.T) {
	var v domain.StringValue

	if v.Category() != domain.CategorySmall {
		t.Errorf("expected zero value to be small, got %s", v.Category())
	}
	if v.Len() != 0 || v.String() != "" {
		t.Errorf("expected zero value to be empty, got %q", v.String())
	}

	// Cloning and releasing a zero value touches no heap state.
	c := v.Clone()
	c.Release()
	v.Release()
}

func TestSharedRefs_ZeroForUnsharedCategories(t *testing.T) {
	f, _ := newAuditedFactory(t)

	small := f.FromString("hi")
	medium := f.FromBytes(content(50))
	defer small.Release()
	defer medium.Release()

	if small.SharedRefs() != 0 {
		t.Errorf("small value reported shared refs %d", small.SharedRefs())
	}
	if medium.SharedRefs() != 0 {
		t.Errorf("medium value reported shared refs %d", medium.SharedRefs())
	}
}

func TestRelease_ValueReadsEmptyAfterRelease(t *testing.T) {
	f, _ := newAuditedFactory(t)

	for _, size := range []int{2, 50, 1000} {
		v := f.FromBytes(content(size))
		c := v.Clone()
		v.Release()

		if v.Len() != 0 || v.String() != "" {
			t.Errorf("size %d: released value should read empty, got %d bytes", size, v.Len())
		}
		if len(v.Bytes()) != 0 {
			t.Errorf("size %d: released value should yield no bytes", size)
		}
		if c.Len() != size {
			t.Errorf("size %d: surviving clone affected by release, len = %d", size, c.Len())
		}
		c.Release()
	}
}
