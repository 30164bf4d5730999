// Package app implements the application layer for the strbuf CLI.
package app

import (
	"context"
	"fmt"

	"go.trai.ch/strbuf/internal/adapters/alloc"
	"go.trai.ch/strbuf/internal/adapters/intern"
	"go.trai.ch/strbuf/internal/core/domain"
	"go.trai.ch/strbuf/internal/core/ports"
	"go.trai.ch/zerr"
)

// App drives the string value lifecycle for the CLI: inspecting how
// content is represented under the active policy and running audited
// construct/clone/release workloads.
type App struct {
	factory  *domain.Factory
	counting *alloc.Counting
	recorder ports.Recorder
	log      ports.Logger
}

// New creates a new App instance.
func New(factory *domain.Factory, counting *alloc.Counting, recorder ports.Recorder, log ports.Logger) *App {
	return &App{
		factory:  factory,
		counting: counting,
		recorder: recorder,
		log:      log,
	}
}

// Report describes how content is represented under the active policy.
type Report struct {
	Size     int
	Category domain.Category
	// Inline is true when the content needs no heap buffer.
	Inline bool
	// CloneShares is true when a clone shares the source buffer
	// (refcounted) instead of copying it.
	CloneShares bool
	// RefsAfterClone is the shared refcount observed with the value and
	// one clone alive; 0 for categories without a shared buffer.
	RefsAfterClone int
}

// Inspect constructs a value from content, clones it once to observe the
// copy behavior, and releases both.
func (a *App) Inspect(content []byte) Report {
	v := a.factory.FromBytes(content)
	c := v.Clone()

	r := Report{
		Size:           v.Len(),
		Category:       v.Category(),
		Inline:         v.Category() == domain.CategorySmall,
		CloneShares:    v.Category() == domain.CategoryLarge,
		RefsAfterClone: v.SharedRefs(),
	}

	c.Release()
	v.Release()
	return r
}

// Policy returns the active category thresholds.
func (a *App) Policy() domain.Policy {
	return a.factory.Policy()
}

// RunWorkload exercises every category's lifecycle for the given number
// of iterations, one telemetry vertex per scenario, and returns the
// allocator audit. A non-zero live-buffer or double-free count in the
// audit is reported as an error.
func (a *App) RunWorkload(ctx context.Context, iterations int) (alloc.Stats, error) {
	if iterations < 1 {
		iterations = 1
	}
	a.counting.Reset()

	scenarios := []struct {
		name string
		run  func(iterations int)
	}{
		{"small-lifecycle", a.smallLifecycle},
		{"medium-deep-copy", a.mediumDeepCopy},
		{"large-shared", a.largeShared},
		{"interned-content", a.internedContent},
	}

	for _, sc := range scenarios {
		if err := ctx.Err(); err != nil {
			return a.counting.Stats(), zerr.Wrap(err, "workload canceled")
		}
		_, vertex := a.recorder.Record(ctx, sc.name)
		sc.run(iterations)
		_, _ = fmt.Fprintf(vertex, "%s: %d iterations\n", sc.name, iterations)
		vertex.Done(nil)
	}

	stats := a.counting.Stats()
	if stats.LiveBuffers != 0 {
		return stats, zerr.With(zerr.New("workload leaked buffers"), "live_buffers", stats.LiveBuffers)
	}
	if stats.DoubleFrees != 0 || stats.ForeignFrees != 0 {
		return stats, zerr.With(zerr.New("workload freed buffers incorrectly"), "double_frees", stats.DoubleFrees)
	}
	return stats, nil
}

// smallLifecycle exercises inline values: no allocation at any point.
func (a *App) smallLifecycle(iterations int) {
	for i := 0; i < iterations; i++ {
		e := a.factory.Empty()
		v := a.factory.FromString("hi")
		c := v.Clone()
		c.Release()
		v.Release()
		e.Release()
	}
}

// mediumDeepCopy exercises exclusive buffers: every clone allocates.
func (a *App) mediumDeepCopy(iterations int) {
	content := contentOfSize(a.factory.Policy().SmallMax + 27)
	for i := 0; i < iterations; i++ {
		v := a.factory.FromBytes(content)
		c1 := v.Clone()
		c2 := v.Clone()
		c1.Release()
		v.Release()
		c2.Release()
	}
}

// largeShared exercises refcounted buffers: clones share, releases are
// staggered so only the last reference frees.
func (a *App) largeShared(iterations int) {
	content := contentOfSize(a.factory.Policy().MediumMax + 745)
	for i := 0; i < iterations; i++ {
		v := a.factory.FromBytes(content)
		c1 := v.Clone()
		v.Release()
		c2 := c1.Clone()
		c1.Release()
		c2.Release()
	}
}

// internedContent exercises the dedup table: equal Large content shares
// one buffer across intern calls, released when the table closes.
func (a *App) internedContent(iterations int) {
	table := intern.NewTable(a.factory)
	defer table.Close()

	content := contentOfSize(a.factory.Policy().MediumMax + 745)
	for i := 0; i < iterations; i++ {
		v1 := table.Intern(content)
		v2 := table.Intern(content)
		v1.Release()
		v2.Release()
	}
}

// Close flushes the telemetry session.
func (a *App) Close() error {
	return a.recorder.Close()
}

func contentOfSize(n int) []byte {
	content := make([]byte, n)
	for i := range content {
		content[i] = byte('a' + i%26)
	}
	return content
}
