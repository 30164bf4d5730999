// Package telemetry provides recorder implementations for workload
// reporting.
package telemetry

import (
	"context"

	"go.trai.ch/strbuf/internal/core/ports"
)

// NoOpRecorder is a no-op implementation of ports.Recorder.
type NoOpRecorder struct{}

// NewNoOpRecorder creates a new NoOpRecorder.
func NewNoOpRecorder() *NoOpRecorder {
	return &NoOpRecorder{}
}

// Record returns a no-op vertex.
func (r *NoOpRecorder) Record(ctx context.Context, _ string) (context.Context, ports.Vertex) {
	return ctx, &NoOpVertex{}
}

// Close does nothing.
func (r *NoOpRecorder) Close() error { return nil }

// NoOpVertex is a no-op implementation of ports.Vertex.
type NoOpVertex struct{}

// Write does nothing and reports the input as written.
func (v *NoOpVertex) Write(p []byte) (int, error) { return len(p), nil }

// Done does nothing.
func (v *NoOpVertex) Done(_ error) {}
