package ports

import (
	"context"
	"io"
)

//go:generate go run go.uber.org/mock/mockgen -source=telemetry.go -destination=mocks/mock_telemetry.go -package=mocks

// Recorder is the entry point for recording units of work (one vertex per
// workload scenario).
type Recorder interface {
	// Record starts recording a new vertex.
	Record(ctx context.Context, name string) (context.Context, Vertex)
	// Close flushes and closes the recording session.
	Close() error
}

// Vertex represents one recorded unit of work. Writes become the vertex's
// log output.
type Vertex interface {
	io.Writer
	// Done completes the vertex; a non-nil error marks it failed.
	Done(err error)
}
