package progrock

import (
	"github.com/vito/progrock"
)

// Vertex implements ports.Vertex wrapping *progrock.VertexRecorder.
type Vertex struct {
	vertex *progrock.VertexRecorder
}

// Write captures workload output on the vertex's stdout stream.
func (v *Vertex) Write(p []byte) (int, error) {
	return v.vertex.Stdout().Write(p)
}

// Done marks the vertex as finished (successfully or with an error).
func (v *Vertex) Done(err error) {
	v.vertex.Done(err)
}
