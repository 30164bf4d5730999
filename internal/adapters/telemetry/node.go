package telemetry

import (
	"context"

	"github.com/grindlemire/graft"
	progrockadapter "go.trai.ch/strbuf/internal/adapters/telemetry/progrock"
	"go.trai.ch/strbuf/internal/core/ports"
)

// NodeID is the unique identifier for the telemetry adapter Graft node.
const NodeID graft.ID = "adapter.telemetry"

func init() {
	graft.Register(graft.Node[ports.Recorder]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Recorder, error) {
			return progrockadapter.New(), nil
		},
	})
}
