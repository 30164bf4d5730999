package config

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/strbuf/internal/core/domain"
)

// NodeID is the unique identifier for the policy configuration Graft node.
const NodeID graft.ID = "adapter.policy"

func init() {
	graft.Register(graft.Node[domain.Policy]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (domain.Policy, error) {
			loader := &Loader{Filename: DefaultFilename}
			return loader.Load(".")
		},
	})
}
