package alloc

import (
	"context"

	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the allocator adapter Graft node.
const NodeID graft.ID = "adapter.allocator"

func init() {
	graft.Register(graft.Node[*Counting]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Counting, error) {
			return NewCounting(NewPool()), nil
		},
	})
}
