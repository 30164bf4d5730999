package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/strbuf/internal/adapters/alloc"     //nolint:depguard // Wired in app layer
	"go.trai.ch/strbuf/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/strbuf/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/strbuf/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/strbuf/internal/core/domain"
	"go.trai.ch/strbuf/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			alloc.NodeID,
			config.NodeID,
			logger.NodeID,
			telemetry.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	counting, err := graft.Dep[*alloc.Counting](ctx)
	if err != nil {
		return nil, err
	}

	policy, err := graft.Dep[domain.Policy](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	recorder, err := graft.Dep[ports.Recorder](ctx)
	if err != nil {
		return nil, err
	}

	factory, err := domain.NewFactory(counting,
		domain.WithPolicy(policy),
		domain.WithLogger(log),
	)
	if err != nil {
		return nil, err
	}

	return New(factory, counting, recorder, log), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	application, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:    application,
		Logger: log,
	}, nil
}

// Components contains the initialized application components exposed to
// the CLI layer.
type Components struct {
	App    *App
	Logger ports.Logger
}
