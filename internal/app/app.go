package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/specialistvlad/stagegrid/internal/config"
	"github.com/specialistvlad/stagegrid/internal/ctxlog"
	"github.com/specialistvlad/stagegrid/internal/graph"
	"github.com/specialistvlad/stagegrid/internal/hclstage"
	"github.com/specialistvlad/stagegrid/internal/metrics"
	"github.com/specialistvlad/stagegrid/internal/node"
	"github.com/specialistvlad/stagegrid/internal/registry"
	"github.com/specialistvlad/stagegrid/internal/scene"
	"github.com/specialistvlad/stagegrid/internal/stagesync"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	loader   config.Loader
	registry *registry.Registry

	scene    *scene.Store
	stage    *stagesync.Synchronizer
	renderer *headlessRenderer
	metrics  *metrics.Metrics
	graph    *graph.Graph

	httpServer *http.Server
}

// NewApp is the constructor for the main application. It returns an App with
// its own isolated logger, registry, scene store and metrics. Nothing is
// loaded until Load or Run is called. With no modules given, every core
// module is registered.
func NewApp(outW io.Writer, appConfig *Config, loader config.Loader, modules ...registry.Module) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	logger.Debug("Logger configured successfully.")

	reg := registry.New(logger)
	if len(modules) == 0 {
		modules = coreModules
	}
	reg.RegisterModules(modules...)
	logger.Debug("All node modules registered.", "count", len(modules), "types", reg.Types())

	store := scene.New(logger)
	return &App{
		outW:     outW,
		logger:   logger,
		config:   appConfig,
		loader:   loader,
		registry: reg,
		scene:    store,
		stage:    stagesync.New(hclstage.New(), store),
		renderer: newHeadlessRenderer(),
		metrics:  metrics.New(),
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry { return a.registry }

// Scene returns the application's scene store.
func (a *App) Scene() *scene.Store { return a.scene }

// Graph returns the graph built by Load, or nil.
func (a *App) Graph() *graph.Graph { return a.graph }

// Metrics returns the application's metric set.
func (a *App) Metrics() *metrics.Metrics { return a.metrics }

// Load reads the pipeline, builds the execution graph and imports the stage.
func (a *App) Load(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	logger := a.logger.With("pipeline", a.config.PipelinePath)

	model, err := a.loader.Load(ctx, a.config.PipelinePath)
	if err != nil {
		return fmt.Errorf("failed to load pipeline: %w", err)
	}
	if len(model.Nodes) == 0 {
		return fmt.Errorf("no nodes found in pipeline %s", a.config.PipelinePath)
	}
	if err := a.registry.ValidateModel(ctx, model); err != nil {
		return err
	}
	logger.Debug("Pipeline loaded and validated.", "nodes", len(model.Nodes), "connections", len(model.Connections))

	if err := a.metrics.TrackScene(a.scene); err != nil {
		return fmt.Errorf("failed to register scene metrics: %w", err)
	}

	g := graph.New(a.registry,
		graph.WithScene(a.scene),
		graph.WithStage(a.stage),
		graph.WithRenderer(a.renderer),
		graph.WithObserver(a.metrics),
	)
	for _, n := range model.Nodes {
		if _, err := g.AddNode(ctx, n.Type, n.Name, node.Config(n.Options)); err != nil {
			g.Cleanup(ctx)
			return fmt.Errorf("failed to create node '%s': %w", n.Name, err)
		}
	}
	for _, c := range model.Connections {
		if _, err := g.Connect(ctx, c.FromNode, c.FromPort, c.ToNode, c.ToPort); err != nil {
			g.Cleanup(ctx)
			return fmt.Errorf("failed to connect %s.%s to %s.%s: %w", c.FromNode, c.FromPort, c.ToNode, c.ToPort, err)
		}
	}

	stagePath := a.config.StagePath
	if stagePath == "" && model.Stage != nil {
		stagePath = model.Stage.Path
	}
	if stagePath != "" {
		created, err := a.stage.ImportStage(ctx, stagePath)
		if err != nil {
			g.Cleanup(ctx)
			return fmt.Errorf("failed to import stage: %w", err)
		}
		logger.Info("Stage imported.", "stage", stagePath, "entities", created)
	}

	a.graph = g
	logger.Info("Execution graph built.", "pipeline_id", g.ID(), "nodes", len(model.Nodes), "connections", len(model.Connections))
	return nil
}
