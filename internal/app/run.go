package app

import (
	"context"
	"fmt"
	"time"

	"github.com/specialistvlad/stagegrid/internal/ctxlog"
)

// Run loads the pipeline and ticks it until the configured number of ticks
// is reached or ctx is done. The context is only checked between ticks. Node
// failures are logged and counted but do not stop the run.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if a.config.HealthcheckPort > 0 {
		a.startHealthcheckServer(a.config.HealthcheckPort)
		defer a.closeHealthcheckServer(ctx)
	}

	if a.graph == nil {
		if err := a.Load(ctx); err != nil {
			return err
		}
	}
	defer a.graph.Cleanup(ctx)

	var ticker *time.Ticker
	if a.config.TickRate > 0 {
		ticker = time.NewTicker(time.Duration(float64(time.Second) / a.config.TickRate))
		defer ticker.Stop()
	}

	a.logger.Info("🚀 Starting pipeline.", "ticks", a.config.Ticks, "tick_rate", a.config.TickRate)
	ran, failedTicks := 0, 0
	for a.config.Ticks == 0 || ran < a.config.Ticks {
		if err := ctx.Err(); err != nil {
			break
		}

		report, err := a.graph.Tick(ctx)
		if err != nil {
			return fmt.Errorf("tick %d failed: %w", ran+1, err)
		}
		ran++
		if failed := report.Failed(); len(failed) > 0 {
			failedTicks++
			a.logger.Warn("Tick completed with node failures.", "tick", report.Tick, "failed", failed, "skipped", report.Skipped())
		} else {
			a.logger.Debug("Tick completed.", "tick", report.Tick, "duration", report.Duration)
		}

		if ticker != nil && (a.config.Ticks == 0 || ran < a.config.Ticks) {
			select {
			case <-ctx.Done():
			case <-ticker.C:
			}
		}
	}

	a.logger.Info("🏁 Pipeline finished.", "ticks", ran, "ticks_with_failures", failedTicks, "scene_entities", a.scene.Stats().Entities)
	return nil
}
