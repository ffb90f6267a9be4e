package graph

import (
	"context"
	"time"

	"github.com/specialistvlad/stagegrid/internal/ctxlog"
	"github.com/specialistvlad/stagegrid/internal/node"
)

// NodeResult is the outcome of one node in one tick.
type NodeResult struct {
	NodeID   string
	Type     string
	Status   node.Status
	Err      error
	Duration time.Duration
}

// TickReport summarizes a tick.
type TickReport struct {
	Tick     uint64
	Order    []string
	Results  []NodeResult
	Duration time.Duration
}

// Failed returns the identities of nodes that failed.
func (r *TickReport) Failed() []string { return r.with(node.StatusFailed) }

// Skipped returns the identities of nodes that were skipped.
func (r *TickReport) Skipped() []string { return r.with(node.StatusSkipped) }

func (r *TickReport) with(status node.Status) []string {
	var ids []string
	for _, res := range r.Results {
		if res.Status == status {
			ids = append(ids, res.NodeID)
		}
	}
	return ids
}

// Tick processes every node once. It returns an error only when the graph
// cannot be ordered; node failures are recorded in the report and the node
// state store instead.
func (g *Graph) Tick(ctx context.Context) (*TickReport, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	logger := ctxlog.FromContext(ctx)
	order, err := g.orderLocked(ctx)
	if err != nil {
		logger.Error("Refusing to tick an unorderable graph.", "pipeline", g.id, "error", err)
		return nil, err
	}

	g.tick++
	report := &TickReport{Tick: g.tick, Order: order, Results: make([]NodeResult, 0, len(order))}
	if err := g.state.Reset(ctx); err != nil {
		return nil, err
	}

	start := time.Now()
	for _, id := range order {
		res := g.runNode(ctx, id, report.Tick)
		report.Results = append(report.Results, res)
		if g.observer != nil {
			g.observer.NodeProcessed(res.Type, res.Status, res.Duration)
		}
	}
	report.Duration = time.Since(start)

	if g.observer != nil {
		g.observer.TickCompleted(report)
	}
	logger.Debug("Tick complete.", "tick", report.Tick, "nodes", len(order), "failed", len(report.Failed()), "skipped", len(report.Skipped()), "duration", report.Duration)
	return report, nil
}

func (g *Graph) runNode(ctx context.Context, id string, tick uint64) NodeResult {
	logger := ctxlog.FromContext(ctx).With("node", id, "tick", tick)
	n, _ := g.topology.GetNode(ctx, id)
	res := NodeResult{NodeID: id, Type: n.Type()}

	if blocker, blocked := g.blockedBy(ctx, id); blocked {
		res.Status = node.StatusSkipped
		_ = g.state.SetStatus(ctx, id, res.Status)
		logger.Warn("Skipping node, an upstream node did not complete.", "upstream", blocker)
		return res
	}

	n.ClearInputs()
	for _, p := range n.Inputs() {
		c, ok := g.topology.InputConnection(ctx, id, p.Name)
		if !ok {
			continue
		}
		upstream, ok := g.topology.GetNode(ctx, c.FromNode)
		if !ok {
			continue
		}
		if v, ok := upstream.OutputValue(c.FromPort); ok {
			_ = n.SetInputValue(p.Name, v)
		}
	}

	_ = g.state.SetStatus(ctx, id, node.StatusRunning)
	start := time.Now()
	err := n.Process(ctx, &execContext{g: g, n: n, tick: tick})
	res.Duration = time.Since(start)

	if err != nil {
		res.Status = node.StatusFailed
		res.Err = err
		_ = g.state.SetStatus(ctx, id, res.Status)
		_ = g.state.SetError(ctx, id, err)
		logger.Error("Node failed.", "type", n.Type(), "error", err)
		return res
	}

	res.Status = node.StatusCompleted
	_ = g.state.SetStatus(ctx, id, res.Status)
	out := make(map[string]any)
	for _, p := range n.Outputs() {
		if v, ok := n.OutputValue(p.Name); ok {
			out[p.Name] = v
		}
	}
	_ = g.state.SetOutput(ctx, id, out)
	return res
}

// blockedBy returns the first upstream node that did not complete this tick.
// Upstream nodes always run first, so their status is already final.
func (g *Graph) blockedBy(ctx context.Context, id string) (string, bool) {
	deps, err := g.topology.DependenciesOf(ctx, id)
	if err != nil {
		return "", false
	}
	for _, dep := range deps {
		status, _ := g.state.GetStatus(ctx, dep)
		if status == node.StatusFailed || status == node.StatusSkipped {
			return dep, true
		}
	}
	return "", false
}
