// This file translates decoded HCL blocks into the format-agnostic pipeline
// model defined in the config package.

package hcl_adapter

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/specialistvlad/stagegrid/internal/config"
	"github.com/specialistvlad/stagegrid/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
)

// translateNode evaluates the node's config attributes. Options are literal
// values; no variables or functions are available to the expressions.
func translateNode(ctx context.Context, n *nodeBlock) (*config.Node, error) {
	logger := ctxlog.FromContext(ctx).With("node_type", n.Type, "node_name", n.Name)

	out := &config.Node{
		Type:    n.Type,
		Name:    n.Name,
		Options: make(map[string]cty.Value),
	}
	if n.Config == nil || n.Config.Body == nil {
		logger.Debug("Node has no config block.")
		return out, nil
	}

	attrs, diags := n.Config.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("invalid config for node '%s': %w", n.Name, diags)
	}
	for name, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("invalid value for option '%s' of node '%s': %w", name, n.Name, diags)
		}
		out.Options[name] = val
	}

	logger.Debug("Translated node block.", "options", len(out.Options))
	return out, nil
}

func translateConnection(c *connectBlock) (*config.Connection, error) {
	fromNode, fromPort, err := config.ParseEndpoint(c.From)
	if err != nil {
		return nil, fmt.Errorf("in connect 'from': %w", err)
	}
	toNode, toPort, err := config.ParseEndpoint(c.To)
	if err != nil {
		return nil, fmt.Errorf("in connect 'to': %w", err)
	}
	return &config.Connection{
		FromNode: fromNode,
		FromPort: fromPort,
		ToNode:   toNode,
		ToPort:   toPort,
	}, nil
}

// translateStage resolves a relative stage path against the directory of the
// file that declared it.
func translateStage(file string, s *stageBlock) *config.Stage {
	path := s.Path
	if !filepath.IsAbs(path) {
		path = filepath.Join(filepath.Dir(file), path)
	}
	return &config.Stage{Path: path}
}
