package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/specialistvlad/stagegrid/internal/config"
	"github.com/specialistvlad/stagegrid/internal/ctxlog"
)

// ValidateModel checks that every node type a pipeline names is registered
// and that node names are unique. All problems are reported together.
func (r *Registry) ValidateModel(ctx context.Context, model *config.Model) error {
	logger := ctxlog.FromContext(ctx)
	var errs []string

	seen := make(map[string]struct{}, len(model.Nodes))
	for _, n := range model.Nodes {
		if !r.Has(n.Type) {
			errs = append(errs, fmt.Sprintf("node '%s': unknown type '%s'", n.Name, n.Type))
		}
		if _, dup := seen[n.Name]; dup {
			errs = append(errs, fmt.Sprintf("node '%s': declared more than once", n.Name))
		}
		seen[n.Name] = struct{}{}
	}

	for _, c := range model.Connections {
		if _, ok := seen[c.FromNode]; !ok {
			errs = append(errs, fmt.Sprintf("connection %s.%s -> %s.%s: source node '%s' is not declared", c.FromNode, c.FromPort, c.ToNode, c.ToPort, c.FromNode))
		}
		if _, ok := seen[c.ToNode]; !ok {
			errs = append(errs, fmt.Sprintf("connection %s.%s -> %s.%s: target node '%s' is not declared", c.FromNode, c.FromPort, c.ToNode, c.ToPort, c.ToNode))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("pipeline validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	logger.Debug("Pipeline model validated.", "nodes", len(model.Nodes), "connections", len(model.Connections))
	return nil
}
