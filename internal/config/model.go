package config

import (
	"fmt"
	"strings"

	"github.com/zclconf/go-cty/cty"
)

// Model is the unified, format-agnostic representation of a pipeline.
type Model struct {
	Nodes       []*Node
	Connections []*Connection
	// Stage is nil when the pipeline does not import a stage.
	Stage *Stage
}

// Node is the format-agnostic representation of a `node` block.
type Node struct {
	Type    string
	Name    string
	Options map[string]cty.Value
}

// Connection joins an output port to an input port.
type Connection struct {
	FromNode string
	FromPort string
	ToNode   string
	ToPort   string
}

// Stage points at the stage document imported at startup.
type Stage struct {
	Path string
}

// ParseEndpoint splits a "node.port" reference. The node part may itself
// contain no dots; the port is everything after the first one.
func ParseEndpoint(ref string) (nodeName, portName string, err error) {
	nodeName, portName, ok := strings.Cut(ref, ".")
	if !ok || nodeName == "" || portName == "" {
		return "", "", fmt.Errorf("invalid endpoint '%s': expected 'node.port'", ref)
	}
	return nodeName, portName, nil
}
