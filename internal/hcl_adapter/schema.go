package hcl_adapter

import "github.com/hashicorp/hcl/v2"

// fileRoot decodes every top-level block a pipeline file may contain.
type fileRoot struct {
	Nodes       []*nodeBlock    `hcl:"node,block"`
	Connections []*connectBlock `hcl:"connect,block"`
	Stages      []*stageBlock   `hcl:"stage,block"`
	Remain      hcl.Body        `hcl:",remain"`
}

// nodeBlock is `node "<Type>" "<name>" { config { ... } }`.
type nodeBlock struct {
	Type   string       `hcl:"type,label"`
	Name   string       `hcl:"name,label"`
	Config *configBlock `hcl:"config,block"`
	Remain hcl.Body     `hcl:",remain"`
}

// configBlock holds free-form node options; the node decides what they mean.
type configBlock struct {
	Body hcl.Body `hcl:",remain"`
}

// connectBlock is `connect { from = "a.out" to = "b.in" }`.
type connectBlock struct {
	From string `hcl:"from"`
	To   string `hcl:"to"`
}

// stageBlock is `stage { path = "..." }`.
type stageBlock struct {
	Path string `hcl:"path"`
}
