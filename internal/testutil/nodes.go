package testutil

import (
	"context"
	"errors"
	"sync"

	"github.com/specialistvlad/stagegrid/internal/node"
	"github.com/specialistvlad/stagegrid/internal/port"
)

// ErrInjected is the failure returned by FailNode.
var ErrInjected = errors.New("injected failure")

// SourceNode emits a port.Texture on "out" every tick, tagged with its own
// identity and the tick number.
type SourceNode struct {
	*node.Base
}

func NewSourceNode(id string) node.Node {
	return &SourceNode{Base: node.NewBase(id, "TestSource", node.Metadata{DisplayName: "Test Source", TypeCode: "TS", Archetype: "SRC"})}
}

func (n *SourceNode) Initialize(ctx context.Context, cfg node.Config) error {
	n.AddOutput("out", "Out", port.MediaTexture)
	n.MarkInitialized()
	return nil
}

func (n *SourceNode) Process(ctx context.Context, ec node.Context) error {
	return ec.SetOutput("out", port.Texture{Source: ec.NodeID(), Tick: ec.Tick()})
}

func (n *SourceNode) Cleanup(ctx context.Context) {}

// PassNode appends its own identity as a pass to the texture on "in" and
// writes the result to "out".
type PassNode struct {
	*node.Base
}

func NewPassNode(id string) node.Node {
	return &PassNode{Base: node.NewBase(id, "TestPass", node.Metadata{DisplayName: "Test Pass", TypeCode: "TS", Archetype: "PASS"})}
}

func (n *PassNode) Initialize(ctx context.Context, cfg node.Config) error {
	n.AddInput("in", "In", port.MediaTexture)
	n.AddOutput("out", "Out", port.MediaTexture)
	n.MarkInitialized()
	return nil
}

func (n *PassNode) Process(ctx context.Context, ec node.Context) error {
	v, ok := ec.Input("in")
	if !ok {
		return node.ErrNoInput
	}
	tex, ok := v.(port.Texture)
	if !ok {
		return node.ErrNoInput
	}
	return ec.SetOutput("out", tex.WithPass(n.ID()))
}

func (n *PassNode) Cleanup(ctx context.Context) {}

// SinkNode records every value delivered to "in".
type SinkNode struct {
	*node.Base

	mu       sync.Mutex
	received []any
	cleanups int
}

func NewSinkNode(id string) node.Node {
	return &SinkNode{Base: node.NewBase(id, "TestSink", node.Metadata{DisplayName: "Test Sink", TypeCode: "TS", Archetype: "SINK"})}
}

func (n *SinkNode) Initialize(ctx context.Context, cfg node.Config) error {
	n.AddInput("in", "In", port.MediaTexture)
	n.MarkInitialized()
	return nil
}

func (n *SinkNode) Process(ctx context.Context, ec node.Context) error {
	v, ok := ec.Input("in")
	if !ok {
		return node.ErrNoInput
	}
	n.mu.Lock()
	n.received = append(n.received, v)
	n.mu.Unlock()
	return nil
}

func (n *SinkNode) Cleanup(ctx context.Context) {
	n.mu.Lock()
	n.cleanups++
	n.mu.Unlock()
}

// Received returns a copy of the values seen so far.
func (n *SinkNode) Received() []any {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]any(nil), n.received...)
}

// Cleanups returns how many times Cleanup was called.
func (n *SinkNode) Cleanups() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.cleanups
}

// FailNode passes "in" through to "out" like PassNode, unless failing is set,
// in which case Process returns ErrInjected. It starts out failing.
type FailNode struct {
	*node.Base

	mu      sync.Mutex
	failing bool
}

func NewFailNode(id string) node.Node {
	return &FailNode{
		Base:    node.NewBase(id, "TestFail", node.Metadata{DisplayName: "Test Fail", TypeCode: "TS", Archetype: "FAIL"}),
		failing: true,
	}
}

func (n *FailNode) Initialize(ctx context.Context, cfg node.Config) error {
	failing, err := cfg.Bool("fail", true)
	if err != nil {
		return err
	}
	n.SetFailing(failing)
	n.AddInput("in", "In", port.MediaTexture)
	n.AddOutput("out", "Out", port.MediaTexture)
	n.MarkInitialized()
	return nil
}

// SetFailing toggles the injected failure.
func (n *FailNode) SetFailing(failing bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.failing = failing
}

func (n *FailNode) Process(ctx context.Context, ec node.Context) error {
	n.mu.Lock()
	failing := n.failing
	n.mu.Unlock()
	if failing {
		return ErrInjected
	}
	v, ok := ec.Input("in")
	if !ok {
		return node.ErrNoInput
	}
	return ec.SetOutput("out", v)
}

func (n *FailNode) Cleanup(ctx context.Context) {}

// AudioSourceNode emits a port.AudioBuffer on "out". It exists to exercise
// type checks against texture ports.
type AudioSourceNode struct {
	*node.Base
}

func NewAudioSourceNode(id string) node.Node {
	return &AudioSourceNode{Base: node.NewBase(id, "TestAudio", node.Metadata{DisplayName: "Test Audio", TypeCode: "TS", Archetype: "AUD"})}
}

func (n *AudioSourceNode) Initialize(ctx context.Context, cfg node.Config) error {
	n.AddOutput("out", "Out", port.MediaAudio)
	n.MarkInitialized()
	return nil
}

func (n *AudioSourceNode) Process(ctx context.Context, ec node.Context) error {
	return ec.SetOutput("out", port.AudioBuffer{Source: ec.NodeID(), Tick: ec.Tick()})
}

func (n *AudioSourceNode) Cleanup(ctx context.Context) {}
