package testutil

import "github.com/specialistvlad/stagegrid/internal/registry"

// SimpleModule is a test helper for easily creating a mock module that
// registers a fixed set of constructors.
type SimpleModule struct {
	Types map[string]registry.Constructor
}

// Register implements the registry.Module interface.
func (m *SimpleModule) Register(r *registry.Registry) {
	for name, ctor := range m.Types {
		r.RegisterNodeType(name, ctor)
	}
}

// TestNodesModule registers the helper nodes from this package under their
// type names: TestSource, TestPass, TestSink, TestFail and TestAudio.
type TestNodesModule struct{}

// Register implements the registry.Module interface.
func (m *TestNodesModule) Register(r *registry.Registry) {
	r.RegisterNodeType("TestSource", NewSourceNode)
	r.RegisterNodeType("TestPass", NewPassNode)
	r.RegisterNodeType("TestSink", NewSinkNode)
	r.RegisterNodeType("TestFail", NewFailNode)
	r.RegisterNodeType("TestAudio", NewAudioSourceNode)
}
