// Package app wires a pipeline together and drives it. It loads the pipeline
// definition, builds the execution graph with every core node module
// registered, imports the stage document into the scene store and then ticks
// the graph at the configured rate. It is decoupled from any specific
// entrypoint like a CLI or server.
package app
