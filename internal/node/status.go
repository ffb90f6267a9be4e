// internal/node/status.go
package node

// Status is the per-tick execution state of a node.
type Status int

const (
	// StatusPending means the node has not been reached in the current tick.
	StatusPending Status = iota
	StatusRunning
	StatusCompleted
	// StatusFailed means Process returned an error. Outputs are left as they were.
	StatusFailed
	// StatusSkipped means an upstream node failed or was skipped this tick.
	StatusSkipped
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusRunning:
		return "running"
	case StatusCompleted:
		return "completed"
	case StatusFailed:
		return "failed"
	case StatusSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}
