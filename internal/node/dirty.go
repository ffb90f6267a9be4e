// internal/node/dirty.go
package node

import (
	"context"

	"github.com/looplab/fsm"
	"github.com/specialistvlad/stagegrid/internal/ctxlog"
)

const (
	stateClean = "clean"
	stateDirty = "dirty"

	eventTouch   = "touch"
	eventConsume = "consume"
)

// Dirty is the two-state {clean, dirty} machine behind deferred configuration.
// Touch is the only way in to dirty; Consume, called from Process once the
// deferred work has succeeded, is the only way back out.
type Dirty struct {
	fsm *fsm.FSM
}

// NewDirty returns a tracker in the clean state.
func NewDirty() *Dirty {
	return &Dirty{
		fsm: fsm.NewFSM(
			stateClean,
			fsm.Events{
				{Name: eventTouch, Src: []string{stateClean}, Dst: stateDirty},
				{Name: eventConsume, Src: []string{stateDirty}, Dst: stateClean},
			},
			fsm.Callbacks{
				"enter_state": func(ctx context.Context, e *fsm.Event) {
					ctxlog.FromContext(ctx).Debug("Node configuration state changed.", "from", e.Src, "to", e.Dst)
				},
			},
		),
	}
}

// Touch marks pending configuration. Touching an already dirty tracker is a no-op.
func (d *Dirty) Touch() {
	if d.fsm.Is(stateDirty) {
		return
	}
	_ = d.fsm.Event(context.Background(), eventTouch)
}

// IsDirty reports whether configuration is pending.
func (d *Dirty) IsDirty() bool {
	return d.fsm.Is(stateDirty)
}

// Consume clears the dirty state and reports whether it was set.
func (d *Dirty) Consume(ctx context.Context) bool {
	if !d.fsm.Is(stateDirty) {
		return false
	}
	return d.fsm.Event(ctx, eventConsume) == nil
}

// State returns the current state name.
func (d *Dirty) State() string {
	return d.fsm.Current()
}
