package app

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/specialistvlad/stagegrid/internal/ctxlog"
)

// headlessRenderer stands in for a GPU backend. It checks that shader sources
// exist and hands out handles, so shader and effect nodes run without a
// display.
type headlessRenderer struct {
	mu     sync.Mutex
	next   uint32
	loaded map[uint32]string
}

func newHeadlessRenderer() *headlessRenderer {
	return &headlessRenderer{loaded: make(map[uint32]string)}
}

func (r *headlessRenderer) LoadShader(ctx context.Context, path string) (uint32, error) {
	if _, err := os.Stat(path); err != nil {
		return 0, fmt.Errorf("shader source unavailable: %w", err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	r.loaded[r.next] = path
	ctxlog.FromContext(ctx).Debug("Shader registered with headless renderer.", "path", path, "shader_id", r.next)
	return r.next, nil
}

func (r *headlessRenderer) ReleaseShader(id uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.loaded, id)
}

// Loaded returns how many shaders are currently held.
func (r *headlessRenderer) Loaded() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.loaded)
}
