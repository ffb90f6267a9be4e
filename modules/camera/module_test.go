package camera

import (
	"context"
	"testing"

	"github.com/specialistvlad/stagegrid/internal/node"
	"github.com/specialistvlad/stagegrid/internal/port"
	"github.com/specialistvlad/stagegrid/internal/registry"
	"github.com/specialistvlad/stagegrid/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCamera_ProcessEmitsDeviceFrames(t *testing.T) {
	ctx := context.Background()
	cfg, err := node.ConfigFrom(map[string]any{"device_id": "/dev/video2"})
	require.NoError(t, err)

	n := New("cam").(*Node)
	require.NoError(t, n.Initialize(ctx, cfg))
	assert.True(t, n.Dirty().IsDirty(), "a fresh device must be opened on the first tick")

	ec := testutil.NewExecContext(n)
	ec.TickNum = 7
	require.NoError(t, n.Process(ctx, ec))
	assert.False(t, n.Dirty().IsDirty())

	v, ok := n.OutputValue("visual_out")
	require.True(t, ok)
	assert.Equal(t, port.Texture{Source: "/dev/video2", Tick: 7}, v)
	a, ok := n.OutputValue("audio_out")
	require.True(t, ok)
	assert.Equal(t, port.AudioBuffer{Source: "/dev/video2", Tick: 7}, a)
}

func TestCamera_SetDeviceIDDefersWork(t *testing.T) {
	ctx := context.Background()
	n := New("cam").(*Node)
	require.NoError(t, n.Initialize(ctx, nil))
	assert.Equal(t, DefaultDevice, n.DeviceID())
	require.NoError(t, n.Process(ctx, testutil.NewExecContext(n)))

	n.SetDeviceID(DefaultDevice)
	assert.False(t, n.Dirty().IsDirty(), "setting the same device is a no-op")

	n.SetDeviceID("usb-2")
	assert.True(t, n.Dirty().IsDirty())
	require.NoError(t, n.Process(ctx, testutil.NewExecContext(n)))
	assert.False(t, n.Dirty().IsDirty())

	n.Cleanup(ctx)
	n.Cleanup(ctx)
}

func TestCamera_Ports(t *testing.T) {
	n := New("cam")
	require.NoError(t, n.Initialize(context.Background(), nil))

	out, ok := n.Outputs().Lookup("visual_out")
	require.True(t, ok)
	assert.Equal(t, port.MediaTexture, out.Type)
	out, ok = n.Outputs().Lookup("audio_out")
	require.True(t, ok)
	assert.Equal(t, port.MediaAudio, out.Type)
	assert.Empty(t, n.Inputs())
}

func TestCamera_ProcessBeforeInitialize(t *testing.T) {
	n := New("cam")
	assert.ErrorIs(t, n.Process(context.Background(), testutil.NewExecContext(n)), node.ErrNotInitialized)
}

func TestModule_Register(t *testing.T) {
	r := registry.New(nil)
	(&Module{}).Register(r)
	n, err := r.Create(TypeName, "cam")
	require.NoError(t, err)
	assert.Equal(t, TypeName, n.Type())
}
