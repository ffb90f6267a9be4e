package video

import (
	"context"
	"testing"

	"github.com/specialistvlad/stagegrid/internal/node"
	"github.com/specialistvlad/stagegrid/internal/port"
	"github.com/specialistvlad/stagegrid/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectVariant(t *testing.T) {
	testCases := []struct {
		path string
		want string
	}{
		{"media/beach_360.mp4", "videofilevr360"},
		{"media/Concert_SBS.mov", "videofilestereoscopic"},
		{"media/interview-prores.mov", "videofilecinematic"},
		{"media/lesson01.mp4", "videofiletutorial"},
		{"media/volumetric_take.mp4", "videofilepointcloud"},
		{"media/intro.mp4", "videofile"},
		{"", "videofile"},
	}
	for _, tc := range testCases {
		t.Run(tc.path, func(t *testing.T) {
			assert.Equal(t, tc.want, DetectVariant(tc.path))
		})
	}
}

func initialized(t *testing.T, opts map[string]any) *Node {
	t.Helper()
	cfg, err := node.ConfigFrom(opts)
	require.NoError(t, err)
	n := New("clip").(*Node)
	require.NoError(t, n.Initialize(context.Background(), cfg))
	return n
}

func TestVideo_FilePlayback(t *testing.T) {
	ctx := context.Background()
	n := initialized(t, map[string]any{"video_path": "media/intro.mp4"})
	assert.Equal(t, "videofile", n.Variant())

	ec := testutil.NewExecContext(n)
	require.NoError(t, n.Process(ctx, ec))
	v, _ := n.OutputValue("visual_out")
	assert.Equal(t, port.Texture{Source: "media/intro.mp4", Tick: 1}, v)

	n.SetVideoPath("media/outro.mp4")
	assert.True(t, n.Dirty().IsDirty())
	ec.TickNum = 2
	require.NoError(t, n.Process(ctx, ec))
	v, _ = n.OutputValue("visual_out")
	assert.Equal(t, port.Texture{Source: "media/outro.mp4", Tick: 2}, v)
	a, _ := n.OutputValue("audio_out")
	assert.Equal(t, port.AudioBuffer{Source: "media/outro.mp4", Tick: 2}, a)
}

func TestVideo_FileVariantNeedsPath(t *testing.T) {
	ctx := context.Background()
	n := initialized(t, map[string]any{"variant": "videofile"})
	n.SetVideoPath("x")
	n.SetVideoPath("")

	err := n.Process(ctx, testutil.NewExecContext(n))
	assert.ErrorIs(t, err, node.ErrEmptyPath)
	assert.True(t, n.Dirty().IsDirty(), "failed work leaves the node dirty")
}

func TestVideo_StreamWithoutPath(t *testing.T) {
	ctx := context.Background()
	n := initialized(t, map[string]any{"variant": "videostreamscreen"})

	require.NoError(t, n.Process(ctx, testutil.NewExecContext(n)))
	v, _ := n.OutputValue("visual_out")
	assert.Equal(t, "videostreamscreen", v.(port.Texture).Source)
}

func TestVideo_InvalidConfig(t *testing.T) {
	cfg, err := node.ConfigFrom(map[string]any{"variant": "vhs"})
	require.NoError(t, err)
	assert.ErrorIs(t, New("clip").Initialize(context.Background(), cfg), node.ErrInvalidConfig)

	cfg, err = node.ConfigFrom(map[string]any{"video_path": 42})
	require.NoError(t, err)
	assert.ErrorIs(t, New("clip").Initialize(context.Background(), cfg), node.ErrInvalidConfig)
}
