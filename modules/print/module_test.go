package print

import (
	"bytes"
	"context"
	"testing"

	"github.com/specialistvlad/stagegrid/internal/node"
	"github.com/specialistvlad/stagegrid/internal/port"
	"github.com/specialistvlad/stagegrid/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrint_DataType(t *testing.T) {
	ctx := context.Background()

	n := New("p")
	require.NoError(t, n.Initialize(ctx, nil))
	in, ok := n.Inputs().Lookup("in")
	require.True(t, ok)
	assert.Equal(t, port.MediaTexture, in.Type)

	cfg, err := node.ConfigFrom(map[string]any{"data_type": "Control/Value"})
	require.NoError(t, err)
	n = New("p")
	require.NoError(t, n.Initialize(ctx, cfg))
	in, _ = n.Inputs().Lookup("in")
	assert.Equal(t, port.ControlValue, in.Type)

	cfg, err = node.ConfigFrom(map[string]any{"data_type": "Nope"})
	require.NoError(t, err)
	assert.ErrorIs(t, New("p").Initialize(ctx, cfg), node.ErrInvalidConfig)
}

func TestPrint_Process(t *testing.T) {
	logs := &testutil.SafeBuffer{}
	ctx := testutil.Context(logs)
	var out bytes.Buffer

	n := New("p").(*Node)
	n.SetWriter(&out)
	require.NoError(t, n.Initialize(ctx, nil))

	assert.ErrorIs(t, n.Process(ctx, testutil.NewExecContext(n)), node.ErrNoInput)

	require.NoError(t, n.SetInputValue("in", port.Texture{Source: "cam", Tick: 4}))
	ec := testutil.NewExecContext(n)
	ec.TickNum = 4
	require.NoError(t, n.Process(ctx, ec))

	assert.Contains(t, out.String(), "[4] p = {Source:cam Tick:4 Passes:[]}")
	assert.Contains(t, logs.String(), "Printing input.")

	require.NoError(t, n.SetInputValue("in", nil))
	require.NoError(t, n.Process(ctx, ec))
	assert.Contains(t, out.String(), "p = (null)")
}
