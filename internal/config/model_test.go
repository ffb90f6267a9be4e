package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEndpoint(t *testing.T) {
	testCases := []struct {
		ref      string
		wantNode string
		wantPort string
		wantErr  bool
	}{
		{ref: "cam.visual_out", wantNode: "cam", wantPort: "visual_out"},
		{ref: "stitch.video_in", wantNode: "stitch", wantPort: "video_in"},
		{ref: "cam", wantErr: true},
		{ref: ".port", wantErr: true},
		{ref: "cam.", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.ref, func(t *testing.T) {
			n, p, err := ParseEndpoint(tc.ref)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantNode, n)
			assert.Equal(t, tc.wantPort, p)
		})
	}
}
