package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/specialistvlad/stagegrid/internal/app"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name     string
		args     []string
		want     *app.Config
		wantExit bool
		wantCode int
	}{
		{
			name: "positional path with defaults",
			args: []string{"pipelines/mixer.hcl"},
			want: &app.Config{PipelinePath: "pipelines/mixer.hcl", TickRate: 30, LogFormat: "json", LogLevel: "info"},
		},
		{
			name: "long flags",
			args: []string{"--pipeline", "p", "--stage", "s.hcl", "--ticks", "5", "--tick-rate", "60", "--healthcheck-port", "8080", "--log-format", "TEXT", "--log-level", "Debug"},
			want: &app.Config{PipelinePath: "p", StagePath: "s.hcl", Ticks: 5, TickRate: 60, HealthcheckPort: 8080, LogFormat: "text", LogLevel: "debug"},
		},
		{
			name: "shorthand wins over positional",
			args: []string{"-p", "short.hcl", "positional.hcl"},
			want: &app.Config{PipelinePath: "short.hcl", TickRate: 30, LogFormat: "json", LogLevel: "info"},
		},
		{name: "help", args: []string{"-h"}, wantExit: true},
		{name: "no path", args: nil, wantExit: true},
		{name: "unknown flag", args: []string{"--bogus"}, wantCode: 2},
		{name: "bad log format", args: []string{"--log-format", "xml", "p"}, wantCode: 2},
		{name: "bad log level", args: []string{"--log-level", "trace", "p"}, wantCode: 2},
		{name: "negative ticks", args: []string{"--ticks", "-1", "p"}, wantCode: 2},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out := &bytes.Buffer{}
			cfg, exit, err := Parse(tc.args, out)

			if tc.wantCode != 0 {
				var exitErr *ExitError
				require.True(t, errors.As(err, &exitErr))
				assert.Equal(t, tc.wantCode, exitErr.Code)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantExit, exit)
			if tc.wantExit {
				assert.Contains(t, out.String(), "Usage:")
				return
			}
			assert.Equal(t, tc.want, cfg)
		})
	}
}
