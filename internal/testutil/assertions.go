package testutil

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// AssertLogged checks text-format log output for a record with the given
// message that also carries every key=value pair in attrs. Values are
// compared as slog's text handler prints them, unquoted when possible.
func AssertLogged(t *testing.T, logs, msg string, attrs ...string) {
	t.Helper()
	require.True(t, len(attrs)%2 == 0, "attrs must be key/value pairs")

	want := fmt.Sprintf("msg=%q", msg)
	for _, line := range strings.Split(logs, "\n") {
		if !strings.Contains(line, want) && !strings.Contains(line, "msg="+msg) {
			continue
		}
		if hasAttrs(line, attrs) {
			return
		}
	}
	require.Failf(t, "log record not found", "message %q with attrs %v was not logged", msg, attrs)
}

func hasAttrs(line string, attrs []string) bool {
	for i := 0; i < len(attrs); i += 2 {
		if !strings.Contains(line, attrs[i]+"="+attrs[i+1]) {
			return false
		}
	}
	return true
}
