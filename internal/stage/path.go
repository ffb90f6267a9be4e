package stage

import (
	"fmt"
	"strings"
)

// SplitPath splits an absolute prim path into its segments.
func SplitPath(path string) ([]string, error) {
	if !strings.HasPrefix(path, "/") || path == "/" {
		return nil, fmt.Errorf("%w: '%s' must be absolute and name a prim", ErrInvalidPath, path)
	}
	segments := strings.Split(path[1:], "/")
	for _, s := range segments {
		if s == "" {
			return nil, fmt.Errorf("%w: '%s' has an empty segment", ErrInvalidPath, path)
		}
	}
	return segments, nil
}

// JoinPath appends a child name to a parent path. An empty parent is the root.
func JoinPath(parent, name string) string {
	return parent + "/" + name
}
