// internal/node/errors.go
package node

import "errors"

var (
	ErrNotInitialized      = errors.New("node not initialized")
	ErrNoInput             = errors.New("no input available")
	ErrEmptyPath           = errors.New("required resource path is empty")
	ErrUnknownPort         = errors.New("unknown port")
	ErrSceneUnavailable    = errors.New("scene store unavailable")
	ErrRendererUnavailable = errors.New("renderer unavailable")
	ErrStageUnavailable    = errors.New("stage importer unavailable")
	ErrInvalidConfig       = errors.New("invalid node configuration")
)
