package graph

import "errors"

var (
	ErrUnknownNode       = errors.New("unknown node")
	ErrDuplicateNode     = errors.New("duplicate node identity")
	ErrUnknownConnection = errors.New("unknown connection")
	ErrIncompatibleTypes = errors.New("incompatible port data types")
	ErrInputConnected    = errors.New("input port already connected")
	ErrCycle             = errors.New("connection would create a cycle")
)
