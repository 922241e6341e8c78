package world

import "errors"

var (
	ErrNoAgents      = errors.New("world has no agents")
	ErrUnknownAgent  = errors.New("unknown agent")
	ErrInvalidConfig = errors.New("invalid world configuration")
)
