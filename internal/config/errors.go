package config

import "errors"

var (
	ErrInvalidConfig     = errors.New("invalid configuration")
	ErrUnsupportedFormat = errors.New("unsupported config format")
	ErrUnknownKeys       = errors.New("unknown config keys")
)
