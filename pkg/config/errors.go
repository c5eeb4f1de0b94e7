package config

import "errors"

var (
	ErrParsingConfig     = errors.New("config: cannot parse environment into struct")
	ErrLoadingEnvFile    = errors.New("config: cannot load env file")
	ErrInvalidConfigType = errors.New("config: cached value has a different type")
	ErrNilPointer        = errors.New("config: nil destination")
)
