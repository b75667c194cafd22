package config

import "errors"

// ErrLoadConfig wraps failures reading the YAML file or the environment;
// ErrInvalidConfig wraps validation failures of the merged settings.
var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrLoadConfig    = errors.New("load config failed")
)
