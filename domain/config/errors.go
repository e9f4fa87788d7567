package config

import "errors"

// Domain errors for configuration.
var (
	// ErrConfigNotFound indicates the configuration file does not exist.
	ErrConfigNotFound = errors.New("config file not found")

	// ErrInvalidFormat indicates the file could not be parsed.
	ErrInvalidFormat = errors.New("invalid config format")

	// ErrUnsupportedFormat indicates an unrecognized file extension.
	ErrUnsupportedFormat = errors.New("unsupported config format")

	// ErrUnknownStrategy indicates a strategy outside the closed set.
	ErrUnknownStrategy = errors.New("unknown strategy in config")

	// ErrUnknownBackend indicates an unrecognized memory backend.
	ErrUnknownBackend = errors.New("unknown memory backend in config")

	// ErrInvalidSetting indicates a setting outside its valid range.
	ErrInvalidSetting = errors.New("invalid config setting")
)
