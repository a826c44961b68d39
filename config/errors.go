package config

import "github.com/pkg/errors"

var (
	// ErrConfigNotFound is returned when an explicitly requested config file does not exist.
	ErrConfigNotFound = errors.New("config file not found")

	// ErrInvalidConfig is returned when the configuration cannot be decoded or fails validation.
	ErrInvalidConfig = errors.New("invalid configuration")
)
