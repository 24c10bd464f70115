package domain

import "errors"

var (
	// ErrInvalidInterval indicates that the check interval is too short.
	ErrInvalidInterval = errors.New("interval must be at least 1 second")

	// ErrInvalidTimeout indicates that the probe timeout is too short.
	ErrInvalidTimeout = errors.New("probe timeout must be at least 1 second")

	// ErrEmptyProbeURL indicates that no probe endpoint was configured.
	ErrEmptyProbeURL = errors.New("probe url is required")

	// ErrNoProfileNames indicates explicit mode without any profile names.
	ErrNoProfileNames = errors.New("explicit mode requires at least one profile name")

	// ErrRecoveryFailed indicates that a cycle ended without connectivity.
	ErrRecoveryFailed = errors.New("network still unreachable after recovery")
)
