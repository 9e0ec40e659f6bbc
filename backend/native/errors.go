package native

import "errors"

// Package errors for the native backend.
var (
	// ErrNilDevice is returned when New is called without a device or queue.
	ErrNilDevice = errors.New("native: nil device or queue")

	// ErrNoHalProvider is returned when a device provider does not expose
	// HAL types.
	ErrNoHalProvider = errors.New("native: provider does not expose HAL device and queue")

	// ErrNoAdapter is returned when the headless instance has no adapter.
	ErrNoAdapter = errors.New("native: no adapter available")

	// ErrClosed is returned by operations on a closed backend.
	ErrClosed = errors.New("native: backend closed")

	// ErrOpenCommand is returned by Submit when a command was not closed.
	ErrOpenCommand = errors.New("native: submitted command is not closed")
)
