package pipeline

import "errors"

var (
	ErrInvalidCapacity = errors.New("buffer capacity must be positive")
	ErrInvalidWorkers  = errors.New("worker count must be positive")
	ErrGameFailed      = errors.New("game failed")
	ErrGamePanicked    = errors.New("game panicked")
)
