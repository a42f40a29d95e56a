package engine

import "errors"

var (
	ErrInvalidPlacement = errors.New("invalid ship placement")
	ErrOutOfBounds      = errors.New("coordinate out of bounds")
	ErrAlreadyAttacked  = errors.New("cell already attacked")
	ErrInvalidState     = errors.New("operation not allowed in current game state")
	ErrGameOver         = errors.New("game is over")
)
