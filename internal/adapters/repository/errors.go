package repository

import "errors"

// Sentinel kinds for board store errors.
var (
	ErrNotFound     = errors.New("player not found")
	ErrInvalidLimit = errors.New("invalid board limit")
	ErrNotLoaded    = errors.New("board not loaded")
)
