// Package repository holds the read model the board API serves from.
package repository

import (
	"context"
	"time"

	"github.com/okian/draftboard/internal/domain/board"
)

// Store provides read access to the current board.
type Store interface {
	// Load replaces the served board.
	Load(ctx context.Context, b *board.Board) error

	// TopN returns the first n rows in board order, optionally restricted to
	// one position. Returns ErrInvalidLimit when n < 1.
	TopN(ctx context.Context, n int, pos string) ([]board.Row, error)

	// Player returns every row whose canonical name matches, best rank first.
	// Returns ErrNotFound if the player is unknown.
	Player(ctx context.Context, name string) ([]board.Row, error)

	// Info describes the served board.
	Info(ctx context.Context) (Info, error)
}

// Info describes a loaded board.
type Info struct {
	Season    int       `json:"season"`
	Rows      int       `json:"rows"`
	Providers []string  `json:"providers"`
	Columns   []string  `json:"columns"`
	LoadedAt  time.Time `json:"loaded_at"`
}
