package repository

import (
	"context"
	"strings"
	"sync/atomic"
	"time"

	"github.com/okian/draftboard/internal/domain/board"
	"github.com/okian/draftboard/internal/domain/identity"
)

// snapshot is an immutable, indexed view of one board.
type snapshot struct {
	board    *board.Board
	byName   map[string][]int
	byPos    map[string][]int
	loadedAt time.Time
}

// BoardStore serves the latest loaded board. Readers never block: Load
// builds a new snapshot and publishes it atomically.
type BoardStore struct {
	snapshot atomic.Pointer[snapshot]
	now      func() time.Time
}

// NewBoardStore returns an empty store.
func NewBoardStore(opts ...Option) *BoardStore {
	s := &BoardStore{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load indexes b and publishes it.
func (s *BoardStore) Load(_ context.Context, b *board.Board) error {
	if b == nil {
		return ErrNotLoaded
	}
	snap := &snapshot{
		board:    b,
		byName:   make(map[string][]int, len(b.Rows)),
		byPos:    make(map[string][]int),
		loadedAt: s.now(),
	}
	for i := range b.Rows {
		r := &b.Rows[i]
		key := nameKey(r.Player)
		snap.byName[key] = append(snap.byName[key], i)
		snap.byPos[r.Pos] = append(snap.byPos[r.Pos], i)
	}
	s.snapshot.Store(snap)
	return nil
}

// TopN returns the first n rows, or the first n rows at pos when pos is set.
func (s *BoardStore) TopN(_ context.Context, n int, pos string) ([]board.Row, error) {
	if n < 1 {
		return nil, ErrInvalidLimit
	}
	snap := s.snapshot.Load()
	if snap == nil {
		return nil, ErrNotLoaded
	}

	rows := snap.board.Rows
	if pos = identity.Code(pos); pos != "" {
		idx := snap.byPos[pos]
		out := make([]board.Row, 0, min(n, len(idx)))
		for _, i := range idx {
			if len(out) == n {
				break
			}
			out = append(out, rows[i])
		}
		return out, nil
	}
	n = min(n, len(rows))
	out := make([]board.Row, n)
	copy(out, rows[:n])
	return out, nil
}

// Player looks up rows by canonical name, ignoring case.
func (s *BoardStore) Player(_ context.Context, name string) ([]board.Row, error) {
	snap := s.snapshot.Load()
	if snap == nil {
		return nil, ErrNotLoaded
	}
	idx := snap.byName[nameKey(name)]
	if len(idx) == 0 {
		return nil, ErrNotFound
	}
	out := make([]board.Row, len(idx))
	for j, i := range idx {
		out[j] = snap.board.Rows[i]
	}
	return out, nil
}

// Info describes the served board.
func (s *BoardStore) Info(_ context.Context) (Info, error) {
	snap := s.snapshot.Load()
	if snap == nil {
		return Info{}, ErrNotLoaded
	}
	return Info{
		Season:    snap.board.Season,
		Rows:      len(snap.board.Rows),
		Providers: snap.board.Providers,
		Columns:   snap.board.Columns(),
		LoadedAt:  snap.loadedAt,
	}, nil
}

func nameKey(name string) string {
	return strings.ToLower(identity.CanonicalName(name))
}
