package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/okian/draftboard/internal/adapters/repository"
	"github.com/okian/draftboard/internal/domain/board"
)

// BoardDependencies defines the read operations the board handler needs.
type BoardDependencies interface {
	TopN(ctx context.Context, n int, pos string) ([]board.Row, error)
	Info(ctx context.Context) (repository.Info, error)
}

// BoardHandler handles board requests.
type BoardHandler struct {
	deps     BoardDependencies
	maxLimit int
}

// NewBoardHandler creates a new board handler.
func NewBoardHandler(deps BoardDependencies, maxLimit int) *BoardHandler {
	return &BoardHandler{
		deps:     deps,
		maxLimit: maxLimit,
	}
}

type boardResponse struct {
	Season    int         `json:"season"`
	Providers []string    `json:"providers"`
	Rows      []board.Row `json:"rows"`
}

// HandleGetBoard handles GET /board?limit=N&pos=P requests. A missing limit
// means the configured maximum.
func (h *BoardHandler) HandleGetBoard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	n := h.maxLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		v, err := strconv.Atoi(limitStr)
		if err != nil || v < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: limit %q", ErrBadRequest, limitStr))
			return
		}
		if v > h.maxLimit {
			writeError(w, http.StatusBadRequest, "limit_exceeded", fmt.Errorf("%w: %d", ErrLimitExceeded, h.maxLimit))
			return
		}
		n = v
	}

	info, err := h.deps.Info(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	rows, err := h.deps.TopN(r.Context(), n, r.URL.Query().Get("pos"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, boardResponse{Season: info.Season, Providers: info.Providers, Rows: rows})
}
