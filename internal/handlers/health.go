package handlers

import (
	"net/http"

	"github.com/bobmcallan/market-portal/internal/common"
	"github.com/bobmcallan/market-portal/internal/session"
)

// HealthHandler handles health check requests.
type HealthHandler struct {
	logger *common.Logger
	store  *session.Store
}

// NewHealthHandler creates a new health handler. store may be nil.
func NewHealthHandler(logger *common.Logger, store *session.Store) *HealthHandler {
	return &HealthHandler{logger: logger, store: store}
}

func (h *HealthHandler) sessions() int {
	if h.store == nil {
		return 0
	}
	return h.store.Len()
}

// ServeHTTP handles GET /api/health.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "ok",
		"sessions": h.sessions(),
	})
}
