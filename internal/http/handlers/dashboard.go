package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pverdonck/go-legalprotect/internal/core"
)

type DashboardHandler struct {
	Svc core.StatsService
	Log *slog.Logger
}

func NewDashboardHandler(svc core.StatsService, log *slog.Logger) *DashboardHandler {
	return &DashboardHandler{Svc: svc, Log: log}
}

func (h *DashboardHandler) Mount(r chi.Router) {
	r.Get("/dashboard", h.Get)
}

// Get returns the back-office dashboard roll-ups in one response.
// 200: JSON; 500: internal error.
func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Svc.Dashboard(r.Context())
	if err != nil {
		writeError(r.Context(), h.Log, w, err, "Failed to build dashboard")
		return
	}

	if err := json.NewEncoder(w).Encode(stats); err != nil {
		h.Log.Error("failed to encode dashboard", "err", err)
	}
}
