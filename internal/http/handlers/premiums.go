package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pverdonck/go-legalprotect/internal/core"
	"github.com/pverdonck/go-legalprotect/pkg/problem"
)

type PremiumHandler struct {
	Svc core.PremiumService
	Log *slog.Logger
}

func NewPremiumHandler(svc core.PremiumService, log *slog.Logger) *PremiumHandler {
	return &PremiumHandler{Svc: svc, Log: log}
}

func (h *PremiumHandler) Mount(r chi.Router) {
	r.Post("/premiums/calculate", h.Calculate)
}

type premiumRequest struct {
	ProductCode   string            `json:"product_code"`
	VehiclesCount int               `json:"vehicles_count"`
	PayFrequency  core.PayFrequency `json:"pay_frequency"`
}

// Calculate quotes a premium without creating a contract. Brokers use it to
// show prospects the breakdown before signature.
// 200: JSON breakdown; 400: bad input; 404: unknown product; 500: internal error.
func (h *PremiumHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	var req premiumRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.Write(w, http.StatusBadRequest, "Invalid Request Body", "Request body must be valid JSON.")
		return
	}

	breakdown, err := h.Svc.Calculate(r.Context(), req.ProductCode, req.VehiclesCount, req.PayFrequency)
	if err != nil {
		writeError(r.Context(), h.Log, w, err, "Failed to calculate premium")
		return
	}

	if err := json.NewEncoder(w).Encode(breakdown); err != nil {
		h.Log.Error("failed to encode premium breakdown", "product_code", req.ProductCode, "err", err)
	}
}
