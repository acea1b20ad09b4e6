package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/pverdonck/go-legalprotect/internal/core"
	"github.com/pverdonck/go-legalprotect/pkg/problem"
)

type ClaimHandler struct {
	Svc core.ClaimService
	Log *slog.Logger
}

func NewClaimHandler(svc core.ClaimService, log *slog.Logger) *ClaimHandler {
	return &ClaimHandler{Svc: svc, Log: log}
}

func (h *ClaimHandler) Mount(r chi.Router) {
	r.Route("/claims", func(r chi.Router) {
		r.Post("/", h.Declare)
		r.Post("/validate", h.Validate)
		r.Get("/", h.List)
		r.Get("/{claim_id}", h.Get)
		r.Get("/reference/{reference}", h.GetByReference)
	})
}

// Validate dry-runs the claim rules and returns the full verdict, valid or
// not, as a 200. Brokers call this while the declaration form is being
// filled in.
// 200: JSON verdict; 400: malformed input; 500: internal error.
func (h *ClaimHandler) Validate(w http.ResponseWriter, r *http.Request) {
	var in core.ClaimInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		problem.Write(w, http.StatusBadRequest, "Invalid Request Body", "Request body must be valid JSON.")
		return
	}
	if err := in.Validate(); err != nil {
		writeError(r.Context(), h.Log, w, err, "Claim input is invalid")
		return
	}

	verdict, err := h.Svc.Validate(r.Context(), in)
	if err != nil {
		writeError(r.Context(), h.Log, w, err, "Failed to validate claim")
		return
	}

	if err := json.NewEncoder(w).Encode(verdict); err != nil {
		h.Log.Error("failed to encode claim verdict", "err", err)
	}
}

// Declare registers a claim after re-running validation. A claim that fails
// the business rules is rejected with 422 and the itemized violations.
// 201: JSON; 400: malformed input; 422: rule violations; 500: internal error.
func (h *ClaimHandler) Declare(w http.ResponseWriter, r *http.Request) {
	var in core.ClaimInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		problem.Write(w, http.StatusBadRequest, "Invalid Request Body", "Request body must be valid JSON.")
		return
	}
	if err := in.Validate(); err != nil {
		writeError(r.Context(), h.Log, w, err, "Claim input is invalid")
		return
	}

	verdict, err := h.Svc.Validate(r.Context(), in)
	if err != nil {
		writeError(r.Context(), h.Log, w, err, "Failed to validate claim")
		return
	}
	if !verdict.IsValid {
		h.Log.WarnContext(r.Context(), "claim declaration rejected",
			"contract_id", in.ContractID, "guarantee_code", in.GuaranteeCode)
		problem.WriteViolations(w, http.StatusUnprocessableEntity,
			"Claim Rejected", "Claim does not satisfy the coverage rules.", verdict.Errors)
		return
	}

	claim, err := h.Svc.Declare(r.Context(), in)
	if err != nil {
		writeError(r.Context(), h.Log, w, err, "Failed to declare claim")
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(claim); err != nil {
		h.Log.Error("failed to encode claim", "reference", claim.Reference, "err", err)
	}
}

// List returns claims, optionally filtered by ?status=.
// 200: JSON; 500: internal error.
func (h *ClaimHandler) List(w http.ResponseWriter, r *http.Request) {
	status := core.ClaimStatus(r.URL.Query().Get("status"))

	claims, err := h.Svc.List(r.Context(), status)
	if err != nil {
		writeError(r.Context(), h.Log, w, err, "Failed to list claims")
		return
	}

	if claims == nil {
		claims = []core.Claim{}
	}
	if err := json.NewEncoder(w).Encode(claims); err != nil {
		h.Log.Error("failed to encode claims", "err", err)
	}
}

// Get retrieves a claim by its numeric id.
// 200: JSON; 400: bad id; 404: not found; 500: internal error.
func (h *ClaimHandler) Get(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "claim_id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		problem.Write(w, http.StatusBadRequest, "Invalid Claim ID", "Path parameter claim_id must be a positive integer.")
		return
	}

	claim, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		writeError(r.Context(), h.Log, w, err, "Failed to get claim")
		return
	}

	if err := json.NewEncoder(w).Encode(claim); err != nil {
		h.Log.Error("failed to encode claim", "claim_id", id, "err", err)
	}
}

// GetByReference retrieves a claim by its SIN reference.
// 200: JSON; 404: not found; 500: internal error.
func (h *ClaimHandler) GetByReference(w http.ResponseWriter, r *http.Request) {
	reference := chi.URLParam(r, "reference")

	claim, err := h.Svc.GetByReference(r.Context(), reference)
	if err != nil {
		writeError(r.Context(), h.Log, w, err, "Failed to get claim")
		return
	}

	if err := json.NewEncoder(w).Encode(claim); err != nil {
		h.Log.Error("failed to encode claim", "reference", reference, "err", err)
	}
}
