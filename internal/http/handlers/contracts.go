package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pverdonck/go-legalprotect/internal/core"
	"github.com/pverdonck/go-legalprotect/pkg/problem"
)

// Mountable is a feature handler that attaches its routes to the router.
type Mountable interface {
	Mount(r chi.Router)
}

type ContractHandler struct {
	Svc      core.ContractService
	Coverage core.CoverageService
	Log      *slog.Logger
}

func NewContractHandler(svc core.ContractService, coverage core.CoverageService, log *slog.Logger) *ContractHandler {
	return &ContractHandler{Svc: svc, Coverage: coverage, Log: log}
}

func (h *ContractHandler) Mount(r chi.Router) {
	r.Route("/contracts", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/", h.List)
		r.Get("/{contract_id}", h.Get)
		r.Get("/reference/{reference}", h.GetByReference)
		r.Get("/{contract_id}/coverage/{guarantee_code}", h.CheckCoverage)
	})
}

// Create subscribes a new contract. The premium is always recomputed server
// side; any premium sent by the client is ignored.
// 201: JSON; 400: bad input; 404: unknown product; 500: internal error.
func (h *ContractHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in core.ContractInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		problem.Write(w, http.StatusBadRequest, "Invalid Request Body", "Request body must be valid JSON.")
		return
	}

	contract, err := h.Svc.Create(r.Context(), in)
	if err != nil {
		writeError(r.Context(), h.Log, w, err, "Failed to create contract")
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(contract); err != nil {
		h.Log.Error("failed to encode contract", "reference", contract.Reference, "err", err)
	}
}

// List returns contracts, optionally filtered by status or broker.
// 200: JSON; 500: internal error.
func (h *ContractHandler) List(w http.ResponseWriter, r *http.Request) {
	if broker := r.URL.Query().Get("broker_id"); broker != "" {
		brokerID, err := strconv.ParseInt(broker, 10, 64)
		if err != nil || brokerID <= 0 {
			problem.Write(w, http.StatusBadRequest, "Invalid Broker ID", "Query parameter broker_id must be a positive integer.")
			return
		}
		contracts, err := h.Svc.ListByBroker(r.Context(), brokerID)
		if err != nil {
			writeError(r.Context(), h.Log, w, err, "Failed to list contracts")
			return
		}
		encodeContracts(w, h.Log, contracts)
		return
	}

	status := core.Status(r.URL.Query().Get("status"))
	contracts, err := h.Svc.List(r.Context(), status)
	if err != nil {
		writeError(r.Context(), h.Log, w, err, "Failed to list contracts")
		return
	}
	encodeContracts(w, h.Log, contracts)
}

func encodeContracts(w http.ResponseWriter, log *slog.Logger, contracts []core.Contract) {
	if contracts == nil {
		contracts = []core.Contract{}
	}
	if err := json.NewEncoder(w).Encode(contracts); err != nil {
		log.Error("failed to encode contracts", "err", err)
	}
}

// Get retrieves a contract by its numeric id.
// 200: JSON; 400: bad id; 404: not found; 500: internal error.
func (h *ContractHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := contractID(w, r)
	if !ok {
		return
	}

	contract, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		writeError(r.Context(), h.Log, w, err, "Failed to get contract")
		return
	}

	if err := json.NewEncoder(w).Encode(contract); err != nil {
		h.Log.Error("failed to encode contract", "contract_id", id, "err", err)
	}
}

// GetByReference retrieves a contract by its DAS reference.
// 200: JSON; 404: not found; 500: internal error.
func (h *ContractHandler) GetByReference(w http.ResponseWriter, r *http.Request) {
	reference := chi.URLParam(r, "reference")

	contract, err := h.Svc.GetByReference(r.Context(), reference)
	if err != nil {
		writeError(r.Context(), h.Log, w, err, "Failed to get contract")
		return
	}

	if err := json.NewEncoder(w).Encode(contract); err != nil {
		h.Log.Error("failed to encode contract", "reference", reference, "err", err)
	}
}

// CheckCoverage evaluates whether a guarantee is covered by the contract as
// of an optional ?date=YYYY-MM-DD (defaults to today). Not-covered outcomes
// are 200 responses with is_covered=false, never errors.
// 200: JSON verdict; 400: bad input; 500: internal error.
func (h *ContractHandler) CheckCoverage(w http.ResponseWriter, r *http.Request) {
	id, ok := contractID(w, r)
	if !ok {
		return
	}
	guaranteeCode := chi.URLParam(r, "guarantee_code")
	if guaranteeCode == "" {
		problem.Write(w, http.StatusBadRequest, "Missing Guarantee Code", "Path parameter guarantee_code is required.")
		return
	}

	var asOf time.Time
	if d := r.URL.Query().Get("date"); d != "" {
		parsed, err := time.Parse("2006-01-02", d)
		if err != nil {
			problem.Write(w, http.StatusBadRequest, "Invalid Date", "Query parameter date must be YYYY-MM-DD.")
			return
		}
		asOf = parsed
	}

	verdict, err := h.Coverage.CheckCoverage(r.Context(), id, guaranteeCode, asOf)
	if err != nil {
		writeError(r.Context(), h.Log, w, err, "Failed to check coverage")
		return
	}

	if err := json.NewEncoder(w).Encode(verdict); err != nil {
		h.Log.Error("failed to encode coverage verdict", "contract_id", id, "err", err)
	}
}

func contractID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "contract_id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		problem.Write(w, http.StatusBadRequest, "Invalid Contract ID", "Path parameter contract_id must be a positive integer.")
		return 0, false
	}
	return id, true
}
