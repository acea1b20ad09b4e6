package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/pverdonck/go-legalprotect/internal/core"
	"github.com/pverdonck/go-legalprotect/pkg/problem"
)

type ProductHandler struct {
	Products core.ProductRepo
	Log      *slog.Logger
}

func NewProductHandler(products core.ProductRepo, log *slog.Logger) *ProductHandler {
	return &ProductHandler{Products: products, Log: log}
}

func (h *ProductHandler) Mount(r chi.Router) {
	r.Route("/products", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{product_code}", h.Get)
		r.Get("/{product_code}/guarantees", h.Guarantees)
	})
}

// List returns the active product catalog.
// 200: JSON; 500: internal error.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.Products.List(r.Context())
	if err != nil {
		writeError(r.Context(), h.Log, w, err, "Failed to list products")
		return
	}

	if products == nil {
		products = []core.Product{}
	}
	if err := json.NewEncoder(w).Encode(products); err != nil {
		h.Log.Error("failed to encode products", "err", err)
	}
}

// Get retrieves one product by its commercial code.
// 200: JSON; 400: missing code; 404: not found; 500: internal error.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	code := strings.ToUpper(chi.URLParam(r, "product_code"))
	if code == "" {
		problem.Write(w, http.StatusBadRequest, "Missing Product Code", "Path parameter product_code is required.")
		return
	}

	product, err := h.Products.GetByCode(r.Context(), code)
	if err != nil {
		writeError(r.Context(), h.Log, w, err, "Failed to get product")
		return
	}

	if err := json.NewEncoder(w).Encode(product); err != nil {
		h.Log.Error("failed to encode product", "product_code", code, "err", err)
	}
}

// Guarantees lists the guarantees attached to a product, with their effective
// waiting periods resolved against the product default.
// 200: JSON; 404: unknown product; 500: internal error.
func (h *ProductHandler) Guarantees(w http.ResponseWriter, r *http.Request) {
	code := strings.ToUpper(chi.URLParam(r, "product_code"))

	product, err := h.Products.GetByCode(r.Context(), code)
	if err != nil {
		writeError(r.Context(), h.Log, w, err, "Failed to get product")
		return
	}

	guarantees, err := h.Products.GuaranteesFor(r.Context(), product.ID)
	if err != nil {
		writeError(r.Context(), h.Log, w, err, "Failed to list guarantees")
		return
	}

	type guaranteeView struct {
		core.Guarantee
		EffectiveWaitingMonths int `json:"effective_waiting_months"`
	}
	views := make([]guaranteeView, len(guarantees))
	for i, g := range guarantees {
		views[i] = guaranteeView{
			Guarantee:              g,
			EffectiveWaitingMonths: core.EffectiveWaitingMonths(product, g),
		}
	}

	if err := json.NewEncoder(w).Encode(views); err != nil {
		h.Log.Error("failed to encode guarantees", "product_code", code, "err", err)
	}
}
