package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/light-bringer/storefront-catalog/internal/app/catalog/contracts"
	"github.com/light-bringer/storefront-catalog/internal/app/catalog/domain"
	"github.com/light-bringer/storefront-catalog/internal/app/catalog/queries/get_facets"
	"github.com/light-bringer/storefront-catalog/internal/app/catalog/queries/get_product"
	"github.com/light-bringer/storefront-catalog/internal/app/catalog/queries/list_featured"
	"github.com/light-bringer/storefront-catalog/internal/app/catalog/queries/list_products"
	"github.com/light-bringer/storefront-catalog/internal/logger"
)

// CatalogHandler serves the storefront catalog endpoints.
type CatalogHandler struct {
	listProducts *list_products.Query
	getFacets    *get_facets.Query
	getProduct   *get_product.Query
	listFeatured *list_featured.Query
	readModel    contracts.ReadModel
	limits       domain.Limits
}

// NewCatalogHandler creates a new catalog HTTP handler.
func NewCatalogHandler(
	listProducts *list_products.Query,
	getFacets *get_facets.Query,
	getProduct *get_product.Query,
	listFeatured *list_featured.Query,
	readModel contracts.ReadModel,
	limits domain.Limits,
) *CatalogHandler {
	return &CatalogHandler{
		listProducts: listProducts,
		getFacets:    getFacets,
		getProduct:   getProduct,
		listFeatured: listFeatured,
		readModel:    readModel,
		limits:       limits,
	}
}

// ProductResponse wraps a single product.
type ProductResponse struct {
	Product *contracts.ProductDTO `json:"product"`
}

// HealthResponse is the /healthz payload.
type HealthResponse struct {
	Status string `json:"status"`
}

// ListProducts handles GET /api/{category}.
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	category, err := domain.ParseCategory(chi.URLParam(r, "category"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	spec, err := domain.ParseFilterSpec(category, r.URL.Query(), h.limits)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	resp, err := h.listProducts.Execute(r.Context(), spec)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// GetFilters handles GET /api/{category}/filters.
func (h *CatalogHandler) GetFilters(w http.ResponseWriter, r *http.Request) {
	category, err := domain.ParseCategory(chi.URLParam(r, "category"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	opts, err := h.getFacets.Execute(r.Context(), category)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, opts)
}

// ListFeatured handles GET /api/{category}/featured.
func (h *CatalogHandler) ListFeatured(w http.ResponseWriter, r *http.Request) {
	category, err := domain.ParseCategory(chi.URLParam(r, "category"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	limit := 0
	if raw := r.URL.Query().Get(domain.ParamLimit); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil {
			writeDomainError(w, r, &domain.ValidationError{Field: domain.ParamLimit, Message: "must be an integer"})
			return
		}
	}

	resp, err := h.listFeatured.Execute(r.Context(), category, limit)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// GetProduct handles GET /api/{category}/{productURL}.
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	category, err := domain.ParseCategory(chi.URLParam(r, "category"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	product, err := h.getProduct.Execute(r.Context(), &get_product.Request{
		Category:   category,
		ProductURL: chi.URLParam(r, "productURL"),
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, ProductResponse{Product: product})
}

// Health handles GET /healthz.
func (h *CatalogHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.readModel.Ping(r.Context()); err != nil {
		logger.FromContext(r.Context()).Warn("store ping failed", zap.Error(err))
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}
