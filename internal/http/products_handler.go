package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/nvoss/storefront/internal/domain"
	"github.com/nvoss/storefront/internal/service"
)

type ProductsHandler struct {
	catalog catalogService
	timeout time.Duration
}

type catalogService interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	AddProduct(ctx context.Context, in service.ProductInput) (*domain.Product, error)
	EditProduct(ctx context.Context, id string, in service.ProductInput) (*domain.Product, error)
	DeleteProducts(ctx context.Context, ids []string) (int64, error)
}

func NewProductsHandler(catalog catalogService, timeout time.Duration) *ProductsHandler {
	return &ProductsHandler{
		catalog: catalog,
		timeout: timeout,
	}
}

type ProductRequestDTO struct {
	Name        string   `json:"name"`
	Price       float64  `json:"price"`
	Discount    *float64 `json:"discount,omitempty"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	CategoryID  string   `json:"category_id"`
}

func (dto ProductRequestDTO) input() service.ProductInput {
	return service.ProductInput{
		Name:        dto.Name,
		Price:       dto.Price,
		Discount:    dto.Discount,
		Description: dto.Description,
		Image:       dto.Image,
		CategoryID:  dto.CategoryID,
	}
}

type DeleteManyRequestDTO struct {
	IDs []string `json:"ids"`
}

// GET /api/v1/products
func (h *ProductsHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	products, err := h.catalog.ListProducts(ctx)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, products)
}

// POST /api/v1/products
func (h *ProductsHandler) Add(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req ProductRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	product, err := h.catalog.AddProduct(ctx, req.input())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, product)
}

// PATCH /api/v1/products/{id}
func (h *ProductsHandler) Edit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req ProductRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	product, err := h.catalog.EditProduct(ctx, chi.URLParam(r, "id"), req.input())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, product)
}

// DELETE /api/v1/products
func (h *ProductsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req DeleteManyRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	deleted, err := h.catalog.DeleteProducts(ctx, req.IDs)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]int64{"deleted": deleted})
}
