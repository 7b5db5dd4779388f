package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/nvoss/storefront/internal/domain"
)

type CategoriesHandler struct {
	categories categoryService
	timeout    time.Duration
}

type categoryService interface {
	List(ctx context.Context) ([]domain.Category, error)
	Add(ctx context.Context, name string) (*domain.Category, error)
	Edit(ctx context.Context, id, name string) (*domain.Category, error)
	Delete(ctx context.Context, ids []string) (int64, error)
}

func NewCategoriesHandler(categories categoryService, timeout time.Duration) *CategoriesHandler {
	return &CategoriesHandler{
		categories: categories,
		timeout:    timeout,
	}
}

type CategoryRequestDTO struct {
	Name string `json:"name"`
}

// GET /api/v1/categories
func (h *CategoriesHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	categories, err := h.categories.List(ctx)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, categories)
}

// POST /api/v1/categories
func (h *CategoriesHandler) Add(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req CategoryRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	category, err := h.categories.Add(ctx, req.Name)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, category)
}

// PATCH /api/v1/categories/{id}
func (h *CategoriesHandler) Edit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req CategoryRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	category, err := h.categories.Edit(ctx, chi.URLParam(r, "id"), req.Name)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, category)
}

// DELETE /api/v1/categories
func (h *CategoriesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req DeleteManyRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	deleted, err := h.categories.Delete(ctx, req.IDs)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]int64{"deleted": deleted})
}
