package http

import (
	"context"
	"net/http"
	"time"

	"github.com/nvoss/storefront/internal/repository"
)

type ProvidersHandler struct {
	providers repository.ProviderRepository
	timeout   time.Duration
}

func NewProvidersHandler(providers repository.ProviderRepository, timeout time.Duration) *ProvidersHandler {
	return &ProvidersHandler{
		providers: providers,
		timeout:   timeout,
	}
}

// GET /api/v1/service-providers
func (h *ProvidersHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	providers, err := h.providers.List(ctx)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, providers)
}
