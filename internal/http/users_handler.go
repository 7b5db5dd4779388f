package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/nvoss/storefront/internal/domain"
)

type UsersHandler struct {
	users   userService
	timeout time.Duration
}

type userService interface {
	Register(ctx context.Context, username, password string, role domain.Role) (*domain.User, error)
	Login(ctx context.Context, username, password string) (token string, role domain.Role, err error)
}

func NewUsersHandler(users userService, timeout time.Duration) *UsersHandler {
	return &UsersHandler{
		users:   users,
		timeout: timeout,
	}
}

type RegisterRequestDTO struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

type LoginRequestDTO struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponseDTO struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	Role    string `json:"role"`
}

// POST /api/v1/users/register
func (h *UsersHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req RegisterRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if _, err := h.users.Register(ctx, req.Username, req.Password, domain.Role(req.Role)); err != nil {
		handleServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{"message": "user registered successfully"})
}

// POST /api/v1/users/login
func (h *UsersHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req LoginRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	token, role, err := h.users.Login(ctx, req.Username, req.Password)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, LoginResponseDTO{
		Message: "login successful",
		Token:   token,
		Role:    string(role),
	})
}
