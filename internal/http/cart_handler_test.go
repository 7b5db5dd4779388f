package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/nvoss/storefront/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockCartService struct {
	addErr    error
	incErr    error
	decErr    error
	removeErr error
	getErr    error
	view      *domain.CartView

	addCalls []AddItemRequestDTO
}

func (m *mockCartService) AddItem(_ context.Context, _, productID string, quantity int) error {
	m.addCalls = append(m.addCalls, AddItemRequestDTO{ProductID: productID, Quantity: quantity})
	return m.addErr
}

func (m *mockCartService) IncreaseQuantity(_ context.Context, _, _ string) error { return m.incErr }
func (m *mockCartService) DecreaseQuantity(_ context.Context, _, _ string) error { return m.decErr }
func (m *mockCartService) RemoveItem(_ context.Context, _, _ string) error       { return m.removeErr }

func (m *mockCartService) GetCart(_ context.Context, _ string) (*domain.CartView, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.view, nil
}

// authedRequest builds a request carrying an identity, the way
// AuthMiddleware would have left it.
func authedRequest(method, target, body string, identity domain.Identity) *http.Request {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	ctx := context.WithValue(r.Context(), identityKey, identity)
	return r.WithContext(ctx)
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func emptyView(userID string) *domain.CartView {
	return &domain.CartView{UserID: userID, Items: []domain.CartLineView{}}
}

var user = domain.Identity{UserID: "u1", Role: domain.RoleUser}

func TestAddItem_Success(t *testing.T) {
	svc := &mockCartService{view: emptyView("u1")}
	h := NewCartHandler(svc, time.Second)

	r := authedRequest(http.MethodPost, "/cart/items", `{"product_id":"p1","quantity":3}`, user)
	w := httptest.NewRecorder()
	h.AddItem(w, r)

	assert.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, svc.addCalls, 1)
	assert.Equal(t, AddItemRequestDTO{ProductID: "p1", Quantity: 3}, svc.addCalls[0])

	var view domain.CartView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Equal(t, "u1", view.UserID)
}

func TestAddItem_MissingIdentity(t *testing.T) {
	h := NewCartHandler(&mockCartService{}, time.Second)

	r := httptest.NewRequest(http.MethodPost, "/cart/items", strings.NewReader(`{"product_id":"p1","quantity":1}`))
	w := httptest.NewRecorder()
	h.AddItem(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAddItem_ValidatesBody(t *testing.T) {
	tests := []struct {
		name string
		body string
		code string
	}{
		{"malformed json", `{`, "invalid_request"},
		{"missing product id", `{"quantity":1}`, "invalid_product_id"},
		{"zero quantity", `{"product_id":"p1","quantity":0}`, "invalid_quantity"},
		{"quantity above limit", `{"product_id":"p1","quantity":100}`, "invalid_quantity"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockCartService{}
			h := NewCartHandler(svc, time.Second)

			r := authedRequest(http.MethodPost, "/cart/items", tt.body, user)
			w := httptest.NewRecorder()
			h.AddItem(w, r)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.code, resp.Code)
			assert.Empty(t, svc.addCalls, "service must not be called on invalid input")
		})
	}
}

func TestAddItem_UnknownProduct(t *testing.T) {
	svc := &mockCartService{addErr: domain.NewValidationError("product_id", "product p1 not found")}
	h := NewCartHandler(svc, time.Second)

	r := authedRequest(http.MethodPost, "/cart/items", `{"product_id":"p1","quantity":1}`, user)
	w := httptest.NewRecorder()
	h.AddItem(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetCart_Success(t *testing.T) {
	svc := &mockCartService{view: &domain.CartView{
		UserID: "u1",
		Items: []domain.CartLineView{
			{ProductID: "p1", Quantity: 2, Subtotal: 20},
		},
		Total: 20,
	}}
	h := NewCartHandler(svc, time.Second)

	r := authedRequest(http.MethodGet, "/cart", "", user)
	w := httptest.NewRecorder()
	h.GetCart(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	var view domain.CartView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.InDelta(t, 20.0, view.Total, 1e-9)
	require.Len(t, view.Items, 1)
	assert.Equal(t, "p1", view.Items[0].ProductID)
}

func TestGetCart_NotFound(t *testing.T) {
	svc := &mockCartService{getErr: domain.ErrNotFound}
	h := NewCartHandler(svc, time.Second)

	r := authedRequest(http.MethodGet, "/cart", "", user)
	w := httptest.NewRecorder()
	h.GetCart(w, r)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestIncreaseQuantity_Success(t *testing.T) {
	svc := &mockCartService{view: emptyView("u1")}
	h := NewCartHandler(svc, time.Second)

	r := authedRequest(http.MethodPatch, "/cart/items/p1/increase", "", user)
	r = withURLParam(r, "product_id", "p1")
	w := httptest.NewRecorder()
	h.IncreaseQuantity(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDecreaseQuantity_CartMissing(t *testing.T) {
	svc := &mockCartService{decErr: domain.ErrNotFound}
	h := NewCartHandler(svc, time.Second)

	r := authedRequest(http.MethodPatch, "/cart/items/p1/decrease", "", user)
	r = withURLParam(r, "product_id", "p1")
	w := httptest.NewRecorder()
	h.DecreaseQuantity(w, r)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRemoveItem_Success(t *testing.T) {
	svc := &mockCartService{view: emptyView("u1")}
	h := NewCartHandler(svc, time.Second)

	r := authedRequest(http.MethodDelete, "/cart/items/p1", "", user)
	r = withURLParam(r, "product_id", "p1")
	w := httptest.NewRecorder()
	h.RemoveItem(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRemoveItem_MissingProductID(t *testing.T) {
	svc := &mockCartService{}
	h := NewCartHandler(svc, time.Second)

	r := authedRequest(http.MethodDelete, "/cart/items/", "", user)
	r = withURLParam(r, "product_id", "")
	w := httptest.NewRecorder()
	h.RemoveItem(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
