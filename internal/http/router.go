package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/nvoss/storefront/internal/domain"
)

type RouterConfig struct {
	JWTSecret      string
	RequestTimeout time.Duration
}

type Handlers struct {
	Cart       *CartHandler
	Orders     *OrdersHandler
	Exports    *ExportHandler
	Products   *ProductsHandler
	Categories *CategoriesHandler
	Users      *UsersHandler
	Providers  *ProvidersHandler
}

// NewRouter wires every handler behind the shared middleware stack. Admin
// routes sit behind RequireRole on top of the JWT check.
func NewRouter(cfg RouterConfig, h Handlers) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(RequestIDMiddleware)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))

	auth := AuthMiddleware(cfg.JWTSecret)
	adminOnly := RequireRole(domain.RoleAdmin)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Post("/register", h.Users.Register)
			r.Post("/login", h.Users.Login)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Use(auth)
			r.Get("/", h.Cart.GetCart)
			r.Post("/items", h.Cart.AddItem)
			r.Patch("/items/{product_id}/increase", h.Cart.IncreaseQuantity)
			r.Patch("/items/{product_id}/decrease", h.Cart.DecreaseQuantity)
			r.Delete("/items/{product_id}", h.Cart.RemoveItem)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Use(auth)
			r.Post("/", h.Orders.CreateOrder)
			r.Get("/{id}", h.Orders.GetOrder)

			r.Group(func(r chi.Router) {
				r.Use(adminOnly)
				r.Get("/", h.Orders.ListOrders)
				r.Get("/export/csv", h.Exports.OrdersCSV)
				r.Get("/export/excel", h.Exports.OrdersExcel)
				r.Get("/export/pdf", h.Exports.OrdersPDF)
			})
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", h.Products.List)

			r.Group(func(r chi.Router) {
				r.Use(auth, adminOnly)
				r.Post("/", h.Products.Add)
				r.Patch("/{id}", h.Products.Edit)
				r.Delete("/", h.Products.Delete)
			})
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", h.Categories.List)

			r.Group(func(r chi.Router) {
				r.Use(auth, adminOnly)
				r.Post("/", h.Categories.Add)
				r.Patch("/{id}", h.Categories.Edit)
				r.Delete("/", h.Categories.Delete)
			})
		})

		r.With(auth).Get("/service-providers", h.Providers.List)
	})

	return r
}
