package repository

import (
	"context"
	"fmt"

	"github.com/nvoss/storefront/internal/domain"
)

// Sentinels wrap the domain taxonomy so callers can match either the precise
// condition or the broad class with errors.Is.
var (
	ErrCartNotFound     = fmt.Errorf("cart %w", domain.ErrNotFound)
	ErrItemNotFound     = fmt.Errorf("cart item %w", domain.ErrNotFound)
	ErrProductNotFound  = fmt.Errorf("product %w", domain.ErrNotFound)
	ErrOrderNotFound    = fmt.Errorf("order %w", domain.ErrNotFound)
	ErrCategoryNotFound = fmt.Errorf("category %w", domain.ErrNotFound)
	ErrUserNotFound     = fmt.Errorf("user %w", domain.ErrNotFound)
	ErrDuplicate        = fmt.Errorf("duplicate %w", domain.ErrConflict)
)

// CartRepository is defined by its consumers; the MongoDB implementation is
// an internal detail. Every mutator is a single atomic per-document update so
// concurrent mutations of the same cart cannot lose writes.
type CartRepository interface {
	GetCart(ctx context.Context, userID string) (*domain.Cart, error)
	// AddItem bumps the line for productID by quantity and quantity*unitPrice,
	// appending the line (and lazily creating the cart) when absent.
	AddItem(ctx context.Context, userID, productID string, quantity int, unitPrice float64) error
	// IncreaseQuantity adds one unit priced at unitPrice to an existing line.
	// Returns ErrItemNotFound when the cart exists but holds no such line.
	IncreaseQuantity(ctx context.Context, userID, productID string, unitPrice float64) error
	// DecreaseQuantity removes one unit priced at unitPrice, deleting the
	// line outright when its quantity is 1.
	DecreaseQuantity(ctx context.Context, userID, productID string, unitPrice float64) error
	// RemoveItem deletes the line for productID. Removing an absent line is
	// a no-op success.
	RemoveItem(ctx context.Context, userID, productID string) error
	DeleteCart(ctx context.Context, userID string) error
}

type OrderRepository interface {
	Insert(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context) ([]domain.Order, error)
	// ListUnpublished returns orders whose creation event has not been
	// published yet, oldest first.
	ListUnpublished(ctx context.Context, limit int) ([]domain.Order, error)
	MarkPublished(ctx context.Context, id string) error
}

type ProductRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	FindByName(ctx context.Context, name string) (*domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
	Insert(ctx context.Context, p *domain.Product) error
	Update(ctx context.Context, p *domain.Product) error
	DeleteMany(ctx context.Context, ids []string) (int64, error)
}

type CategoryRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Category, error)
	FindByName(ctx context.Context, name string) (*domain.Category, error)
	List(ctx context.Context) ([]domain.Category, error)
	Insert(ctx context.Context, c *domain.Category) error
	Update(ctx context.Context, c *domain.Category) error
	DeleteMany(ctx context.Context, ids []string) (int64, error)
}

type UserRepository interface {
	Insert(ctx context.Context, u *domain.User) error
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
}

type ProviderRepository interface {
	List(ctx context.Context) ([]domain.ServiceProvider, error)
}
