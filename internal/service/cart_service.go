package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/nvoss/storefront/internal/cache"
	"github.com/nvoss/storefront/internal/domain"
	"github.com/nvoss/storefront/internal/repository"
	"golang.org/x/sync/singleflight"
)

// ProductFinder is the slice of the catalog the cart and order services
// consume: existence plus current price.
type ProductFinder interface {
	FindByID(ctx context.Context, id string) (*domain.Product, error)
}

type CartService struct {
	repo    repository.CartRepository
	catalog ProductFinder
	cache   cache.CartCache
	sfg     singleflight.Group // prevents cache stampede on GetCart
}

func NewCartService(repo repository.CartRepository, catalog ProductFinder, cache cache.CartCache) *CartService {
	return &CartService{
		repo:    repo,
		catalog: catalog,
		cache:   cache,
	}
}

// AddItem puts quantity units of productID into the user's cart, pricing the
// delta at the current catalog price. The cart is created lazily on first add.
func (s *CartService) AddItem(ctx context.Context, userID, productID string, quantity int) error {
	if quantity < 1 {
		return domain.NewValidationError("quantity", "must be at least 1")
	}

	product, err := s.catalog.FindByID(ctx, productID)
	if err != nil {
		return err
	}

	if errAdd := s.repo.AddItem(ctx, userID, productID, quantity, product.Price); errAdd != nil {
		slog.Error("repo add item failed", "user_id", userID, "product_id", productID, "error", errAdd)
		return errAdd
	}

	s.invalidateCache(userID)
	return nil
}

// IncreaseQuantity adds one unit at the current catalog price. A cart or
// product that does not resolve is an error; a missing line is a silent no-op.
func (s *CartService) IncreaseQuantity(ctx context.Context, userID, productID string) error {
	product, err := s.catalog.FindByID(ctx, productID)
	if err != nil {
		return err
	}

	errInc := s.repo.IncreaseQuantity(ctx, userID, productID, product.Price)
	if errInc != nil {
		if errors.Is(errInc, repository.ErrItemNotFound) {
			return nil
		}
		return errInc
	}

	s.invalidateCache(userID)
	return nil
}

// DecreaseQuantity removes one unit at the current catalog price, dropping
// the line entirely when its quantity is 1.
func (s *CartService) DecreaseQuantity(ctx context.Context, userID, productID string) error {
	product, err := s.catalog.FindByID(ctx, productID)
	if err != nil {
		return err
	}

	errDec := s.repo.DecreaseQuantity(ctx, userID, productID, product.Price)
	if errDec != nil {
		if errors.Is(errDec, repository.ErrItemNotFound) {
			return nil
		}
		return errDec
	}

	s.invalidateCache(userID)
	return nil
}

// RemoveItem drops the line for productID. Removing a line that is not there
// succeeds; a missing cart does not.
func (s *CartService) RemoveItem(ctx context.Context, userID, productID string) error {
	if err := s.repo.RemoveItem(ctx, userID, productID); err != nil {
		return err
	}

	s.invalidateCache(userID)
	return nil
}

// GetCart returns the cart with every line resolved against the catalog for
// display. Lines whose product has since been deleted keep their stored
// quantity and subtotal with a nil product.
func (s *CartService) GetCart(ctx context.Context, userID string) (*domain.CartView, error) {
	cart, err := s.cachedCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	view := &domain.CartView{
		UserID: userID,
		Items:  make([]domain.CartLineView, 0, len(cart.Items)),
	}
	for _, item := range cart.Items {
		line := domain.CartLineView{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Subtotal:  item.Subtotal,
		}
		product, errFind := s.catalog.FindByID(ctx, item.ProductID)
		if errFind != nil && !errors.Is(errFind, domain.ErrNotFound) {
			return nil, errFind
		}
		line.Product = product
		view.Items = append(view.Items, line)
		view.Total += item.Subtotal
	}

	return view, nil
}

func (s *CartService) cachedCart(ctx context.Context, userID string) (*domain.Cart, error) {
	v, err, _ := s.sfg.Do(userID, func() (interface{}, error) {
		cart, errGet := s.cache.Get(ctx, userID)
		if errGet == nil {
			return cart, nil
		}
		if !errors.Is(errGet, cache.ErrCacheMiss) {
			slog.Warn("cart cache get failed", "user_id", userID, "error", errGet)
		}

		cart, errGet = s.repo.GetCart(ctx, userID)
		if errGet != nil {
			return nil, errGet
		}

		go func() {
			ctxSet, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			if errSet := s.cache.Set(ctxSet, userID, cart); errSet != nil {
				slog.Warn("cart cache set failed", "user_id", userID, "error", errSet)
			}
		}()

		return cart, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Cart), nil
}

func (s *CartService) invalidateCache(userID string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.Delete(ctx, userID); err != nil {
		slog.Warn("cart cache invalidate failed", "user_id", userID, "error", err)
	}
}
