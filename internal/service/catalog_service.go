package service

import (
	"context"
	"errors"
	"strings"

	"github.com/nvoss/storefront/internal/domain"
	"github.com/nvoss/storefront/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CatalogService owns product CRUD and serves as the ProductFinder consumed
// by the cart and order services.
type CatalogService struct {
	products repository.ProductRepository
}

func NewCatalogService(products repository.ProductRepository) *CatalogService {
	return &CatalogService{products: products}
}

func (s *CatalogService) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	return s.products.FindByID(ctx, id)
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.products.List(ctx)
}

type ProductInput struct {
	Name        string
	Price       float64
	Discount    *float64
	Description string
	Image       string
	CategoryID  string
}

func (s *CatalogService) AddProduct(ctx context.Context, in ProductInput) (*domain.Product, error) {
	if err := validateProduct(in); err != nil {
		return nil, err
	}

	if _, err := s.products.FindByName(ctx, in.Name); err == nil {
		return nil, domain.NewValidationError("name", "product %q already exists", in.Name)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	product := &domain.Product{
		Name:        in.Name,
		Price:       in.Price,
		Discount:    in.Discount,
		Description: in.Description,
		Image:       in.Image,
		CategoryID:  in.CategoryID,
	}
	if err := s.products.Insert(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *CatalogService) EditProduct(ctx context.Context, id string, in ProductInput) (*domain.Product, error) {
	if err := validateProduct(in); err != nil {
		return nil, err
	}

	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// A rename may not collide with another product.
	if existing, errFind := s.products.FindByName(ctx, in.Name); errFind == nil {
		if existing.ID != product.ID {
			return nil, domain.NewValidationError("name", "product %q already exists", in.Name)
		}
	} else if !errors.Is(errFind, domain.ErrNotFound) {
		return nil, errFind
	}

	product.Name = in.Name
	product.Price = in.Price
	product.Discount = in.Discount
	product.Description = in.Description
	if in.Image != "" {
		product.Image = in.Image
	}
	if in.CategoryID != "" {
		product.CategoryID = in.CategoryID
	}

	if err := s.products.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *CatalogService) DeleteProducts(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, domain.NewValidationError("ids", "at least one product id is required")
	}

	deleted, err := s.products.DeleteMany(ctx, ids)
	if err != nil {
		return 0, err
	}
	if deleted == 0 {
		return 0, repository.ErrProductNotFound
	}
	return deleted, nil
}

func validateProduct(in ProductInput) error {
	switch {
	case strings.TrimSpace(in.Name) == "":
		return domain.NewValidationError("name", "is required")
	case in.Price < 1:
		return domain.NewValidationError("price", "must be at least 1")
	}
	if in.Discount != nil && (*in.Discount < 0 || *in.Discount > 100) {
		return domain.NewValidationError("discount", "must be between 0 and 100")
	}
	if in.CategoryID != "" {
		if _, err := primitive.ObjectIDFromHex(in.CategoryID); err != nil {
			return domain.NewValidationError("category_id", "is not a valid id")
		}
	}
	return nil
}
