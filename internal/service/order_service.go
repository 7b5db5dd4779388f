package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nvoss/storefront/internal/domain"
	"github.com/nvoss/storefront/internal/repository"
)

type OrderService struct {
	repo    repository.OrderRepository
	catalog ProductFinder
}

func NewOrderService(repo repository.OrderRepository, catalog ProductFinder) *OrderService {
	return &OrderService{
		repo:    repo,
		catalog: catalog,
	}
}

// CreateOrder re-validates every client-supplied line against the catalog,
// recomputes all pricing from the live catalog value and persists one
// immutable order document. Client prices are never read. Any unresolvable
// product fails the whole call and persists nothing.
func (s *OrderService) CreateOrder(ctx context.Context, userID string, customer domain.CustomerDetails, items []domain.OrderItemInput) (*domain.Order, error) {
	if len(items) == 0 {
		return nil, domain.NewValidationError("items", "at least one order item is required")
	}
	if err := validateCustomer(customer); err != nil {
		return nil, err
	}

	var total float64
	verified := make([]domain.OrderItem, 0, len(items))

	for _, in := range items {
		if in.Quantity < 1 {
			return nil, domain.NewValidationError("quantity",
				"quantity for product %s must be at least 1", in.ProductID)
		}

		product, err := s.catalog.FindByID(ctx, in.ProductID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.NewValidationError("items", "product %s not found", in.ProductID)
			}
			return nil, err
		}

		verified = append(verified, domain.OrderItem{
			ProductID:   in.ProductID,
			ProductName: product.Name,
			Quantity:    in.Quantity,
			UnitPrice:   product.Price,
		})
		total += product.Price * float64(in.Quantity)
	}

	order := &domain.Order{
		ID:              uuid.NewString(),
		UserID:          userID,
		CustomerDetails: customer,
		Items:           verified,
		TotalAmount:     total,
		PaymentDetails: domain.PaymentDetails{
			Method: domain.PaymentMethodCreditCard,
			Status: domain.PaymentStatusPending,
		},
		Status:         domain.OrderStatusDelivered,
		EventPublished: false,
		CreatedAt:      time.Now(),
	}

	if err := s.repo.Insert(ctx, order); err != nil {
		return nil, err
	}

	return order, nil
}

// GetOrder returns the denormalized view of one order to its owner or to an
// admin.
func (s *OrderService) GetOrder(ctx context.Context, orderID string, requester domain.Identity) (*domain.OrderView, error) {
	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.UserID != requester.UserID && !requester.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	view := order.View()
	return &view, nil
}

// ListOrders returns every order in the flattened projection shared by the
// interactive listing and the file exporters.
func (s *OrderService) ListOrders(ctx context.Context) ([]domain.OrderSummary, error) {
	orders, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]domain.OrderSummary, 0, len(orders))
	for i := range orders {
		summaries = append(summaries, orders[i].Summary())
	}
	return summaries, nil
}

func validateCustomer(c domain.CustomerDetails) error {
	switch {
	case strings.TrimSpace(c.FirstName) == "":
		return domain.NewValidationError("first_name", "is required")
	case strings.TrimSpace(c.LastName) == "":
		return domain.NewValidationError("last_name", "is required")
	case !strings.Contains(c.Email, "@"):
		return domain.NewValidationError("email", "is not a valid address")
	case strings.TrimSpace(c.Phone) == "":
		return domain.NewValidationError("phone", "is required")
	}
	return nil
}
