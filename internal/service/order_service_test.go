package service

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/nvoss/storefront/internal/domain"
	"github.com/nvoss/storefront/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockOrderRepository struct {
	m      sync.Mutex
	orders map[string]*domain.Order
	err    error
}

func newMockOrderRepository() *mockOrderRepository {
	return &mockOrderRepository{orders: make(map[string]*domain.Order)}
}

func (m *mockOrderRepository) Insert(_ context.Context, order *domain.Order) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	cp := *order
	m.orders[order.ID] = &cp
	return nil
}

func (m *mockOrderRepository) GetByID(_ context.Context, id string) (*domain.Order, error) {
	m.m.Lock()
	defer m.m.Unlock()
	order, ok := m.orders[id]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}
	cp := *order
	return &cp, nil
}

func (m *mockOrderRepository) List(_ context.Context) ([]domain.Order, error) {
	m.m.Lock()
	defer m.m.Unlock()
	out := make([]domain.Order, 0, len(m.orders))
	for _, o := range m.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (m *mockOrderRepository) ListUnpublished(_ context.Context, limit int) ([]domain.Order, error) {
	m.m.Lock()
	defer m.m.Unlock()
	var out []domain.Order
	for _, o := range m.orders {
		if !o.EventPublished && len(out) < limit {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (m *mockOrderRepository) MarkPublished(_ context.Context, id string) error {
	m.m.Lock()
	defer m.m.Unlock()
	if o, ok := m.orders[id]; ok {
		o.EventPublished = true
	}
	return nil
}

var testCustomer = domain.CustomerDetails{
	FirstName: "Asha",
	LastName:  "Rao",
	Email:     "asha@example.com",
	Phone:     "+1 555 0101",
}

func newTestOrderService() (*OrderService, *mockOrderRepository, *mockCatalog) {
	repo := newMockOrderRepository()
	catalog := newMockCatalog()
	svc := NewOrderService(repo, catalog)
	return svc, repo, catalog
}

func TestCreateOrder_ComputesTotalFromCatalog(t *testing.T) {
	svc, repo, catalog := newTestOrderService()
	catalog.add("p1", "soap", 5)
	catalog.add("p2", "towel", 2)

	order, err := svc.CreateOrder(context.Background(), "u1", testCustomer, []domain.OrderItemInput{
		{ProductID: "p1", Quantity: 1},
		{ProductID: "p2", Quantity: 3},
	})
	require.NoError(t, err)

	assert.InDelta(t, 11.0, order.TotalAmount, 1e-9)
	require.Len(t, order.Items, 2)
	assert.Equal(t, "soap", order.Items[0].ProductName)
	assert.InDelta(t, 5.0, order.Items[0].UnitPrice, 1e-9)
	assert.Equal(t, domain.PaymentStatusPending, order.PaymentDetails.Status)
	assert.Equal(t, "u1", order.UserID)

	persisted, errGet := repo.GetByID(context.Background(), order.ID)
	require.NoError(t, errGet)
	assert.InDelta(t, 11.0, persisted.TotalAmount, 1e-9)
}

func TestCreateOrder_IgnoresClientPricing(t *testing.T) {
	svc, _, catalog := newTestOrderService()
	catalog.add("p1", "soap", 5)

	order, err := svc.CreateOrder(context.Background(), "u1", testCustomer,
		[]domain.OrderItemInput{{ProductID: "p1", Quantity: 2}})
	require.NoError(t, err)

	// Price snapshot comes from the catalog, nothing else.
	assert.InDelta(t, 10.0, order.TotalAmount, 1e-9)
}

func TestCreateOrder_EmptyItems(t *testing.T) {
	svc, repo, _ := newTestOrderService()

	_, err := svc.CreateOrder(context.Background(), "u1", testCustomer, nil)

	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Empty(t, repo.orders)
}

func TestCreateOrder_UnknownProductNamesOffender(t *testing.T) {
	svc, repo, catalog := newTestOrderService()
	catalog.add("p1", "soap", 5)

	_, err := svc.CreateOrder(context.Background(), "u1", testCustomer, []domain.OrderItemInput{
		{ProductID: "p1", Quantity: 1},
		{ProductID: "ghost", Quantity: 2},
	})

	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.True(t, strings.Contains(vErr.Message, "ghost"), "error should name the product: %v", vErr)
	assert.Empty(t, repo.orders, "nothing may persist when any item fails")
}

func TestCreateOrder_MissingCustomerDetails(t *testing.T) {
	svc, _, catalog := newTestOrderService()
	catalog.add("p1", "soap", 5)

	customer := testCustomer
	customer.Email = "not-an-address"

	_, err := svc.CreateOrder(context.Background(), "u1", customer,
		[]domain.OrderItemInput{{ProductID: "p1", Quantity: 1}})

	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "email", vErr.Field)
}

func TestGetOrder_OwnerAndAdminAccess(t *testing.T) {
	svc, _, catalog := newTestOrderService()
	catalog.add("p1", "soap", 5)

	order, err := svc.CreateOrder(context.Background(), "u1", testCustomer,
		[]domain.OrderItemInput{{ProductID: "p1", Quantity: 1}})
	require.NoError(t, err)

	owner := domain.Identity{UserID: "u1", Role: domain.RoleUser}
	view, err := svc.GetOrder(context.Background(), order.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, order.ID, view.ID)

	admin := domain.Identity{UserID: "someone-else", Role: domain.RoleAdmin}
	_, err = svc.GetOrder(context.Background(), order.ID, admin)
	assert.NoError(t, err)

	stranger := domain.Identity{UserID: "u2", Role: domain.RoleUser}
	_, err = svc.GetOrder(context.Background(), order.ID, stranger)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestGetOrder_NotFound(t *testing.T) {
	svc, _, _ := newTestOrderService()

	_, err := svc.GetOrder(context.Background(), "missing",
		domain.Identity{UserID: "u1", Role: domain.RoleUser})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListOrders_FlattenedProjection(t *testing.T) {
	svc, _, catalog := newTestOrderService()
	catalog.add("p1", "soap", 5)
	catalog.add("p2", "towel", 2)

	_, err := svc.CreateOrder(context.Background(), "u1", testCustomer, []domain.OrderItemInput{
		{ProductID: "p1", Quantity: 1},
		{ProductID: "p2", Quantity: 3},
	})
	require.NoError(t, err)

	summaries, err := svc.ListOrders(context.Background())
	require.NoError(t, err)
	require.Len(t, summaries, 1)

	row := summaries[0]
	assert.Equal(t, "Asha Rao", row.Customer)
	assert.Equal(t, string(domain.PaymentStatusPending), row.Payment)
	assert.InDelta(t, 11.0, row.Total, 1e-9)
	assert.Equal(t, 2, row.ItemCount)
	assert.Equal(t, string(domain.OrderStatusDelivered), row.Status)
	assert.NotEmpty(t, row.Date)
}
