package domain

import "time"

type OrderStatus string

const (
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusShipped    OrderStatus = "Shipped"
	OrderStatusDelivered  OrderStatus = "Delivered"
	OrderStatusCancelled  OrderStatus = "Cancelled"
)

type PaymentMethod string

const (
	PaymentMethodCreditCard     PaymentMethod = "Credit Card"
	PaymentMethodCashOnDelivery PaymentMethod = "Cash on Delivery"
	PaymentMethodPayPal         PaymentMethod = "PayPal"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "Pending"
	PaymentStatusCompleted PaymentStatus = "Completed"
	PaymentStatusFailed    PaymentStatus = "Failed"
	PaymentStatusRefunded  PaymentStatus = "Refunded"
)

// CustomerDetails is captured verbatim from the order request, not derived
// from the user record.
type CustomerDetails struct {
	FirstName string `bson:"first_name" json:"first_name"`
	LastName  string `bson:"last_name" json:"last_name"`
	Email     string `bson:"email" json:"email"`
	Phone     string `bson:"phone" json:"phone"`
}

type PaymentDetails struct {
	Method PaymentMethod `bson:"method" json:"method"`
	Status PaymentStatus `bson:"status" json:"status"`
}

// OrderItem snapshots product name and unit price at order creation, so later
// catalog edits never alter a historical order.
type OrderItem struct {
	ProductID   string  `bson:"product_id" json:"product_id"`
	ProductName string  `bson:"product_name" json:"product_name"`
	Quantity    int     `bson:"quantity" json:"quantity"`
	UnitPrice   float64 `bson:"unit_price" json:"unit_price"`
}

func (i OrderItem) LineTotal() float64 {
	return i.UnitPrice * float64(i.Quantity)
}

// Order is immutable once created. No operation mutates it; status
// transitions belong to surrounding admin tooling.
type Order struct {
	ID              string          `bson:"_id" json:"id"`
	UserID          string          `bson:"user_id" json:"user_id"`
	CustomerDetails CustomerDetails `bson:"customer_details" json:"customer_details"`
	Items           []OrderItem     `bson:"item_details" json:"item_details"`
	TotalAmount     float64         `bson:"total_amount" json:"total_amount"`
	PaymentDetails  PaymentDetails  `bson:"payment_details" json:"payment_details"`
	Status          OrderStatus     `bson:"order_status" json:"order_status"`
	EventPublished  bool            `bson:"event_published" json:"-"`
	CreatedAt       time.Time       `bson:"created_at" json:"created_at"`
}

// OrderItemInput is a client-supplied (product, quantity) pair. Prices are
// never accepted from the client.
type OrderItemInput struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// OrderSummary is the flattened listing row consumed by the interactive list
// and by the CSV/Excel/PDF exporters. Field names are a stable contract.
type OrderSummary struct {
	OrderID   string  `json:"OrderID"`
	Date      string  `json:"Date"`
	Customer  string  `json:"Customer"`
	Payment   string  `json:"Payment"`
	Total     float64 `json:"Total"`
	ItemCount int     `json:"ItemCount"`
	Status    string  `json:"Status"`
}

// Summary flattens an order into its listing row.
func (o *Order) Summary() OrderSummary {
	return OrderSummary{
		OrderID:   o.ID,
		Date:      o.CreatedAt.Format("02 January 2006"),
		Customer:  o.CustomerDetails.FirstName + " " + o.CustomerDetails.LastName,
		Payment:   string(o.PaymentDetails.Status),
		Total:     o.TotalAmount,
		ItemCount: len(o.Items),
		Status:    string(o.Status),
	}
}

// OrderView is the denormalized single-order shape returned by GetOrder.
type OrderView struct {
	ID          string          `json:"id"`
	Customer    CustomerDetails `json:"customer"`
	Items       []OrderLineView `json:"items"`
	TotalAmount float64         `json:"total_amount"`
	OrderDate   time.Time       `json:"order_date"`
	Status      OrderStatus     `json:"status"`
}

type OrderLineView struct {
	Product  string  `json:"product"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Total    float64 `json:"total"`
}

// View denormalizes an order for presentation.
func (o *Order) View() OrderView {
	items := make([]OrderLineView, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderLineView{
			Product:  it.ProductName,
			Price:    it.UnitPrice,
			Quantity: it.Quantity,
			Total:    it.LineTotal(),
		})
	}
	return OrderView{
		ID:          o.ID,
		Customer:    o.CustomerDetails,
		Items:       items,
		TotalAmount: o.TotalAmount,
		OrderDate:   o.CreatedAt,
		Status:      o.Status,
	}
}
