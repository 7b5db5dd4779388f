package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Cart holds a user's pending line items. One cart per user; the user_id
// field carries a unique index. An emptied cart is kept as an empty shell
// rather than deleted.
type Cart struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    string             `bson:"user_id" json:"user_id"`
	Items     []LineItem         `bson:"items" json:"items"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

// LineItem is one product entry in a cart. Quantity is always >= 1 in a
// persisted item; a decrement at quantity 1 removes the item instead.
// Subtotal accumulates quantity deltas priced at the catalog price in effect
// at each mutation, so a later catalog price change does not rewrite it.
type LineItem struct {
	ProductID string  `bson:"product_id" json:"product_id"`
	Quantity  int     `bson:"quantity" json:"quantity"`
	Subtotal  float64 `bson:"subtotal" json:"subtotal"`
}

// Item returns the line for productID, or nil.
func (c *Cart) Item(productID string) *LineItem {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return &c.Items[i]
		}
	}
	return nil
}

// CartView is the display shape of a cart: each line resolved against the
// catalog, plus a grand total.
type CartView struct {
	UserID string         `json:"user_id"`
	Items  []CartLineView `json:"items"`
	Total  float64        `json:"total"`
}

// CartLineView keeps the raw product reference next to the resolved product,
// which is nil when the catalog entry has been deleted since the line was
// added.
type CartLineView struct {
	ProductID string   `json:"product_id"`
	Product   *Product `json:"product,omitempty"`
	Quantity  int      `json:"quantity"`
	Subtotal  float64  `json:"subtotal"`
}
