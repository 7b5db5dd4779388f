package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nvoss/storefront/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// addItemRetries bounds the race window between the bump attempt and the
// guarded push in AddItem. Exhaustion means a concurrent mutator won every
// round and the caller should see a conflict.
const addItemRetries = 3

type mongoCartRepository struct {
	collection *mongo.Collection
}

func NewMongoCartRepository(db *mongo.Database) CartRepository {
	return &mongoCartRepository{
		collection: db.Collection("carts"),
	}
}

func (m *mongoCartRepository) GetCart(ctx context.Context, userID string) (*domain.Cart, error) {
	var cart domain.Cart

	filter := bson.M{"user_id": userID}
	err := m.collection.FindOne(ctx, filter).Decode(&cart)

	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCartNotFound
		}
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	return &cart, nil
}

func (m *mongoCartRepository) AddItem(ctx context.Context, userID, productID string, quantity int, unitPrice float64) error {
	subtotal := unitPrice * float64(quantity)

	for attempt := 0; attempt < addItemRetries; attempt++ {
		now := time.Now()

		// Bump the existing line in place. A single conditional update, so a
		// concurrent bump of the same line cannot be lost.
		res, err := m.collection.UpdateOne(ctx,
			bson.M{"user_id": userID, "items.product_id": productID},
			bson.M{
				"$inc": bson.M{"items.$.quantity": quantity, "items.$.subtotal": subtotal},
				"$set": bson.M{"updated_at": now},
			})
		if err != nil {
			return fmt.Errorf("failed to bump cart item: %w", err)
		}
		if res.MatchedCount > 0 {
			return nil
		}

		// No such line yet. Append it, creating the cart when missing. The
		// $ne guard refuses to push if a concurrent add already inserted the
		// line; the unique user_id index refuses a double upsert.
		item := domain.LineItem{ProductID: productID, Quantity: quantity, Subtotal: subtotal}
		res, err = m.collection.UpdateOne(ctx,
			bson.M{"user_id": userID, "items.product_id": bson.M{"$ne": productID}},
			bson.M{
				"$push":        bson.M{"items": item},
				"$set":         bson.M{"updated_at": now},
				"$setOnInsert": bson.M{"created_at": now},
			},
			options.Update().SetUpsert(true))
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				continue // lost the upsert race, the cart exists now
			}
			return fmt.Errorf("failed to push cart item: %w", err)
		}
		if res.MatchedCount > 0 || res.UpsertedCount > 0 {
			return nil
		}
		// Matched nothing: a concurrent add inserted the line between the
		// two updates. Retry from the bump.
	}

	return fmt.Errorf("add item retries exhausted: %w", domain.ErrConflict)
}

func (m *mongoCartRepository) IncreaseQuantity(ctx context.Context, userID, productID string, unitPrice float64) error {
	res, err := m.collection.UpdateOne(ctx,
		bson.M{"user_id": userID, "items.product_id": productID},
		bson.M{
			"$inc": bson.M{"items.$.quantity": 1, "items.$.subtotal": unitPrice},
			"$set": bson.M{"updated_at": time.Now()},
		})
	if err != nil {
		return fmt.Errorf("failed to increase quantity: %w", err)
	}
	if res.MatchedCount > 0 {
		return nil
	}

	return m.missingCartOrItem(ctx, userID)
}

func (m *mongoCartRepository) DecreaseQuantity(ctx context.Context, userID, productID string, unitPrice float64) error {
	now := time.Now()

	// Decrement only lines with quantity above 1 so a persisted quantity can
	// never reach 0.
	res, err := m.collection.UpdateOne(ctx,
		bson.M{"user_id": userID, "items": bson.M{"$elemMatch": bson.M{
			"product_id": productID,
			"quantity":   bson.M{"$gt": 1},
		}}},
		bson.M{
			"$inc": bson.M{"items.$.quantity": -1, "items.$.subtotal": -unitPrice},
			"$set": bson.M{"updated_at": now},
		})
	if err != nil {
		return fmt.Errorf("failed to decrease quantity: %w", err)
	}
	if res.MatchedCount > 0 {
		return nil
	}

	// Quantity is 1 (or the line is gone): pull the line entirely.
	res, err = m.collection.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{
			"$pull": bson.M{"items": bson.M{"product_id": productID, "quantity": bson.M{"$lte": 1}}},
			"$set":  bson.M{"updated_at": now},
		})
	if err != nil {
		return fmt.Errorf("failed to remove depleted item: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrCartNotFound
	}
	if res.ModifiedCount == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (m *mongoCartRepository) RemoveItem(ctx context.Context, userID, productID string) error {
	res, err := m.collection.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{
			"$pull": bson.M{"items": bson.M{"product_id": productID}},
			"$set":  bson.M{"updated_at": time.Now()},
		})
	if err != nil {
		return fmt.Errorf("failed to remove item: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrCartNotFound
	}
	// A pull that matched the cart but modified nothing means the line was
	// already absent, which is a success.
	return nil
}

func (m *mongoCartRepository) DeleteCart(ctx context.Context, userID string) error {
	res, err := m.collection.DeleteOne(ctx, bson.M{"user_id": userID})
	if err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrCartNotFound
	}
	return nil
}

// missingCartOrItem tells a caller whose conditional update matched nothing
// whether the whole cart is absent or just the line.
func (m *mongoCartRepository) missingCartOrItem(ctx context.Context, userID string) error {
	err := m.collection.FindOne(ctx, bson.M{"user_id": userID},
		options.FindOne().SetProjection(bson.M{"_id": 1})).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrCartNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to check cart existence: %w", err)
	}
	return ErrItemNotFound
}

func (m *mongoCartRepository) CreateIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := m.collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("failed to create cart indexes: %w", err)
	}

	return nil
}
