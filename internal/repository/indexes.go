package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
)

// EnsureIndexes creates every collection index at startup. Index creation is
// idempotent on the server side.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	carts := &mongoCartRepository{collection: db.Collection("carts")}
	if err := carts.CreateIndexes(ctx); err != nil {
		return err
	}

	orders := &mongoOrderRepository{collection: db.Collection("orders")}
	if err := orders.CreateIndexes(ctx); err != nil {
		return err
	}

	categories := &mongoCategoryRepository{collection: db.Collection("categories")}
	if err := categories.CreateIndexes(ctx); err != nil {
		return err
	}

	users := &mongoUserRepository{collection: db.Collection("users")}
	return users.CreateIndexes(ctx)
}
