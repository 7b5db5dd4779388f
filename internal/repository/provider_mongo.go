package repository

import (
	"context"
	"fmt"

	"github.com/nvoss/storefront/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type mongoProviderRepository struct {
	collection *mongo.Collection
}

func NewMongoProviderRepository(db *mongo.Database) ProviderRepository {
	return &mongoProviderRepository{
		collection: db.Collection("service_providers"),
	}
}

func (m *mongoProviderRepository) List(ctx context.Context) ([]domain.ServiceProvider, error) {
	cursor, err := m.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list service providers: %w", err)
	}
	defer cursor.Close(ctx)

	var providers []domain.ServiceProvider
	if err := cursor.All(ctx, &providers); err != nil {
		return nil, fmt.Errorf("failed to decode service providers: %w", err)
	}

	return providers, nil
}
