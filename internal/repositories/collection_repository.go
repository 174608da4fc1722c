package repositories

import (
	"context"
	"errors"

	"github.com/seejoshsphotos/backend/internal/models"
	"github.com/seejoshsphotos/backend/pkg/apperrors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CollectionRepository defines the interface for collection metadata.
// Collections are created and reordered outside this service, so the
// surface is read-only.
type CollectionRepository interface {
	GetCollectionByID(ctx context.Context, id string) (*models.Collection, error)
	CollectionExists(ctx context.Context, id string) (bool, error)
	ListCollections(ctx context.Context) ([]models.Collection, error)
}

// MongoCollectionRepository implements CollectionRepository for MongoDB.
type MongoCollectionRepository struct {
	collection *mongo.Collection
}

// NewMongoCollectionRepository creates a new MongoCollectionRepository.
func NewMongoCollectionRepository(db *mongo.Database) *MongoCollectionRepository {
	return &MongoCollectionRepository{collection: db.Collection("collections")}
}

// GetCollectionByID retrieves a collection by ID from MongoDB.
func (r *MongoCollectionRepository) GetCollectionByID(ctx context.Context, id string) (*models.Collection, error) {
	var col models.Collection
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&col)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("collection", id)
		}
		return nil, err
	}
	return &col, nil
}

// CollectionExists reports whether a collection with the given ID exists.
func (r *MongoCollectionRepository) CollectionExists(ctx context.Context, id string) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListCollections retrieves all collections ordered by display order.
func (r *MongoCollectionRepository) ListCollections(ctx context.Context) ([]models.Collection, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.D{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	collections := []models.Collection{}
	if err = cursor.All(ctx, &collections); err != nil {
		return nil, err
	}
	return collections, nil
}
