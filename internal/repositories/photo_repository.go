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

// PhotoRepository defines the interface for photo catalog operations.
// Counter mutations are relative increments applied atomically by the store,
// never absolute overwrites computed from a stale read; the only absolute
// write is SetEngagementCounts, reserved for the reconciliation repair.
type PhotoRepository interface {
	CreatePhoto(ctx context.Context, photo *models.Photo) error
	GetPhotoByID(ctx context.Context, id string) (*models.Photo, error)
	PhotoExists(ctx context.Context, id string) (bool, error)
	ListRecent(ctx context.Context, limit int64) ([]models.Photo, error)
	ListByCollection(ctx context.Context, collectionID string) ([]models.Photo, error)
	ListByTags(ctx context.Context, tags []string) ([]models.Photo, error)
	IncrementReactionCount(ctx context.Context, photoID string) error
	DecrementReactionCount(ctx context.Context, photoID string) (bool, error)
	IncrementSaveCount(ctx context.Context, photoID string) error
	DecrementSaveCount(ctx context.Context, photoID string) (bool, error)
	SetEngagementCounts(ctx context.Context, photoID string, reactionCount, saveCount int64) error
}

// MongoPhotoRepository implements PhotoRepository for MongoDB.
type MongoPhotoRepository struct {
	collection *mongo.Collection
}

// NewMongoPhotoRepository creates a new MongoPhotoRepository.
func NewMongoPhotoRepository(db *mongo.Database) *MongoPhotoRepository {
	return &MongoPhotoRepository{collection: db.Collection("photos")}
}

// CreatePhoto inserts a new photo into MongoDB.
func (r *MongoPhotoRepository) CreatePhoto(ctx context.Context, photo *models.Photo) error {
	_, err := r.collection.InsertOne(ctx, photo)
	return err
}

// GetPhotoByID retrieves a photo by ID from MongoDB.
func (r *MongoPhotoRepository) GetPhotoByID(ctx context.Context, id string) (*models.Photo, error) {
	var photo models.Photo
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&photo)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("photo", id)
		}
		return nil, err
	}
	return &photo, nil
}

// PhotoExists reports whether a photo with the given ID exists.
func (r *MongoPhotoRepository) PhotoExists(ctx context.Context, id string) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListRecent retrieves photos ordered by creation time descending, ties
// broken by ID so pagination stays deterministic.
func (r *MongoPhotoRepository) ListRecent(ctx context.Context, limit int64) ([]models.Photo, error) {
	findOptions := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(limit)
	return r.find(ctx, bson.D{}, findOptions)
}

// ListByCollection retrieves a collection's photos ordered by shot date descending.
func (r *MongoPhotoRepository) ListByCollection(ctx context.Context, collectionID string) ([]models.Photo, error) {
	findOptions := options.Find().
		SetSort(bson.D{{Key: "shot_date", Value: -1}, {Key: "_id", Value: -1}})
	return r.find(ctx, bson.D{{Key: "collection_id", Value: collectionID}}, findOptions)
}

// ListByTags retrieves photos whose tag set intersects tags, newest first.
// An empty tag list matches nothing.
func (r *MongoPhotoRepository) ListByTags(ctx context.Context, tags []string) ([]models.Photo, error) {
	if len(tags) == 0 {
		return []models.Photo{}, nil
	}
	findOptions := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	filter := bson.D{{Key: "tags", Value: bson.D{{Key: "$in", Value: tags}}}}
	return r.find(ctx, filter, findOptions)
}

func (r *MongoPhotoRepository) find(ctx context.Context, filter interface{}, opts *options.FindOptions) ([]models.Photo, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	photos := []models.Photo{}
	if err = cursor.All(ctx, &photos); err != nil {
		return nil, err
	}
	return photos, nil
}

// IncrementReactionCount atomically increments a photo's reaction counter.
func (r *MongoPhotoRepository) IncrementReactionCount(ctx context.Context, photoID string) error {
	return r.increment(ctx, photoID, "reaction_count", 1)
}

// DecrementReactionCount atomically decrements a photo's reaction counter,
// floored at zero. Returns false when the guard refused the decrement.
func (r *MongoPhotoRepository) DecrementReactionCount(ctx context.Context, photoID string) (bool, error) {
	return r.guardedDecrement(ctx, photoID, "reaction_count")
}

// IncrementSaveCount atomically increments a photo's save counter.
func (r *MongoPhotoRepository) IncrementSaveCount(ctx context.Context, photoID string) error {
	return r.increment(ctx, photoID, "save_count", 1)
}

// DecrementSaveCount atomically decrements a photo's save counter, floored
// at zero. Returns false when the guard refused the decrement.
func (r *MongoPhotoRepository) DecrementSaveCount(ctx context.Context, photoID string) (bool, error) {
	return r.guardedDecrement(ctx, photoID, "save_count")
}

func (r *MongoPhotoRepository) increment(ctx context.Context, photoID, field string, delta int) error {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": photoID},
		bson.M{"$inc": bson.M{field: delta}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperrors.NotFound("photo", photoID)
	}
	return nil
}

// guardedDecrement only applies when the counter is above zero, so racing
// decrements can never drive it negative.
func (r *MongoPhotoRepository) guardedDecrement(ctx context.Context, photoID, field string) (bool, error) {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": photoID, field: bson.M{"$gt": 0}},
		bson.M{"$inc": bson.M{field: -1}})
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}

// SetEngagementCounts overwrites both counters with values recomputed from
// the ledger. Only the reconciliation repair calls this.
func (r *MongoPhotoRepository) SetEngagementCounts(ctx context.Context, photoID string, reactionCount, saveCount int64) error {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": photoID},
		bson.M{"$set": bson.M{"reaction_count": reactionCount, "save_count": saveCount}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperrors.NotFound("photo", photoID)
	}
	return nil
}
