package repositories

import (
	"errors"

	"github.com/seejoshsphotos/backend/internal/models"
	"gorm.io/gorm"
)

// ReactionRepository defines the interface for reaction ledger records.
type ReactionRepository interface {
	CreateReaction(record *models.ReactionRecord) error
	GetReaction(userID, photoID string) (*models.ReactionRecord, error)
	UpdateReactionKind(userID, photoID, kind string) error
	DeleteReaction(userID, photoID string) (bool, error)
	CountReactionsByPhoto(photoID string) (int64, error)
	GetKindsForPhotos(userID string, photoIDs []string) (map[string]string, error)
}

// PostgresReactionRepository implements ReactionRepository for PostgreSQL.
type PostgresReactionRepository struct {
	db *gorm.DB
}

// NewPostgresReactionRepository creates a new PostgresReactionRepository.
func NewPostgresReactionRepository(db *gorm.DB) *PostgresReactionRepository {
	return &PostgresReactionRepository{db: db}
}

// CreateReaction creates a new reaction record in PostgreSQL.
func (r *PostgresReactionRepository) CreateReaction(record *models.ReactionRecord) error {
	return r.db.Create(record).Error
}

// GetReaction retrieves the reaction record for a (user, photo) pair.
// Returns (nil, nil) when no record exists.
func (r *PostgresReactionRepository) GetReaction(userID, photoID string) (*models.ReactionRecord, error) {
	var record models.ReactionRecord
	err := r.db.Where("user_id = ? AND photo_id = ?", userID, photoID).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// UpdateReactionKind replaces the kind on an existing record in place.
func (r *PostgresReactionRepository) UpdateReactionKind(userID, photoID, kind string) error {
	return r.db.Model(&models.ReactionRecord{}).
		Where("user_id = ? AND photo_id = ?", userID, photoID).
		Update("kind", kind).Error
}

// DeleteReaction removes the record for a (user, photo) pair. Returns
// whether a row was actually deleted.
func (r *PostgresReactionRepository) DeleteReaction(userID, photoID string) (bool, error) {
	res := r.db.Where("user_id = ? AND photo_id = ?", userID, photoID).Delete(&models.ReactionRecord{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// CountReactionsByPhoto returns the true membership cardinality for a photo.
func (r *PostgresReactionRepository) CountReactionsByPhoto(photoID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.ReactionRecord{}).Where("photo_id = ?", photoID).Count(&count).Error
	return count, err
}

// GetKindsForPhotos returns the user's reaction kind per photo ID, for
// annotating a feed page in one query.
func (r *PostgresReactionRepository) GetKindsForPhotos(userID string, photoIDs []string) (map[string]string, error) {
	result := make(map[string]string)
	if len(photoIDs) == 0 {
		return result, nil
	}
	var records []models.ReactionRecord
	err := r.db.Where("user_id = ? AND photo_id IN ?", userID, photoIDs).Find(&records).Error
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		result[rec.PhotoID] = rec.Kind
	}
	return result, nil
}
