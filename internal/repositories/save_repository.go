package repositories

import (
	"github.com/seejoshsphotos/backend/internal/models"
	"gorm.io/gorm"
)

// SaveRepository defines the interface for save (bookmark) ledger records.
type SaveRepository interface {
	CreateSave(record *models.SaveRecord) error
	DeleteSave(userID, photoID string) (bool, error)
	HasSaved(userID, photoID string) (bool, error)
	CountSavesByPhoto(photoID string) (int64, error)
	GetSavedIDs(userID string, photoIDs []string) (map[string]bool, error)
}

// PostgresSaveRepository implements SaveRepository for PostgreSQL.
type PostgresSaveRepository struct {
	db *gorm.DB
}

// NewPostgresSaveRepository creates a new PostgresSaveRepository.
func NewPostgresSaveRepository(db *gorm.DB) *PostgresSaveRepository {
	return &PostgresSaveRepository{db: db}
}

// CreateSave creates a new save record in PostgreSQL.
func (r *PostgresSaveRepository) CreateSave(record *models.SaveRecord) error {
	return r.db.Create(record).Error
}

// DeleteSave removes the record for a (user, photo) pair. Returns whether a
// row was actually deleted.
func (r *PostgresSaveRepository) DeleteSave(userID, photoID string) (bool, error) {
	res := r.db.Where("user_id = ? AND photo_id = ?", userID, photoID).Delete(&models.SaveRecord{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// HasSaved reports whether the user has saved the photo.
func (r *PostgresSaveRepository) HasSaved(userID, photoID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.SaveRecord{}).Where("user_id = ? AND photo_id = ?", userID, photoID).Count(&count).Error
	return count > 0, err
}

// CountSavesByPhoto returns the true membership cardinality for a photo.
func (r *PostgresSaveRepository) CountSavesByPhoto(photoID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.SaveRecord{}).Where("photo_id = ?", photoID).Count(&count).Error
	return count, err
}

// GetSavedIDs returns which of the given photo IDs the user has saved.
func (r *PostgresSaveRepository) GetSavedIDs(userID string, photoIDs []string) (map[string]bool, error) {
	result := make(map[string]bool)
	if len(photoIDs) == 0 {
		return result, nil
	}
	var records []models.SaveRecord
	err := r.db.Where("user_id = ? AND photo_id IN ?", userID, photoIDs).Find(&records).Error
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		result[rec.PhotoID] = true
	}
	return result, nil
}
