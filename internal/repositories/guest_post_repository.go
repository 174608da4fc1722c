package repositories

import (
	"errors"

	"github.com/seejoshsphotos/backend/internal/models"
	"github.com/seejoshsphotos/backend/pkg/apperrors"
	"gorm.io/gorm"
)

// GuestPostRepository defines the interface for guest-book entries.
// Posts are append-only; the only update is the moderation transition.
type GuestPostRepository interface {
	CreateGuestPost(post *models.GuestPost) error
	GetGuestPostByID(id uint) (*models.GuestPost, error)
	ListModerated(limit int, collectionRef string) ([]models.GuestPost, error)
	MarkModerated(id uint) error
}

// PostgresGuestPostRepository implements GuestPostRepository for PostgreSQL.
type PostgresGuestPostRepository struct {
	db *gorm.DB
}

// NewPostgresGuestPostRepository creates a new PostgresGuestPostRepository.
func NewPostgresGuestPostRepository(db *gorm.DB) *PostgresGuestPostRepository {
	return &PostgresGuestPostRepository{db: db}
}

// CreateGuestPost creates a new guest-book post in PostgreSQL.
func (r *PostgresGuestPostRepository) CreateGuestPost(post *models.GuestPost) error {
	return r.db.Create(post).Error
}

// GetGuestPostByID retrieves a guest-book post by ID.
func (r *PostgresGuestPostRepository) GetGuestPostByID(id uint) (*models.GuestPost, error) {
	var post models.GuestPost
	if err := r.db.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}

// ListModerated retrieves approved posts ordered by creation time
// descending, optionally scoped to a collection.
func (r *PostgresGuestPostRepository) ListModerated(limit int, collectionRef string) ([]models.GuestPost, error) {
	query := r.db.Where("moderated = ?", true)
	if collectionRef != "" {
		query = query.Where("collection_ref = ?", collectionRef)
	}
	var posts []models.GuestPost
	err := query.Order("created_at DESC").Limit(limit).Find(&posts).Error
	return posts, err
}

// MarkModerated flips the moderation flag to approved. Safe to call on an
// already-approved post.
func (r *PostgresGuestPostRepository) MarkModerated(id uint) error {
	return r.db.Model(&models.GuestPost{}).Where("id = ?", id).Update("moderated", true).Error
}
