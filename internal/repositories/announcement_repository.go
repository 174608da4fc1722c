package repositories

import (
	"github.com/seejoshsphotos/backend/internal/models"
	"gorm.io/gorm"
)

// AnnouncementRepository defines the interface for site announcements.
type AnnouncementRepository interface {
	CreateAnnouncement(a *models.Announcement) error
	ListAnnouncements(limit int) ([]models.Announcement, error)
}

// PostgresAnnouncementRepository implements AnnouncementRepository for PostgreSQL.
type PostgresAnnouncementRepository struct {
	db *gorm.DB
}

// NewPostgresAnnouncementRepository creates a new PostgresAnnouncementRepository.
func NewPostgresAnnouncementRepository(db *gorm.DB) *PostgresAnnouncementRepository {
	return &PostgresAnnouncementRepository{db: db}
}

// CreateAnnouncement creates a new announcement in PostgreSQL.
func (r *PostgresAnnouncementRepository) CreateAnnouncement(a *models.Announcement) error {
	return r.db.Create(a).Error
}

// ListAnnouncements retrieves announcements, newest first.
func (r *PostgresAnnouncementRepository) ListAnnouncements(limit int) ([]models.Announcement, error) {
	var announcements []models.Announcement
	err := r.db.Order("created_at DESC").Limit(limit).Find(&announcements).Error
	return announcements, err
}
