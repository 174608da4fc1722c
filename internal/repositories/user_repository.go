package repositories

import (
	"errors"

	"github.com/seejoshsphotos/backend/internal/models"
	"github.com/seejoshsphotos/backend/pkg/apperrors"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user profile operations. The ID
// is the identity provider's UID, trusted as-is.
type UserRepository interface {
	EnsureUser(user *models.User) error
	GetUserByID(id string) (*models.User, error)
	UserExists(id string) (bool, error)
	UpdateUser(user *models.User) error
}

// PostgresUserRepository implements UserRepository for PostgreSQL.
type PostgresUserRepository struct {
	db *gorm.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository.
func NewPostgresUserRepository(db *gorm.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// EnsureUser creates the profile row on first sight of a UID; subsequent
// calls are no-ops.
func (r *PostgresUserRepository) EnsureUser(user *models.User) error {
	return r.db.Where(models.User{ID: user.ID}).FirstOrCreate(user).Error
}

// GetUserByID retrieves a user by ID from PostgreSQL.
func (r *PostgresUserRepository) GetUserByID(id string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("user", id)
		}
		return nil, err
	}
	return &user, nil
}

// UserExists reports whether a user with the given ID exists.
func (r *PostgresUserRepository) UserExists(id string) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// UpdateUser updates an existing user in PostgreSQL.
func (r *PostgresUserRepository) UpdateUser(user *models.User) error {
	return r.db.Save(user).Error
}
