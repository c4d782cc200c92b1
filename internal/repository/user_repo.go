package repository

import (
	"strings"

	"github.com/uknf/communication-platform-backend/internal/domain"
	"gorm.io/gorm"
)

// UserRepository user data access interface (read-side only; account
// management belongs to the identity service)
type UserRepository interface {
	FindByID(id int64) (*domain.User, error)
	ExistsByID(id int64) (bool, error)
	FindAll(page, pageSize int, search string) ([]*domain.User, int64, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// FindByID finds an active user by ID
func (r *userRepository) FindByID(id int64) (*domain.User, error) {
	var user domain.User
	err := r.db.Where("id = ? AND is_active = ?", id, true).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ExistsByID reports whether an active user with the given ID exists
func (r *userRepository) ExistsByID(id int64) (bool, error) {
	var count int64
	err := r.db.Model(&domain.User{}).
		Where("id = ? AND is_active = ?", id, true).
		Count(&count).Error
	return count > 0, err
}

// FindAll returns active users, optionally filtered by name/email substring
func (r *userRepository) FindAll(page, pageSize int, search string) ([]*domain.User, int64, error) {
	base := r.db.Model(&domain.User{}).Where("is_active = ?", true)

	if term := strings.TrimSpace(search); term != "" {
		pattern := "%" + strings.ToLower(term) + "%"
		base = base.Where(
			"LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(email) LIKE ?",
			pattern, pattern, pattern)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []*domain.User
	offset := (page - 1) * pageSize
	err := base.Order("last_name ASC, first_name ASC, id ASC").
		Offset(offset).Limit(pageSize).
		Find(&users).Error
	return users, total, err
}
