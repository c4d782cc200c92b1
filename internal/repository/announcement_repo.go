package repository

import (
	"time"

	"github.com/uknf/communication-platform-backend/internal/domain"
	"gorm.io/gorm"
)

// AnnouncementRepository announcement data access interface
type AnnouncementRepository interface {
	Create(a *domain.Announcement) error
	FindByID(id int64) (*domain.Announcement, error)
	FindAll(page, pageSize int) ([]*domain.Announcement, int64, error)
	HasRead(announcementID, userID int64) (bool, error)
	ReadIDsForUser(userID int64, announcementIDs []int64) (map[int64]bool, error)
	CreateRead(announcementID, userID int64, readAt time.Time) error
}

type announcementRepository struct {
	db *gorm.DB
}

// NewAnnouncementRepository creates a new AnnouncementRepository
func NewAnnouncementRepository(db *gorm.DB) AnnouncementRepository {
	return &announcementRepository{db: db}
}

// Create persists a new announcement
func (r *announcementRepository) Create(a *domain.Announcement) error {
	return r.db.Create(a).Error
}

// FindByID finds an announcement by ID with its author preloaded
func (r *announcementRepository) FindByID(id int64) (*domain.Announcement, error) {
	var a domain.Announcement
	err := r.db.Preload("Author").Where("id = ?", id).First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// FindAll returns announcements newest first
func (r *announcementRepository) FindAll(page, pageSize int) ([]*domain.Announcement, int64, error) {
	var total int64
	if err := r.db.Model(&domain.Announcement{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var announcements []*domain.Announcement
	offset := (page - 1) * pageSize
	err := r.db.Preload("Author").
		Order("created_at DESC, id DESC").
		Offset(offset).Limit(pageSize).
		Find(&announcements).Error
	return announcements, total, err
}

// HasRead reports whether the user already confirmed the announcement
func (r *announcementRepository) HasRead(announcementID, userID int64) (bool, error) {
	var count int64
	err := r.db.Model(&domain.AnnouncementRead{}).
		Where("announcement_id = ? AND user_id = ?", announcementID, userID).
		Count(&count).Error
	return count > 0, err
}

// ReadIDsForUser returns which of the given announcements the user has confirmed
func (r *announcementRepository) ReadIDsForUser(userID int64, announcementIDs []int64) (map[int64]bool, error) {
	read := make(map[int64]bool, len(announcementIDs))
	if len(announcementIDs) == 0 {
		return read, nil
	}

	var rows []domain.AnnouncementRead
	err := r.db.Select("announcement_id").
		Where("user_id = ? AND announcement_id IN ?", userID, announcementIDs).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		read[row.AnnouncementID] = true
	}
	return read, nil
}

// CreateRead records a read confirmation. The unique (announcement, user)
// index rejects duplicates.
func (r *announcementRepository) CreateRead(announcementID, userID int64, readAt time.Time) error {
	return r.db.Create(&domain.AnnouncementRead{
		AnnouncementID: announcementID,
		UserID:         userID,
		ReadAt:         readAt,
	}).Error
}
