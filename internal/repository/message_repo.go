package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/uknf/communication-platform-backend/internal/domain"
	"gorm.io/gorm"
)

// MessageRepository message data access interface
type MessageRepository interface {
	Create(msg *domain.Message) error
	FindByID(id int64) (*domain.Message, error)
	FindReplies(parentID int64) ([]*domain.Message, error)
	FindVisible(userID int64, q *domain.MessageListQuery) ([]*domain.Message, int64, error)
	FindAllVisible(userID int64) ([]*domain.Message, error)
	MarkAsRead(id, recipientID int64, readAt time.Time) (bool, error)
	MarkManyAsRead(ids []int64, recipientID int64, readAt time.Time) (int64, error)
	CountUnread(userID int64) (int64, error)
	CountInbox(userID int64) (int64, error)
	CountSent(userID int64) (int64, error)
}

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new MessageRepository
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

// Create persists a new message
func (r *messageRepository) Create(msg *domain.Message) error {
	return r.db.Create(msg).Error
}

// FindByID finds a message by ID with sender/recipient preloaded
func (r *messageRepository) FindByID(id int64) (*domain.Message, error) {
	var msg domain.Message
	err := r.db.Preload("Sender").Preload("Recipient").
		Where("id = ?", id).First(&msg).Error
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// FindReplies returns the direct replies of a message, oldest first
func (r *messageRepository) FindReplies(parentID int64) ([]*domain.Message, error) {
	var replies []*domain.Message
	err := r.db.Preload("Sender").Preload("Recipient").
		Where("parent_message_id = ?", parentID).
		Order("sent_at ASC").
		Find(&replies).Error
	return replies, err
}

// visibleScope limits a query to messages the user may see (sender or recipient).
func visibleScope(userID int64) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("sender_id = ? OR recipient_id = ?", userID, userID)
	}
}

// Sortable columns, whitelisted to keep user input out of ORDER BY.
var messageSortColumns = map[string]string{
	"sentAt":  "sent_at",
	"subject": "subject",
	// priority sorts by urgency, not alphabetically
	"priority": "CASE priority WHEN 'high' THEN 3 WHEN 'normal' THEN 2 ELSE 1 END",
}

// FindVisible returns filtered, sorted, paged messages visible to the user,
// plus the total count before paging.
func (r *messageRepository) FindVisible(userID int64, q *domain.MessageListQuery) ([]*domain.Message, int64, error) {
	base := r.db.Model(&domain.Message{}).Scopes(visibleScope(userID))

	if q.IsRead != nil {
		base = base.Where("is_read = ?", *q.IsRead)
	}
	if term := strings.TrimSpace(q.Search); term != "" {
		pattern := "%" + strings.ToLower(term) + "%"
		base = base.Where("LOWER(subject) LIKE ? OR LOWER(body) LIKE ?", pattern, pattern)
	}
	if q.SentAfter != nil {
		base = base.Where("sent_at >= ?", *q.SentAfter)
	}
	if q.SentBefore != nil {
		base = base.Where("sent_at <= ?", *q.SentBefore)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	column, ok := messageSortColumns[q.SortField]
	if !ok {
		column = "sent_at"
		q.SortDesc = true
	}
	direction := "ASC"
	if q.SortDesc {
		direction = "DESC"
	}

	var messages []*domain.Message
	offset := (q.Page - 1) * q.PageSize
	err := base.Preload("Sender").Preload("Recipient").
		Order(column + " " + direction).
		Offset(offset).Limit(q.PageSize).
		Find(&messages).Error
	return messages, total, err
}

// FindAllVisible returns every message visible to the user, newest first (export path)
func (r *messageRepository) FindAllVisible(userID int64) ([]*domain.Message, error) {
	var messages []*domain.Message
	err := r.db.Preload("Sender").Preload("Recipient").
		Scopes(visibleScope(userID)).
		Order("sent_at DESC").
		Find(&messages).Error
	return messages, err
}

// MarkAsRead performs the unread→read transition as a single conditional row
// update. Concurrent calls converge: only the first matching update sets
// read_at, later calls match zero rows. Returns whether a transition happened.
func (r *messageRepository) MarkAsRead(id, recipientID int64, readAt time.Time) (bool, error) {
	result := r.db.Model(&domain.Message{}).
		Where("id = ? AND recipient_id = ? AND is_read = ?", id, recipientID, false).
		Updates(map[string]interface{}{"is_read": true, "read_at": readAt})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// MarkManyAsRead transitions every listed unread message owned by the recipient,
// returning how many rows actually changed.
func (r *messageRepository) MarkManyAsRead(ids []int64, recipientID int64, readAt time.Time) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.Model(&domain.Message{}).
		Where("id IN ? AND recipient_id = ? AND is_read = ?", ids, recipientID, false).
		Updates(map[string]interface{}{"is_read": true, "read_at": readAt})
	return result.RowsAffected, result.Error
}

// CountUnread counts unread messages where the user is the recipient
func (r *messageRepository) CountUnread(userID int64) (int64, error) {
	var count int64
	err := r.db.Model(&domain.Message{}).
		Where("recipient_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

// CountInbox counts messages received by the user
func (r *messageRepository) CountInbox(userID int64) (int64, error) {
	var count int64
	err := r.db.Model(&domain.Message{}).
		Where("recipient_id = ?", userID).
		Count(&count).Error
	return count, err
}

// CountSent counts messages sent by the user
func (r *messageRepository) CountSent(userID int64) (int64, error) {
	var count int64
	err := r.db.Model(&domain.Message{}).
		Where("sender_id = ?", userID).
		Count(&count).Error
	return count, err
}

// IsRecordNotFound reports whether err is the ORM's missing-row error.
func IsRecordNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
