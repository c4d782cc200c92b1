package domain

import "time"

// Announcement is a staff broadcast shown to all platform users.
// Unlike messages it has no single recipient; each user confirms reading
// individually through AnnouncementRead rows.
type Announcement struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Title     string    `gorm:"column:title;size:500;not null" json:"title"`
	Content   string    `gorm:"column:content;type:text;not null" json:"content"`
	CreatedBy int64     `gorm:"column:created_by;index;not null" json:"created_by"`
	CreatedAt time.Time `gorm:"column:created_at;index" json:"created_at"`

	Author *User `gorm:"foreignKey:CreatedBy" json:"-"`
}

func (Announcement) TableName() string {
	return "announcements"
}

// AnnouncementRead is a per-user read confirmation.
type AnnouncementRead struct {
	ID             int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	AnnouncementID int64     `gorm:"column:announcement_id;uniqueIndex:idx_announcement_user;not null" json:"announcement_id"`
	UserID         int64     `gorm:"column:user_id;uniqueIndex:idx_announcement_user;not null" json:"user_id"`
	ReadAt         time.Time `gorm:"column:read_at;not null" json:"read_at"`
}

func (AnnouncementRead) TableName() string {
	return "announcement_reads"
}

// CreateAnnouncementRequest is the staff broadcast payload.
type CreateAnnouncementRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

// AnnouncementResponse represents an announcement in API responses
type AnnouncementResponse struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	CreatedBy  int64     `json:"created_by"`
	AuthorName string    `json:"author_name,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	IsRead     bool      `json:"is_read"`
}

// ToResponse converts Announcement to AnnouncementResponse
func (a *Announcement) ToResponse(isRead bool) *AnnouncementResponse {
	resp := &AnnouncementResponse{
		ID:        a.ID,
		Title:     a.Title,
		Content:   a.Content,
		CreatedBy: a.CreatedBy,
		CreatedAt: a.CreatedAt,
		IsRead:    isRead,
	}
	if a.Author != nil {
		resp.AuthorName = a.Author.FullName()
	}
	return resp
}
