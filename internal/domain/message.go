package domain

import "time"

// Message represents a directed communication between one sender and one recipient,
// optionally part of a reply chain via ParentMessageID.
type Message struct {
	ID              int64           `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Subject         string          `gorm:"column:subject;size:500;not null" json:"subject"`
	Body            string          `gorm:"column:body;type:text;not null" json:"body"`
	SenderID        int64           `gorm:"column:sender_id;index;not null" json:"sender_id"`
	RecipientID     int64           `gorm:"column:recipient_id;index;not null" json:"recipient_id"`
	Priority        MessagePriority `gorm:"column:priority;size:10;not null;default:normal" json:"priority"`
	ParentMessageID *int64          `gorm:"column:parent_message_id;index" json:"parent_message_id,omitempty"`
	RelatedEntityID *int64          `gorm:"column:related_entity_id;index" json:"related_entity_id,omitempty"`
	IsRead          bool            `gorm:"column:is_read;not null;default:false" json:"is_read"`
	ReadAt          *time.Time      `gorm:"column:read_at" json:"read_at,omitempty"`
	SentAt          time.Time       `gorm:"column:sent_at;index" json:"sent_at"`

	Sender    *User `gorm:"foreignKey:SenderID" json:"-"`
	Recipient *User `gorm:"foreignKey:RecipientID" json:"-"`
}

func (Message) TableName() string {
	return "messages"
}

// CreateMessageRequest represents a send-message request
type CreateMessageRequest struct {
	Subject         string          `json:"subject" binding:"required"`
	Body            string          `json:"body" binding:"required"`
	RecipientID     int64           `json:"recipient_id" binding:"required"`
	Priority        MessagePriority `json:"priority,omitempty"`
	RelatedEntityID *int64          `json:"related_entity_id,omitempty"`
}

// ReplyMessageRequest represents a reply to an existing message.
// An empty Priority inherits the parent's priority.
type ReplyMessageRequest struct {
	Body     string          `json:"body" binding:"required"`
	Priority MessagePriority `json:"priority,omitempty"`
}

// MarkMultipleReadRequest is the bulk mark-as-read payload.
type MarkMultipleReadRequest struct {
	MessageIDs []int64 `json:"message_ids" binding:"required"`
}

// MessageListQuery carries the pagination, filter and sort parameters of a list request.
type MessageListQuery struct {
	Page       int
	PageSize   int
	IsRead     *bool
	Search     string
	SentAfter  *time.Time
	SentBefore *time.Time
	SortField  string
	SortDesc   bool
}

// MessageResponse represents a message in API responses
type MessageResponse struct {
	ID              int64           `json:"id"`
	Subject         string          `json:"subject"`
	Body            string          `json:"body"`
	SenderID        int64           `json:"sender_id"`
	SenderName      string          `json:"sender_name,omitempty"`
	RecipientID     int64           `json:"recipient_id"`
	RecipientName   string          `json:"recipient_name,omitempty"`
	Priority        MessagePriority `json:"priority"`
	ParentMessageID *int64          `json:"parent_message_id,omitempty"`
	RelatedEntityID *int64          `json:"related_entity_id,omitempty"`
	IsRead          bool            `json:"is_read"`
	SentAt          time.Time       `json:"sent_at"`
	ReadAt          *time.Time      `json:"read_at,omitempty"`
}

// MessageDetailResponse is a single message with its direct replies.
type MessageDetailResponse struct {
	MessageResponse
	ReplyCount int               `json:"reply_count"`
	Replies    []MessageResponse `json:"replies"`
}

// MessageStatsResponse aggregates a user's mailbox counters.
type MessageStatsResponse struct {
	TotalInbox  int64 `json:"total_inbox"`
	TotalSent   int64 `json:"total_sent"`
	UnreadCount int64 `json:"unread_count"`
}

// MessageExportRow is one flat row of the messages CSV export.
// Priority carries the localized Polish label, not the enum value.
type MessageExportRow struct {
	ID            int64      `json:"id"`
	Subject       string     `json:"subject"`
	SenderName    string     `json:"sender_name"`
	SenderEmail   string     `json:"sender_email"`
	RecipientName string     `json:"recipient_name"`
	Priority      string     `json:"priority"`
	IsRead        bool       `json:"is_read"`
	IsReply       bool       `json:"is_reply"`
	SentAt        time.Time  `json:"sent_at"`
	ReadAt        *time.Time `json:"read_at,omitempty"`
	EntityName    string     `json:"entity_name,omitempty"`
}

// ToResponse converts Message to MessageResponse
func (m *Message) ToResponse() *MessageResponse {
	resp := &MessageResponse{
		ID:              m.ID,
		Subject:         m.Subject,
		Body:            m.Body,
		SenderID:        m.SenderID,
		RecipientID:     m.RecipientID,
		Priority:        m.Priority,
		ParentMessageID: m.ParentMessageID,
		RelatedEntityID: m.RelatedEntityID,
		IsRead:          m.IsRead,
		SentAt:          m.SentAt,
		ReadAt:          m.ReadAt,
	}
	if m.Sender != nil {
		resp.SenderName = m.Sender.FullName()
	}
	if m.Recipient != nil {
		resp.RecipientName = m.Recipient.FullName()
	}
	return resp
}
