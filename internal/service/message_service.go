package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/uknf/communication-platform-backend/internal/common"
	"github.com/uknf/communication-platform-backend/internal/domain"
	"github.com/uknf/communication-platform-backend/internal/repository"
	"github.com/uknf/communication-platform-backend/pkg/cache"
	"github.com/uknf/communication-platform-backend/pkg/logger"
)

const (
	replyPrefix     = "Re: "
	defaultPageSize = 20
	maxPageSize     = 100
)

// MessageService business logic for user-to-user messages. Every operation
// takes the caller's identity as an explicit argument.
type MessageService interface {
	CreateMessage(senderID int64, req *domain.CreateMessageRequest) (*domain.MessageResponse, error)
	ReplyToMessage(parentMessageID, replierID int64, req *domain.ReplyMessageRequest) (*domain.MessageResponse, error)
	GetMessages(userID int64, q *domain.MessageListQuery) ([]*domain.MessageResponse, int64, error)
	GetMessageByID(messageID, userID int64) (*domain.MessageDetailResponse, error)
	MarkAsRead(messageID, recipientID int64) (bool, error)
	MarkMultipleAsRead(messageIDs []int64, recipientID int64) (int64, error)
	GetUnreadCount(userID int64) (int64, error)
	GetMessageStats(userID int64) (*domain.MessageStatsResponse, error)
	ExportMessages(userID int64) ([]*domain.MessageExportRow, error)
}

type messageService struct {
	repo       repository.MessageRepository
	userRepo   repository.UserRepository
	entityRepo repository.EntityRepository
	cache      cache.Service
}

// NewMessageService creates a new MessageService. cacheService may be nil.
func NewMessageService(
	repo repository.MessageRepository,
	userRepo repository.UserRepository,
	entityRepo repository.EntityRepository,
	cacheService cache.Service,
) MessageService {
	return &messageService{
		repo:       repo,
		userRepo:   userRepo,
		entityRepo: entityRepo,
		cache:      cacheService,
	}
}

// CreateMessage sends a new message. Priority defaults to Normal when absent.
func (s *messageService) CreateMessage(senderID int64, req *domain.CreateMessageRequest) (*domain.MessageResponse, error) {
	if strings.TrimSpace(req.Subject) == "" {
		return nil, fmt.Errorf("%w: subject is required", common.ErrValidation)
	}
	if strings.TrimSpace(req.Body) == "" {
		return nil, fmt.Errorf("%w: body is required", common.ErrValidation)
	}
	if req.RecipientID == senderID {
		return nil, fmt.Errorf("%w: cannot send a message to yourself", common.ErrValidation)
	}

	priority := req.Priority
	if priority == "" {
		priority = domain.PriorityNormal
	}
	if !priority.Valid() {
		return nil, fmt.Errorf("%w: unknown priority %q", common.ErrValidation, req.Priority)
	}

	exists, err := s.userRepo.ExistsByID(req.RecipientID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, common.ErrUserNotFound
	}

	msg := &domain.Message{
		Subject:         req.Subject,
		Body:            req.Body,
		SenderID:        senderID,
		RecipientID:     req.RecipientID,
		Priority:        priority,
		RelatedEntityID: req.RelatedEntityID,
		IsRead:          false,
		SentAt:          time.Now(),
	}

	if err := s.repo.Create(msg); err != nil {
		return nil, err
	}

	s.invalidateUnread(req.RecipientID)

	logger.GetLogger().Info().
		Int64("message_id", msg.ID).
		Int64("sender_id", senderID).
		Int64("recipient_id", msg.RecipientID).
		Str("priority", string(msg.Priority)).
		Msg("message created")

	return msg.ToResponse(), nil
}

// ReplyToMessage creates a reply to an existing message. The reply direction
// flips: the recipient is the replier's conversation partner. An empty
// priority inherits the parent's priority; a set priority overrides it.
func (s *messageService) ReplyToMessage(parentMessageID, replierID int64, req *domain.ReplyMessageRequest) (*domain.MessageResponse, error) {
	if strings.TrimSpace(req.Body) == "" {
		return nil, fmt.Errorf("%w: body is required", common.ErrValidation)
	}

	parent, err := s.repo.FindByID(parentMessageID)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, common.ErrMessageNotFound
		}
		return nil, err
	}
	// An invisible parent is treated as missing to avoid leaking existence.
	if parent.SenderID != replierID && parent.RecipientID != replierID {
		return nil, common.ErrMessageNotFound
	}

	priority := req.Priority
	if priority == "" {
		priority = parent.Priority
	}
	if !priority.Valid() {
		return nil, fmt.Errorf("%w: unknown priority %q", common.ErrValidation, req.Priority)
	}

	recipientID := parent.SenderID
	if replierID == parent.SenderID {
		recipientID = parent.RecipientID
	}

	parentID := parent.ID
	msg := &domain.Message{
		Subject:         replySubject(parent.Subject),
		Body:            req.Body,
		SenderID:        replierID,
		RecipientID:     recipientID,
		Priority:        priority,
		ParentMessageID: &parentID,
		RelatedEntityID: parent.RelatedEntityID,
		IsRead:          false,
		SentAt:          time.Now(),
	}

	if err := s.repo.Create(msg); err != nil {
		return nil, err
	}

	s.invalidateUnread(recipientID)

	logger.GetLogger().Info().
		Int64("message_id", msg.ID).
		Int64("parent_id", parent.ID).
		Int64("sender_id", replierID).
		Msg("reply created")

	return msg.ToResponse(), nil
}

// replySubject prefixes the parent subject with "Re: " without stacking the
// prefix when replying to a reply.
func replySubject(parentSubject string) string {
	if strings.HasPrefix(parentSubject, replyPrefix) {
		return parentSubject
	}
	return replyPrefix + parentSubject
}

// GetMessages returns messages visible to the user (inbox + sent), filtered,
// sorted and paged. Out-of-range paging values are clamped, never rejected.
func (s *messageService) GetMessages(userID int64, q *domain.MessageListQuery) ([]*domain.MessageResponse, int64, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 || q.PageSize > maxPageSize {
		q.PageSize = defaultPageSize
	}

	messages, total, err := s.repo.FindVisible(userID, q)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]*domain.MessageResponse, len(messages))
	for i, m := range messages {
		responses[i] = m.ToResponse()
	}
	return responses, total, nil
}

// GetMessageByID returns a single message with its replies
func (s *messageService) GetMessageByID(messageID, userID int64) (*domain.MessageDetailResponse, error) {
	msg, err := s.repo.FindByID(messageID)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, common.ErrMessageNotFound
		}
		return nil, err
	}
	if msg.SenderID != userID && msg.RecipientID != userID {
		return nil, common.ErrMessageNotFound
	}

	replies, err := s.repo.FindReplies(msg.ID)
	if err != nil {
		return nil, err
	}

	detail := &domain.MessageDetailResponse{
		MessageResponse: *msg.ToResponse(),
		ReplyCount:      len(replies),
		Replies:         make([]domain.MessageResponse, len(replies)),
	}
	for i, r := range replies {
		detail.Replies[i] = *r.ToResponse()
	}
	return detail, nil
}

// MarkAsRead transitions a message unread→read. Only the recipient may do
// this; anyone else gets not-found. Repeated calls are a silent success, and
// read_at is set exactly once (the row update is conditional on is_read).
func (s *messageService) MarkAsRead(messageID, recipientID int64) (bool, error) {
	msg, err := s.repo.FindByID(messageID)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return false, common.ErrMessageNotFound
		}
		return false, err
	}
	if msg.RecipientID != recipientID {
		return false, common.ErrMessageNotFound
	}
	if msg.IsRead {
		return true, nil
	}

	transitioned, err := s.repo.MarkAsRead(messageID, recipientID, time.Now())
	if err != nil {
		return false, err
	}

	s.invalidateUnread(recipientID)

	if transitioned {
		logger.GetLogger().Info().
			Int64("message_id", messageID).
			Int64("recipient_id", recipientID).
			Msg("message marked as read")
	}
	return true, nil
}

// MarkMultipleAsRead bulk-marks the recipient's unread messages, returning
// how many actually transitioned. IDs not owned by the recipient are skipped.
func (s *messageService) MarkMultipleAsRead(messageIDs []int64, recipientID int64) (int64, error) {
	if len(messageIDs) == 0 {
		return 0, fmt.Errorf("%w: message_ids is required", common.ErrValidation)
	}

	count, err := s.repo.MarkManyAsRead(messageIDs, recipientID, time.Now())
	if err != nil {
		return 0, err
	}

	if count > 0 {
		s.invalidateUnread(recipientID)
		logger.GetLogger().Info().
			Int64("count", count).
			Int64("recipient_id", recipientID).
			Msg("messages marked as read")
	}
	return count, nil
}

// GetUnreadCount returns the number of unread messages addressed to the user.
// Served from the Redis counter cache when available.
func (s *messageService) GetUnreadCount(userID int64) (int64, error) {
	ctx := context.Background()
	if s.cache != nil {
		if count, ok := s.cache.GetUnreadCount(ctx, userID); ok {
			return count, nil
		}
	}

	count, err := s.repo.CountUnread(userID)
	if err != nil {
		return 0, err
	}

	if s.cache != nil {
		_ = s.cache.SetUnreadCount(ctx, userID, count)
	}
	return count, nil
}

// GetMessageStats aggregates the user's mailbox counters
func (s *messageService) GetMessageStats(userID int64) (*domain.MessageStatsResponse, error) {
	inbox, err := s.repo.CountInbox(userID)
	if err != nil {
		return nil, err
	}
	sent, err := s.repo.CountSent(userID)
	if err != nil {
		return nil, err
	}
	unread, err := s.GetUnreadCount(userID)
	if err != nil {
		return nil, err
	}

	return &domain.MessageStatsResponse{
		TotalInbox:  inbox,
		TotalSent:   sent,
		UnreadCount: unread,
	}, nil
}

// ExportMessages returns every message visible to the user as flat export
// rows with the priority rendered as its Polish label.
func (s *messageService) ExportMessages(userID int64) ([]*domain.MessageExportRow, error) {
	messages, err := s.repo.FindAllVisible(userID)
	if err != nil {
		return nil, err
	}

	entityNames, err := s.resolveEntityNames(messages)
	if err != nil {
		return nil, err
	}

	rows := make([]*domain.MessageExportRow, len(messages))
	for i, m := range messages {
		row := &domain.MessageExportRow{
			ID:       m.ID,
			Subject:  m.Subject,
			Priority: m.Priority.PolishLabel(),
			IsRead:   m.IsRead,
			IsReply:  m.ParentMessageID != nil,
			SentAt:   m.SentAt,
			ReadAt:   m.ReadAt,
		}
		if m.Sender != nil {
			row.SenderName = m.Sender.FullName()
			row.SenderEmail = m.Sender.Email
		}
		if m.Recipient != nil {
			row.RecipientName = m.Recipient.FullName()
		}
		if m.RelatedEntityID != nil {
			row.EntityName = entityNames[*m.RelatedEntityID]
		}
		rows[i] = row
	}
	return rows, nil
}

func (s *messageService) resolveEntityNames(messages []*domain.Message) (map[int64]string, error) {
	seen := make(map[int64]struct{})
	var ids []int64
	for _, m := range messages {
		if m.RelatedEntityID == nil {
			continue
		}
		if _, ok := seen[*m.RelatedEntityID]; ok {
			continue
		}
		seen[*m.RelatedEntityID] = struct{}{}
		ids = append(ids, *m.RelatedEntityID)
	}
	return s.entityRepo.NamesByIDs(ids)
}

func (s *messageService) invalidateUnread(userID int64) {
	if s.cache == nil {
		return
	}
	_ = s.cache.InvalidateUnreadCount(context.Background(), userID)
}
