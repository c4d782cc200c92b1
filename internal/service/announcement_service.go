package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/uknf/communication-platform-backend/internal/common"
	"github.com/uknf/communication-platform-backend/internal/domain"
	"github.com/uknf/communication-platform-backend/internal/repository"
	"github.com/uknf/communication-platform-backend/pkg/cache"
	"github.com/uknf/communication-platform-backend/pkg/logger"
)

// AnnouncementService business logic for staff broadcasts
type AnnouncementService interface {
	CreateAnnouncement(authorID int64, req *domain.CreateAnnouncementRequest) (*domain.AnnouncementResponse, error)
	GetAnnouncements(userID int64, page, pageSize int) ([]*domain.AnnouncementResponse, int64, error)
	GetAnnouncementByID(announcementID, userID int64) (*domain.AnnouncementResponse, error)
	ConfirmRead(announcementID, userID int64) error
}

type announcementService struct {
	repo     repository.AnnouncementRepository
	userRepo repository.UserRepository
	cache    cache.Service
}

// NewAnnouncementService creates a new AnnouncementService. cacheService may be nil.
func NewAnnouncementService(
	repo repository.AnnouncementRepository,
	userRepo repository.UserRepository,
	cacheService cache.Service,
) AnnouncementService {
	return &announcementService{
		repo:     repo,
		userRepo: userRepo,
		cache:    cacheService,
	}
}

// CreateAnnouncement publishes a broadcast. Only staff accounts may publish.
func (s *announcementService) CreateAnnouncement(authorID int64, req *domain.CreateAnnouncementRequest) (*domain.AnnouncementResponse, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", common.ErrValidation)
	}
	if strings.TrimSpace(req.Content) == "" {
		return nil, fmt.Errorf("%w: content is required", common.ErrValidation)
	}

	author, err := s.userRepo.FindByID(authorID)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, common.ErrUserNotFound
		}
		return nil, err
	}
	if !author.IsStaff() {
		return nil, common.ErrForbidden
	}

	a := &domain.Announcement{
		Title:     req.Title,
		Content:   req.Content,
		CreatedBy: authorID,
		CreatedAt: time.Now(),
	}
	if err := s.repo.Create(a); err != nil {
		return nil, err
	}
	a.Author = author

	if s.cache != nil {
		_ = s.cache.InvalidateAnnouncements(context.Background())
	}

	logger.GetLogger().Info().
		Int64("announcement_id", a.ID).
		Int64("author_id", authorID).
		Msg("announcement published")

	return a.ToResponse(false), nil
}

// announcementPage is the cached shape of one announcement list page,
// before per-user read flags are applied.
type announcementPage struct {
	Items []*domain.AnnouncementResponse `json:"items"`
	Total int64                          `json:"total"`
}

// GetAnnouncements returns announcements newest first with the caller's
// read flags. The page itself is cached; read flags are always fresh.
func (s *announcementService) GetAnnouncements(userID int64, page, pageSize int) ([]*domain.AnnouncementResponse, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > maxPageSize {
		pageSize = defaultPageSize
	}

	items, total, err := s.loadPage(page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	ids := make([]int64, len(items))
	for i, a := range items {
		ids[i] = a.ID
	}
	readSet, err := s.repo.ReadIDsForUser(userID, ids)
	if err != nil {
		return nil, 0, err
	}
	for _, a := range items {
		a.IsRead = readSet[a.ID]
	}
	return items, total, nil
}

func (s *announcementService) loadPage(page, pageSize int) ([]*domain.AnnouncementResponse, int64, error) {
	ctx := context.Background()
	if s.cache != nil {
		if raw, err := s.cache.GetAnnouncements(ctx, page, pageSize); err == nil {
			var cached announcementPage
			if json.Unmarshal(raw, &cached) == nil {
				return cached.Items, cached.Total, nil
			}
		}
	}

	announcements, total, err := s.repo.FindAll(page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	items := make([]*domain.AnnouncementResponse, len(announcements))
	for i, a := range announcements {
		items[i] = a.ToResponse(false)
	}

	if s.cache != nil {
		_ = s.cache.SetAnnouncements(ctx, page, pageSize, announcementPage{Items: items, Total: total})
	}
	return items, total, nil
}

// GetAnnouncementByID returns a single announcement with the caller's read flag
func (s *announcementService) GetAnnouncementByID(announcementID, userID int64) (*domain.AnnouncementResponse, error) {
	a, err := s.repo.FindByID(announcementID)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, common.ErrAnnouncementNotFound
		}
		return nil, err
	}

	isRead, err := s.repo.HasRead(announcementID, userID)
	if err != nil {
		return nil, err
	}
	return a.ToResponse(isRead), nil
}

// ConfirmRead records the user's read confirmation. Unlike message
// mark-as-read, a repeated confirmation is an error: the platform treats an
// already-confirmed announcement as not found.
func (s *announcementService) ConfirmRead(announcementID, userID int64) error {
	if _, err := s.repo.FindByID(announcementID); err != nil {
		if repository.IsRecordNotFound(err) {
			return common.ErrAnnouncementNotFound
		}
		return err
	}

	already, err := s.repo.HasRead(announcementID, userID)
	if err != nil {
		return err
	}
	if already {
		return common.ErrAnnouncementAlreadyRead
	}

	if err := s.repo.CreateRead(announcementID, userID, time.Now()); err != nil {
		return err
	}

	logger.GetLogger().Info().
		Int64("announcement_id", announcementID).
		Int64("user_id", userID).
		Msg("announcement read confirmed")
	return nil
}
