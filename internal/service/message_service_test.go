package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/uknf/communication-platform-backend/internal/common"
	"github.com/uknf/communication-platform-backend/internal/domain"
	"gorm.io/gorm"
)

// --- Mock MessageRepository ---

type mockMessageRepo struct {
	mock.Mock
}

func (m *mockMessageRepo) Create(msg *domain.Message) error {
	return m.Called(msg).Error(0)
}

func (m *mockMessageRepo) FindByID(id int64) (*domain.Message, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Message), args.Error(1)
}

func (m *mockMessageRepo) FindReplies(parentID int64) ([]*domain.Message, error) {
	args := m.Called(parentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Message), args.Error(1)
}

func (m *mockMessageRepo) FindVisible(userID int64, q *domain.MessageListQuery) ([]*domain.Message, int64, error) {
	args := m.Called(userID, q)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*domain.Message), args.Get(1).(int64), args.Error(2)
}

func (m *mockMessageRepo) FindAllVisible(userID int64) ([]*domain.Message, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Message), args.Error(1)
}

func (m *mockMessageRepo) MarkAsRead(id, recipientID int64, readAt time.Time) (bool, error) {
	args := m.Called(id, recipientID, readAt)
	return args.Bool(0), args.Error(1)
}

func (m *mockMessageRepo) MarkManyAsRead(ids []int64, recipientID int64, readAt time.Time) (int64, error) {
	args := m.Called(ids, recipientID, readAt)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockMessageRepo) CountUnread(userID int64) (int64, error) {
	args := m.Called(userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockMessageRepo) CountInbox(userID int64) (int64, error) {
	args := m.Called(userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockMessageRepo) CountSent(userID int64) (int64, error) {
	args := m.Called(userID)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock UserRepository ---

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) FindByID(id int64) (*domain.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) ExistsByID(id int64) (bool, error) {
	args := m.Called(id)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepo) FindAll(page, pageSize int, search string) ([]*domain.User, int64, error) {
	args := m.Called(page, pageSize, search)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*domain.User), args.Get(1).(int64), args.Error(2)
}

// --- Mock EntityRepository ---

type mockEntityRepo struct {
	mock.Mock
}

func (m *mockEntityRepo) FindByID(id int64) (*domain.SupervisedEntity, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SupervisedEntity), args.Error(1)
}

func (m *mockEntityRepo) NamesByIDs(ids []int64) (map[int64]string, error) {
	args := m.Called(ids)
	return args.Get(0).(map[int64]string), args.Error(1)
}

func newTestService(repo *mockMessageRepo, users *mockUserRepo, entities *mockEntityRepo) MessageService {
	return NewMessageService(repo, users, entities, nil)
}

// --- CreateMessage ---

func TestCreateMessage_DefaultsToNormalPriority(t *testing.T) {
	repo := new(mockMessageRepo)
	users := new(mockUserRepo)
	svc := newTestService(repo, users, new(mockEntityRepo))

	users.On("ExistsByID", int64(2)).Return(true, nil)
	repo.On("Create", mock.MatchedBy(func(msg *domain.Message) bool {
		return msg.Priority == domain.PriorityNormal &&
			msg.ParentMessageID == nil &&
			!msg.IsRead &&
			msg.SenderID == 1 && msg.RecipientID == 2
	})).Return(nil)

	resp, err := svc.CreateMessage(1, &domain.CreateMessageRequest{
		Subject:     "Q1 Filing",
		Body:        "See attached",
		RecipientID: 2,
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.PriorityNormal, resp.Priority)
	repo.AssertExpectations(t)
}

func TestCreateMessage_EmptySubjectFails(t *testing.T) {
	svc := newTestService(new(mockMessageRepo), new(mockUserRepo), new(mockEntityRepo))

	_, err := svc.CreateMessage(1, &domain.CreateMessageRequest{
		Subject:     "   ",
		Body:        "body",
		RecipientID: 2,
	})

	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestCreateMessage_EmptyBodyFails(t *testing.T) {
	svc := newTestService(new(mockMessageRepo), new(mockUserRepo), new(mockEntityRepo))

	_, err := svc.CreateMessage(1, &domain.CreateMessageRequest{
		Subject:     "Subject",
		Body:        "",
		RecipientID: 2,
	})

	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestCreateMessage_SelfSendFails(t *testing.T) {
	svc := newTestService(new(mockMessageRepo), new(mockUserRepo), new(mockEntityRepo))

	_, err := svc.CreateMessage(1, &domain.CreateMessageRequest{
		Subject:     "Subject",
		Body:        "body",
		RecipientID: 1,
	})

	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestCreateMessage_UnknownRecipientFails(t *testing.T) {
	repo := new(mockMessageRepo)
	users := new(mockUserRepo)
	svc := newTestService(repo, users, new(mockEntityRepo))

	users.On("ExistsByID", int64(99)).Return(false, nil)

	_, err := svc.CreateMessage(1, &domain.CreateMessageRequest{
		Subject:     "Subject",
		Body:        "body",
		RecipientID: 99,
	})

	assert.ErrorIs(t, err, common.ErrUserNotFound)
	repo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCreateMessage_InvalidPriorityFails(t *testing.T) {
	svc := newTestService(new(mockMessageRepo), new(mockUserRepo), new(mockEntityRepo))

	_, err := svc.CreateMessage(1, &domain.CreateMessageRequest{
		Subject:     "Subject",
		Body:        "body",
		RecipientID: 2,
		Priority:    "urgent",
	})

	assert.ErrorIs(t, err, common.ErrValidation)
}

// --- ReplyToMessage ---

func parentMessage() *domain.Message {
	return &domain.Message{
		ID:          10,
		Subject:     "Q1 Filing",
		Body:        "See attached",
		SenderID:    1,
		RecipientID: 2,
		Priority:    domain.PriorityHigh,
		SentAt:      time.Now().Add(-time.Hour),
	}
}

func TestReplyToMessage_PrefixesSubjectOnce(t *testing.T) {
	repo := new(mockMessageRepo)
	svc := newTestService(repo, new(mockUserRepo), new(mockEntityRepo))

	repo.On("FindByID", int64(10)).Return(parentMessage(), nil)
	repo.On("Create", mock.MatchedBy(func(msg *domain.Message) bool {
		return msg.Subject == "Re: Q1 Filing"
	})).Return(nil)

	resp, err := svc.ReplyToMessage(10, 2, &domain.ReplyMessageRequest{Body: "Received"})

	assert.NoError(t, err)
	assert.Equal(t, "Re: Q1 Filing", resp.Subject)
}

func TestReplyToMessage_DoesNotStackPrefix(t *testing.T) {
	repo := new(mockMessageRepo)
	svc := newTestService(repo, new(mockUserRepo), new(mockEntityRepo))

	parent := parentMessage()
	parent.Subject = "Re: Q1 Filing"
	repo.On("FindByID", int64(10)).Return(parent, nil)
	repo.On("Create", mock.MatchedBy(func(msg *domain.Message) bool {
		return msg.Subject == "Re: Q1 Filing"
	})).Return(nil)

	resp, err := svc.ReplyToMessage(10, 2, &domain.ReplyMessageRequest{Body: "And again"})

	assert.NoError(t, err)
	assert.Equal(t, "Re: Q1 Filing", resp.Subject)
}

func TestReplyToMessage_InheritsParentPriority(t *testing.T) {
	repo := new(mockMessageRepo)
	svc := newTestService(repo, new(mockUserRepo), new(mockEntityRepo))

	repo.On("FindByID", int64(10)).Return(parentMessage(), nil)
	repo.On("Create", mock.Anything).Return(nil)

	resp, err := svc.ReplyToMessage(10, 2, &domain.ReplyMessageRequest{Body: "Received"})

	assert.NoError(t, err)
	assert.Equal(t, domain.PriorityHigh, resp.Priority)
}

func TestReplyToMessage_OverridesPriority(t *testing.T) {
	repo := new(mockMessageRepo)
	svc := newTestService(repo, new(mockUserRepo), new(mockEntityRepo))

	repo.On("FindByID", int64(10)).Return(parentMessage(), nil)
	repo.On("Create", mock.Anything).Return(nil)

	resp, err := svc.ReplyToMessage(10, 2, &domain.ReplyMessageRequest{
		Body:     "Received",
		Priority: domain.PriorityLow,
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.PriorityLow, resp.Priority)
}

func TestReplyToMessage_FlipsDirection(t *testing.T) {
	repo := new(mockMessageRepo)
	svc := newTestService(repo, new(mockUserRepo), new(mockEntityRepo))

	repo.On("FindByID", int64(10)).Return(parentMessage(), nil)
	repo.On("Create", mock.Anything).Return(nil)

	// The original recipient replies: the reply goes back to the original sender
	resp, err := svc.ReplyToMessage(10, 2, &domain.ReplyMessageRequest{Body: "Received"})

	assert.NoError(t, err)
	assert.Equal(t, int64(2), resp.SenderID)
	assert.Equal(t, int64(1), resp.RecipientID)
	assert.Equal(t, int64(10), *resp.ParentMessageID)
}

func TestReplyToMessage_SenderRepliesToOwnMessage(t *testing.T) {
	repo := new(mockMessageRepo)
	svc := newTestService(repo, new(mockUserRepo), new(mockEntityRepo))

	repo.On("FindByID", int64(10)).Return(parentMessage(), nil)
	repo.On("Create", mock.Anything).Return(nil)

	// The original sender follows up: the reply still goes to the partner
	resp, err := svc.ReplyToMessage(10, 1, &domain.ReplyMessageRequest{Body: "Forgot one thing"})

	assert.NoError(t, err)
	assert.Equal(t, int64(1), resp.SenderID)
	assert.Equal(t, int64(2), resp.RecipientID)
}

func TestReplyToMessage_MissingParentFails(t *testing.T) {
	repo := new(mockMessageRepo)
	svc := newTestService(repo, new(mockUserRepo), new(mockEntityRepo))

	repo.On("FindByID", int64(404)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.ReplyToMessage(404, 2, &domain.ReplyMessageRequest{Body: "Hello?"})

	assert.ErrorIs(t, err, common.ErrMessageNotFound)
}

func TestReplyToMessage_InvisibleParentFails(t *testing.T) {
	repo := new(mockMessageRepo)
	svc := newTestService(repo, new(mockUserRepo), new(mockEntityRepo))

	repo.On("FindByID", int64(10)).Return(parentMessage(), nil)

	// User 3 is neither sender nor recipient of the parent
	_, err := svc.ReplyToMessage(10, 3, &domain.ReplyMessageRequest{Body: "Let me in"})

	assert.ErrorIs(t, err, common.ErrMessageNotFound)
}

// --- GetMessages ---

func TestGetMessages_ClampsPagination(t *testing.T) {
	repo := new(mockMessageRepo)
	svc := newTestService(repo, new(mockUserRepo), new(mockEntityRepo))

	repo.On("FindVisible", int64(1), mock.MatchedBy(func(q *domain.MessageListQuery) bool {
		return q.Page == 1 && q.PageSize == 20
	})).Return([]*domain.Message{}, int64(0), nil)

	_, _, err := svc.GetMessages(1, &domain.MessageListQuery{Page: -3, PageSize: 500})

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

// --- MarkAsRead ---

func TestMarkAsRead_TransitionsUnread(t *testing.T) {
	repo := new(mockMessageRepo)
	svc := newTestService(repo, new(mockUserRepo), new(mockEntityRepo))

	msg := parentMessage()
	repo.On("FindByID", int64(10)).Return(msg, nil)
	repo.On("MarkAsRead", int64(10), int64(2), mock.Anything).Return(true, nil)

	ok, err := svc.MarkAsRead(10, 2)

	assert.NoError(t, err)
	assert.True(t, ok)
	repo.AssertExpectations(t)
}

func TestMarkAsRead_RepeatIsSilentSuccess(t *testing.T) {
	repo := new(mockMessageRepo)
	svc := newTestService(repo, new(mockUserRepo), new(mockEntityRepo))

	readAt := time.Now()
	msg := parentMessage()
	msg.IsRead = true
	msg.ReadAt = &readAt
	repo.On("FindByID", int64(10)).Return(msg, nil)

	ok, err := svc.MarkAsRead(10, 2)

	assert.NoError(t, err)
	assert.True(t, ok)
	repo.AssertNotCalled(t, "MarkAsRead", mock.Anything, mock.Anything, mock.Anything)
}

func TestMarkAsRead_SenderCannotMarkOthersMail(t *testing.T) {
	repo := new(mockMessageRepo)
	svc := newTestService(repo, new(mockUserRepo), new(mockEntityRepo))

	repo.On("FindByID", int64(10)).Return(parentMessage(), nil)

	// User 1 is the sender, not the recipient
	_, err := svc.MarkAsRead(10, 1)

	assert.ErrorIs(t, err, common.ErrMessageNotFound)
}

func TestMarkAsRead_MissingMessageFails(t *testing.T) {
	repo := new(mockMessageRepo)
	svc := newTestService(repo, new(mockUserRepo), new(mockEntityRepo))

	repo.On("FindByID", int64(404)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.MarkAsRead(404, 2)

	assert.ErrorIs(t, err, common.ErrMessageNotFound)
}

func TestMarkMultipleAsRead_EmptyListFails(t *testing.T) {
	svc := newTestService(new(mockMessageRepo), new(mockUserRepo), new(mockEntityRepo))

	_, err := svc.MarkMultipleAsRead(nil, 2)

	assert.ErrorIs(t, err, common.ErrValidation)
}

// --- Stats ---

func TestGetMessageStats_Aggregates(t *testing.T) {
	repo := new(mockMessageRepo)
	svc := newTestService(repo, new(mockUserRepo), new(mockEntityRepo))

	repo.On("CountInbox", int64(1)).Return(int64(7), nil)
	repo.On("CountSent", int64(1)).Return(int64(4), nil)
	repo.On("CountUnread", int64(1)).Return(int64(3), nil)

	stats, err := svc.GetMessageStats(1)

	assert.NoError(t, err)
	assert.Equal(t, int64(7), stats.TotalInbox)
	assert.Equal(t, int64(4), stats.TotalSent)
	assert.Equal(t, int64(3), stats.UnreadCount)
}

// --- Export ---

func TestExportMessages_LocalizesPriority(t *testing.T) {
	repo := new(mockMessageRepo)
	entities := new(mockEntityRepo)
	svc := newTestService(repo, new(mockUserRepo), entities)

	parentID := int64(1)
	messages := []*domain.Message{
		{ID: 1, Subject: "High", Priority: domain.PriorityHigh, SentAt: time.Now()},
		{ID: 2, Subject: "Normal", Priority: domain.PriorityNormal, SentAt: time.Now()},
		{ID: 3, Subject: "Low", Priority: domain.PriorityLow, SentAt: time.Now(), ParentMessageID: &parentID},
	}
	repo.On("FindAllVisible", int64(1)).Return(messages, nil)
	entities.On("NamesByIDs", mock.Anything).Return(map[int64]string{}, nil)

	rows, err := svc.ExportMessages(1)

	assert.NoError(t, err)
	assert.Len(t, rows, 3)
	assert.Equal(t, "Wysoki", rows[0].Priority)
	assert.Equal(t, "Normalny", rows[1].Priority)
	assert.Equal(t, "Niski", rows[2].Priority)
	assert.False(t, rows[0].IsReply)
	assert.True(t, rows[2].IsReply)
}

func TestExportMessages_ResolvesEntityNames(t *testing.T) {
	repo := new(mockMessageRepo)
	entities := new(mockEntityRepo)
	svc := newTestService(repo, new(mockUserRepo), entities)

	entityID := int64(5)
	messages := []*domain.Message{
		{ID: 1, Subject: "Filing", Priority: domain.PriorityNormal, RelatedEntityID: &entityID, SentAt: time.Now()},
	}
	repo.On("FindAllVisible", int64(1)).Return(messages, nil)
	entities.On("NamesByIDs", []int64{5}).Return(map[int64]string{5: "Bank Testowy S.A."}, nil)

	rows, err := svc.ExportMessages(1)

	assert.NoError(t, err)
	assert.Equal(t, "Bank Testowy S.A.", rows[0].EntityName)
}
