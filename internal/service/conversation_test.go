package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Harukino1/ReturnHub/internal/apperr"
	"github.com/Harukino1/ReturnHub/internal/models"
	"github.com/Harukino1/ReturnHub/internal/service"
)

func newConversationService(store *MockStorage) *service.ConversationService {
	return service.NewConversationService(store, service.NewNotificationService(store))
}

func stubConversationLookups(store *MockStorage) {
	store.On("GetUserByID", uint(7)).Return(&models.User{ID: 7, Name: "Ann"}, nil)
	store.On("GetStaffByID", uint(2)).Return(&models.Staff{ID: 2, Name: "Bob"}, nil)
	store.On("GetLastMessage", mock.Anything).Return(nil, nil)
	store.On("CountUnreadMessages", mock.Anything, mock.Anything).Return(int64(0), nil)
}

func TestConversationGetOrCreateReusesExisting(t *testing.T) {
	store := new(MockStorage)
	svc := newConversationService(store)

	existing := &models.Conversation{ID: 9, UserID: 7, StaffID: 2}
	store.On("GetConversationByPair", uint(7), uint(2)).Return(existing, nil)
	stubConversationLookups(store)

	resp, err := svc.GetOrCreate(7, 2)

	assert.NoError(t, err)
	assert.Equal(t, uint(9), resp.ConversationID)
	store.AssertNotCalled(t, "CreateConversation", mock.Anything)
}

func TestConversationGetOrCreateCreates(t *testing.T) {
	store := new(MockStorage)
	svc := newConversationService(store)

	store.On("GetConversationByPair", uint(7), uint(2)).Return(nil, nil)
	stubConversationLookups(store)
	store.On("CreateConversation", mock.AnythingOfType("*models.Conversation")).
		Run(func(args mock.Arguments) {
			args.Get(0).(*models.Conversation).ID = 9
		}).Return(nil)

	resp, err := svc.GetOrCreate(7, 2)

	assert.NoError(t, err)
	assert.Equal(t, uint(9), resp.ConversationID)
	assert.Equal(t, "Ann", resp.UserName)
	assert.Equal(t, "Bob", resp.StaffName)
	store.AssertExpectations(t)
}

func TestConversationAutoAssignPrefersNonAdmin(t *testing.T) {
	store := new(MockStorage)
	svc := newConversationService(store)

	store.On("ListStaff").Return([]models.Staff{
		{ID: 1, Role: models.RoleAdmin},
		{ID: 2, Role: models.RoleStaff, Name: "Bob"},
	}, nil)
	store.On("GetConversationByPair", uint(7), uint(2)).
		Return(&models.Conversation{ID: 9, UserID: 7, StaffID: 2}, nil)
	stubConversationLookups(store)

	resp, err := svc.GetOrCreateAuto(7)

	assert.NoError(t, err)
	assert.Equal(t, uint(2), resp.StaffID)
}

func TestConversationAutoAssignNoStaff(t *testing.T) {
	store := new(MockStorage)
	svc := newConversationService(store)

	store.On("ListStaff").Return([]models.Staff{}, nil)

	_, err := svc.GetOrCreateAuto(7)

	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestSendMessageFromUser(t *testing.T) {
	store := new(MockStorage)
	svc := newConversationService(store)

	conv := &models.Conversation{ID: 9, UserID: 7, StaffID: 2}
	store.On("GetConversationByID", uint(9)).Return(conv, nil)
	store.On("GetUserByID", uint(7)).Return(&models.User{ID: 7, Name: "Ann"}, nil)
	store.On("CreateMessage", mock.AnythingOfType("*models.Message")).
		Run(func(args mock.Arguments) {
			args.Get(0).(*models.Message).ID = 31
		}).Return(nil)

	var topics []string
	store.On("PublishEvent", mock.AnythingOfType("models.Event")).
		Run(func(args mock.Arguments) {
			topics = append(topics, args.Get(0).(models.Event).Topic)
		}).Return(nil)

	resp, err := svc.SendMessage(9, models.SenderTypeUser, 7, "  hello  ")

	assert.NoError(t, err)
	assert.Equal(t, uint(31), resp.MessageID)
	assert.Equal(t, "hello", resp.Content)
	assert.Equal(t, models.SenderTypeUser, resp.SenderType)
	// Staff get a push notification plus the message broadcast; no
	// notification row is persisted for them.
	assert.Contains(t, topics, "conversation/9")
	assert.Contains(t, topics, "staff/2")
	store.AssertNotCalled(t, "CreateNotification", mock.Anything)
}

func TestSendMessageFromStaffPersistsUserNotification(t *testing.T) {
	store := new(MockStorage)
	svc := newConversationService(store)

	conv := &models.Conversation{ID: 9, UserID: 7, StaffID: 2}
	store.On("GetConversationByID", uint(9)).Return(conv, nil)
	store.On("GetStaffByID", uint(2)).Return(&models.Staff{ID: 2, Name: "Bob"}, nil)
	store.On("GetUserByID", uint(7)).Return(&models.User{ID: 7, Name: "Ann"}, nil)
	store.On("CreateMessage", mock.Anything).Return(nil)
	store.On("CreateNotification", mock.AnythingOfType("*models.Notification")).
		Run(func(args mock.Arguments) {
			n := args.Get(0).(*models.Notification)
			assert.Equal(t, uint(7), n.UserID)
			assert.Equal(t, "New message from staff Bob", n.Message)
		}).Return(nil)
	store.On("PublishEvent", mock.Anything).Return(nil)

	_, err := svc.SendMessage(9, models.SenderTypeStaff, 2, "we found it")

	assert.NoError(t, err)
	store.AssertExpectations(t)
}

func TestSendMessageRejectsOutsiders(t *testing.T) {
	store := new(MockStorage)
	svc := newConversationService(store)

	conv := &models.Conversation{ID: 9, UserID: 7, StaffID: 2}
	store.On("GetConversationByID", uint(9)).Return(conv, nil)

	_, err := svc.SendMessage(9, models.SenderTypeUser, 8, "hi")

	assert.True(t, apperr.IsKind(err, apperr.KindUnauthorized))
	store.AssertNotCalled(t, "CreateMessage", mock.Anything)
}

func TestSendMessageEmptyContent(t *testing.T) {
	store := new(MockStorage)
	svc := newConversationService(store)

	conv := &models.Conversation{ID: 9, UserID: 7, StaffID: 2}
	store.On("GetConversationByID", uint(9)).Return(conv, nil)

	_, err := svc.SendMessage(9, models.SenderTypeUser, 7, "   ")

	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestMarkReadDirection(t *testing.T) {
	store := new(MockStorage)
	svc := newConversationService(store)

	conv := &models.Conversation{ID: 9, UserID: 7, StaffID: 2}
	store.On("GetConversationByID", uint(9)).Return(conv, nil)
	// The user reading clears staff-authored messages.
	store.On("MarkMessagesRead", uint(9), true).Return(nil)
	store.On("PublishEvent", mock.Anything).Return(nil)

	assert.NoError(t, svc.MarkRead(9, models.SenderTypeUser))
	store.AssertExpectations(t)
}

func TestUnreadCountDirection(t *testing.T) {
	store := new(MockStorage)
	svc := newConversationService(store)

	// Staff asking for unread counts user-authored messages.
	store.On("CountUnreadMessages", uint(9), false).Return(int64(3), nil)

	count, err := svc.UnreadCount(9, models.SenderTypeStaff)

	assert.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestDeleteMessageBlanksContent(t *testing.T) {
	store := new(MockStorage)
	svc := newConversationService(store)

	msg := &models.Message{ID: 31, Content: "secret"}
	store.On("GetMessageByID", uint(31)).Return(msg, nil)
	store.On("SaveMessage", msg).Return(nil)

	assert.NoError(t, svc.DeleteMessage(31))
	assert.Equal(t, service.DeletedMessagePlaceholder, msg.Content)
}
