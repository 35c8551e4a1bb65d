package service_test

import (
	"github.com/stretchr/testify/mock"

	"github.com/Harukino1/ReturnHub/internal/models"
)

// MockStorage implements storage.Storage for the service tests.
type MockStorage struct {
	mock.Mock
}

// Users

func (m *MockStorage) CreateUser(user *models.User) error {
	return m.Called(user).Error(0)
}

func (m *MockStorage) GetUserByID(id uint) (*models.User, error) {
	args := m.Called(id)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *MockStorage) GetUserByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *MockStorage) ListUsers() ([]models.User, error) {
	args := m.Called()
	users, _ := args.Get(0).([]models.User)
	return users, args.Error(1)
}

func (m *MockStorage) SaveUser(user *models.User) error {
	return m.Called(user).Error(0)
}

func (m *MockStorage) DeleteUser(id uint) error {
	return m.Called(id).Error(0)
}

// Staff

func (m *MockStorage) CreateStaff(staff *models.Staff) error {
	return m.Called(staff).Error(0)
}

func (m *MockStorage) GetStaffByID(id uint) (*models.Staff, error) {
	args := m.Called(id)
	staff, _ := args.Get(0).(*models.Staff)
	return staff, args.Error(1)
}

func (m *MockStorage) GetStaffByEmailOrName(username string) (*models.Staff, error) {
	args := m.Called(username)
	staff, _ := args.Get(0).(*models.Staff)
	return staff, args.Error(1)
}

func (m *MockStorage) ListStaff() ([]models.Staff, error) {
	args := m.Called()
	staff, _ := args.Get(0).([]models.Staff)
	return staff, args.Error(1)
}

func (m *MockStorage) SaveStaff(staff *models.Staff) error {
	return m.Called(staff).Error(0)
}

func (m *MockStorage) DeleteStaff(id uint) error {
	return m.Called(id).Error(0)
}

// Reports

func (m *MockStorage) CreateReport(report *models.SubmittedReport) error {
	return m.Called(report).Error(0)
}

func (m *MockStorage) GetReportByID(id uint) (*models.SubmittedReport, error) {
	args := m.Called(id)
	report, _ := args.Get(0).(*models.SubmittedReport)
	return report, args.Error(1)
}

func (m *MockStorage) ListReports() ([]models.SubmittedReport, error) {
	args := m.Called()
	reports, _ := args.Get(0).([]models.SubmittedReport)
	return reports, args.Error(1)
}

func (m *MockStorage) ListReportsByUser(userID uint, typeFilter string) ([]models.SubmittedReport, error) {
	args := m.Called(userID, typeFilter)
	reports, _ := args.Get(0).([]models.SubmittedReport)
	return reports, args.Error(1)
}

func (m *MockStorage) ListReportsByStatus(status string) ([]models.SubmittedReport, error) {
	args := m.Called(status)
	reports, _ := args.Get(0).([]models.SubmittedReport)
	return reports, args.Error(1)
}

func (m *MockStorage) DeleteReport(id uint) error {
	return m.Called(id).Error(0)
}

func (m *MockStorage) TransitionReport(id uint, fromStatuses []string, updates map[string]any) (bool, error) {
	args := m.Called(id, fromStatuses, updates)
	return args.Bool(0), args.Error(1)
}

// Items

func (m *MockStorage) CreateLostItem(item *models.LostItem) error {
	return m.Called(item).Error(0)
}

func (m *MockStorage) CreateFoundItem(item *models.FoundItem) error {
	return m.Called(item).Error(0)
}

func (m *MockStorage) GetLostItemByID(id uint) (*models.LostItem, error) {
	args := m.Called(id)
	item, _ := args.Get(0).(*models.LostItem)
	return item, args.Error(1)
}

func (m *MockStorage) GetFoundItemByID(id uint) (*models.FoundItem, error) {
	args := m.Called(id)
	item, _ := args.Get(0).(*models.FoundItem)
	return item, args.Error(1)
}

func (m *MockStorage) GetLostItemByReportID(reportID uint) (*models.LostItem, error) {
	args := m.Called(reportID)
	item, _ := args.Get(0).(*models.LostItem)
	return item, args.Error(1)
}

func (m *MockStorage) GetFoundItemByReportID(reportID uint) (*models.FoundItem, error) {
	args := m.Called(reportID)
	item, _ := args.Get(0).(*models.FoundItem)
	return item, args.Error(1)
}

func (m *MockStorage) SaveLostItem(item *models.LostItem) error {
	return m.Called(item).Error(0)
}

func (m *MockStorage) SaveFoundItem(item *models.FoundItem) error {
	return m.Called(item).Error(0)
}

func (m *MockStorage) ListLostItemsByStatus(status string) ([]models.LostItem, error) {
	args := m.Called(status)
	items, _ := args.Get(0).([]models.LostItem)
	return items, args.Error(1)
}

func (m *MockStorage) ListFoundItemsByStatus(status string) ([]models.FoundItem, error) {
	args := m.Called(status)
	items, _ := args.Get(0).([]models.FoundItem)
	return items, args.Error(1)
}

// Claims

func (m *MockStorage) CreateClaim(claim *models.Claim) error {
	return m.Called(claim).Error(0)
}

func (m *MockStorage) GetClaimByID(id uint) (*models.Claim, error) {
	args := m.Called(id)
	claim, _ := args.Get(0).(*models.Claim)
	return claim, args.Error(1)
}

func (m *MockStorage) ListClaims(statusFilter string) ([]models.Claim, error) {
	args := m.Called(statusFilter)
	claims, _ := args.Get(0).([]models.Claim)
	return claims, args.Error(1)
}

func (m *MockStorage) ListClaimsByUser(userID uint) ([]models.Claim, error) {
	args := m.Called(userID)
	claims, _ := args.Get(0).([]models.Claim)
	return claims, args.Error(1)
}

func (m *MockStorage) ListClaimsByItem(itemID uint) ([]models.Claim, error) {
	args := m.Called(itemID)
	claims, _ := args.Get(0).([]models.Claim)
	return claims, args.Error(1)
}

func (m *MockStorage) CountClaimsByStatus(status string) (int64, error) {
	args := m.Called(status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStorage) DeleteClaim(id uint) error {
	return m.Called(id).Error(0)
}

func (m *MockStorage) TransitionClaim(id uint, fromStatus string, updates map[string]any) (bool, error) {
	args := m.Called(id, fromStatus, updates)
	return args.Bool(0), args.Error(1)
}

// Conversations

func (m *MockStorage) CreateConversation(conv *models.Conversation) error {
	return m.Called(conv).Error(0)
}

func (m *MockStorage) GetConversationByID(id uint) (*models.Conversation, error) {
	args := m.Called(id)
	conv, _ := args.Get(0).(*models.Conversation)
	return conv, args.Error(1)
}

func (m *MockStorage) GetConversationByPair(userID, staffID uint) (*models.Conversation, error) {
	args := m.Called(userID, staffID)
	conv, _ := args.Get(0).(*models.Conversation)
	return conv, args.Error(1)
}

func (m *MockStorage) ListConversationsByUser(userID uint) ([]models.Conversation, error) {
	args := m.Called(userID)
	convs, _ := args.Get(0).([]models.Conversation)
	return convs, args.Error(1)
}

func (m *MockStorage) ListConversationsByStaff(staffID uint) ([]models.Conversation, error) {
	args := m.Called(staffID)
	convs, _ := args.Get(0).([]models.Conversation)
	return convs, args.Error(1)
}

// Messages

func (m *MockStorage) CreateMessage(msg *models.Message) error {
	return m.Called(msg).Error(0)
}

func (m *MockStorage) GetMessageByID(id uint) (*models.Message, error) {
	args := m.Called(id)
	msg, _ := args.Get(0).(*models.Message)
	return msg, args.Error(1)
}

func (m *MockStorage) SaveMessage(msg *models.Message) error {
	return m.Called(msg).Error(0)
}

func (m *MockStorage) ListMessagesByConversation(conversationID uint) ([]models.Message, error) {
	args := m.Called(conversationID)
	msgs, _ := args.Get(0).([]models.Message)
	return msgs, args.Error(1)
}

func (m *MockStorage) ListRecentMessages(conversationID uint, limit int) ([]models.Message, error) {
	args := m.Called(conversationID, limit)
	msgs, _ := args.Get(0).([]models.Message)
	return msgs, args.Error(1)
}

func (m *MockStorage) GetLastMessage(conversationID uint) (*models.Message, error) {
	args := m.Called(conversationID)
	msg, _ := args.Get(0).(*models.Message)
	return msg, args.Error(1)
}

func (m *MockStorage) MarkMessagesRead(conversationID uint, fromStaff bool) error {
	return m.Called(conversationID, fromStaff).Error(0)
}

func (m *MockStorage) CountUnreadMessages(conversationID uint, fromStaff bool) (int64, error) {
	args := m.Called(conversationID, fromStaff)
	return args.Get(0).(int64), args.Error(1)
}

// Notifications

func (m *MockStorage) CreateNotification(n *models.Notification) error {
	return m.Called(n).Error(0)
}

func (m *MockStorage) GetNotificationByID(id uint) (*models.Notification, error) {
	args := m.Called(id)
	n, _ := args.Get(0).(*models.Notification)
	return n, args.Error(1)
}

func (m *MockStorage) SaveNotification(n *models.Notification) error {
	return m.Called(n).Error(0)
}

func (m *MockStorage) ListNotificationsByUser(userID uint) ([]models.Notification, error) {
	args := m.Called(userID)
	list, _ := args.Get(0).([]models.Notification)
	return list, args.Error(1)
}

func (m *MockStorage) ListRecentNotificationsByUser(userID uint, limit int) ([]models.Notification, error) {
	args := m.Called(userID, limit)
	list, _ := args.Get(0).([]models.Notification)
	return list, args.Error(1)
}

func (m *MockStorage) CountUnreadNotifications(userID uint) (int64, error) {
	args := m.Called(userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStorage) MarkAllNotificationsRead(userID uint) error {
	return m.Called(userID).Error(0)
}

func (m *MockStorage) DeleteNotification(id uint) error {
	return m.Called(id).Error(0)
}

func (m *MockStorage) ClearNotifications(userID uint) error {
	return m.Called(userID).Error(0)
}

// Realtime

func (m *MockStorage) PublishEvent(event models.Event) error {
	return m.Called(event).Error(0)
}
