// Package storage provides relational persistence (PostgreSQL via GORM) and
// the Redis pub/sub channel used for realtime fan-out. Lookups return
// (nil, nil) when the row does not exist; callers translate that into their
// own not-found failures.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Harukino1/ReturnHub/internal/models"
)

// EventChannelPrefix prefixes the Redis channel carrying a topic's events.
// The hub pattern-subscribes to EventChannelPrefix+"*".
const EventChannelPrefix = "rt:"

// Storage is the persistence surface consumed by the domain services and
// the realtime hub.
type Storage interface {
	// Users
	CreateUser(user *models.User) error
	GetUserByID(id uint) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	ListUsers() ([]models.User, error)
	SaveUser(user *models.User) error
	DeleteUser(id uint) error

	// Staff
	CreateStaff(staff *models.Staff) error
	GetStaffByID(id uint) (*models.Staff, error)
	GetStaffByEmailOrName(username string) (*models.Staff, error)
	ListStaff() ([]models.Staff, error)
	SaveStaff(staff *models.Staff) error
	DeleteStaff(id uint) error

	// Reports
	CreateReport(report *models.SubmittedReport) error
	GetReportByID(id uint) (*models.SubmittedReport, error)
	ListReports() ([]models.SubmittedReport, error)
	ListReportsByUser(userID uint, typeFilter string) ([]models.SubmittedReport, error)
	ListReportsByStatus(status string) ([]models.SubmittedReport, error)
	DeleteReport(id uint) error
	// TransitionReport applies updates only while the report is in one of
	// fromStatuses; it reports whether a row was actually updated. This is
	// the guard against concurrent reviews of the same report.
	TransitionReport(id uint, fromStatuses []string, updates map[string]any) (bool, error)

	// Items
	CreateLostItem(item *models.LostItem) error
	CreateFoundItem(item *models.FoundItem) error
	GetLostItemByID(id uint) (*models.LostItem, error)
	GetFoundItemByID(id uint) (*models.FoundItem, error)
	GetLostItemByReportID(reportID uint) (*models.LostItem, error)
	GetFoundItemByReportID(reportID uint) (*models.FoundItem, error)
	SaveLostItem(item *models.LostItem) error
	SaveFoundItem(item *models.FoundItem) error
	ListLostItemsByStatus(status string) ([]models.LostItem, error)
	ListFoundItemsByStatus(status string) ([]models.FoundItem, error)

	// Claims
	CreateClaim(claim *models.Claim) error
	GetClaimByID(id uint) (*models.Claim, error)
	ListClaims(statusFilter string) ([]models.Claim, error)
	ListClaimsByUser(userID uint) ([]models.Claim, error)
	ListClaimsByItem(itemID uint) ([]models.Claim, error)
	CountClaimsByStatus(status string) (int64, error)
	DeleteClaim(id uint) error
	// TransitionClaim mirrors TransitionReport for the claim lifecycle.
	TransitionClaim(id uint, fromStatus string, updates map[string]any) (bool, error)

	// Conversations
	CreateConversation(conv *models.Conversation) error
	GetConversationByID(id uint) (*models.Conversation, error)
	GetConversationByPair(userID, staffID uint) (*models.Conversation, error)
	ListConversationsByUser(userID uint) ([]models.Conversation, error)
	ListConversationsByStaff(staffID uint) ([]models.Conversation, error)

	// Messages
	CreateMessage(msg *models.Message) error
	GetMessageByID(id uint) (*models.Message, error)
	SaveMessage(msg *models.Message) error
	ListMessagesByConversation(conversationID uint) ([]models.Message, error)
	ListRecentMessages(conversationID uint, limit int) ([]models.Message, error)
	GetLastMessage(conversationID uint) (*models.Message, error)
	MarkMessagesRead(conversationID uint, fromStaff bool) error
	CountUnreadMessages(conversationID uint, fromStaff bool) (int64, error)

	// Notifications
	CreateNotification(n *models.Notification) error
	GetNotificationByID(id uint) (*models.Notification, error)
	SaveNotification(n *models.Notification) error
	ListNotificationsByUser(userID uint) ([]models.Notification, error)
	ListRecentNotificationsByUser(userID uint, limit int) ([]models.Notification, error)
	CountUnreadNotifications(userID uint) (int64, error)
	MarkAllNotificationsRead(userID uint) error
	DeleteNotification(id uint) error
	ClearNotifications(userID uint) error

	// Realtime
	PublishEvent(event models.Event) error
}

// Service implements Storage on top of GORM and Redis.
type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
	Ctx   context.Context
}

// NewService constructs the storage service.
func NewService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{
		DB:    db,
		Redis: rdb,
		Ctx:   context.Background(),
	}
}

// notFoundAsNil collapses gorm.ErrRecordNotFound into a nil result.
func notFoundAsNil(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return err
}

// PublishEvent serializes the event and publishes it on the Redis channel
// named after its topic. Subscribed hub instances deliver it to their
// local sockets.
func (s *Service) PublishEvent(event models.Event) error {
	if event.Timestamp == 0 {
		event.Timestamp = time.Now().UnixMilli()
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	if err := s.Redis.Publish(s.Ctx, EventChannelPrefix+event.Topic, payload).Err(); err != nil {
		zap.S().Errorw("failed to publish realtime event", "topic", event.Topic, "err", err)
		return err
	}
	return nil
}

// SubscribeEvents pattern-subscribes to every realtime topic channel.
func (s *Service) SubscribeEvents() *redis.PubSub {
	return s.Redis.PSubscribe(s.Ctx, EventChannelPrefix+"*")
}
