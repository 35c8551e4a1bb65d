// Package service holds the domain logic between the HTTP handlers and the
// storage layer: report and claim lifecycles, conversations, notifications
// and account management. Services return apperr values for expected
// failures and plain errors for infrastructure ones.
package service

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Harukino1/ReturnHub/internal/apperr"
	"github.com/Harukino1/ReturnHub/internal/models"
	"github.com/Harukino1/ReturnHub/internal/storage"
)

// Notification push types.
const (
	notifTypeReport  = "REPORT"
	notifTypeClaim   = "CLAIM"
	notifTypeMessage = "MESSAGE"
)

// NotificationService persists user notifications and pushes them to the
// recipient's private realtime queue. The push is best-effort; a failed
// broadcast is logged and never propagated to the caller's operation.
type NotificationService struct {
	store storage.Storage
}

func NewNotificationService(store storage.Storage) *NotificationService {
	return &NotificationService{store: store}
}

// NotifyReportStatus tells a submitter their report was approved, rejected
// or published.
func (s *NotificationService) NotifyReportStatus(userID uint, reportType, status string, reportID uint, staffName string) error {
	msg := fmt.Sprintf("Your %s report has been %s by staff %s",
		strings.ToLower(reportType), strings.ToLower(status), staffName)
	return s.createForUser(userID, msg, notifTypeReport, reportID, strings.ToLower(reportType))
}

// NotifyClaimStatus tells a claimant their claim was decided.
func (s *NotificationService) NotifyClaimStatus(userID uint, itemType, status string, claimID uint, staffName string) error {
	msg := fmt.Sprintf("Your claim for %s item has been %s by staff %s",
		strings.ToLower(itemType), strings.ToLower(status), staffName)
	return s.createForUser(userID, msg, notifTypeClaim, claimID, strings.ToLower(itemType))
}

// NotifyNewMessage alerts the other conversation party. User recipients get
// a persisted row plus a push; staff recipients get the push only, since
// notification rows belong to users.
func (s *NotificationService) NotifyNewMessage(recipientType string, recipientID, conversationID uint, senderName string) error {
	if recipientType == models.SenderTypeStaff {
		msg := fmt.Sprintf("New message from %s", senderName)
		s.push(models.StaffTopic(recipientID), models.NotificationPush{
			Message:     msg,
			Type:        notifTypeMessage,
			RelatedID:   conversationID,
			RelatedType: "conversation",
			CreatedAt:   time.Now().Format(time.RFC3339),
		})
		return nil
	}
	msg := fmt.Sprintf("New message from staff %s", senderName)
	return s.createForUser(recipientID, msg, notifTypeMessage, conversationID, "conversation")
}

func (s *NotificationService) createForUser(userID uint, message, pushType string, relatedID uint, relatedType string) error {
	user, err := s.store.GetUserByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return apperr.NotFound("user %d not found", userID)
	}
	n := &models.Notification{
		UserID:    userID,
		Message:   message,
		CreatedAt: time.Now(),
	}
	if err := s.store.CreateNotification(n); err != nil {
		return err
	}
	s.push(models.UserTopic(userID), models.NotificationPush{
		NotificationID: n.ID,
		Message:        n.Message,
		Type:           pushType,
		RelatedID:      relatedID,
		RelatedType:    relatedType,
		CreatedAt:      n.CreatedAt.Format(time.RFC3339),
		IsRead:         n.IsRead,
	})
	return nil
}

func (s *NotificationService) push(topic string, payload models.NotificationPush) {
	err := s.store.PublishEvent(models.Event{
		Topic:   topic,
		Type:    models.EventTypeNotification,
		Payload: payload,
	})
	if err != nil {
		zap.S().Warnw("notification push failed", "topic", topic, "err", err)
	}
}

// ListForUser returns the user's notifications, newest first.
func (s *NotificationService) ListForUser(userID uint) ([]models.Notification, error) {
	return s.store.ListNotificationsByUser(userID)
}

// ListRecentForUser returns at most limit notifications, newest first.
func (s *NotificationService) ListRecentForUser(userID uint, limit int) ([]models.Notification, error) {
	return s.store.ListRecentNotificationsByUser(userID, limit)
}

func (s *NotificationService) UnreadCount(userID uint) (int64, error) {
	return s.store.CountUnreadNotifications(userID)
}

// MarkRead flags one notification read. Only the owning user may do so.
func (s *NotificationService) MarkRead(notificationID, userID uint) error {
	n, err := s.store.GetNotificationByID(notificationID)
	if err != nil {
		return err
	}
	if n == nil {
		return apperr.NotFound("notification %d not found", notificationID)
	}
	if n.UserID != userID {
		return apperr.Unauthorized("notification %d does not belong to user %d", notificationID, userID)
	}
	if n.IsRead {
		return nil
	}
	n.IsRead = true
	return s.store.SaveNotification(n)
}

func (s *NotificationService) MarkAllRead(userID uint) error {
	return s.store.MarkAllNotificationsRead(userID)
}

// Delete removes one notification after an ownership check.
func (s *NotificationService) Delete(notificationID, userID uint) error {
	n, err := s.store.GetNotificationByID(notificationID)
	if err != nil {
		return err
	}
	if n == nil {
		return apperr.NotFound("notification %d not found", notificationID)
	}
	if n.UserID != userID {
		return apperr.Unauthorized("notification %d does not belong to user %d", notificationID, userID)
	}
	return s.store.DeleteNotification(notificationID)
}

// Clear removes every notification the user owns.
func (s *NotificationService) Clear(userID uint) error {
	return s.store.ClearNotifications(userID)
}
