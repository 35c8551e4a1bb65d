package service

import (
	"strings"

	"go.uber.org/zap"

	"github.com/Harukino1/ReturnHub/internal/apperr"
	"github.com/Harukino1/ReturnHub/internal/models"
	"github.com/Harukino1/ReturnHub/internal/storage"
)

// DeletedMessagePlaceholder replaces the content of a soft-deleted message.
const DeletedMessagePlaceholder = "[Message deleted]"

// ConversationService manages user-staff conversations and their messages.
// Sending a message notifies the other party and broadcasts the message on
// the conversation's realtime topic; both side effects are best-effort.
type ConversationService struct {
	store         storage.Storage
	notifications *NotificationService
}

func NewConversationService(store storage.Storage, notifications *NotificationService) *ConversationService {
	return &ConversationService{store: store, notifications: notifications}
}

// GetOrCreate returns the existing conversation for the (user, staff) pair
// or creates one. Repeated calls for the same pair always land on the same
// conversation.
func (s *ConversationService) GetOrCreate(userID, staffID uint) (*ConversationResponse, error) {
	conv, err := s.store.GetConversationByPair(userID, staffID)
	if err != nil {
		return nil, err
	}
	if conv != nil {
		return s.toResponse(conv), nil
	}
	user, err := s.store.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("user %d not found", userID)
	}
	staff, err := s.store.GetStaffByID(staffID)
	if err != nil {
		return nil, err
	}
	if staff == nil {
		return nil, apperr.NotFound("staff %d not found", staffID)
	}
	conv = &models.Conversation{UserID: userID, StaffID: staffID}
	if err := s.store.CreateConversation(conv); err != nil {
		return nil, err
	}
	return s.toResponse(conv), nil
}

// GetOrCreateAuto opens a conversation for a user without a chosen staff
// member, assigning the first non-admin staff account (or the first staff
// account at all when only admins exist).
func (s *ConversationService) GetOrCreateAuto(userID uint) (*ConversationResponse, error) {
	staffList, err := s.store.ListStaff()
	if err != nil {
		return nil, err
	}
	if len(staffList) == 0 {
		return nil, apperr.NotFound("no staff available to open a conversation")
	}
	selected := staffList[0]
	for _, st := range staffList {
		if st.Role == models.RoleStaff {
			selected = st
			break
		}
	}
	return s.GetOrCreate(userID, selected.ID)
}

func (s *ConversationService) GetByID(conversationID uint) (*ConversationResponse, error) {
	conv, err := s.store.GetConversationByID(conversationID)
	if err != nil {
		return nil, err
	}
	if conv == nil {
		return nil, apperr.NotFound("conversation %d not found", conversationID)
	}
	return s.toResponse(conv), nil
}

func (s *ConversationService) ListForUser(userID uint) ([]ConversationResponse, error) {
	convs, err := s.store.ListConversationsByUser(userID)
	if err != nil {
		return nil, err
	}
	return s.toResponses(convs), nil
}

func (s *ConversationService) ListForStaff(staffID uint) ([]ConversationResponse, error) {
	convs, err := s.store.ListConversationsByStaff(staffID)
	if err != nil {
		return nil, err
	}
	return s.toResponses(convs), nil
}

// CanAccess reports whether the principal is a party to the conversation.
func (s *ConversationService) CanAccess(conversationID uint, senderType string, principalID uint) (bool, error) {
	conv, err := s.store.GetConversationByID(conversationID)
	if err != nil {
		return false, err
	}
	if conv == nil {
		return false, nil
	}
	if senderType == models.SenderTypeStaff {
		return conv.StaffID == principalID, nil
	}
	return conv.UserID == principalID, nil
}

// SendMessage appends a message, notifies the other party and broadcasts
// the message to the conversation topic and the recipient's private queue.
func (s *ConversationService) SendMessage(conversationID uint, senderType string, senderID uint, content string) (*MessageResponse, error) {
	conv, err := s.store.GetConversationByID(conversationID)
	if err != nil {
		return nil, err
	}
	if conv == nil {
		return nil, apperr.NotFound("conversation %d not found", conversationID)
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperr.Validation("message content cannot be empty")
	}

	msg := &models.Message{ConversationID: conv.ID, Content: content}
	var senderName string
	switch strings.ToUpper(senderType) {
	case models.SenderTypeUser:
		if conv.UserID != senderID {
			return nil, apperr.Unauthorized("user %d is not a party to conversation %d", senderID, conv.ID)
		}
		user, err := s.store.GetUserByID(senderID)
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, apperr.NotFound("user %d not found", senderID)
		}
		msg.SenderUserID = &user.ID
		senderName = user.Name
	case models.SenderTypeStaff:
		if conv.StaffID != senderID {
			return nil, apperr.Unauthorized("staff %d is not a party to conversation %d", senderID, conv.ID)
		}
		staff, err := s.store.GetStaffByID(senderID)
		if err != nil {
			return nil, err
		}
		if staff == nil {
			return nil, apperr.NotFound("staff %d not found", senderID)
		}
		msg.SenderStaffID = &staff.ID
		senderName = staff.Name
	default:
		return nil, apperr.Validation("sender type must be %q or %q", models.SenderTypeUser, models.SenderTypeStaff)
	}

	if err := s.store.CreateMessage(msg); err != nil {
		return nil, err
	}

	recipientType, recipientID := models.SenderTypeStaff, conv.StaffID
	if msg.SenderType() == models.SenderTypeStaff {
		recipientType, recipientID = models.SenderTypeUser, conv.UserID
	}
	if err := s.notifications.NotifyNewMessage(recipientType, recipientID, conv.ID, senderName); err != nil {
		zap.S().Warnw("new message notification failed", "conversation", conv.ID, "err", err)
	}

	resp := s.toMessageResponse(msg)
	s.broadcast(models.ConversationTopic(conv.ID), resp)
	s.broadcast(models.PrincipalTopic(recipientType, recipientID), resp)
	return resp, nil
}

func (s *ConversationService) broadcast(topic string, payload *MessageResponse) {
	err := s.store.PublishEvent(models.Event{
		Topic:   topic,
		Type:    models.EventTypeMessage,
		Payload: payload,
	})
	if err != nil {
		zap.S().Warnw("message broadcast failed", "topic", topic, "err", err)
	}
}

// Messages returns the full history, oldest first.
func (s *ConversationService) Messages(conversationID uint) ([]MessageResponse, error) {
	conv, err := s.store.GetConversationByID(conversationID)
	if err != nil {
		return nil, err
	}
	if conv == nil {
		return nil, apperr.NotFound("conversation %d not found", conversationID)
	}
	msgs, err := s.store.ListMessagesByConversation(conversationID)
	if err != nil {
		return nil, err
	}
	return s.toMessageResponses(msgs), nil
}

// RecentMessages returns the newest limit messages in chronological order.
func (s *ConversationService) RecentMessages(conversationID uint, limit int) ([]MessageResponse, error) {
	msgs, err := s.store.ListRecentMessages(conversationID, limit)
	if err != nil {
		return nil, err
	}
	// storage hands them back newest-first
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	return s.toMessageResponses(msgs), nil
}

// MarkRead flags every unread message authored by the opposite party. A
// user reading marks staff-authored messages and vice versa.
func (s *ConversationService) MarkRead(conversationID uint, readerType string) error {
	conv, err := s.store.GetConversationByID(conversationID)
	if err != nil {
		return err
	}
	if conv == nil {
		return apperr.NotFound("conversation %d not found", conversationID)
	}
	fromStaff := strings.ToUpper(readerType) == models.SenderTypeUser
	if err := s.store.MarkMessagesRead(conversationID, fromStaff); err != nil {
		return err
	}
	err = s.store.PublishEvent(models.Event{
		Topic:   models.ConversationReadTopic(conversationID),
		Type:    models.EventTypeReadReceipt,
		Payload: map[string]any{"conversationId": conversationID, "readerType": strings.ToUpper(readerType)},
	})
	if err != nil {
		zap.S().Warnw("read receipt broadcast failed", "conversation", conversationID, "err", err)
	}
	return nil
}

// UnreadCount counts the reader's unread messages in one conversation.
func (s *ConversationService) UnreadCount(conversationID uint, readerType string) (int64, error) {
	fromStaff := strings.ToUpper(readerType) == models.SenderTypeUser
	return s.store.CountUnreadMessages(conversationID, fromStaff)
}

func (s *ConversationService) GetMessage(messageID uint) (*MessageResponse, error) {
	msg, err := s.store.GetMessageByID(messageID)
	if err != nil {
		return nil, err
	}
	if msg == nil {
		return nil, apperr.NotFound("message %d not found", messageID)
	}
	return s.toMessageResponse(msg), nil
}

func (s *ConversationService) MarkMessageRead(messageID uint) error {
	msg, err := s.store.GetMessageByID(messageID)
	if err != nil {
		return err
	}
	if msg == nil {
		return apperr.NotFound("message %d not found", messageID)
	}
	if msg.IsRead {
		return nil
	}
	msg.IsRead = true
	return s.store.SaveMessage(msg)
}

// DeleteMessage soft-deletes by blanking the content; the row survives so
// conversation history keeps its shape.
func (s *ConversationService) DeleteMessage(messageID uint) error {
	msg, err := s.store.GetMessageByID(messageID)
	if err != nil {
		return err
	}
	if msg == nil {
		return apperr.NotFound("message %d not found", messageID)
	}
	msg.Content = DeletedMessagePlaceholder
	return s.store.SaveMessage(msg)
}

func (s *ConversationService) toResponse(conv *models.Conversation) *ConversationResponse {
	resp := &ConversationResponse{
		ConversationID: conv.ID,
		UserID:         conv.UserID,
		StaffID:        conv.StaffID,
	}
	if user, err := s.store.GetUserByID(conv.UserID); err == nil && user != nil {
		resp.UserName = user.Name
		resp.UserProfileImage = user.ProfileImage
	}
	if staff, err := s.store.GetStaffByID(conv.StaffID); err == nil && staff != nil {
		resp.StaffName = staff.Name
		resp.StaffProfileImage = staff.ProfileImage
	}
	if last, err := s.store.GetLastMessage(conv.ID); err == nil && last != nil {
		resp.LastMessage = last.Content
		t := last.CreatedAt
		resp.LastMessageTime = &t
	}
	if count, err := s.store.CountUnreadMessages(conv.ID, true); err == nil {
		resp.UnreadCount = count
	}
	return resp
}

func (s *ConversationService) toResponses(convs []models.Conversation) []ConversationResponse {
	out := make([]ConversationResponse, 0, len(convs))
	for i := range convs {
		out = append(out, *s.toResponse(&convs[i]))
	}
	return out
}

func (s *ConversationService) toMessageResponse(msg *models.Message) *MessageResponse {
	resp := &MessageResponse{
		MessageID:      msg.ID,
		ConversationID: msg.ConversationID,
		Content:        msg.Content,
		CreatedAt:      msg.CreatedAt,
		IsRead:         msg.IsRead,
		SenderType:     msg.SenderType(),
		SenderUserID:   msg.SenderUserID,
		SenderStaffID:  msg.SenderStaffID,
	}
	if msg.SenderUserID != nil {
		if user, err := s.store.GetUserByID(*msg.SenderUserID); err == nil && user != nil {
			resp.SenderName = user.Name
			resp.SenderProfileImage = user.ProfileImage
		}
	} else if msg.SenderStaffID != nil {
		if staff, err := s.store.GetStaffByID(*msg.SenderStaffID); err == nil && staff != nil {
			resp.SenderName = staff.Name
			resp.SenderProfileImage = staff.ProfileImage
		}
	}
	return resp
}

func (s *ConversationService) toMessageResponses(msgs []models.Message) []MessageResponse {
	out := make([]MessageResponse, 0, len(msgs))
	for i := range msgs {
		out = append(out, *s.toMessageResponse(&msgs[i]))
	}
	return out
}
