package storage

import (
	"github.com/Harukino1/ReturnHub/internal/models"
)

func (s *Service) CreateConversation(conv *models.Conversation) error {
	return s.DB.Create(conv).Error
}

func (s *Service) GetConversationByID(id uint) (*models.Conversation, error) {
	var conv models.Conversation
	if err := s.DB.First(&conv, id).Error; err != nil {
		return nil, notFoundAsNil(err)
	}
	return &conv, nil
}

func (s *Service) GetConversationByPair(userID, staffID uint) (*models.Conversation, error) {
	var conv models.Conversation
	err := s.DB.Where("user_id = ? AND staff_id = ?", userID, staffID).First(&conv).Error
	if err != nil {
		return nil, notFoundAsNil(err)
	}
	return &conv, nil
}

func (s *Service) ListConversationsByUser(userID uint) ([]models.Conversation, error) {
	var convs []models.Conversation
	err := s.DB.Where("user_id = ?", userID).Order("id desc").Find(&convs).Error
	if err != nil {
		return nil, err
	}
	return convs, nil
}

func (s *Service) ListConversationsByStaff(staffID uint) ([]models.Conversation, error) {
	var convs []models.Conversation
	err := s.DB.Where("staff_id = ?", staffID).Order("id desc").Find(&convs).Error
	if err != nil {
		return nil, err
	}
	return convs, nil
}

func (s *Service) CreateMessage(msg *models.Message) error {
	return s.DB.Create(msg).Error
}

func (s *Service) GetMessageByID(id uint) (*models.Message, error) {
	var msg models.Message
	if err := s.DB.First(&msg, id).Error; err != nil {
		return nil, notFoundAsNil(err)
	}
	return &msg, nil
}

func (s *Service) SaveMessage(msg *models.Message) error {
	return s.DB.Save(msg).Error
}

func (s *Service) ListMessagesByConversation(conversationID uint) ([]models.Message, error) {
	var msgs []models.Message
	err := s.DB.Where("conversation_id = ?", conversationID).
		Order("created_at asc").Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	return msgs, nil
}

// ListRecentMessages returns the newest messages first; callers re-sort
// ascending for display.
func (s *Service) ListRecentMessages(conversationID uint, limit int) ([]models.Message, error) {
	if limit < 1 {
		limit = 1
	}
	var msgs []models.Message
	err := s.DB.Where("conversation_id = ?", conversationID).
		Order("created_at desc").Limit(limit).Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	return msgs, nil
}

func (s *Service) GetLastMessage(conversationID uint) (*models.Message, error) {
	var msg models.Message
	err := s.DB.Where("conversation_id = ?", conversationID).
		Order("created_at desc").First(&msg).Error
	if err != nil {
		return nil, notFoundAsNil(err)
	}
	return &msg, nil
}

// MarkMessagesRead bulk-flags unread messages authored by the opposite
// party. fromStaff=true flags staff-authored messages (the user is reading).
func (s *Service) MarkMessagesRead(conversationID uint, fromStaff bool) error {
	q := s.DB.Model(&models.Message{}).
		Where("conversation_id = ? AND is_read = ?", conversationID, false)
	if fromStaff {
		q = q.Where("sender_staff_id IS NOT NULL")
	} else {
		q = q.Where("sender_user_id IS NOT NULL")
	}
	return q.Update("is_read", true).Error
}

func (s *Service) CountUnreadMessages(conversationID uint, fromStaff bool) (int64, error) {
	q := s.DB.Model(&models.Message{}).
		Where("conversation_id = ? AND is_read = ?", conversationID, false)
	if fromStaff {
		q = q.Where("sender_staff_id IS NOT NULL")
	} else {
		q = q.Where("sender_user_id IS NOT NULL")
	}
	var count int64
	err := q.Count(&count).Error
	return count, err
}
