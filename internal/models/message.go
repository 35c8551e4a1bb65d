package models

import "time"

// Sender types for messages and realtime principals.
const (
	SenderTypeUser  = "USER"
	SenderTypeStaff = "STAFF"
)

// Message belongs to one conversation. Exactly one of SenderUserID /
// SenderStaffID is set.
type Message struct {
	ID             uint      `gorm:"primaryKey" json:"messageId"`
	ConversationID uint      `gorm:"not null;index" json:"conversationId"`
	SenderUserID   *uint     `gorm:"index" json:"senderUserId"`
	SenderStaffID  *uint     `gorm:"index" json:"senderStaffId"`
	Content        string    `gorm:"type:text;not null" json:"content"`
	IsRead         bool      `gorm:"default:false" json:"isRead"`
	CreatedAt      time.Time `json:"createdAt"`
}

// SenderType reports which side authored the message.
func (m *Message) SenderType() string {
	if m.SenderUserID != nil {
		return SenderTypeUser
	}
	return SenderTypeStaff
}
