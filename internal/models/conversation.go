package models

import "time"

// Conversation pairs one user with one staff member. It is created lazily on
// first contact and reused afterwards; (UserID, StaffID) is unique.
type Conversation struct {
	ID        uint      `gorm:"primaryKey" json:"conversationId"`
	UserID    uint      `gorm:"not null;index;uniqueIndex:idx_conv_pair" json:"userId"`
	StaffID   uint      `gorm:"not null;index;uniqueIndex:idx_conv_pair" json:"staffId"`
	CreatedAt time.Time `json:"createdAt"`
}
