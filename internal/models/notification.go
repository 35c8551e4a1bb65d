package models

import "time"

// Notification is a persisted alert for a user, generated as a side effect
// of report/claim status changes and new messages, and pushed to the user's
// private realtime queue on creation.
type Notification struct {
	ID        uint      `gorm:"primaryKey" json:"notificationId"`
	UserID    uint      `gorm:"not null;index" json:"userId"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	IsRead    bool      `gorm:"default:false;index" json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}
