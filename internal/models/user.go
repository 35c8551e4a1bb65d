package models

import "time"

// User represents a registered member of the campus community.
// Users submit reports, file claims and chat with staff.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"userId"`
	Name         string    `gorm:"not null" json:"name"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	Phone        string    `json:"phone"`
	Password     string    `gorm:"not null" json:"-"` // bcrypt hash
	IsVerified   bool      `gorm:"default:false" json:"isVerified"`
	ProfileImage string    `json:"profileImage"`
	CreatedAt    time.Time `json:"createdAt"`
}
