package models

import "time"

// Staff roles. ADMIN additionally manages staff accounts and users.
const (
	RoleAdmin = "ADMIN"
	RoleStaff = "STAFF"
)

// Staff represents a lost-and-found office member who reviews reports,
// verifies claims and answers user conversations.
type Staff struct {
	ID           uint      `gorm:"primaryKey" json:"staffId"`
	Name         string    `gorm:"uniqueIndex;not null" json:"name"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	Password     string    `gorm:"not null" json:"-"` // bcrypt hash
	Role         string    `gorm:"size:10;not null;default:'STAFF'" json:"role"`
	ProfileImage string    `json:"profileImage"`
	CreatedAt    time.Time `json:"createdAt"`
}
