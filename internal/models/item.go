package models

import "time"

// Item statuses. An item is "active" while publicly listed, "archived" when
// its report is pulled back from publication, and "claimed" once a claim on
// it is approved.
const (
	ItemStatusActive   = "active"
	ItemStatusArchived = "archived"
	ItemStatusClaimed  = "claimed"
)

// LostItem is the public listing derived from a published "lost" report.
type LostItem struct {
	ID                uint      `gorm:"primaryKey" json:"itemId"`
	Status            string    `gorm:"size:10;not null;index" json:"status"`
	CreatedAt         time.Time `json:"createdAt"`
	SubmittedReportID uint      `gorm:"not null;uniqueIndex" json:"reportId"`
	PostedByStaffID   uint      `gorm:"not null" json:"postedByStaffId"`
}

// FoundItem is the public listing derived from a published "found" report.
type FoundItem struct {
	ID                uint      `gorm:"primaryKey" json:"itemId"`
	Status            string    `gorm:"size:10;not null;index" json:"status"`
	CreatedAt         time.Time `json:"createdAt"`
	SubmittedReportID uint      `gorm:"not null;uniqueIndex" json:"reportId"`
	PostedByStaffID   uint      `gorm:"not null" json:"postedByStaffId"`
}
