package models

import (
	"time"

	"github.com/lib/pq"
)

// Report types.
const (
	ReportTypeLost  = "lost"
	ReportTypeFound = "found"
)

// Report statuses. The lifecycle is
// pending -> {approved, rejected}, approved -> published,
// pending -> cancelled (submitter only).
const (
	ReportStatusPending   = "pending"
	ReportStatusApproved  = "approved"
	ReportStatusRejected  = "rejected"
	ReportStatusPublished = "published"
	ReportStatusCancelled = "cancelled"
)

// MaxReportPhotos caps how many photo URLs a report may carry.
const MaxReportPhotos = 3

// SubmittedReport is a user's lost/found declaration awaiting staff review.
// Related rows are referenced by ID only; names are resolved when responses
// are assembled.
type SubmittedReport struct {
	ID              uint           `gorm:"primaryKey" json:"reportId"`
	Type            string         `gorm:"size:10;not null;index" json:"type"`
	Category        string         `gorm:"not null" json:"category"`
	ItemName        string         `json:"itemName"`
	Description     string         `gorm:"type:text;not null" json:"description"`
	DateOfEvent     time.Time      `gorm:"not null" json:"dateOfEvent"`
	Location        string         `gorm:"not null" json:"location"`
	PhotoURLs       pq.StringArray `gorm:"type:text[]" json:"photoUrls"`
	Status          string         `gorm:"size:12;not null;default:'pending';index" json:"status"`
	DateSubmitted   time.Time      `json:"dateSubmitted"`
	DateReviewed    *time.Time     `json:"dateReviewed"`
	SubmitterUserID uint           `gorm:"not null;index" json:"submitterUserId"`
	ReviewerStaffID *uint          `gorm:"index" json:"reviewerStaffId"`
}
