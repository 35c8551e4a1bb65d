package models

import "time"

// Claim statuses. pending -> {approved, rejected}, terminal.
const (
	ClaimStatusPending  = "pending"
	ClaimStatusApproved = "approved"
	ClaimStatusRejected = "rejected"
)

// Claim is a user's assertion of ownership over exactly one listed item.
// Exactly one of LostItemID / FoundItemID is set; the service layer rejects
// anything else before a row is created.
type Claim struct {
	ID               uint      `gorm:"primaryKey" json:"claimId"`
	Status           string    `gorm:"size:10;not null;index" json:"status"`
	ProofDocumentURL string    `json:"proofDocumentUrl"`
	DateSubmitted    time.Time `json:"dateSubmitted"`
	ClaimantUserID   uint      `gorm:"not null;index" json:"claimantUserId"`
	LostItemID       *uint     `gorm:"index" json:"lostItemId"`
	FoundItemID      *uint     `gorm:"index" json:"foundItemId"`
	VerifiedByStaffID *uint    `json:"verifiedByStaffId"`
}
