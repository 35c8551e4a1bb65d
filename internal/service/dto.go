package service

import "time"

// Response DTOs returned by the services. Related rows are flattened into
// ids and display names here, at the response-assembly boundary; entities
// themselves never embed each other.

type ReportResponse struct {
	ReportID          uint       `json:"reportId"`
	Type              string     `json:"type"`
	Category          string     `json:"category"`
	ItemName          string     `json:"itemName"`
	Description       string     `json:"description"`
	DateOfEvent       time.Time  `json:"dateOfEvent"`
	Location          string     `json:"location"`
	PhotoURLs         []string   `json:"photoUrls"`
	Status            string     `json:"status"`
	DateSubmitted     time.Time  `json:"dateSubmitted"`
	DateReviewed      *time.Time `json:"dateReviewed"`
	SubmitterUserID   uint       `json:"submitterUserId"`
	SubmitterUserName string     `json:"submitterUserName"`
	ReviewerStaffID   *uint      `json:"reviewerStaffId"`
	ReviewerStaffName string     `json:"reviewerStaffName,omitempty"`
}

type ItemResponse struct {
	ItemID            uint      `json:"itemId"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"createdAt"`
	PostedByStaffID   uint      `json:"postedByStaffId"`
	PostedByStaffName string    `json:"postedByStaffName"`
	ReportID          uint      `json:"reportId"`
	Type              string    `json:"type"`
	Category          string    `json:"category"`
	ItemName          string    `json:"itemName"`
	Description       string    `json:"description"`
	Location          string    `json:"location"`
	PhotoURL          string    `json:"photoUrl"`
	DateOfEvent       time.Time `json:"dateOfEvent"`
}

type ClaimResponse struct {
	ClaimID           uint      `json:"claimId"`
	Status            string    `json:"status"`
	ProofDocumentURL  string    `json:"proofDocumentUrl"`
	DateSubmitted     time.Time `json:"dateSubmitted"`
	ClaimantUserID    uint      `json:"claimantUserId"`
	ClaimantUserName  string    `json:"claimantUserName"`
	LostItemID        *uint     `json:"lostItemId"`
	FoundItemID       *uint     `json:"foundItemId"`
	VerifiedByStaffID *uint     `json:"verifiedByStaffId"`
}

type ClaimStats struct {
	PendingCount  int64 `json:"pendingCount"`
	ApprovedCount int64 `json:"approvedCount"`
	RejectedCount int64 `json:"rejectedCount"`
	TotalClaims   int64 `json:"totalClaims"`
}

type ConversationResponse struct {
	ConversationID    uint       `json:"conversationId"`
	UserID            uint       `json:"userId"`
	UserName          string     `json:"userName"`
	UserProfileImage  string     `json:"userProfileImage"`
	StaffID           uint       `json:"staffId"`
	StaffName         string     `json:"staffName"`
	StaffProfileImage string     `json:"staffProfileImage"`
	LastMessage       string     `json:"lastMessage,omitempty"`
	LastMessageTime   *time.Time `json:"lastMessageTime,omitempty"`
	UnreadCount       int64      `json:"unreadCount"`
}

type MessageResponse struct {
	MessageID          uint      `json:"messageId"`
	ConversationID     uint      `json:"conversationId"`
	Content            string    `json:"content"`
	CreatedAt          time.Time `json:"createdAt"`
	IsRead             bool      `json:"isRead"`
	SenderType         string    `json:"senderType"`
	SenderUserID       *uint     `json:"senderUserId"`
	SenderStaffID      *uint     `json:"senderStaffId"`
	SenderName         string    `json:"senderName"`
	SenderProfileImage string    `json:"senderProfileImage"`
}
