package service

import (
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Harukino1/ReturnHub/internal/apperr"
	"github.com/Harukino1/ReturnHub/internal/models"
	"github.com/Harukino1/ReturnHub/internal/storage"
)

type SubmitClaimRequest struct {
	ClaimantUserID   uint   `json:"claimantUserId"`
	LostItemID       *uint  `json:"lostItemId"`
	FoundItemID      *uint  `json:"foundItemId"`
	ProofDocumentURL string `json:"proofDocumentUrl"`
}

// ClaimService drives the claim lifecycle. A claim targets exactly one
// listed item; the decision (approve/reject) is terminal and guarded
// against concurrent double decisions.
type ClaimService struct {
	store         storage.Storage
	notifications *NotificationService
	alerter       StaffAlerter
}

func NewClaimService(store storage.Storage, notifications *NotificationService, alerter StaffAlerter) *ClaimService {
	return &ClaimService{store: store, notifications: notifications, alerter: alerter}
}

// Submit files a new pending claim against exactly one item.
func (s *ClaimService) Submit(req SubmitClaimRequest) (*ClaimResponse, error) {
	if (req.LostItemID == nil) == (req.FoundItemID == nil) {
		return nil, apperr.Validation("a claim must reference exactly one of lostItemId or foundItemId")
	}
	user, err := s.store.GetUserByID(req.ClaimantUserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("user %d not found", req.ClaimantUserID)
	}

	if req.LostItemID != nil {
		item, err := s.store.GetLostItemByID(*req.LostItemID)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, apperr.NotFound("lost item %d not found", *req.LostItemID)
		}
	} else {
		item, err := s.store.GetFoundItemByID(*req.FoundItemID)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, apperr.NotFound("found item %d not found", *req.FoundItemID)
		}
	}

	claim := &models.Claim{
		Status:           models.ClaimStatusPending,
		ProofDocumentURL: strings.TrimSpace(req.ProofDocumentURL),
		DateSubmitted:    time.Now(),
		ClaimantUserID:   user.ID,
		LostItemID:       req.LostItemID,
		FoundItemID:      req.FoundItemID,
	}
	if err := s.store.CreateClaim(claim); err != nil {
		return nil, err
	}
	if s.alerter != nil {
		s.alerter.ClaimSubmitted(claim, user.Name)
	}
	return s.toResponse(claim), nil
}

// Decide approves or rejects a pending claim. On approval the claimed item
// is marked claimed and leaves the public board. The update is guarded so a
// claim decided twice concurrently fires its side effects once.
func (s *ClaimService) Decide(claimID uint, status string, verifierStaffID uint) (*ClaimResponse, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	if status != models.ClaimStatusApproved && status != models.ClaimStatusRejected {
		return nil, apperr.Validation("claim status must be %q or %q", models.ClaimStatusApproved, models.ClaimStatusRejected)
	}

	claim, err := s.store.GetClaimByID(claimID)
	if err != nil {
		return nil, err
	}
	if claim == nil {
		return nil, apperr.NotFound("claim %d not found", claimID)
	}
	verifier, err := s.store.GetStaffByID(verifierStaffID)
	if err != nil {
		return nil, err
	}
	if verifier == nil {
		return nil, apperr.NotFound("staff %d not found", verifierStaffID)
	}

	ok, err := s.store.TransitionClaim(claimID, models.ClaimStatusPending, map[string]any{
		"status":               status,
		"verified_by_staff_id": verifier.ID,
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.InvalidState("claim %d has already been decided", claimID)
	}

	itemType := models.ReportTypeLost
	if claim.FoundItemID != nil {
		itemType = models.ReportTypeFound
	}
	if status == models.ClaimStatusApproved {
		s.markItemClaimed(claim)
	}

	if err := s.notifications.NotifyClaimStatus(claim.ClaimantUserID, itemType, status, claim.ID, verifier.Name); err != nil {
		zap.S().Warnw("claim decision notification failed", "claim", claim.ID, "err", err)
	}

	claim.Status = status
	claim.VerifiedByStaffID = &verifier.ID
	return s.toResponse(claim), nil
}

func (s *ClaimService) GetByID(claimID uint) (*ClaimResponse, error) {
	claim, err := s.store.GetClaimByID(claimID)
	if err != nil {
		return nil, err
	}
	if claim == nil {
		return nil, apperr.NotFound("claim %d not found", claimID)
	}
	return s.toResponse(claim), nil
}

func (s *ClaimService) List(statusFilter string) ([]ClaimResponse, error) {
	claims, err := s.store.ListClaims(strings.ToLower(statusFilter))
	if err != nil {
		return nil, err
	}
	return s.toResponses(claims), nil
}

func (s *ClaimService) ListByUser(userID uint) ([]ClaimResponse, error) {
	claims, err := s.store.ListClaimsByUser(userID)
	if err != nil {
		return nil, err
	}
	return s.toResponses(claims), nil
}

func (s *ClaimService) ListByItem(itemID uint) ([]ClaimResponse, error) {
	claims, err := s.store.ListClaimsByItem(itemID)
	if err != nil {
		return nil, err
	}
	return s.toResponses(claims), nil
}

// Stats aggregates claim counts for the staff dashboard.
func (s *ClaimService) Stats() (*ClaimStats, error) {
	pending, err := s.store.CountClaimsByStatus(models.ClaimStatusPending)
	if err != nil {
		return nil, err
	}
	approved, err := s.store.CountClaimsByStatus(models.ClaimStatusApproved)
	if err != nil {
		return nil, err
	}
	rejected, err := s.store.CountClaimsByStatus(models.ClaimStatusRejected)
	if err != nil {
		return nil, err
	}
	return &ClaimStats{
		PendingCount:  pending,
		ApprovedCount: approved,
		RejectedCount: rejected,
		TotalClaims:   pending + approved + rejected,
	}, nil
}

func (s *ClaimService) Delete(claimID uint) error {
	claim, err := s.store.GetClaimByID(claimID)
	if err != nil {
		return err
	}
	if claim == nil {
		return apperr.NotFound("claim %d not found", claimID)
	}
	return s.store.DeleteClaim(claimID)
}

func (s *ClaimService) markItemClaimed(claim *models.Claim) {
	if claim.LostItemID != nil {
		item, err := s.store.GetLostItemByID(*claim.LostItemID)
		if err != nil || item == nil {
			return
		}
		item.Status = models.ItemStatusClaimed
		if err := s.store.SaveLostItem(item); err != nil {
			zap.S().Warnw("failed to mark lost item claimed", "item", item.ID, "err", err)
		}
		return
	}
	item, err := s.store.GetFoundItemByID(*claim.FoundItemID)
	if err != nil || item == nil {
		return
	}
	item.Status = models.ItemStatusClaimed
	if err := s.store.SaveFoundItem(item); err != nil {
		zap.S().Warnw("failed to mark found item claimed", "item", item.ID, "err", err)
	}
}

func (s *ClaimService) toResponse(claim *models.Claim) *ClaimResponse {
	resp := &ClaimResponse{
		ClaimID:           claim.ID,
		Status:            claim.Status,
		ProofDocumentURL:  claim.ProofDocumentURL,
		DateSubmitted:     claim.DateSubmitted,
		ClaimantUserID:    claim.ClaimantUserID,
		LostItemID:        claim.LostItemID,
		FoundItemID:       claim.FoundItemID,
		VerifiedByStaffID: claim.VerifiedByStaffID,
	}
	if user, err := s.store.GetUserByID(claim.ClaimantUserID); err == nil && user != nil {
		resp.ClaimantUserName = user.Name
	}
	return resp
}

func (s *ClaimService) toResponses(claims []models.Claim) []ClaimResponse {
	out := make([]ClaimResponse, 0, len(claims))
	for i := range claims {
		out = append(out, *s.toResponse(&claims[i]))
	}
	return out
}
