package service

import (
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Harukino1/ReturnHub/internal/apperr"
	"github.com/Harukino1/ReturnHub/internal/models"
	"github.com/Harukino1/ReturnHub/internal/storage"
)

// StaffAlerter forwards newly submitted work to the staff alert channel.
// Implementations must be non-blocking and swallow their own failures.
type StaffAlerter interface {
	ReportSubmitted(report *models.SubmittedReport, submitterName string)
	ClaimSubmitted(claim *models.Claim, claimantName string)
}

type SubmitReportRequest struct {
	Type            string    `json:"type"`
	Category        string    `json:"category"`
	ItemName        string    `json:"itemName"`
	Description     string    `json:"description"`
	DateOfEvent     time.Time `json:"dateOfEvent"`
	Location        string    `json:"location"`
	PhotoURLs       []string  `json:"photoUrls"`
	SubmitterUserID uint      `json:"submitterUserId"`
}

type ReviewReportRequest struct {
	Status          string `json:"status"`
	ReviewerStaffID uint   `json:"reviewerStaffId"`
	ReviewNotes     string `json:"reviewNotes"`
}

// ReportService drives the report lifecycle:
// pending -> approved|rejected (review), approved -> published (publish),
// pending -> cancelled (submitter). A published report may be re-reviewed,
// which archives its derived listing.
type ReportService struct {
	store         storage.Storage
	notifications *NotificationService
	alerter       StaffAlerter
}

func NewReportService(store storage.Storage, notifications *NotificationService, alerter StaffAlerter) *ReportService {
	return &ReportService{store: store, notifications: notifications, alerter: alerter}
}

// Submit validates and persists a new pending report.
func (s *ReportService) Submit(req SubmitReportRequest) (*ReportResponse, error) {
	reportType := strings.ToLower(strings.TrimSpace(req.Type))
	if reportType != models.ReportTypeLost && reportType != models.ReportTypeFound {
		return nil, apperr.Validation("report type must be %q or %q", models.ReportTypeLost, models.ReportTypeFound)
	}
	if strings.TrimSpace(req.Category) == "" {
		return nil, apperr.Validation("category is required")
	}
	if strings.TrimSpace(req.Description) == "" {
		return nil, apperr.Validation("description is required")
	}
	if strings.TrimSpace(req.Location) == "" {
		return nil, apperr.Validation("location is required")
	}
	if req.DateOfEvent.IsZero() {
		return nil, apperr.Validation("dateOfEvent is required")
	}
	if len(req.PhotoURLs) > models.MaxReportPhotos {
		return nil, apperr.Validation("a report may carry at most %d photos", models.MaxReportPhotos)
	}

	user, err := s.store.GetUserByID(req.SubmitterUserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("user %d not found", req.SubmitterUserID)
	}

	report := &models.SubmittedReport{
		Type:            reportType,
		Category:        strings.TrimSpace(req.Category),
		ItemName:        strings.TrimSpace(req.ItemName),
		Description:     strings.TrimSpace(req.Description),
		DateOfEvent:     req.DateOfEvent,
		Location:        strings.TrimSpace(req.Location),
		PhotoURLs:       req.PhotoURLs,
		Status:          models.ReportStatusPending,
		DateSubmitted:   time.Now(),
		SubmitterUserID: user.ID,
	}
	if err := s.store.CreateReport(report); err != nil {
		return nil, err
	}
	if s.alerter != nil {
		s.alerter.ReportSubmitted(report, user.Name)
	}
	return s.toResponse(report), nil
}

// Review approves or rejects a report. Pending reports take either outcome;
// a published report may only be re-approved, which pulls its listing back
// to archived. The status update is guarded so that concurrent reviews of
// the same report fire their side effects at most once.
func (s *ReportService) Review(reportID uint, req ReviewReportRequest) (*ReportResponse, error) {
	status := strings.ToLower(strings.TrimSpace(req.Status))
	if status != models.ReportStatusApproved && status != models.ReportStatusRejected {
		return nil, apperr.Validation("review status must be %q or %q", models.ReportStatusApproved, models.ReportStatusRejected)
	}

	report, err := s.store.GetReportByID(reportID)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, apperr.InvalidState("report %d does not exist", reportID)
	}
	reviewer, err := s.store.GetStaffByID(req.ReviewerStaffID)
	if err != nil {
		return nil, err
	}
	if reviewer == nil {
		return nil, apperr.NotFound("staff %d not found", req.ReviewerStaffID)
	}

	fromStatuses := []string{models.ReportStatusPending}
	if status == models.ReportStatusApproved {
		fromStatuses = append(fromStatuses, models.ReportStatusPublished)
	}

	now := time.Now()
	updates := map[string]any{
		"status":            status,
		"reviewer_staff_id": reviewer.ID,
		"date_reviewed":     now,
	}
	description := report.Description
	if notes := strings.TrimSpace(req.ReviewNotes); notes != "" {
		description = report.Description + "\n\nStaff Notes: " + notes
		updates["description"] = description
	}

	ok, err := s.store.TransitionReport(reportID, fromStatuses, updates)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.InvalidState("report %d cannot be %s from status %q", reportID, status, report.Status)
	}

	if report.Status == models.ReportStatusPublished {
		s.archiveListing(report)
	}

	if err := s.notifications.NotifyReportStatus(report.SubmitterUserID, report.Type, status, report.ID, reviewer.Name); err != nil {
		zap.S().Warnw("report review notification failed", "report", report.ID, "err", err)
	}

	report.Status = status
	report.ReviewerStaffID = &reviewer.ID
	report.DateReviewed = &now
	report.Description = description
	return s.toResponse(report), nil
}

// Publish turns an approved report into a public listing. If a listing for
// the report already exists (a previous publish/unpublish round trip) it is
// reactivated instead of duplicated.
func (s *ReportService) Publish(reportID, reviewerStaffID uint) (*ReportResponse, error) {
	report, err := s.store.GetReportByID(reportID)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, apperr.NotFound("report %d not found", reportID)
	}
	reviewer, err := s.store.GetStaffByID(reviewerStaffID)
	if err != nil {
		return nil, err
	}
	if reviewer == nil {
		return nil, apperr.NotFound("staff %d not found", reviewerStaffID)
	}

	now := time.Now()
	ok, err := s.store.TransitionReport(reportID,
		[]string{models.ReportStatusApproved},
		map[string]any{
			"status":            models.ReportStatusPublished,
			"reviewer_staff_id": reviewer.ID,
			"date_reviewed":     now,
		})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.InvalidState("report %d cannot be published from status %q", reportID, report.Status)
	}

	if err := s.activateListing(report, reviewer.ID, now); err != nil {
		return nil, err
	}

	if err := s.notifications.NotifyReportStatus(report.SubmitterUserID, report.Type, models.ReportStatusPublished, report.ID, reviewer.Name); err != nil {
		zap.S().Warnw("report publish notification failed", "report", report.ID, "err", err)
	}

	report.Status = models.ReportStatusPublished
	report.ReviewerStaffID = &reviewer.ID
	report.DateReviewed = &now
	return s.toResponse(report), nil
}

// Cancel lets the submitter withdraw their own report while it is still
// pending.
func (s *ReportService) Cancel(reportID, userID uint) error {
	report, err := s.store.GetReportByID(reportID)
	if err != nil {
		return err
	}
	if report == nil {
		return apperr.NotFound("report %d not found", reportID)
	}
	if report.SubmitterUserID != userID {
		return apperr.Unauthorized("report %d does not belong to user %d", reportID, userID)
	}
	ok, err := s.store.TransitionReport(reportID,
		[]string{models.ReportStatusPending},
		map[string]any{"status": models.ReportStatusCancelled})
	if err != nil {
		return err
	}
	if !ok {
		return apperr.InvalidState("only pending reports can be cancelled")
	}
	return nil
}

// Delete removes a report unconditionally (staff tooling).
func (s *ReportService) Delete(reportID uint) error {
	report, err := s.store.GetReportByID(reportID)
	if err != nil {
		return err
	}
	if report == nil {
		return apperr.NotFound("report %d not found", reportID)
	}
	return s.store.DeleteReport(reportID)
}

// DeleteByOwner removes a report after checking the caller submitted it.
func (s *ReportService) DeleteByOwner(reportID, userID uint) error {
	report, err := s.store.GetReportByID(reportID)
	if err != nil {
		return err
	}
	if report == nil {
		return apperr.NotFound("report %d not found", reportID)
	}
	if report.SubmitterUserID != userID {
		return apperr.Unauthorized("report %d does not belong to user %d", reportID, userID)
	}
	return s.store.DeleteReport(reportID)
}

func (s *ReportService) GetByID(reportID uint) (*ReportResponse, error) {
	report, err := s.store.GetReportByID(reportID)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, apperr.NotFound("report %d not found", reportID)
	}
	return s.toResponse(report), nil
}

func (s *ReportService) List() ([]ReportResponse, error) {
	reports, err := s.store.ListReports()
	if err != nil {
		return nil, err
	}
	return s.toResponses(reports), nil
}

func (s *ReportService) ListByUser(userID uint, typeFilter string) ([]ReportResponse, error) {
	reports, err := s.store.ListReportsByUser(userID, strings.ToLower(typeFilter))
	if err != nil {
		return nil, err
	}
	return s.toResponses(reports), nil
}

// ListPending returns the review queue, oldest first.
func (s *ReportService) ListPending() ([]ReportResponse, error) {
	reports, err := s.store.ListReportsByStatus(models.ReportStatusPending)
	if err != nil {
		return nil, err
	}
	return s.toResponses(reports), nil
}

func (s *ReportService) CountByStatus(status string) (int, error) {
	reports, err := s.store.ListReportsByStatus(status)
	if err != nil {
		return 0, err
	}
	return len(reports), nil
}

// activateListing creates or reactivates the item derived from a published
// report.
func (s *ReportService) activateListing(report *models.SubmittedReport, staffID uint, now time.Time) error {
	if report.Type == models.ReportTypeLost {
		item, err := s.store.GetLostItemByReportID(report.ID)
		if err != nil {
			return err
		}
		if item != nil {
			item.Status = models.ItemStatusActive
			return s.store.SaveLostItem(item)
		}
		return s.store.CreateLostItem(&models.LostItem{
			Status:            models.ItemStatusActive,
			CreatedAt:         now,
			SubmittedReportID: report.ID,
			PostedByStaffID:   staffID,
		})
	}
	item, err := s.store.GetFoundItemByReportID(report.ID)
	if err != nil {
		return err
	}
	if item != nil {
		item.Status = models.ItemStatusActive
		return s.store.SaveFoundItem(item)
	}
	return s.store.CreateFoundItem(&models.FoundItem{
		Status:            models.ItemStatusActive,
		CreatedAt:         now,
		SubmittedReportID: report.ID,
		PostedByStaffID:   staffID,
	})
}

// archiveListing pulls the report's derived item off the public board.
func (s *ReportService) archiveListing(report *models.SubmittedReport) {
	if report.Type == models.ReportTypeLost {
		item, err := s.store.GetLostItemByReportID(report.ID)
		if err != nil || item == nil {
			return
		}
		item.Status = models.ItemStatusArchived
		if err := s.store.SaveLostItem(item); err != nil {
			zap.S().Warnw("failed to archive lost item", "report", report.ID, "err", err)
		}
		return
	}
	item, err := s.store.GetFoundItemByReportID(report.ID)
	if err != nil || item == nil {
		return
	}
	item.Status = models.ItemStatusArchived
	if err := s.store.SaveFoundItem(item); err != nil {
		zap.S().Warnw("failed to archive found item", "report", report.ID, "err", err)
	}
}

func (s *ReportService) toResponse(report *models.SubmittedReport) *ReportResponse {
	resp := &ReportResponse{
		ReportID:        report.ID,
		Type:            report.Type,
		Category:        report.Category,
		ItemName:        report.ItemName,
		Description:     report.Description,
		DateOfEvent:     report.DateOfEvent,
		Location:        report.Location,
		PhotoURLs:       report.PhotoURLs,
		Status:          report.Status,
		DateSubmitted:   report.DateSubmitted,
		DateReviewed:    report.DateReviewed,
		SubmitterUserID: report.SubmitterUserID,
		ReviewerStaffID: report.ReviewerStaffID,
	}
	if resp.PhotoURLs == nil {
		resp.PhotoURLs = []string{}
	}
	if user, err := s.store.GetUserByID(report.SubmitterUserID); err == nil && user != nil {
		resp.SubmitterUserName = user.Name
	}
	if report.ReviewerStaffID != nil {
		if staff, err := s.store.GetStaffByID(*report.ReviewerStaffID); err == nil && staff != nil {
			resp.ReviewerStaffName = staff.Name
		}
	}
	return resp
}

func (s *ReportService) toResponses(reports []models.SubmittedReport) []ReportResponse {
	out := make([]ReportResponse, 0, len(reports))
	for i := range reports {
		out = append(out, *s.toResponse(&reports[i]))
	}
	return out
}
