package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Harukino1/ReturnHub/internal/models"
	"github.com/Harukino1/ReturnHub/internal/service"
)

// SubmitReport handles POST /api/reports. The submitter is always the
// authenticated user.
func (h *Handler) SubmitReport(c *gin.Context) {
	var req service.SubmitReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	req.SubmitterUserID = principalID(c)
	report, err := h.Reports.Submit(req)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, report)
}

// ListReports handles GET /api/reports (staff).
func (h *Handler) ListReports(c *gin.Context) {
	reports, err := h.Reports.List()
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, reports)
}

// ListPendingReports handles GET /api/reports/pending (staff). Oldest
// first, the review queue.
func (h *Handler) ListPendingReports(c *gin.Context) {
	reports, err := h.Reports.ListPending()
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, reports)
}

// ListMyReports handles GET /api/reports/my?type=lost|found (user).
func (h *Handler) ListMyReports(c *gin.Context) {
	reports, err := h.Reports.ListByUser(principalID(c), c.Query("type"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, reports)
}

// GetReport handles GET /api/reports/:id.
func (h *Handler) GetReport(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	report, err := h.Reports.GetByID(id)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, report)
}

// UpdateReportStatus handles PUT /api/reports/:id/status (staff). The
// target status picks the operation: approved/rejected run a review,
// published runs the publish step.
func (h *Handler) UpdateReportStatus(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var req struct {
		Status      string `json:"status"`
		ReviewNotes string `json:"reviewNotes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	staffID := principalID(c)
	var (
		report *service.ReportResponse
		err    error
	)
	switch strings.ToLower(strings.TrimSpace(req.Status)) {
	case models.ReportStatusPublished:
		report, err = h.Reports.Publish(id, staffID)
	default:
		report, err = h.Reports.Review(id, service.ReviewReportRequest{
			Status:          req.Status,
			ReviewerStaffID: staffID,
			ReviewNotes:     req.ReviewNotes,
		})
	}
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, report)
}

// CancelReport handles PUT /api/reports/:id/cancel (user).
func (h *Handler) CancelReport(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	if err := h.Reports.Cancel(id, principalID(c)); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"cancelled": true})
}

// DeleteReport handles DELETE /api/reports/:id. Staff may delete any
// report, a user only their own.
func (h *Handler) DeleteReport(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var err error
	if principalType(c) == principalStaff {
		err = h.Reports.Delete(id)
	} else {
		err = h.Reports.DeleteByOwner(id, principalID(c))
	}
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"deleted": true})
}
