package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Harukino1/ReturnHub/internal/models"
	"github.com/Harukino1/ReturnHub/internal/service"
)

// LoginStaff handles POST /api/staff/login. Username may be the account
// name or the email.
func (h *Handler) LoginStaff(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	staff, err := h.Staff.Login(req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	token, err := h.issueToken(principalStaff, staff.ID, staff.Role)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"token": token, "staff": staff})
}

// StaffProfile handles GET /api/staff/profile.
func (h *Handler) StaffProfile(c *gin.Context) {
	staff, err := h.Staff.GetByID(principalID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, staff)
}

// UpdateStaffProfile handles PUT /api/staff/profile.
func (h *Handler) UpdateStaffProfile(c *gin.Context) {
	var req struct {
		Name         string `json:"name"`
		Email        string `json:"email"`
		ProfileImage string `json:"profileImage"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	staff, err := h.Staff.UpdateProfile(principalID(c), req.Name, req.Email, req.ProfileImage)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, staff)
}

// StaffDashboard handles GET /api/staff/dashboard: the work queue counters
// shown on the staff landing page.
func (h *Handler) StaffDashboard(c *gin.Context) {
	pendingReports, err := h.Reports.CountByStatus(models.ReportStatusPending)
	if err != nil {
		respondError(c, err)
		return
	}
	claimStats, err := h.Claims.Stats()
	if err != nil {
		respondError(c, err)
		return
	}
	activeLost, err := h.Items.ListLost(models.ItemStatusActive)
	if err != nil {
		respondError(c, err)
		return
	}
	activeFound, err := h.Items.ListFound(models.ItemStatusActive)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{
		"pendingReports":   pendingReports,
		"pendingClaims":    claimStats.PendingCount,
		"totalClaims":      claimStats.TotalClaims,
		"activeLostItems":  len(activeLost),
		"activeFoundItems": len(activeFound),
	})
}

// ListStaff handles GET /api/admin/staff.
func (h *Handler) ListStaff(c *gin.Context) {
	staff, err := h.Staff.List()
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, staff)
}

// CreateStaff handles POST /api/admin/staff.
func (h *Handler) CreateStaff(c *gin.Context) {
	var req service.CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	staff, err := h.Staff.Create(req)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, staff)
}

// SetStaffRole handles PUT /api/admin/staff/:id/role.
func (h *Handler) SetStaffRole(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var req struct {
		Role string `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	staff, err := h.Staff.SetRole(id, req.Role)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, staff)
}

// ResetStaffPassword handles PUT /api/admin/staff/:id/password.
func (h *Handler) ResetStaffPassword(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var req struct {
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	if err := h.Staff.ResetPassword(id, req.Password); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"reset": true})
}

// DeleteStaff handles DELETE /api/admin/staff/:id.
func (h *Handler) DeleteStaff(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	if err := h.Staff.Delete(id); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"deleted": true})
}
