package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Harukino1/ReturnHub/internal/service"
)

// SubmitClaim handles POST /api/claims (user).
func (h *Handler) SubmitClaim(c *gin.Context) {
	var req service.SubmitClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	req.ClaimantUserID = principalID(c)
	claim, err := h.Claims.Submit(req)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, claim)
}

// ListClaims handles GET /api/claims?status= (staff).
func (h *Handler) ListClaims(c *gin.Context) {
	claims, err := h.Claims.List(c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, claims)
}

// ListMyClaims handles GET /api/claims/my (user).
func (h *Handler) ListMyClaims(c *gin.Context) {
	claims, err := h.Claims.ListByUser(principalID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, claims)
}

// ListClaimsByItem handles GET /api/claims/item/:itemId (staff).
func (h *Handler) ListClaimsByItem(c *gin.Context) {
	itemID, ok := uintParam(c, "itemId")
	if !ok {
		return
	}
	claims, err := h.Claims.ListByItem(itemID)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, claims)
}

// ClaimStats handles GET /api/claims/stats (staff).
func (h *Handler) ClaimStats(c *gin.Context) {
	stats, err := h.Claims.Stats()
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, stats)
}

// GetClaim handles GET /api/claims/:id.
func (h *Handler) GetClaim(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	claim, err := h.Claims.GetByID(id)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, claim)
}

// DecideClaim handles PUT /api/claims/:id/status (staff).
func (h *Handler) DecideClaim(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	claim, err := h.Claims.Decide(id, req.Status, principalID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, claim)
}

// DeleteClaim handles DELETE /api/claims/:id (staff).
func (h *Handler) DeleteClaim(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	if err := h.Claims.Delete(id); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"deleted": true})
}
