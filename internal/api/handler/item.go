package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Harukino1/ReturnHub/internal/models"
)

// ListLostItems handles GET /api/items/lost?status=. Without a filter the
// public board shows active listings only.
func (h *Handler) ListLostItems(c *gin.Context) {
	items, err := h.Items.ListLost(listingStatus(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, items)
}

// ListFoundItems handles GET /api/items/found?status=.
func (h *Handler) ListFoundItems(c *gin.Context) {
	items, err := h.Items.ListFound(listingStatus(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, items)
}

// listingStatus picks the status filter: active by default, "all" lifts
// the filter entirely (staff inventory view).
func listingStatus(c *gin.Context) string {
	status := c.Query("status")
	switch status {
	case "":
		return models.ItemStatusActive
	case "all":
		return ""
	}
	return status
}

// GetLostItem handles GET /api/items/lost/:id.
func (h *Handler) GetLostItem(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	item, err := h.Items.GetLost(id)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, item)
}

// GetFoundItem handles GET /api/items/found/:id.
func (h *Handler) GetFoundItem(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	item, err := h.Items.GetFound(id)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, item)
}

// UpdateLostItemStatus handles PUT /api/items/lost/:id/status (staff).
func (h *Handler) UpdateLostItemStatus(c *gin.Context) {
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
	item, err := h.Items.UpdateLostStatus(id, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, item)
}

// UpdateFoundItemStatus handles PUT /api/items/found/:id/status (staff).
func (h *Handler) UpdateFoundItemStatus(c *gin.Context) {
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
	item, err := h.Items.UpdateFoundStatus(id, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, item)
}
