package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ListNotifications handles GET /api/notifications?limit= (user).
func (h *Handler) ListNotifications(c *gin.Context) {
	userID := principalID(c)
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			badRequest(c, "invalid limit")
			return
		}
		list, err := h.Notifications.ListRecentForUser(userID, limit)
		if err != nil {
			respondError(c, err)
			return
		}
		respond(c, http.StatusOK, list)
		return
	}
	list, err := h.Notifications.ListForUser(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, list)
}

// UnreadNotificationCount handles GET /api/notifications/unread-count.
func (h *Handler) UnreadNotificationCount(c *gin.Context) {
	count, err := h.Notifications.UnreadCount(principalID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"unreadCount": count})
}

// MarkNotificationRead handles PUT /api/notifications/:id/read.
func (h *Handler) MarkNotificationRead(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	if err := h.Notifications.MarkRead(id, principalID(c)); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"read": true})
}

// MarkAllNotificationsRead handles PUT /api/notifications/read-all.
func (h *Handler) MarkAllNotificationsRead(c *gin.Context) {
	if err := h.Notifications.MarkAllRead(principalID(c)); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"read": true})
}

// DeleteNotification handles DELETE /api/notifications/:id.
func (h *Handler) DeleteNotification(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	if err := h.Notifications.Delete(id, principalID(c)); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"deleted": true})
}

// ClearNotifications handles DELETE /api/notifications.
func (h *Handler) ClearNotifications(c *gin.Context) {
	if err := h.Notifications.Clear(principalID(c)); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"cleared": true})
}
