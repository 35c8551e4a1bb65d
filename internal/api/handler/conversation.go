package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Harukino1/ReturnHub/internal/apperr"
)

const defaultRecentMessages = 50

// OpenConversation handles POST /api/conversations (user). With a staffId
// in the body the pair is explicit; without one a staff member is assigned
// automatically.
func (h *Handler) OpenConversation(c *gin.Context) {
	var req struct {
		StaffID uint `json:"staffId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		badRequest(c, "invalid request body")
		return
	}
	userID := principalID(c)
	var err error
	var conv any
	if req.StaffID != 0 {
		conv, err = h.Conversations.GetOrCreate(userID, req.StaffID)
	} else {
		conv, err = h.Conversations.GetOrCreateAuto(userID)
	}
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, conv)
}

// ListConversations handles GET /api/conversations for either principal.
func (h *Handler) ListConversations(c *gin.Context) {
	var (
		convs any
		err   error
	)
	if principalType(c) == principalStaff {
		convs, err = h.Conversations.ListForStaff(principalID(c))
	} else {
		convs, err = h.Conversations.ListForUser(principalID(c))
	}
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, convs)
}

// GetConversation handles GET /api/conversations/:id.
func (h *Handler) GetConversation(c *gin.Context) {
	id, ok := h.conversationForParty(c)
	if !ok {
		return
	}
	conv, err := h.Conversations.GetByID(id)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, conv)
}

// ListMessages handles GET /api/conversations/:id/messages.
func (h *Handler) ListMessages(c *gin.Context) {
	id, ok := h.conversationForParty(c)
	if !ok {
		return
	}
	msgs, err := h.Conversations.Messages(id)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, msgs)
}

// ListRecentMessages handles GET /api/conversations/:id/messages/recent?limit=.
func (h *Handler) ListRecentMessages(c *gin.Context) {
	id, ok := h.conversationForParty(c)
	if !ok {
		return
	}
	limit := defaultRecentMessages
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	msgs, err := h.Conversations.RecentMessages(id, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, msgs)
}

// SendMessage handles POST /api/conversations/:id/messages.
func (h *Handler) SendMessage(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var req struct {
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	msg, err := h.Conversations.SendMessage(id, senderType(c), principalID(c), req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, msg)
}

// MarkConversationRead handles PUT /api/conversations/:id/read.
func (h *Handler) MarkConversationRead(c *gin.Context) {
	id, ok := h.conversationForParty(c)
	if !ok {
		return
	}
	if err := h.Conversations.MarkRead(id, senderType(c)); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"read": true})
}

// UnreadMessageCount handles GET /api/conversations/:id/unread.
func (h *Handler) UnreadMessageCount(c *gin.Context) {
	id, ok := h.conversationForParty(c)
	if !ok {
		return
	}
	count, err := h.Conversations.UnreadCount(id, senderType(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"unreadCount": count})
}

// GetMessage handles GET /api/messages/:id.
func (h *Handler) GetMessage(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	msg, err := h.Conversations.GetMessage(id)
	if err != nil {
		respondError(c, err)
		return
	}
	conv, err := h.Conversations.CanAccess(msg.ConversationID, senderType(c), principalID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	if !conv {
		respondError(c, apperr.NotFound("message %d not found", id))
		return
	}
	respond(c, http.StatusOK, msg)
}

// MarkMessageRead handles PUT /api/messages/:id/read.
func (h *Handler) MarkMessageRead(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	if err := h.Conversations.MarkMessageRead(id); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"read": true})
}

// DeleteMessage handles DELETE /api/messages/:id (staff moderation). The
// message body is blanked, the row stays.
func (h *Handler) DeleteMessage(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	if err := h.Conversations.DeleteMessage(id); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"deleted": true})
}

// conversationForParty parses the :id parameter and confirms the caller is
// a party to that conversation.
func (h *Handler) conversationForParty(c *gin.Context) (uint, bool) {
	id, ok := uintParam(c, "id")
	if !ok {
		return 0, false
	}
	allowed, err := h.Conversations.CanAccess(id, senderType(c), principalID(c))
	if err != nil {
		respondError(c, err)
		return 0, false
	}
	if !allowed {
		respondError(c, apperr.NotFound("conversation %d not found", id))
		return 0, false
	}
	return id, true
}
