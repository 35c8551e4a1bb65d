// Package handler wires the HTTP API. Handlers bind and validate input,
// call into the services and translate failures through the apperr status
// mapping. Every response uses the same envelope:
// {"success": true, "data": ...} or {"success": false, "message": ...}.
package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Harukino1/ReturnHub/internal/apperr"
	"github.com/Harukino1/ReturnHub/internal/chathub"
	"github.com/Harukino1/ReturnHub/internal/objectstore"
	"github.com/Harukino1/ReturnHub/internal/service"
)

type Handler struct {
	Hub           *chathub.ManagerService
	Users         *service.UserService
	Staff         *service.StaffService
	Reports       *service.ReportService
	Claims        *service.ClaimService
	Items         *service.ItemService
	Conversations *service.ConversationService
	Notifications *service.NotificationService
	Uploads       *objectstore.Client

	jwtSecret []byte
}

func NewHandler(
	hub *chathub.ManagerService,
	users *service.UserService,
	staff *service.StaffService,
	reports *service.ReportService,
	claims *service.ClaimService,
	items *service.ItemService,
	conversations *service.ConversationService,
	notifications *service.NotificationService,
	uploads *objectstore.Client,
	jwtSecret string,
) *Handler {
	return &Handler{
		Hub:           hub,
		Users:         users,
		Staff:         staff,
		Reports:       reports,
		Claims:        claims,
		Items:         items,
		Conversations: conversations,
		Notifications: notifications,
		Uploads:       uploads,
		jwtSecret:     []byte(jwtSecret),
	}
}

func respond(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

func respondError(c *gin.Context, err error) {
	status := apperr.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		zap.S().Errorw("request failed", "path", c.FullPath(), "err", err)
		c.JSON(status, gin.H{"success": false, "message": "internal server error"})
		return
	}
	c.JSON(status, gin.H{"success": false, "message": err.Error()})
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": message})
}

// uintParam parses a numeric path parameter, answering 400 itself on
// failure. The boolean tells the caller whether to continue.
func uintParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		badRequest(c, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}
