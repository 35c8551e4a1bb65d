package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/Harukino1/ReturnHub/internal/apperr"
	"github.com/Harukino1/ReturnHub/internal/chathub"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origin checking happens at the CORS layer; the token is what gates
	// the upgrade.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWebSocket handles GET /ws. The token comes from the Authorization
// header or the token query parameter (browsers cannot set headers on
// WebSocket handshakes).
func (h *Handler) ServeWebSocket(c *gin.Context) {
	tokenString := bearerToken(c)
	if tokenString == "" {
		respondError(c, apperr.Unauthorized("authorization token missing"))
		return
	}
	typ, id, _, err := h.parseToken(tokenString)
	if err != nil {
		respondError(c, err)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		zap.S().Warnw("websocket upgrade failed", "err", err)
		return
	}

	principal := fmt.Sprintf("%s/%d", typ, id)
	client := chathub.NewWebSocketClient(principal, conn, h.Hub)
	h.Hub.RegisterCh <- client
	client.Run()
}
