package handler

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/Harukino1/ReturnHub/internal/apperr"
	"github.com/Harukino1/ReturnHub/internal/models"
)

// Principal types carried in the token.
const (
	principalUser  = "user"
	principalStaff = "staff"
)

// Context keys set by the auth middleware.
const (
	ctxPrincipalType = "principalType"
	ctxPrincipalID   = "principalID"
	ctxRole          = "role"
)

const tokenTTL = 72 * time.Hour

func (h *Handler) issueToken(principalType string, id uint, role string) (string, error) {
	claims := jwt.MapClaims{
		"sub": fmt.Sprintf("%d", id),
		"typ": principalType,
		"exp": time.Now().Add(tokenTTL).Unix(),
		"iss": "returnhub",
	}
	if role != "" {
		claims["role"] = role
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(h.jwtSecret)
}

// parseToken validates the signature and expiry and returns
// (principalType, id, role).
func (h *Handler) parseToken(tokenString string) (string, uint, string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return h.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return "", 0, "", apperr.Unauthorized("invalid or expired token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", 0, "", apperr.Unauthorized("invalid token claims")
	}
	sub, _ := claims["sub"].(string)
	typ, _ := claims["typ"].(string)
	role, _ := claims["role"].(string)
	var id uint
	if _, err := fmt.Sscanf(sub, "%d", &id); err != nil || id == 0 {
		return "", 0, "", apperr.Unauthorized("invalid token subject")
	}
	if typ != principalUser && typ != principalStaff {
		return "", 0, "", apperr.Unauthorized("invalid token principal")
	}
	return typ, id, role, nil
}

// bearerToken pulls the token from the Authorization header, falling back
// to the token query parameter for WebSocket handshakes.
func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return c.Query("token")
}

// RequireAuth accepts any authenticated principal.
func (h *Handler) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			respondError(c, apperr.Unauthorized("authorization token missing"))
			c.Abort()
			return
		}
		typ, id, role, err := h.parseToken(tokenString)
		if err != nil {
			respondError(c, err)
			c.Abort()
			return
		}
		c.Set(ctxPrincipalType, typ)
		c.Set(ctxPrincipalID, id)
		c.Set(ctxRole, role)
	}
}

// RequireUser accepts only user tokens.
func (h *Handler) RequireUser() gin.HandlerFunc {
	return h.requireType(principalUser)
}

// RequireStaff accepts only staff tokens (any role).
func (h *Handler) RequireStaff() gin.HandlerFunc {
	return h.requireType(principalStaff)
}

// RequireAdmin accepts only staff tokens carrying the ADMIN role.
func (h *Handler) RequireAdmin() gin.HandlerFunc {
	base := h.requireType(principalStaff)
	return func(c *gin.Context) {
		base(c)
		if c.IsAborted() {
			return
		}
		if c.GetString(ctxRole) != models.RoleAdmin {
			respondError(c, apperr.Unauthorized("admin role required"))
			c.Abort()
		}
	}
}

func (h *Handler) requireType(principalType string) gin.HandlerFunc {
	auth := h.RequireAuth()
	return func(c *gin.Context) {
		auth(c)
		if c.IsAborted() {
			return
		}
		if c.GetString(ctxPrincipalType) != principalType {
			respondError(c, apperr.Unauthorized("%s access required", principalType))
			c.Abort()
		}
	}
}

func principalID(c *gin.Context) uint {
	return c.GetUint(ctxPrincipalID)
}

func principalType(c *gin.Context) string {
	return c.GetString(ctxPrincipalType)
}

// senderType maps the token principal type onto a message sender type.
func senderType(c *gin.Context) string {
	if principalType(c) == principalStaff {
		return models.SenderTypeStaff
	}
	return models.SenderTypeUser
}
