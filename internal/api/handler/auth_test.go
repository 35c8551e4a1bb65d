package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/Harukino1/ReturnHub/internal/models"
)

func newTestHandler() *Handler {
	return &Handler{jwtSecret: []byte("test-secret")}
}

func TestTokenRoundTrip(t *testing.T) {
	h := newTestHandler()

	token, err := h.issueToken(principalStaff, 2, models.RoleAdmin)
	assert.NoError(t, err)

	typ, id, role, err := h.parseToken(token)
	assert.NoError(t, err)
	assert.Equal(t, principalStaff, typ)
	assert.Equal(t, uint(2), id)
	assert.Equal(t, models.RoleAdmin, role)
}

func TestParseTokenRejectsForeignSecret(t *testing.T) {
	h := newTestHandler()
	other := &Handler{jwtSecret: []byte("different-secret")}

	token, err := other.issueToken(principalUser, 7, "")
	assert.NoError(t, err)

	_, _, _, err = h.parseToken(token)
	assert.Error(t, err)

	_, _, _, err = h.parseToken("not-a-token")
	assert.Error(t, err)
}

func runMiddleware(h *Handler, mw gin.HandlerFunc, authHeader string) (*httptest.ResponseRecorder, *gin.Context) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		c.Request.Header.Set("Authorization", authHeader)
	}
	mw(c)
	return w, c
}

func TestRequireUserAcceptsUserToken(t *testing.T) {
	h := newTestHandler()
	token, _ := h.issueToken(principalUser, 7, "")

	_, c := runMiddleware(h, h.RequireUser(), "Bearer "+token)

	assert.False(t, c.IsAborted())
	assert.Equal(t, uint(7), principalID(c))
	assert.Equal(t, models.SenderTypeUser, senderType(c))
}

func TestRequireUserRejectsStaffToken(t *testing.T) {
	h := newTestHandler()
	token, _ := h.issueToken(principalStaff, 2, models.RoleStaff)

	w, c := runMiddleware(h, h.RequireUser(), "Bearer "+token)

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAdminRejectsPlainStaff(t *testing.T) {
	h := newTestHandler()
	token, _ := h.issueToken(principalStaff, 2, models.RoleStaff)

	w, c := runMiddleware(h, h.RequireAdmin(), "Bearer "+token)

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAdminAcceptsAdmin(t *testing.T) {
	h := newTestHandler()
	token, _ := h.issueToken(principalStaff, 1, models.RoleAdmin)

	_, c := runMiddleware(h, h.RequireAdmin(), "Bearer "+token)

	assert.False(t, c.IsAborted())
}

func TestRequireAuthMissingToken(t *testing.T) {
	h := newTestHandler()

	w, c := runMiddleware(h, h.RequireAuth(), "")

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
