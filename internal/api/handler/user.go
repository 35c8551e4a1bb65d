package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Harukino1/ReturnHub/internal/service"
)

// RegisterUser handles POST /api/users/register.
func (h *Handler) RegisterUser(c *gin.Context) {
	var req service.RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	user, err := h.Users.Register(req)
	if err != nil {
		respondError(c, err)
		return
	}
	token, err := h.issueToken(principalUser, user.ID, "")
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, gin.H{"token": token, "user": user})
}

// LoginUser handles POST /api/users/login.
func (h *Handler) LoginUser(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	user, err := h.Users.Login(req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	token, err := h.issueToken(principalUser, user.ID, "")
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"token": token, "user": user})
}

// CurrentUser handles GET /api/users/me.
func (h *Handler) CurrentUser(c *gin.Context) {
	user, err := h.Users.GetByID(principalID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, user)
}

// UpdateCurrentUser handles PUT /api/users/me.
func (h *Handler) UpdateCurrentUser(c *gin.Context) {
	var req struct {
		Name         string `json:"name"`
		Phone        string `json:"phone"`
		ProfileImage string `json:"profileImage"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	user, err := h.Users.UpdateProfile(principalID(c), req.Name, req.Phone, req.ProfileImage)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, user)
}

// ChangeUserPassword handles PUT /api/users/me/password.
func (h *Handler) ChangeUserPassword(c *gin.Context) {
	var req struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	if err := h.Users.ChangePassword(principalID(c), req.CurrentPassword, req.NewPassword); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"updated": true})
}

// ListUsers handles GET /api/admin/users.
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.Users.List()
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, users)
}

// DeleteUser handles DELETE /api/admin/users/:id.
func (h *Handler) DeleteUser(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	if err := h.Users.Delete(id); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"deleted": true})
}
