package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/seekwell-app/seekwell/internal/auth"
	"github.com/seekwell-app/seekwell/internal/dtos"
	"github.com/seekwell-app/seekwell/internal/services"
)

type UserHandler struct {
	Users *services.UserService
}

func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{Users: users}
}

// Me is GET /users/me.
func (h *UserHandler) Me(c *gin.Context) {
	user, err := h.Users.Get(c.Request.Context(), auth.UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load user"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateMe is PUT /users/me: account-level fields.
func (h *UserHandler) UpdateMe(c *gin.Context) {
	var req dtos.AccountUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	user, err := h.Users.UpdateEmail(c.Request.Context(), auth.UserID(c), req.Email)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update account"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// Profile is GET /users/me/profile.
func (h *UserHandler) Profile(c *gin.Context) {
	user, err := h.Users.Get(c.Request.Context(), auth.UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load profile"})
		return
	}
	if user.Profile == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no profile yet"})
		return
	}
	c.JSON(http.StatusOK, user.Profile)
}

// UpdateProfile is PUT /users/me/profile.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req dtos.ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	profile, err := h.Users.UpdateProfile(c.Request.Context(), auth.UserID(c), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update profile"})
		return
	}
	c.JSON(http.StatusOK, profile)
}

// ReplaceSkills is PUT /users/me/skills.
func (h *UserHandler) ReplaceSkills(c *gin.Context) {
	var req dtos.SkillsUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	skills, err := h.Users.ReplaceSkills(c.Request.Context(), auth.UserID(c), req.Skills)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update skills"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"skills": skills})
}

// UpdateDigestPreferences is PUT /users/me/digest-preferences.
func (h *UserHandler) UpdateDigestPreferences(c *gin.Context) {
	var req dtos.DigestPreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	err := h.Users.UpdateDigestPreferences(c.Request.Context(), auth.UserID(c), req.Frequency)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update digest preferences"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"digest_frequency": req.Frequency})
}
