package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/seekwell-app/seekwell/internal/auth"
	"github.com/seekwell-app/seekwell/internal/services"
)

type DigestHandler struct {
	Digests *services.DigestService
}

func NewDigestHandler(digests *services.DigestService) *DigestHandler {
	return &DigestHandler{Digests: digests}
}

// List is GET /digests: the current user's digest history.
func (h *DigestHandler) List(c *gin.Context) {
	digests, err := h.Digests.List(c.Request.Context(), auth.UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list digests"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"digests": digests})
}

// Preview is POST /digests/preview: build the next digest without sending
// it or advancing the window.
func (h *DigestHandler) Preview(c *gin.Context) {
	preview, err := h.Digests.Preview(c.Request.Context(), auth.UserID(c))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build digest"})
		return
	}
	c.JSON(http.StatusOK, preview)
}
