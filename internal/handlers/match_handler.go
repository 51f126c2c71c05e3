package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/seekwell-app/seekwell/internal/auth"
	"github.com/seekwell-app/seekwell/internal/services"
)

type MatchHandler struct {
	Matches *services.MatchService
}

func NewMatchHandler(matches *services.MatchService) *MatchHandler {
	return &MatchHandler{Matches: matches}
}

// List is GET /matches: ranked active jobs for the current user.
func (h *MatchHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	ranked, err := h.Matches.MatchesForUser(c.Request.Context(), auth.UserID(c), limit)
	if err != nil {
		if errors.Is(err, services.ErrNoProfile) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "add a profile or skills before requesting matches"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "matching failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"matches": ranked})
}
