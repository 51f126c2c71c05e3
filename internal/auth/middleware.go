package auth

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/seekwell-app/seekwell/internal/models"
)

// ContextUserID is the gin context key the middleware sets for handlers.
const ContextUserID = "user_id"

// tokenLookup fetches a token row by its hash.
type tokenLookup func(hash string) (*models.APIToken, error)

// Middleware authenticates requests by bearer API token. On success the
// user ID lands in the gin context under ContextUserID.
func Middleware(db *gorm.DB) gin.HandlerFunc {
	lookup := func(hash string) (*models.APIToken, error) {
		var token models.APIToken
		if err := db.Where("token_hash = ?", hash).First(&token).Error; err != nil {
			return nil, err
		}
		return &token, nil
	}
	touch := func(token *models.APIToken) {
		// Best effort; a failed touch must not fail the request.
		now := time.Now()
		db.Model(token).Update("last_used_at", &now)
	}
	return middleware(lookup, touch)
}

func middleware(lookup tokenLookup, touch func(*models.APIToken)) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		token, err := lookup(HashToken(raw))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		if time.Now().After(token.ExpiresAt) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token expired"})
			return
		}

		touch(token)

		c.Set(ContextUserID, token.UserID)
		c.Next()
	}
}

// UserID pulls the authenticated user out of the gin context.
func UserID(c *gin.Context) uint {
	v, _ := c.Get(ContextUserID)
	id, _ := v.(uint)
	return id
}
