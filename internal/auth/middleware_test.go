package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/seekwell-app/seekwell/internal/models"
)

func middlewareTestRouter(lookup tokenLookup) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware(lookup, func(*models.APIToken) {}))
	r.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": UserID(c)})
	})
	return r
}

func TestMiddlewareRejectsBadTokens(t *testing.T) {
	raw, hash, err := GenerateToken()
	require.NoError(t, err)

	valid := &models.APIToken{
		UserID:    42,
		TokenHash: hash,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	r := middlewareTestRouter(func(h string) (*models.APIToken, error) {
		if h == valid.TokenHash {
			return valid, nil
		}
		return nil, gorm.ErrRecordNotFound
	})

	cases := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"wrong scheme", "Basic " + raw},
		{"empty bearer", "Bearer "},
		{"unknown token", "Bearer sk_nobody"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "42")
}

func TestMiddlewareRejectsExpiredToken(t *testing.T) {
	raw, hash, err := GenerateToken()
	require.NoError(t, err)

	expired := &models.APIToken{
		UserID:    7,
		TokenHash: hash,
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	r := middlewareTestRouter(func(h string) (*models.APIToken, error) {
		return expired, nil
	})

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "token expired")
}
