package handlers

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/seekwell-app/seekwell/internal/auth"
)

// Handlers bundles the per-resource handlers for route registration.
type Handlers struct {
	Auth         *AuthHandler
	Users        *UserHandler
	Jobs         *JobHandler
	Matches      *MatchHandler
	Applications *ApplicationHandler
	Resumes      *ResumeHandler
	Digests      *DigestHandler
}

// NewRouter builds the gin engine with CORS and all /api/v1 routes.
// Everything except health and auth sits behind the bearer middleware.
func NewRouter(db *gorm.DB, h Handlers) *gin.Engine {
	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	api := r.Group("/api/v1")

	api.GET("/health", HealthCheck)
	api.POST("/auth/register", h.Auth.Register)
	api.POST("/auth/login", h.Auth.Login)

	protected := api.Group("")
	protected.Use(auth.Middleware(db))
	{
		protected.GET("/users/me", h.Users.Me)
		protected.PUT("/users/me", h.Users.UpdateMe)
		protected.GET("/users/me/profile", h.Users.Profile)
		protected.PUT("/users/me/profile", h.Users.UpdateProfile)
		protected.PUT("/users/me/skills", h.Users.ReplaceSkills)
		protected.PUT("/users/me/digest-preferences", h.Users.UpdateDigestPreferences)

		protected.POST("/jobs/extract", h.Jobs.Extract)
		protected.POST("/jobs", h.Jobs.Create)
		protected.POST("/jobs/ingest", h.Jobs.Ingest)
		protected.GET("/jobs", h.Jobs.List)
		protected.GET("/jobs/:id", h.Jobs.Get)
		protected.DELETE("/jobs/:id", h.Jobs.Delete)

		protected.GET("/matches", h.Matches.List)

		protected.POST("/applications", h.Applications.Create)
		protected.GET("/applications", h.Applications.List)
		protected.GET("/applications/:id", h.Applications.Get)
		protected.PATCH("/applications/:id/status", h.Applications.UpdateStatus)
		protected.POST("/applications/:id/updates", h.Applications.RecordUpdate)
		protected.POST("/applications/:id/submit", h.Applications.Submit)
		protected.GET("/applications/:id/events", h.Applications.Events)

		protected.POST("/resumes", h.Resumes.Upload)
		protected.GET("/resumes", h.Resumes.List)
		protected.GET("/resumes/:id", h.Resumes.Get)

		protected.GET("/digests", h.Digests.List)
		protected.POST("/digests/preview", h.Digests.Preview)
	}

	return r
}

// HealthCheck is GET /health.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
