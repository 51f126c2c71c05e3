package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/seekwell-app/seekwell/internal/auth"
	"github.com/seekwell-app/seekwell/internal/automation"
	"github.com/seekwell-app/seekwell/internal/dtos"
	"github.com/seekwell-app/seekwell/internal/models"
	"github.com/seekwell-app/seekwell/internal/services"
)

type ApplicationHandler struct {
	Applications *services.ApplicationService
	Resumes      *services.ResumeService
}

func NewApplicationHandler(apps *services.ApplicationService, resumes *services.ResumeService) *ApplicationHandler {
	return &ApplicationHandler{Applications: apps, Resumes: resumes}
}

// Create is POST /applications: save a job for the current user.
func (h *ApplicationHandler) Create(c *gin.Context) {
	var req dtos.ApplicationCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	app, err := h.Applications.Create(c.Request.Context(), auth.UserID(c), req.JobID, req.ResumeID, req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
		case errors.Is(err, services.ErrDuplicateApplication):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create application"})
		}
		return
	}
	c.JSON(http.StatusCreated, app)
}

// List is GET /applications.
func (h *ApplicationHandler) List(c *gin.Context) {
	apps, err := h.Applications.List(c.Request.Context(), auth.UserID(c), c.Query("status"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list applications"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"applications": apps})
}

// Get is GET /applications/:id.
func (h *ApplicationHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	app, err := h.Applications.Get(c.Request.Context(), auth.UserID(c), id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "application not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load application"})
		return
	}
	c.JSON(http.StatusOK, app)
}

// UpdateStatus is PATCH /applications/:id/status.
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req dtos.ApplicationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	next := models.ApplicationStatus(req.Status)
	if !next.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status: " + req.Status})
		return
	}

	app, err := h.Applications.UpdateStatus(c.Request.Context(), auth.UserID(c), id, next, req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "application not found"})
		case errors.Is(err, services.ErrInvalidTransition):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update status"})
		}
		return
	}
	c.JSON(http.StatusOK, app)
}

// RecordUpdate is POST /applications/:id/updates: paste in a recruiter email
// or portal notification and let the classifier move the status.
func (h *ApplicationHandler) RecordUpdate(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req dtos.ApplicationUpdateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	app, err := h.Applications.RecordUpdate(c.Request.Context(), auth.UserID(c), id, req.Subject, req.Body)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "application not found"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "classification failed"})
		return
	}
	c.JSON(http.StatusOK, app)
}

// Submit is POST /applications/:id/submit: hand the application to the
// automation service.
func (h *ApplicationHandler) Submit(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	// The body is optional; submitting without a resume is allowed.
	var req dtos.ApplicationSubmitRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
			return
		}
	}

	resumeURL := ""
	if req.ResumeID != nil {
		resume, err := h.Resumes.Get(c.Request.Context(), auth.UserID(c), *req.ResumeID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "resume not found"})
			return
		}
		// The object key doubles as the resume reference the automation
		// service fetches by.
		resumeURL = resume.ObjectKey
	}

	app, err := h.Applications.Submit(c.Request.Context(), auth.UserID(c), id, resumeURL)
	if err != nil {
		var missing *automation.MissingFieldsError
		switch {
		case errors.Is(err, services.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "application not found"})
		case errors.Is(err, services.ErrInvalidTransition):
			c.JSON(http.StatusConflict, gin.H{"error": "only saved applications can be submitted"})
		case errors.Is(err, services.ErrNoProfile):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "complete your profile before submitting"})
		case errors.As(err, &missing):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":          "automation could not fill all form fields",
				"missing_fields": missing.Fields,
			})
		default:
			c.JSON(http.StatusBadGateway, gin.H{"error": "automation submission failed"})
		}
		return
	}
	c.JSON(http.StatusOK, app)
}

// Events is GET /applications/:id/events.
func (h *ApplicationHandler) Events(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	events, err := h.Applications.Events(c.Request.Context(), auth.UserID(c), id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "application not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load events"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}
