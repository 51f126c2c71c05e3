package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/seekwell-app/seekwell/internal/auth"
	"github.com/seekwell-app/seekwell/internal/services"
	"github.com/seekwell-app/seekwell/internal/textextract"
)

type ResumeHandler struct {
	Resumes *services.ResumeService
}

func NewResumeHandler(resumes *services.ResumeService) *ResumeHandler {
	return &ResumeHandler{Resumes: resumes}
}

// Upload is POST /resumes, multipart with a "file" part.
func (h *ResumeHandler) Upload(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file upload"})
		return
	}

	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read upload"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read upload"})
		return
	}

	contentType := header.Header.Get("Content-Type")
	resume, err := h.Resumes.Upload(c.Request.Context(), auth.UserID(c), header.Filename, contentType, data)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnsupportedFileType):
			c.JSON(http.StatusUnsupportedMediaType, gin.H{
				"error":     err.Error(),
				"supported": textextract.SupportedTypes(),
			})
		case errors.Is(err, services.ErrFileTooLarge):
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store resume"})
		}
		return
	}
	c.JSON(http.StatusAccepted, resume)
}

// List is GET /resumes.
func (h *ResumeHandler) List(c *gin.Context) {
	resumes, err := h.Resumes.List(c.Request.Context(), auth.UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list resumes"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"resumes": resumes})
}

// Get is GET /resumes/:id: parse status plus the parsed profile once ready.
func (h *ResumeHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	resume, err := h.Resumes.Get(c.Request.Context(), auth.UserID(c), id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "resume not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load resume"})
		return
	}
	c.JSON(http.StatusOK, resume)
}
