package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/seekwell-app/seekwell/internal/dtos"
	"github.com/seekwell-app/seekwell/internal/queue"
	"github.com/seekwell-app/seekwell/internal/services"
)

type JobHandler struct {
	Jobs  *services.JobService
	Queue services.Publisher
}

func NewJobHandler(jobs *services.JobService, q services.Publisher) *JobHandler {
	return &JobHandler{Jobs: jobs, Queue: q}
}

// Extract is POST /jobs/extract: run the extraction and return the preview
// without persisting.
func (h *JobHandler) Extract(c *gin.Context) {
	var req dtos.JobExtractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	extraction, err := h.Jobs.Extract(c.Request.Context(), req.RawContent)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "extraction failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"extraction": extraction,
		"confidence": extraction.Confidence,
	})
}

// Create is POST /jobs: persist a manually entered posting.
func (h *JobHandler) Create(c *gin.Context) {
	var req dtos.JobCreationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	job, err := h.Jobs.CreateFromRequest(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create job"})
		return
	}
	c.JSON(http.StatusCreated, job)
}

// Ingest is POST /jobs/ingest: enqueue a raw posting for the worker. With no
// broker wired, extraction runs inline.
func (h *JobHandler) Ingest(c *gin.Context) {
	var req dtos.JobIngestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	if h.Queue != nil {
		err := h.Queue.Publish(c.Request.Context(), queue.QueueJobIngest, queue.JobIngestTask{
			SourceURL:      req.SourceURL,
			SourcePlatform: req.SourcePlatform,
			RawContent:     req.RawContent,
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to enqueue ingest"})
			return
		}
		c.JSON(http.StatusAccepted, gin.H{"status": "queued", "source_url": req.SourceURL})
		return
	}

	extraction, err := h.Jobs.Extract(c.Request.Context(), req.RawContent)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "extraction failed: " + err.Error()})
		return
	}
	job, err := h.Jobs.IngestExtraction(c.Request.Context(), extraction,
		req.SourceURL, req.SourcePlatform, services.MarshalExtraction(extraction))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to ingest job"})
		return
	}
	c.JSON(http.StatusCreated, job)
}

// List is GET /jobs.
func (h *JobHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	jobs, err := h.Jobs.List(c.Request.Context(), c.Query("status"), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list jobs"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobs": jobs})
}

// Get is GET /jobs/:id.
func (h *JobHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	job, err := h.Jobs.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load job"})
		return
	}
	c.JSON(http.StatusOK, job)
}

// Delete is DELETE /jobs/:id.
func (h *JobHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := h.Jobs.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete job"})
		return
	}
	c.Status(http.StatusNoContent)
}

// pathID parses the :id path parameter.
func pathID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	return uint(id), err
}
