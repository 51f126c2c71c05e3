package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/seekwell-app/seekwell/internal/ai"
	"github.com/seekwell-app/seekwell/internal/dtos"
	"github.com/seekwell-app/seekwell/internal/models"
	"github.com/seekwell-app/seekwell/internal/retry"
	"github.com/seekwell-app/seekwell/internal/vectorindex"
)

// JobService owns posting extraction, ingestion and the vector index sync.
type JobService struct {
	DB            *gorm.DB
	AI            ai.Provider
	Index         vectorindex.Index
	MinConfidence float64
	logger        *slog.Logger
}

func NewJobService(db *gorm.DB, provider ai.Provider, index vectorindex.Index, minConfidence float64) *JobService {
	return &JobService{
		DB:            db,
		AI:            provider,
		Index:         index,
		MinConfidence: minConfidence,
		logger:        slog.Default().With("component", "job-service"),
	}
}

// Extract runs the LLM extraction and returns the structured preview
// without persisting anything. Transient provider failures are retried
// with backoff.
func (s *JobService) Extract(ctx context.Context, rawContent string) (*ai.ExtractedJob, error) {
	return retry.Do(ctx, 3, time.Second, func() (*ai.ExtractedJob, error) {
		return s.AI.Extractor().ExtractJob(ctx, rawContent)
	})
}

// CreateFromRequest persists a manually entered posting. Manual entry is
// trusted: confidence 1, status active.
func (s *JobService) CreateFromRequest(ctx context.Context, req *dtos.JobCreationRequest) (*models.Job, error) {
	extraction := &ai.ExtractedJob{
		Company:          req.CompanyName,
		Title:            req.Title,
		Location:         req.Location,
		Remote:           req.Remote,
		Description:      req.Description,
		SalaryMin:        req.SalaryMin,
		SalaryMax:        req.SalaryMax,
		Currency:         req.Currency,
		RequiredSkills:   req.RequiredSkills,
		NiceToHaveSkills: req.NiceToHaveSkills,
		Confidence:       1,
	}
	return s.IngestExtraction(ctx, extraction, req.SourceURL, req.SourcePlatform, nil)
}

// IngestExtraction upserts a job by source URL from an extraction result.
// Postings under the confidence threshold land in draft for review; active
// jobs get embedded and pushed to the vector index.
func (s *JobService) IngestExtraction(ctx context.Context, extraction *ai.ExtractedJob, sourceURL, platform string, rawJSON []byte) (*models.Job, error) {
	var company models.Company
	err := s.DB.WithContext(ctx).
		Where(models.Company{Name: extraction.Company}).
		FirstOrCreate(&company).Error
	if err != nil {
		return nil, err
	}

	status := models.JobStatusActive
	if extraction.Confidence < s.MinConfidence {
		status = models.JobStatusDraft
	}

	job := models.Job{SourceURL: sourceURL}
	err = s.DB.WithContext(ctx).Where(models.Job{SourceURL: sourceURL}).First(&job).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	job.CompanyID = company.ID
	job.Title = extraction.Title
	job.Description = extraction.Description
	job.Location = extraction.Location
	job.Remote = extraction.Remote
	job.SalaryMin = extraction.SalaryMin
	job.SalaryMax = extraction.SalaryMax
	job.Currency = extraction.Currency
	job.SourcePlatform = platform
	job.Status = status
	job.ExtractionConfidence = extraction.Confidence
	job.RawExtraction = models.JSONText(rawJSON)
	job.ContentHash = contentHash(extraction.Title, extraction.Description)
	if t, ok := parsePostedAt(extraction.PostedAt); ok {
		job.PostedAt = &t
	}

	if err := s.DB.WithContext(ctx).Save(&job).Error; err != nil {
		return nil, err
	}

	if err := s.syncSkills(ctx, job.ID, extraction); err != nil {
		return nil, err
	}

	if job.Status == models.JobStatusActive {
		if err := s.IndexJob(ctx, &job); err != nil {
			// Indexing is repairable via reindex; the upsert stands.
			s.logger.Error("failed to index job", "job_id", job.ID, "err", err)
		}
	}

	s.logger.Info("ingested job",
		"job_id", job.ID,
		"title", job.Title,
		"status", job.Status,
		"confidence", job.ExtractionConfidence)
	return &job, nil
}

// IndexJob embeds the posting and upserts its point, then stamps IndexedAt.
// Both external calls retry with backoff.
func (s *JobService) IndexJob(ctx context.Context, job *models.Job) error {
	vector, err := retry.Do(ctx, 3, time.Second, func() ([]float32, error) {
		return s.AI.Embedder().EmbedText(ctx, JobText(job))
	})
	if err != nil {
		return err
	}

	_, err = retry.Do(ctx, 3, time.Second, func() (struct{}, error) {
		return struct{}{}, s.Index.UpsertJobs(ctx, []vectorindex.JobPoint{{
			JobID:    job.ID,
			Vector:   vector,
			Remote:   job.Remote,
			Location: job.Location,
		}})
	})
	if err != nil {
		return err
	}

	now := time.Now()
	job.IndexedAt = &now
	return s.DB.WithContext(ctx).Model(job).Update("indexed_at", &now).Error
}

// ReindexAll re-embeds every active job. Used by the admin CLI after
// changing the embedding model.
func (s *JobService) ReindexAll(ctx context.Context) (int, error) {
	var jobs []models.Job
	if err := s.DB.WithContext(ctx).Where("status = ?", models.JobStatusActive).Find(&jobs).Error; err != nil {
		return 0, err
	}
	indexed := 0
	for i := range jobs {
		if err := s.IndexJob(ctx, &jobs[i]); err != nil {
			s.logger.Error("reindex failed", "job_id", jobs[i].ID, "err", err)
			continue
		}
		indexed++
	}
	return indexed, nil
}

// List returns jobs newest first, optionally filtered by status.
func (s *JobService) List(ctx context.Context, status string, limit int) ([]models.Job, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	q := s.DB.WithContext(ctx).Preload("Company").Order("created_at desc").Limit(limit)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var jobs []models.Job
	if err := q.Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

// Get loads one job with company and skills.
func (s *JobService) Get(ctx context.Context, id uint) (*models.Job, error) {
	var job models.Job
	err := s.DB.WithContext(ctx).
		Preload("Company").
		Preload("Skills.Skill").
		First(&job, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// Delete removes the job and its index point.
func (s *JobService) Delete(ctx context.Context, id uint) error {
	res := s.DB.WithContext(ctx).Delete(&models.Job{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	if err := s.Index.DeleteJob(ctx, id); err != nil {
		s.logger.Error("failed to remove job from index", "job_id", id, "err", err)
	}
	return nil
}

// syncSkills replaces the job's skill requirements with the extraction's.
func (s *JobService) syncSkills(ctx context.Context, jobID uint, extraction *ai.ExtractedJob) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("job_id = ?", jobID).Delete(&models.JobSkill{}).Error; err != nil {
			return err
		}
		add := func(names []string, requirement string) error {
			for _, name := range names {
				skill, err := firstOrCreateSkill(tx, name)
				if err != nil {
					return err
				}
				js := models.JobSkill{
					JobID:       jobID,
					SkillID:     skill.ID,
					Requirement: requirement,
				}
				if err := tx.Create(&js).Error; err != nil {
					return err
				}
			}
			return nil
		}
		if err := add(extraction.RequiredSkills, models.RequirementRequired); err != nil {
			return err
		}
		return add(extraction.NiceToHaveSkills, models.RequirementNiceToHave)
	})
}

// JobText builds the text that represents a job for embedding and keyword
// matching.
func JobText(job *models.Job) string {
	parts := []string{job.Title, job.Company.Name, job.Location, job.Description}
	for _, js := range job.Skills {
		parts = append(parts, js.Skill.Name)
	}
	return strings.TrimSpace(strings.Join(parts, "\n"))
}

// MarshalExtraction serializes the raw extraction for the jsonb column.
func MarshalExtraction(extraction *ai.ExtractedJob) []byte {
	data, _ := json.Marshal(extraction)
	return data
}

func contentHash(title, description string) string {
	sum := sha256.Sum256([]byte(title + "\n" + description))
	return hex.EncodeToString(sum[:])
}

// parsePostedAt accepts the date formats the extractor is told to emit.
func parsePostedAt(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
