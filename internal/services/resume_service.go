package services

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/seekwell-app/seekwell/internal/ai"
	"github.com/seekwell-app/seekwell/internal/blobstore"
	"github.com/seekwell-app/seekwell/internal/models"
	"github.com/seekwell-app/seekwell/internal/queue"
	"github.com/seekwell-app/seekwell/internal/textextract"
)

// Publisher is the queue surface the resume service needs. Nil means parse
// inline in the request path, which keeps dev setups broker-free.
type Publisher interface {
	Publish(ctx context.Context, queueName string, task any) error
}

// ResumeService stores uploads and turns them into structured profiles.
type ResumeService struct {
	DB      *gorm.DB
	Blobs   blobstore.Store
	AI      ai.Provider
	Queue   Publisher
	MaxSize int64
	logger  *slog.Logger
}

func NewResumeService(db *gorm.DB, blobs blobstore.Store, provider ai.Provider, q Publisher, maxSize int64) *ResumeService {
	if maxSize <= 0 {
		maxSize = 10 << 20
	}
	return &ResumeService{
		DB:      db,
		Blobs:   blobs,
		AI:      provider,
		Queue:   q,
		MaxSize: maxSize,
		logger:  slog.Default().With("component", "resume-service"),
	}
}

// Upload stores the file and enqueues parsing. With no queue wired the parse
// runs inline before returning.
func (s *ResumeService) Upload(ctx context.Context, userID uint, filename, contentType string, data []byte) (*models.Resume, error) {
	if !textextract.Supported(contentType) {
		return nil, ErrUnsupportedFileType
	}
	if int64(len(data)) > s.MaxSize {
		return nil, ErrFileTooLarge
	}

	key := blobstore.ResumeKey(userID, filename)
	if err := s.Blobs.Put(ctx, key, contentType, data); err != nil {
		return nil, err
	}

	resume := models.Resume{
		UserID:      userID,
		Filename:    filename,
		ContentType: contentType,
		SizeBytes:   int64(len(data)),
		ObjectKey:   key,
		ParseStatus: models.ResumePending,
	}
	if err := s.DB.WithContext(ctx).Create(&resume).Error; err != nil {
		return nil, err
	}

	if s.Queue != nil {
		err := s.Queue.Publish(ctx, queue.QueueResumeParse, queue.ResumeParseTask{ResumeID: resume.ID})
		if err != nil {
			s.logger.Error("failed to enqueue resume parse", "resume_id", resume.ID, "err", err)
		}
		return &resume, nil
	}

	if err := s.Process(ctx, resume.ID); err != nil {
		s.logger.Error("inline resume parse failed", "resume_id", resume.ID, "err", err)
	}
	return s.get(ctx, resume.ID)
}

// List returns the user's resumes newest first.
func (s *ResumeService) List(ctx context.Context, userID uint) ([]models.Resume, error) {
	var resumes []models.Resume
	err := s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&resumes).Error
	if err != nil {
		return nil, err
	}
	return resumes, nil
}

// Get loads one resume scoped to the owner.
func (s *ResumeService) Get(ctx context.Context, userID, id uint) (*models.Resume, error) {
	var resume models.Resume
	err := s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&resume, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &resume, nil
}

// Process is the worker path: extract text, parse it with the LLM and merge
// the result into the owner's profile. Failures are written back to the row
// so the API can surface them.
func (s *ResumeService) Process(ctx context.Context, resumeID uint) error {
	resume, err := s.get(ctx, resumeID)
	if err != nil {
		return err
	}

	err = s.DB.WithContext(ctx).Model(resume).Update("parse_status", models.ResumeParsing).Error
	if err != nil {
		return err
	}

	if err := s.process(ctx, resume); err != nil {
		s.DB.WithContext(ctx).Model(resume).Updates(map[string]any{
			"parse_status": models.ResumeFailed,
			"parse_error":  err.Error(),
		})
		return err
	}
	return nil
}

func (s *ResumeService) process(ctx context.Context, resume *models.Resume) error {
	data, err := s.Blobs.Get(ctx, resume.ObjectKey)
	if err != nil {
		return err
	}

	text, err := textextract.Extract(resume.ContentType, data)
	if err != nil {
		return err
	}

	parsed, err := s.AI.ProfileParser().ParseResume(ctx, text)
	if err != nil {
		return err
	}

	if err := s.mergeProfile(ctx, resume.UserID, parsed); err != nil {
		return err
	}

	payload, _ := json.Marshal(parsed)
	now := time.Now()
	err = s.DB.WithContext(ctx).Model(resume).Updates(map[string]any{
		"parse_status":   models.ResumeParsed,
		"parse_error":    "",
		"extracted_text": text,
		"parsed_profile": models.JSONText(payload),
		"parsed_at":      &now,
	}).Error
	if err != nil {
		return err
	}

	s.logger.Info("resume parsed",
		"resume_id", resume.ID,
		"user_id", resume.UserID,
		"skills", len(parsed.Skills))
	return nil
}

// mergeProfile fills empty profile fields from the parse and adds new skills.
// Hand-entered values always win over extracted ones.
func (s *ResumeService) mergeProfile(ctx context.Context, userID uint, parsed *ai.ParsedProfile) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var profile models.Profile
		err := tx.Where(models.Profile{UserID: userID}).FirstOrCreate(&profile).Error
		if err != nil {
			return err
		}

		if profile.Headline == "" {
			profile.Headline = parsed.Headline
		}
		if profile.Summary == "" {
			profile.Summary = parsed.Summary
		}
		if profile.YearsExperience == 0 {
			profile.YearsExperience = parsed.YearsExperience
		}
		if len(profile.Locations) == 0 {
			profile.Locations = models.StringList(parsed.Locations)
		}
		if profile.MinSalary == 0 {
			profile.MinSalary = parsed.MinSalary
		}
		if profile.MaxSalary == 0 {
			profile.MaxSalary = parsed.MaxSalary
		}
		if profile.Currency == "" {
			profile.Currency = parsed.Currency
		}
		// Profile text changed, so the cached embedding is stale.
		profile.EmbeddedAt = nil
		if err := tx.Save(&profile).Error; err != nil {
			return err
		}

		for _, ps := range parsed.Skills {
			skill, err := firstOrCreateSkill(tx, ps.Name)
			if err != nil {
				return err
			}
			us := models.UserSkill{
				UserID:      userID,
				SkillID:     skill.ID,
				Proficiency: ps.Proficiency,
				Years:       ps.Years,
			}
			err = tx.Where(models.UserSkill{UserID: userID, SkillID: skill.ID}).
				FirstOrCreate(&us).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// get loads a resume without owner scoping, for the worker path.
func (s *ResumeService) get(ctx context.Context, id uint) (*models.Resume, error) {
	var resume models.Resume
	err := s.DB.WithContext(ctx).First(&resume, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &resume, nil
}
