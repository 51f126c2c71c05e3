package services

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/seekwell-app/seekwell/internal/ai"
	"github.com/seekwell-app/seekwell/internal/automation"
	"github.com/seekwell-app/seekwell/internal/models"
)

// ApplicationService owns the application lifecycle and the handoff to the
// form-filling automation service.
type ApplicationService struct {
	DB         *gorm.DB
	AI         ai.Provider
	Automation *automation.Client
	logger     *slog.Logger
}

func NewApplicationService(db *gorm.DB, provider ai.Provider, client *automation.Client) *ApplicationService {
	return &ApplicationService{
		DB:         db,
		AI:         provider,
		Automation: client,
		logger:     slog.Default().With("component", "application-service"),
	}
}

// Create saves a job for a user. One application per (user, job).
func (s *ApplicationService) Create(ctx context.Context, userID, jobID uint, resumeID *uint, notes string) (*models.Application, error) {
	var job models.Job
	if err := s.DB.WithContext(ctx).First(&job, jobID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var existing models.Application
	err := s.DB.WithContext(ctx).
		Where("user_id = ? AND job_id = ?", userID, jobID).
		First(&existing).Error
	if err == nil {
		return nil, ErrDuplicateApplication
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	app := models.Application{
		UserID:   userID,
		JobID:    jobID,
		ResumeID: resumeID,
		Status:   models.StatusSaved,
		Notes:    notes,
	}
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&app).Error; err != nil {
			return err
		}
		return tx.Create(&models.ApplicationEvent{
			ApplicationID: app.ID,
			EventType:     models.EventCreated,
			Details:       "application created",
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, userID, app.ID)
}

// List returns the user's applications newest first, optionally filtered by
// status.
func (s *ApplicationService) List(ctx context.Context, userID uint, status string) ([]models.Application, error) {
	q := s.DB.WithContext(ctx).
		Preload("Job.Company").
		Where("user_id = ?", userID).
		Order("updated_at desc")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var apps []models.Application
	if err := q.Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// Get loads one application. Other users' applications read as not found.
func (s *ApplicationService) Get(ctx context.Context, userID, id uint) (*models.Application, error) {
	var app models.Application
	err := s.DB.WithContext(ctx).
		Preload("Job.Company").
		Where("user_id = ?", userID).
		First(&app, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// UpdateStatus moves an application along the lifecycle. Illegal transitions
// are rejected; every change is recorded as an event.
func (s *ApplicationService) UpdateStatus(ctx context.Context, userID, id uint, next models.ApplicationStatus, notes string) (*models.Application, error) {
	app, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if !models.CanTransition(app.Status, next) {
		return nil, ErrInvalidTransition
	}

	prev := app.Status
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]any{"status": next}
		if notes != "" {
			updates["notes"] = notes
		}
		if err := tx.Model(&models.Application{}).Where("id = ?", app.ID).Updates(updates).Error; err != nil {
			return err
		}
		return tx.Create(&models.ApplicationEvent{
			ApplicationID: app.ID,
			EventType:     models.EventStatusChange,
			Details:       string(prev) + " -> " + string(next),
		}).Error
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("application status changed",
		"application_id", app.ID,
		"from", prev,
		"to", next)
	return s.Get(ctx, userID, id)
}

// RecordUpdate runs the classifier over a free-text update (a recruiter email,
// a portal notification) and applies the inferred status change, if any.
// NO_CHANGE updates are stored as a note event.
func (s *ApplicationService) RecordUpdate(ctx context.Context, userID, id uint, subject, body string) (*models.Application, error) {
	app, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	update, err := s.AI.Classifier().ClassifyUpdate(ctx, subject, body, string(app.Status))
	if err != nil {
		return nil, err
	}

	if update.Status == ai.StatusNoChange {
		err = s.DB.WithContext(ctx).Create(&models.ApplicationEvent{
			ApplicationID: app.ID,
			EventType:     models.EventNoteAdded,
			Details:       strings.TrimSpace(subject + ": " + update.Summary),
		}).Error
		if err != nil {
			return nil, err
		}
		return app, nil
	}

	next := models.ApplicationStatus(update.Status)
	if !models.CanTransition(app.Status, next) {
		// The classifier proposed an illegal edge; keep the note, skip
		// the transition.
		s.logger.Warn("classifier proposed illegal transition",
			"application_id", app.ID,
			"from", app.Status,
			"to", next)
		err = s.DB.WithContext(ctx).Create(&models.ApplicationEvent{
			ApplicationID: app.ID,
			EventType:     models.EventNoteAdded,
			Details:       update.Summary,
		}).Error
		if err != nil {
			return nil, err
		}
		return app, nil
	}
	return s.UpdateStatus(ctx, userID, id, next, "")
}

// Submit hands the application to the automation service. On success the
// application moves to applied; missing profile fields and hard failures are
// recorded as events without changing status.
func (s *ApplicationService) Submit(ctx context.Context, userID, id uint, resumeURL string) (*models.Application, error) {
	app, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if app.Status != models.StatusSaved {
		return nil, ErrInvalidTransition
	}

	var user models.User
	err = s.DB.WithContext(ctx).
		Preload("Profile").
		Preload("Skills.Skill").
		First(&user, userID).Error
	if err != nil {
		return nil, err
	}
	if user.Profile == nil {
		return nil, ErrNoProfile
	}

	profile, err := json.Marshal(automationProfile(&user))
	if err != nil {
		return nil, err
	}

	result, err := s.Automation.SubmitApplication(ctx, automation.SubmitRequest{
		JobURL:    app.Job.SourceURL,
		Profile:   profile,
		ResumeURL: resumeURL,
	})

	if err != nil {
		eventType, details, payload := automationFailureEvent(err)
		s.recordEvent(ctx, app.ID, eventType, details, payload)
		return nil, err
	}

	payload, _ := json.Marshal(result)
	now := time.Now()
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]any{
			"status":            models.StatusApplied,
			"submitted_at":      &now,
			"automation_result": models.JSONText(payload),
		}
		if err := tx.Model(&models.Application{}).Where("id = ?", app.ID).Updates(updates).Error; err != nil {
			return err
		}
		return tx.Create(&models.ApplicationEvent{
			ApplicationID: app.ID,
			EventType:     models.EventAutomationSubmitted,
			Details:       "confirmation " + result.ConfirmationID,
			Payload:       models.JSONText(payload),
		}).Error
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("application submitted",
		"application_id", app.ID,
		"confirmation_id", result.ConfirmationID)
	return s.Get(ctx, userID, id)
}

// automationFailureEvent maps an automation error to the event type, human
// details line, and JSON payload that go on the application's audit trail.
func automationFailureEvent(err error) (string, string, []byte) {
	var missing *automation.MissingFieldsError
	if errors.As(err, &missing) {
		payload, _ := json.Marshal(map[string][]string{"missing_fields": missing.Fields})
		return models.EventAutomationMissing,
			"missing fields: " + strings.Join(missing.Fields, ", "), payload
	}
	payload, _ := json.Marshal(map[string]string{"error": err.Error()})
	return models.EventAutomationFailed, err.Error(), payload
}

// Events returns the audit trail, oldest first.
func (s *ApplicationService) Events(ctx context.Context, userID, id uint) ([]models.ApplicationEvent, error) {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return nil, err
	}
	var events []models.ApplicationEvent
	err := s.DB.WithContext(ctx).
		Where("application_id = ?", id).
		Order("created_at asc").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

// EventsSince returns a user's application events in a time window, used by
// the digest builder.
func (s *ApplicationService) EventsSince(ctx context.Context, userID uint, from, to time.Time) ([]models.ApplicationEvent, error) {
	var events []models.ApplicationEvent
	err := s.DB.WithContext(ctx).
		Joins("JOIN applications ON applications.id = application_events.application_id").
		Where("applications.user_id = ? AND application_events.created_at > ? AND application_events.created_at <= ?",
			userID, from, to).
		Order("application_events.created_at asc").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (s *ApplicationService) recordEvent(ctx context.Context, appID uint, eventType, details string, payload []byte) {
	err := s.DB.WithContext(ctx).Create(&models.ApplicationEvent{
		ApplicationID: appID,
		EventType:     eventType,
		Details:       details,
		Payload:       models.JSONText(payload),
	}).Error
	if err != nil {
		s.logger.Error("failed to record application event",
			"application_id", appID,
			"event_type", eventType,
			"err", err)
	}
}

// automationProfile is the candidate payload the form filler consumes.
func automationProfile(user *models.User) map[string]any {
	skills := make([]string, 0, len(user.Skills))
	for _, us := range user.Skills {
		skills = append(skills, us.Skill.Name)
	}
	p := user.Profile
	return map[string]any{
		"email":            user.Email,
		"headline":         p.Headline,
		"summary":          p.Summary,
		"years_experience": p.YearsExperience,
		"skills":           skills,
	}
}
