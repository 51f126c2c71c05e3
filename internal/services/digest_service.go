package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"gorm.io/gorm"

	"github.com/seekwell-app/seekwell/internal/ai"
	"github.com/seekwell-app/seekwell/internal/mailer"
	"github.com/seekwell-app/seekwell/internal/models"
	"github.com/seekwell-app/seekwell/internal/retry"
)

// defaultWindow is the digest lookback for users who never received one.
const defaultWindow = 7 * 24 * time.Hour

// DigestContent is what gets rendered into the email and stored on the row.
type DigestContent struct {
	Intro   string      `json:"intro"`
	Matches []RankedJob `json:"matches"`
	Updates []string    `json:"updates"`
}

// DigestService assembles and sends periodic match digests.
type DigestService struct {
	DB           *gorm.DB
	Matches      *MatchService
	Applications *ApplicationService
	AI           ai.Provider
	Mail         mailer.Mailer
	TopN         int
	Workers      int
	logger       *slog.Logger
}

func NewDigestService(db *gorm.DB, matches *MatchService, apps *ApplicationService, provider ai.Provider, mail mailer.Mailer, topN, workers int) *DigestService {
	if topN <= 0 {
		topN = 5
	}
	if workers <= 0 {
		workers = 4
	}
	return &DigestService{
		DB:           db,
		Matches:      matches,
		Applications: apps,
		AI:           provider,
		Mail:         mail,
		TopN:         topN,
		Workers:      workers,
		logger:       slog.Default().With("component", "digest-service"),
	}
}

// RunDue builds and sends digests for every user whose schedule has come up.
// Users are processed concurrently on a bounded pool.
func (s *DigestService) RunDue(ctx context.Context, now time.Time) error {
	var users []models.User
	err := s.DB.WithContext(ctx).
		Where("digest_frequency <> ?", models.FrequencyOff).
		Find(&users).Error
	if err != nil {
		return err
	}

	pool, err := ants.NewPool(s.Workers)
	if err != nil {
		return err
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for i := range users {
		user := users[i]
		if !DigestDue(user.DigestFrequency, user.LastDigestAt, now) {
			continue
		}
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			if err := s.SendForUser(ctx, user.ID, now); err != nil {
				s.logger.Error("digest failed", "user_id", user.ID, "err", err)
			}
		})
		if submitErr != nil {
			wg.Done()
			s.logger.Error("failed to schedule digest", "user_id", user.ID, "err", submitErr)
		}
	}
	wg.Wait()
	return nil
}

// SendForUser builds and sends one digest covering the window since the
// user's last digest. A digest for the same period is never sent twice.
func (s *DigestService) SendForUser(ctx context.Context, userID uint, now time.Time) error {
	var user models.User
	if err := s.DB.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	from, to := DigestWindow(user.LastDigestAt, now)

	var existing models.Digest
	err := s.DB.WithContext(ctx).
		Where("user_id = ? AND period_start = ?", userID, from).
		First(&existing).Error
	skip, err := DigestAlreadySent(&existing, err)
	if err != nil {
		return err
	}
	if skip {
		return nil
	}

	content, err := s.BuildForUser(ctx, userID, from, to)
	if err != nil {
		return err
	}
	if len(content.Matches) == 0 && len(content.Updates) == 0 {
		// Nothing to say; advance the window without sending.
		return s.DB.WithContext(ctx).Model(&user).Update("last_digest_at", &to).Error
	}

	subject := DigestSubject(len(content.Matches), len(content.Updates))
	body, err := RenderDigest(subject, content)
	if err != nil {
		return err
	}

	payload, _ := json.Marshal(content)
	digest := models.Digest{
		UserID:      userID,
		PeriodStart: from,
		PeriodEnd:   to,
		Status:      models.DigestPending,
		Subject:     subject,
		MatchCount:  len(content.Matches),
		UpdateCount: len(content.Updates),
		Content:     models.JSONText(payload),
	}
	if existing.ID != 0 {
		digest.ID = existing.ID
	}
	if err := s.DB.WithContext(ctx).Save(&digest).Error; err != nil {
		return err
	}

	_, err = retry.Do(ctx, 3, time.Second, func() (struct{}, error) {
		return struct{}{}, s.Mail.Send(ctx, user.Email, subject, body)
	})
	if err != nil {
		s.DB.WithContext(ctx).Model(&digest).Updates(map[string]any{
			"status": models.DigestFailed,
			"error":  err.Error(),
		})
		return err
	}

	sentAt := time.Now()
	err = s.DB.WithContext(ctx).Model(&digest).Updates(map[string]any{
		"status":  models.DigestSent,
		"error":   "",
		"sent_at": &sentAt,
	}).Error
	if err != nil {
		return err
	}

	s.logger.Info("digest sent",
		"user_id", userID,
		"matches", digest.MatchCount,
		"updates", digest.UpdateCount)
	return s.DB.WithContext(ctx).Model(&user).Update("last_digest_at", &to).Error
}

// BuildForUser assembles the digest content for a window without sending.
// Also backs the preview endpoint.
func (s *DigestService) BuildForUser(ctx context.Context, userID uint, from, to time.Time) (*DigestContent, error) {
	matches, err := s.Matches.MatchesForUserSince(ctx, userID, s.TopN, from)
	if err != nil && !errors.Is(err, ErrNoProfile) {
		return nil, err
	}

	events, err := s.Applications.EventsSince(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	updates := make([]string, 0, len(events))
	for _, ev := range events {
		if ev.EventType == models.EventStatusChange || ev.EventType == models.EventAutomationSubmitted {
			updates = append(updates, ev.Details)
		}
	}

	intro := ""
	if len(matches) > 0 || len(updates) > 0 {
		highlights := make([]string, 0, len(matches)+len(updates))
		for _, m := range matches {
			highlights = append(highlights, m.Job.Title+" at "+m.Job.Company.Name)
		}
		highlights = append(highlights, updates...)

		intro, err = s.AI.Composer().DigestIntro(ctx, highlights)
		if err != nil {
			// A digest without the LLM opener is still worth sending.
			s.logger.Warn("digest intro generation failed", "user_id", userID, "err", err)
			intro = ""
		}
	}

	return &DigestContent{Intro: intro, Matches: matches, Updates: updates}, nil
}

// DigestPreview is the dry-run output for the preview endpoint.
type DigestPreview struct {
	PeriodStart time.Time      `json:"period_start"`
	PeriodEnd   time.Time      `json:"period_end"`
	Subject     string         `json:"subject"`
	Content     *DigestContent `json:"content"`
	HTML        string         `json:"html"`
}

// Preview builds the user's next digest without sending it or advancing
// the window.
func (s *DigestService) Preview(ctx context.Context, userID uint) (*DigestPreview, error) {
	var user models.User
	if err := s.DB.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	from, to := DigestWindow(user.LastDigestAt, time.Now())
	content, err := s.BuildForUser(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	subject := DigestSubject(len(content.Matches), len(content.Updates))
	body, err := RenderDigest(subject, content)
	if err != nil {
		return nil, err
	}

	return &DigestPreview{
		PeriodStart: from,
		PeriodEnd:   to,
		Subject:     subject,
		Content:     content,
		HTML:        body,
	}, nil
}

// List returns the user's digest history newest first.
func (s *DigestService) List(ctx context.Context, userID uint) ([]models.Digest, error) {
	var digests []models.Digest
	err := s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("period_start desc").
		Find(&digests).Error
	if err != nil {
		return nil, err
	}
	return digests, nil
}

// DigestDue reports whether a user's schedule calls for a digest at now.
func DigestDue(frequency string, last *time.Time, now time.Time) bool {
	var interval time.Duration
	switch frequency {
	case models.FrequencyDaily:
		interval = 24 * time.Hour
	case models.FrequencyWeekly:
		interval = 7 * 24 * time.Hour
	default:
		return false
	}
	if last == nil {
		return true
	}
	return now.Sub(*last) >= interval
}

// DigestWindow returns the period a digest should cover. First-time users
// get the trailing week.
func DigestWindow(last *time.Time, now time.Time) (from, to time.Time) {
	if last != nil {
		return *last, now
	}
	return now.Add(-defaultWindow), now
}

// DigestAlreadySent decides whether the existing digest row for a period
// makes a re-send redundant. lookupErr is the error from loading the row;
// not-found means no digest exists yet. Pending and failed digests are
// retried, sent ones are not.
func DigestAlreadySent(existing *models.Digest, lookupErr error) (bool, error) {
	if lookupErr != nil {
		if errors.Is(lookupErr, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, lookupErr
	}
	return existing.Status == models.DigestSent, nil
}

// DigestSubject builds the email subject line.
func DigestSubject(matchCount, updateCount int) string {
	switch {
	case matchCount > 0 && updateCount > 0:
		return fmt.Sprintf("%d new job matches and %d application updates", matchCount, updateCount)
	case matchCount > 0:
		return fmt.Sprintf("%d new job matches for you", matchCount)
	default:
		return fmt.Sprintf("%d application updates", updateCount)
	}
}

var digestTemplate = template.Must(template.New("digest").
	Funcs(template.FuncMap{"join": strings.Join}).
	Parse(`<!DOCTYPE html>
<html>
<body style="font-family: sans-serif; color: #222; max-width: 600px;">
  <h2>{{.Subject}}</h2>
  {{if .Content.Intro}}<p>{{.Content.Intro}}</p>{{end}}

  {{if .Content.Matches}}
  <h3>Top matches</h3>
  <ul>
    {{range .Content.Matches}}
    <li>
      <strong>{{.Job.Title}}</strong> at {{.Job.Company.Name}}
      {{if .Job.Location}}({{.Job.Location}}{{if .Job.Remote}}, remote{{end}}){{else if .Job.Remote}}(remote){{end}}
      <br/>match score {{printf "%.0f" .Score}}
      {{if .MatchingSkills}}<br/><small>your skills: {{join .MatchingSkills ", "}}</small>{{end}}
    </li>
    {{end}}
  </ul>
  {{end}}

  {{if .Content.Updates}}
  <h3>Application updates</h3>
  <ul>
    {{range .Content.Updates}}<li>{{.}}</li>{{end}}
  </ul>
  {{end}}

  <p style="color: #888; font-size: 12px;">You are receiving this because your digest frequency is on. Change it in your account settings.</p>
</body>
</html>`))

// RenderDigest renders the HTML body for a digest email.
func RenderDigest(subject string, content *DigestContent) (string, error) {
	var buf bytes.Buffer
	err := digestTemplate.Execute(&buf, struct {
		Subject string
		Content *DigestContent
	}{Subject: subject, Content: content})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
