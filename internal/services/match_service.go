package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/seekwell-app/seekwell/internal/ai"
	"github.com/seekwell-app/seekwell/internal/matching"
	"github.com/seekwell-app/seekwell/internal/models"
	"github.com/seekwell-app/seekwell/internal/vectorindex"
)

// RankedJob is one match result: the job plus the scoring breakdown.
type RankedJob struct {
	Job            models.Job `json:"job"`
	Score          float64    `json:"score"`
	SemanticScore  float64    `json:"semantic_score"`
	KeywordScore   float64    `json:"keyword_score"`
	MatchingSkills []string   `json:"matching_skills"`
	MissingSkills  []string   `json:"missing_skills"`
	FullCoverage   bool       `json:"full_required_coverage"`
}

// MatchService ranks active jobs against a user's profile. Vector search
// finds candidates; keyword overlap and preference filters refine them.
type MatchService struct {
	DB     *gorm.DB
	AI     ai.Provider
	Index  vectorindex.Index
	TopK   int
	logger *slog.Logger
}

func NewMatchService(db *gorm.DB, provider ai.Provider, index vectorindex.Index, topK int) *MatchService {
	if topK <= 0 {
		topK = 50
	}
	return &MatchService{
		DB:     db,
		AI:     provider,
		Index:  index,
		TopK:   topK,
		logger: slog.Default().With("component", "match-service"),
	}
}

// MatchesForUser returns ranked matches for a user across all active jobs.
func (s *MatchService) MatchesForUser(ctx context.Context, userID uint, limit int) ([]RankedJob, error) {
	return s.matches(ctx, userID, limit, time.Time{})
}

// MatchesForUserSince is the digest variant: only jobs first indexed after
// the cutoff are considered.
func (s *MatchService) MatchesForUserSince(ctx context.Context, userID uint, limit int, since time.Time) ([]RankedJob, error) {
	return s.matches(ctx, userID, limit, since)
}

func (s *MatchService) matches(ctx context.Context, userID uint, limit int, since time.Time) ([]RankedJob, error) {
	var user models.User
	err := s.DB.WithContext(ctx).
		Preload("Profile").
		Preload("Skills.Skill").
		First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if user.Profile == nil && len(user.Skills) == 0 {
		return nil, ErrNoProfile
	}

	profileText := BuildProfileText(&user)
	vector, err := s.AI.Embedder().EmbedText(ctx, profileText)
	if err != nil {
		return nil, fmt.Errorf("embed profile: %w", err)
	}

	hits, err := s.Index.Query(ctx, vector, s.TopK)
	if err != nil {
		return nil, fmt.Errorf("vector query: %w", err)
	}
	if len(hits) == 0 {
		return []RankedJob{}, nil
	}

	semantic := make(map[uint]float64, len(hits))
	ids := make([]uint, 0, len(hits))
	for _, hit := range hits {
		semantic[hit.JobID] = hit.Score
		ids = append(ids, hit.JobID)
	}

	q := s.DB.WithContext(ctx).
		Preload("Company").
		Preload("Skills.Skill").
		Where("id IN ? AND status = ?", ids, models.JobStatusActive)
	if !since.IsZero() {
		q = q.Where("indexed_at > ?", since)
	}
	var jobs []models.Job
	if err := q.Find(&jobs).Error; err != nil {
		return nil, err
	}

	profileKW := matching.Tokenize(profileText)
	prefs := preferencesOf(&user)

	ranked := make([]RankedJob, 0, len(jobs))
	for i := range jobs {
		job := jobs[i]
		if !matching.PassesFilters(jobFacts(&job), prefs) {
			continue
		}

		kwScore, matched, missing := matching.KeywordScore(profileKW, JobText(&job))
		covered, full := matching.RequiredCoverage(profileKW, requiredSkillNames(&job))
		score := matching.ApplyBoost(matching.CombinedScore(semantic[job.ID], kwScore), full)

		ranked = append(ranked, RankedJob{
			Job:            job,
			Score:          score,
			SemanticScore:  semantic[job.ID],
			KeywordScore:   kwScore,
			MatchingSkills: mergeSkillLists(matched, covered),
			MissingSkills:  missing,
			FullCoverage:   full,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Score > ranked[j].Score })
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	s.logger.Debug("ranked matches",
		"user_id", userID,
		"candidates", len(hits),
		"returned", len(ranked))
	return ranked, nil
}

// BuildProfileText flattens a user's profile and skills into the text used
// for embedding and keyword extraction.
func BuildProfileText(user *models.User) string {
	var parts []string
	if p := user.Profile; p != nil {
		if p.Headline != "" {
			parts = append(parts, p.Headline)
		}
		if p.Summary != "" {
			parts = append(parts, p.Summary)
		}
		if p.YearsExperience > 0 {
			parts = append(parts, fmt.Sprintf("%.0f years of experience", p.YearsExperience))
		}
	}
	for _, us := range user.Skills {
		if us.Skill.Name != "" {
			parts = append(parts, us.Skill.Name)
		}
	}
	return strings.TrimSpace(strings.Join(parts, "\n"))
}

func preferencesOf(user *models.User) matching.Preferences {
	prefs := matching.Preferences{RemotePreference: "any"}
	if p := user.Profile; p != nil {
		if p.RemotePreference != "" {
			prefs.RemotePreference = p.RemotePreference
		}
		prefs.Locations = []string(p.Locations)
		prefs.MinSalary = p.MinSalary
	}
	return prefs
}

func jobFacts(job *models.Job) matching.JobFacts {
	return matching.JobFacts{
		Remote:    job.Remote,
		Location:  job.Location,
		SalaryMax: job.SalaryMax,
	}
}

func requiredSkillNames(job *models.Job) []string {
	var names []string
	for _, js := range job.Skills {
		if js.Requirement == models.RequirementRequired {
			names = append(names, js.Skill.Name)
		}
	}
	return names
}

// mergeSkillLists unions the keyword matches with the covered required
// skills, deduplicated and sorted.
func mergeSkillLists(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	var out []string
	for _, list := range [][]string{a, b} {
		for _, s := range list {
			if !seen[s] {
				seen[s] = true
				out = append(out, s)
			}
		}
	}
	sort.Strings(out)
	return out
}
