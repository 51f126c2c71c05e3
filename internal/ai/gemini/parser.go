package gemini

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tmc/langchaingo/llms"

	"github.com/seekwell-app/seekwell/internal/ai"
)

// ProfileParser implements ai.ProfileParser against the Gemini chat API.
type ProfileParser struct {
	client llms.Model
	config *ai.Config
	logger *slog.Logger
}

// ParseResume prompts the model with resume text and returns the structured
// profile. Skill names come back lowercased so they line up with the
// canonical skill table.
func (p *ProfileParser) ParseResume(ctx context.Context, resumeText string) (*ai.ParsedProfile, error) {
	resumeText = p.config.Truncate(resumeText)
	prompt := fmt.Sprintf(ai.ResumeParsePrompt, resumeText)

	var profile ai.ParsedProfile
	if err := generateJSON(ctx, p.client, p.logger, prompt, &profile); err != nil {
		return nil, fmt.Errorf("parse resume: %w", err)
	}

	for i, s := range profile.Skills {
		profile.Skills[i].Name = strings.ToLower(strings.TrimSpace(s.Name))
		if s.Proficiency < 1 {
			profile.Skills[i].Proficiency = 1
		} else if s.Proficiency > 5 {
			profile.Skills[i].Proficiency = 5
		}
	}

	p.logger.Debug("parsed resume", "skills", len(profile.Skills), "years", profile.YearsExperience)
	return &profile, nil
}
