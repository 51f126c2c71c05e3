package gemini

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tmc/langchaingo/llms"

	"github.com/seekwell-app/seekwell/internal/ai"
)

// Extractor implements ai.Extractor against the Gemini chat API.
type Extractor struct {
	client llms.Model
	config *ai.Config
	logger *slog.Logger
}

// ExtractJob prompts the model with the raw posting and returns the parsed
// fields with the confidence score filled in.
func (e *Extractor) ExtractJob(ctx context.Context, rawText string) (*ai.ExtractedJob, error) {
	rawText = e.config.Truncate(rawText)
	prompt := fmt.Sprintf(ai.JobExtractionPrompt, rawText)

	var job ai.ExtractedJob
	if err := generateJSON(ctx, e.client, e.logger, prompt, &job); err != nil {
		return nil, fmt.Errorf("extract job: %w", err)
	}

	normalizeSkills(job.RequiredSkills)
	normalizeSkills(job.NiceToHaveSkills)
	job.Confidence = ai.ConfidenceScore(&job)

	e.logger.Debug("extracted job posting",
		"title", job.Title,
		"company", job.Company,
		"confidence", job.Confidence)
	return &job, nil
}

func normalizeSkills(skills []string) {
	for i, s := range skills {
		skills[i] = strings.ToLower(strings.TrimSpace(s))
	}
}
