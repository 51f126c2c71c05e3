// Package mock provides deterministic test doubles for the ai interfaces.
// Every service exposes overridable function fields; unset fields fall back
// to canned behavior so tests only stub what they assert on.
package mock

import (
	"context"
	"strings"

	"github.com/seekwell-app/seekwell/internal/ai"
)

// Provider is a test double for ai.Provider.
type Provider struct {
	MockExtractor  *Extractor
	MockParser     *ProfileParser
	MockClassifier *Classifier
	MockComposer   *Composer
	MockEmbedder   *Embedder
}

// NewProvider creates a mock provider with default deterministic services.
func NewProvider() *Provider {
	return &Provider{
		MockExtractor:  &Extractor{},
		MockParser:     &ProfileParser{},
		MockClassifier: &Classifier{},
		MockComposer:   &Composer{},
		MockEmbedder:   &Embedder{},
	}
}

func (p *Provider) Extractor() ai.Extractor         { return p.MockExtractor }
func (p *Provider) ProfileParser() ai.ProfileParser { return p.MockParser }
func (p *Provider) Classifier() ai.Classifier       { return p.MockClassifier }
func (p *Provider) Composer() ai.Composer           { return p.MockComposer }
func (p *Provider) Embedder() ai.Embedder           { return p.MockEmbedder }
func (p *Provider) Close() error                    { return nil }

// Extractor is a test double for ai.Extractor.
type Extractor struct {
	ExtractJobFunc func(ctx context.Context, rawText string) (*ai.ExtractedJob, error)
	CallCount      int
}

func (m *Extractor) ExtractJob(ctx context.Context, rawText string) (*ai.ExtractedJob, error) {
	m.CallCount++
	if m.ExtractJobFunc != nil {
		return m.ExtractJobFunc(ctx, rawText)
	}
	job := &ai.ExtractedJob{
		Company:     "Acme",
		Title:       firstLine(rawText),
		Description: rawText,
	}
	job.Confidence = ai.ConfidenceScore(job)
	return job, nil
}

// ProfileParser is a test double for ai.ProfileParser.
type ProfileParser struct {
	ParseResumeFunc func(ctx context.Context, resumeText string) (*ai.ParsedProfile, error)
	CallCount       int
}

func (m *ProfileParser) ParseResume(ctx context.Context, resumeText string) (*ai.ParsedProfile, error) {
	m.CallCount++
	if m.ParseResumeFunc != nil {
		return m.ParseResumeFunc(ctx, resumeText)
	}
	return &ai.ParsedProfile{
		Headline: firstLine(resumeText),
		Summary:  resumeText,
	}, nil
}

// Classifier is a test double for ai.Classifier.
type Classifier struct {
	ClassifyUpdateFunc func(ctx context.Context, subject, body, currentStatus string) (*ai.StatusUpdate, error)
	CallCount          int
}

func (m *Classifier) ClassifyUpdate(ctx context.Context, subject, body, currentStatus string) (*ai.StatusUpdate, error) {
	m.CallCount++
	if m.ClassifyUpdateFunc != nil {
		return m.ClassifyUpdateFunc(ctx, subject, body, currentStatus)
	}
	return &ai.StatusUpdate{Status: ai.StatusNoChange}, nil
}

// Composer is a test double for ai.Composer.
type Composer struct {
	DigestIntroFunc func(ctx context.Context, highlights []string) (string, error)
	CallCount       int
}

func (m *Composer) DigestIntro(ctx context.Context, highlights []string) (string, error) {
	m.CallCount++
	if m.DigestIntroFunc != nil {
		return m.DigestIntroFunc(ctx, highlights)
	}
	return "Here is what happened in your search this week.", nil
}

func firstLine(text string) string {
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		return strings.TrimSpace(text[:i])
	}
	return strings.TrimSpace(text)
}
