package ai

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func fullExtraction() *ExtractedJob {
	return &ExtractedJob{
		Company:        "Stripe",
		Title:          "Senior Backend Engineer",
		Location:       "Dublin",
		Remote:         true,
		Description:    strings.Repeat("Build and operate payment infrastructure. ", 5),
		SalaryMin:      120000,
		SalaryMax:      160000,
		Currency:       "EUR",
		RequiredSkills: []string{"go", "postgresql"},
		PostedAt:       "2026-08-01",
	}
}

func TestConfidenceScoreFullCoverage(t *testing.T) {
	assert.InDelta(t, 1.0, ConfidenceScore(fullExtraction()), 1e-9)
}

func TestConfidenceScoreNil(t *testing.T) {
	assert.Zero(t, ConfidenceScore(nil))
	assert.Zero(t, ConfidenceScore(&ExtractedJob{}))
}

func TestConfidenceScoreMonotoneInCoverage(t *testing.T) {
	job := fullExtraction()
	prev := ConfidenceScore(job)

	job.PostedAt = ""
	next := ConfidenceScore(job)
	assert.Less(t, next, prev)
	prev = next

	job.SalaryMin, job.SalaryMax = 0, 0
	next = ConfidenceScore(job)
	assert.Less(t, next, prev)
	prev = next

	job.RequiredSkills = nil
	next = ConfidenceScore(job)
	assert.Less(t, next, prev)
	prev = next

	job.Company = ""
	next = ConfidenceScore(job)
	assert.Less(t, next, prev)
}

func TestConfidenceScoreTitleAndCompanyDominate(t *testing.T) {
	bare := &ExtractedJob{
		Company: "Stripe",
		Title:   "Senior Backend Engineer",
	}
	trimmings := &ExtractedJob{
		Location:  "Dublin",
		SalaryMin: 100000,
		PostedAt:  "2026-08-01",
	}
	assert.Greater(t, ConfidenceScore(bare), ConfidenceScore(trimmings))
}

func TestConfidenceScoreShortDescriptionPenalized(t *testing.T) {
	job := fullExtraction()
	full := ConfidenceScore(job)

	job.Description = "Great job!"
	assert.Less(t, ConfidenceScore(job), full)
}

func TestConfidenceScoreBounds(t *testing.T) {
	score := ConfidenceScore(fullExtraction())
	assert.GreaterOrEqual(t, score, 0.0)
	assert.LessOrEqual(t, score, 1.0)
}
