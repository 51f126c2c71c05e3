package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seekwell-app/seekwell/internal/ai"
	"github.com/seekwell-app/seekwell/internal/ai/mock"
)

func TestExtractUsesProvider(t *testing.T) {
	provider := mock.NewProvider()
	provider.MockExtractor.ExtractJobFunc = func(ctx context.Context, rawText string) (*ai.ExtractedJob, error) {
		return &ai.ExtractedJob{
			Company:    "Acme",
			Title:      "Backend Engineer",
			Confidence: 0.9,
		}, nil
	}
	svc := &JobService{AI: provider}

	extraction, err := svc.Extract(context.Background(), "Backend Engineer at Acme")
	require.NoError(t, err)
	assert.Equal(t, "Backend Engineer", extraction.Title)
	assert.Equal(t, 1, provider.MockExtractor.CallCount)
}

func TestExtractRetriesTransientFailure(t *testing.T) {
	provider := mock.NewProvider()
	provider.MockExtractor.ExtractJobFunc = func(ctx context.Context, rawText string) (*ai.ExtractedJob, error) {
		if provider.MockExtractor.CallCount == 1 {
			return nil, errors.New("model overloaded")
		}
		return &ai.ExtractedJob{Title: "Backend Engineer", Confidence: 0.9}, nil
	}
	svc := &JobService{AI: provider}

	extraction, err := svc.Extract(context.Background(), "Backend Engineer at Acme")
	require.NoError(t, err)
	assert.Equal(t, "Backend Engineer", extraction.Title)
	assert.Equal(t, 2, provider.MockExtractor.CallCount)
}

func TestContentHash(t *testing.T) {
	a := contentHash("Backend Engineer", "Build APIs.")
	b := contentHash("Backend Engineer", "Build APIs.")
	c := contentHash("Backend Engineer", "Build pipelines.")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64)
}

func TestParsePostedAt(t *testing.T) {
	t.Run("date only", func(t *testing.T) {
		got, ok := parsePostedAt("2025-06-01")
		require.True(t, ok)
		assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), got)
	})

	t.Run("rfc3339", func(t *testing.T) {
		_, ok := parsePostedAt("2025-06-01T09:30:00Z")
		assert.True(t, ok)
	})

	t.Run("empty and garbage", func(t *testing.T) {
		_, ok := parsePostedAt("")
		assert.False(t, ok)
		_, ok = parsePostedAt("two weeks ago")
		assert.False(t, ok)
	})
}

func TestMarshalExtraction(t *testing.T) {
	data := MarshalExtraction(&ai.ExtractedJob{Company: "Acme", Title: "SRE"})
	assert.Contains(t, string(data), `"company_name":"Acme"`)
	assert.Contains(t, string(data), `"role_title":"SRE"`)
	// Confidence is internal, never serialized.
	assert.NotContains(t, string(data), "confidence")
}
