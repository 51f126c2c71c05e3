package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/seekwell-app/seekwell/internal/models"
)

func TestDigestDue(t *testing.T) {
	now := time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)
	dayAgo := now.Add(-25 * time.Hour)
	hourAgo := now.Add(-time.Hour)
	weekAgo := now.Add(-8 * 24 * time.Hour)

	t.Run("never sent is always due", func(t *testing.T) {
		assert.True(t, DigestDue(models.FrequencyDaily, nil, now))
		assert.True(t, DigestDue(models.FrequencyWeekly, nil, now))
	})

	t.Run("daily", func(t *testing.T) {
		assert.True(t, DigestDue(models.FrequencyDaily, &dayAgo, now))
		assert.False(t, DigestDue(models.FrequencyDaily, &hourAgo, now))
	})

	t.Run("weekly", func(t *testing.T) {
		assert.True(t, DigestDue(models.FrequencyWeekly, &weekAgo, now))
		assert.False(t, DigestDue(models.FrequencyWeekly, &dayAgo, now))
	})

	t.Run("off never fires", func(t *testing.T) {
		assert.False(t, DigestDue(models.FrequencyOff, nil, now))
		assert.False(t, DigestDue(models.FrequencyOff, &weekAgo, now))
	})
}

func TestDigestAlreadySent(t *testing.T) {
	t.Run("sent digest blocks a re-send", func(t *testing.T) {
		skip, err := DigestAlreadySent(&models.Digest{Status: models.DigestSent}, nil)
		require.NoError(t, err)
		assert.True(t, skip)
	})

	t.Run("pending and failed digests retry", func(t *testing.T) {
		for _, status := range []string{models.DigestPending, models.DigestFailed} {
			skip, err := DigestAlreadySent(&models.Digest{Status: status}, nil)
			require.NoError(t, err)
			assert.False(t, skip, status)
		}
	})

	t.Run("no digest yet sends", func(t *testing.T) {
		skip, err := DigestAlreadySent(&models.Digest{}, gorm.ErrRecordNotFound)
		require.NoError(t, err)
		assert.False(t, skip)
	})

	t.Run("lookup failure propagates", func(t *testing.T) {
		boom := errors.New("connection reset")
		_, err := DigestAlreadySent(&models.Digest{}, boom)
		assert.ErrorIs(t, err, boom)
	})
}

func TestDigestWindow(t *testing.T) {
	now := time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)

	t.Run("continues from last digest", func(t *testing.T) {
		last := now.Add(-3 * 24 * time.Hour)
		from, to := DigestWindow(&last, now)
		assert.Equal(t, last, from)
		assert.Equal(t, now, to)
	})

	t.Run("first digest covers trailing week", func(t *testing.T) {
		from, to := DigestWindow(nil, now)
		assert.Equal(t, now.Add(-7*24*time.Hour), from)
		assert.Equal(t, now, to)
	})
}

func TestDigestSubject(t *testing.T) {
	assert.Equal(t, "3 new job matches and 2 application updates", DigestSubject(3, 2))
	assert.Equal(t, "5 new job matches for you", DigestSubject(5, 0))
	assert.Equal(t, "1 application updates", DigestSubject(0, 1))
}

func TestRenderDigest(t *testing.T) {
	content := &DigestContent{
		Intro: "Two strong matches this week.",
		Matches: []RankedJob{
			{
				Job: models.Job{
					Title:    "Backend Engineer",
					Location: "Berlin",
					Remote:   true,
					Company:  models.Company{Name: "Acme"},
				},
				Score:          82.4,
				MatchingSkills: []string{"go", "postgresql"},
			},
		},
		Updates: []string{"saved -> applied"},
	}

	body, err := RenderDigest("2 new job matches for you", content)
	require.NoError(t, err)

	assert.Contains(t, body, "Backend Engineer")
	assert.Contains(t, body, "Acme")
	assert.Contains(t, body, "Berlin, remote")
	assert.Contains(t, body, "match score 82")
	assert.Contains(t, body, "go, postgresql")
	assert.Contains(t, body, "saved -&gt; applied")
	assert.Contains(t, body, "Two strong matches this week.")
}

func TestRenderDigestEmptySections(t *testing.T) {
	body, err := RenderDigest("1 application updates", &DigestContent{
		Updates: []string{"applied -> interview"},
	})
	require.NoError(t, err)
	assert.NotContains(t, body, "Top matches")
	assert.Contains(t, body, "Application updates")
}
