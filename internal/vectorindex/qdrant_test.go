package vectorindex

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQdrantEnsureCollection(t *testing.T) {
	var gotMethod, gotPath, gotKey string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotKey = r.Header.Get("api-key")
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &gotBody)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	q := NewQdrant(QdrantConfig{URL: srv.URL, APIKey: "secret", Collection: "jobs"})
	require.NoError(t, q.EnsureCollection(context.Background(), 768))

	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/collections/jobs", gotPath)
	assert.Equal(t, "secret", gotKey)

	vectors := gotBody["vectors"].(map[string]any)
	assert.Equal(t, float64(768), vectors["size"])
	assert.Equal(t, "Cosine", vectors["distance"])
}

func TestQdrantUpsertWireFormat(t *testing.T) {
	var gotPath, gotQuery string
	var gotBody struct {
		Points []struct {
			ID      uint           `json:"id"`
			Vector  []float32      `json:"vector"`
			Payload map[string]any `json:"payload"`
		} `json:"points"`
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &gotBody)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	q := NewQdrant(QdrantConfig{URL: srv.URL, Collection: "jobs"})
	err := q.UpsertJobs(context.Background(), []JobPoint{
		{JobID: 42, Vector: []float32{0.5, 0.5}, Remote: true, Location: "Berlin"},
	})
	require.NoError(t, err)

	assert.Equal(t, "/collections/jobs/points", gotPath)
	assert.Equal(t, "wait=true", gotQuery)
	require.Len(t, gotBody.Points, 1)
	assert.Equal(t, uint(42), gotBody.Points[0].ID)
	assert.Equal(t, float64(42), gotBody.Points[0].Payload["job_id"])
	assert.Equal(t, true, gotBody.Points[0].Payload["remote"])
	assert.Equal(t, "Berlin", gotBody.Points[0].Payload["location"])
}

func TestQdrantQueryParsesMatches(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/collections/jobs/points/search", r.URL.Path)

		var req map[string]any
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &req)
		assert.Equal(t, float64(5), req["limit"])
		assert.Equal(t, true, req["with_payload"])

		_ = json.NewEncoder(w).Encode(map[string]any{
			"result": []map[string]any{
				{"score": 0.91, "payload": map[string]any{"job_id": 7, "remote": true, "location": "Remote"}},
				{"score": 0.42, "payload": map[string]any{"job_id": 9}},
			},
		})
	}))
	defer srv.Close()

	q := NewQdrant(QdrantConfig{URL: srv.URL, Collection: "jobs"})
	matches, err := q.Query(context.Background(), []float32{1, 0}, 5)
	require.NoError(t, err)
	require.Len(t, matches, 2)

	assert.Equal(t, uint(7), matches[0].JobID)
	assert.InDelta(t, 0.91, matches[0].Score, 1e-9)
	assert.True(t, matches[0].Remote)
	assert.Equal(t, uint(9), matches[1].JobID)
}

func TestQdrantErrorStatusPropagates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	q := NewQdrant(QdrantConfig{URL: srv.URL, Collection: "jobs"})
	_, err := q.Query(context.Background(), []float32{1}, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}
