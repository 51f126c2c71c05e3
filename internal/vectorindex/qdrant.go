package vectorindex

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Qdrant is a minimal REST client to a hosted Qdrant-style index. It assumes
// cosine distance and creates the collection if missing.
type Qdrant struct {
	url        string
	apiKey     string
	collection string
	client     *http.Client
}

// QdrantConfig configures the REST client.
type QdrantConfig struct {
	URL        string
	APIKey     string
	Collection string
	Timeout    time.Duration
}

// NewQdrant builds the client. A zero Timeout defaults to 15s.
func NewQdrant(cfg QdrantConfig) *Qdrant {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Qdrant{
		url:        cfg.URL,
		apiKey:     cfg.APIKey,
		collection: cfg.Collection,
		client:     &http.Client{Timeout: timeout},
	}
}

func (q *Qdrant) EnsureCollection(ctx context.Context, dimension int) error {
	if dimension <= 0 {
		return ErrInvalidDimension
	}
	body := map[string]any{
		"vectors": map[string]any{
			"size":     dimension,
			"distance": "Cosine",
		},
	}
	// Qdrant returns 200 if the collection already exists with this schema.
	return q.putJSON(ctx, fmt.Sprintf("%s/collections/%s", q.url, q.collection), body)
}

func (q *Qdrant) UpsertJobs(ctx context.Context, points []JobPoint) error {
	if len(points) == 0 {
		return nil
	}
	wire := make([]map[string]any, len(points))
	for i, p := range points {
		wire[i] = map[string]any{
			"id":     p.JobID,
			"vector": p.Vector,
			"payload": map[string]any{
				"job_id":   p.JobID,
				"remote":   p.Remote,
				"location": p.Location,
			},
		}
	}
	body := map[string]any{"points": wire}
	return q.putJSON(ctx, fmt.Sprintf("%s/collections/%s/points?wait=true", q.url, q.collection), body)
}

func (q *Qdrant) Query(ctx context.Context, vector []float32, topK int) ([]Match, error) {
	if topK <= 0 {
		topK = 10
	}
	req := map[string]any{
		"vector":       vector,
		"limit":        topK,
		"with_payload": true,
	}
	var resp struct {
		Result []struct {
			Score   float64        `json:"score"`
			Payload map[string]any `json:"payload"`
		} `json:"result"`
	}
	if err := q.postJSON(ctx, fmt.Sprintf("%s/collections/%s/points/search", q.url, q.collection), req, &resp); err != nil {
		return nil, err
	}

	matches := make([]Match, 0, len(resp.Result))
	for _, r := range resp.Result {
		m := Match{Score: r.Score}
		if v, ok := r.Payload["job_id"].(float64); ok {
			m.JobID = uint(v)
		}
		if v, ok := r.Payload["remote"].(bool); ok {
			m.Remote = v
		}
		if v, ok := r.Payload["location"].(string); ok {
			m.Location = v
		}
		matches = append(matches, m)
	}
	return matches, nil
}

func (q *Qdrant) DeleteJob(ctx context.Context, jobID uint) error {
	body := map[string]any{"points": []uint{jobID}}
	return q.postJSON(ctx, fmt.Sprintf("%s/collections/%s/points/delete?wait=true", q.url, q.collection), body, nil)
}

func (q *Qdrant) putJSON(ctx context.Context, url string, body any) error {
	data, _ := json.Marshal(body)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if q.apiKey != "" {
		req.Header.Set("api-key", q.apiKey)
	}
	resp, err := q.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("vectorindex: PUT %s failed: %s", url, resp.Status)
	}
	return nil
}

func (q *Qdrant) postJSON(ctx context.Context, url string, body any, out any) error {
	data, _ := json.Marshal(body)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if q.apiKey != "" {
		req.Header.Set("api-key", q.apiKey)
	}
	resp, err := q.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("vectorindex: POST %s failed: %s", url, resp.Status)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
