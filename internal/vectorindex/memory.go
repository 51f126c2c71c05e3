package vectorindex

import (
	"context"
	"math"
	"sort"
	"sync"
)

// Memory is an in-memory brute-force cosine index for dev and tests.
type Memory struct {
	mu        sync.RWMutex
	dimension int
	points    map[uint]JobPoint
}

// NewMemory returns an empty in-memory index.
func NewMemory() *Memory {
	return &Memory{points: make(map[uint]JobPoint)}
}

func (m *Memory) EnsureCollection(ctx context.Context, dimension int) error {
	if dimension <= 0 {
		return ErrInvalidDimension
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dimension = dimension
	return nil
}

func (m *Memory) UpsertJobs(ctx context.Context, points []JobPoint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range points {
		if m.dimension > 0 && len(p.Vector) != m.dimension {
			return ErrDimensionMismatch
		}
		m.points[p.JobID] = p
	}
	return nil
}

func (m *Memory) Query(ctx context.Context, vector []float32, topK int) ([]Match, error) {
	if topK <= 0 {
		topK = 10
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	matches := make([]Match, 0, len(m.points))
	for _, p := range m.points {
		matches = append(matches, Match{
			JobID:    p.JobID,
			Score:    cosine(p.Vector, vector),
			Remote:   p.Remote,
			Location: p.Location,
		})
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].Score > matches[j].Score })
	if len(matches) > topK {
		matches = matches[:topK]
	}
	return matches, nil
}

func (m *Memory) DeleteJob(ctx context.Context, jobID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.points, jobID)
	return nil
}

// Len reports the number of stored points.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.points)
}

func cosine(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
