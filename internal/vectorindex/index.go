// Package vectorindex stores job embeddings and answers nearest-neighbor
// queries. Payloads carry only the job ID plus coarse filter fields; job rows
// are hydrated from the database after search.
package vectorindex

import (
	"context"
	"errors"
)

var (
	ErrInvalidDimension  = errors.New("vectorindex: invalid dimension")
	ErrDimensionMismatch = errors.New("vectorindex: vector dimension mismatch")
)

// JobPoint is one job embedding with its filterable payload.
type JobPoint struct {
	JobID    uint
	Vector   []float32
	Remote   bool
	Location string
}

// Match is a scored search hit. Score is cosine similarity.
type Match struct {
	JobID    uint
	Score    float64
	Remote   bool
	Location string
}

// Index persists job vectors and supports similarity search.
type Index interface {
	// EnsureCollection creates the collection with the given dimension if
	// it does not exist yet.
	EnsureCollection(ctx context.Context, dimension int) error

	// UpsertJobs writes or overwrites points keyed by job ID.
	UpsertJobs(ctx context.Context, points []JobPoint) error

	// Query returns up to topK matches ordered by descending score.
	Query(ctx context.Context, vector []float32, topK int) ([]Match, error)

	// DeleteJob removes a job's point. Missing points are not an error.
	DeleteJob(ctx context.Context, jobID uint) error
}
