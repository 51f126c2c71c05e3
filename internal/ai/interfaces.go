package ai

import "context"

// Extractor turns raw job-posting text into structured fields.
// Implementations must be safe for concurrent use.
type Extractor interface {
	// ExtractJob analyzes a raw posting (text or HTML) and returns the
	// structured fields plus a confidence score in [0,1].
	ExtractJob(ctx context.Context, rawText string) (*ExtractedJob, error)
}

// ProfileParser turns resume text into a structured candidate profile.
type ProfileParser interface {
	ParseResume(ctx context.Context, resumeText string) (*ParsedProfile, error)
}

// Classifier maps an application-update message to a lifecycle status.
type Classifier interface {
	// ClassifyUpdate reads an update (subject + body) about an application
	// currently in currentStatus and decides the new status. The returned
	// status is StatusNoChange when the message carries no state change.
	ClassifyUpdate(ctx context.Context, subject, body, currentStatus string) (*StatusUpdate, error)
}

// Composer writes short personalized copy for outbound email.
type Composer interface {
	// DigestIntro returns a 2-3 sentence opener for a digest email given
	// a few highlight lines (top match titles, notable updates).
	DigestIntro(ctx context.Context, highlights []string) (string, error)
}

// Embedder generates vector embeddings from text for similarity search.
// Implementations must be safe for concurrent use.
type Embedder interface {
	EmbedText(ctx context.Context, text string) ([]float32, error)
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Provider aggregates the AI services so callers wire one dependency.
type Provider interface {
	Extractor() Extractor
	ProfileParser() ProfileParser
	Classifier() Classifier
	Composer() Composer
	Embedder() Embedder

	// Close releases resources held by the provider and its services.
	Close() error
}
