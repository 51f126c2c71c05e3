// Package gemini implements the ai interfaces on top of the hosted Gemini
// model family through langchaingo.
package gemini

import (
	"context"
	"log/slog"

	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/googleai"

	"github.com/seekwell-app/seekwell/internal/ai"
)

// Provider implements ai.Provider using Gemini for generation and embeddings.
type Provider struct {
	config     *ai.Config
	extractor  *Extractor
	parser     *ProfileParser
	classifier *Classifier
	composer   *Composer
	embedder   *Embedder
	logger     *slog.Logger
}

// NewProvider creates the Gemini-backed provider. The config is validated
// before any client is built.
func NewProvider(ctx context.Context, config *ai.Config) (ai.Provider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := googleai.New(ctx,
		googleai.WithAPIKey(config.APIKey),
		googleai.WithDefaultModel(config.Model),
		googleai.WithDefaultEmbeddingModel(config.EmbeddingModel),
	)
	if err != nil {
		return nil, err
	}

	emb, err := embeddings.NewEmbedder(client, embeddings.WithStripNewLines(true))
	if err != nil {
		return nil, err
	}

	return &Provider{
		config:     config,
		extractor:  &Extractor{client: client, config: config, logger: slog.Default().With("component", "gemini-extractor")},
		parser:     &ProfileParser{client: client, config: config, logger: slog.Default().With("component", "gemini-parser")},
		classifier: &Classifier{client: client, logger: slog.Default().With("component", "gemini-classifier")},
		composer:   &Composer{client: client, logger: slog.Default().With("component", "gemini-composer")},
		embedder:   &Embedder{embedder: emb, logger: slog.Default().With("component", "gemini-embedder")},
		logger:     slog.Default().With("component", "gemini-provider"),
	}, nil
}

func (p *Provider) Extractor() ai.Extractor         { return p.extractor }
func (p *Provider) ProfileParser() ai.ProfileParser { return p.parser }
func (p *Provider) Classifier() ai.Classifier       { return p.classifier }
func (p *Provider) Composer() ai.Composer           { return p.composer }
func (p *Provider) Embedder() ai.Embedder           { return p.embedder }

// Close releases resources held by the provider. The langchaingo client
// does not require explicit cleanup.
func (p *Provider) Close() error {
	p.logger.Debug("closing gemini provider")
	return nil
}
