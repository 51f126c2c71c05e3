package gemini

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tmc/langchaingo/llms"

	"github.com/seekwell-app/seekwell/internal/ai"
)

// Classifier implements ai.Classifier against the Gemini chat API.
type Classifier struct {
	client llms.Model
	logger *slog.Logger
}

// ClassifyUpdate decides whether an application update changes the lifecycle
// status. Unknown answers collapse to NO_CHANGE so callers never act on a
// status outside the lifecycle.
func (c *Classifier) ClassifyUpdate(ctx context.Context, subject, body, currentStatus string) (*ai.StatusUpdate, error) {
	prompt := fmt.Sprintf(ai.StatusClassifyPrompt, currentStatus, subject, body)

	var update ai.StatusUpdate
	if err := generateJSON(ctx, c.client, c.logger, prompt, &update); err != nil {
		return nil, fmt.Errorf("classify update: %w", err)
	}

	update.Status = strings.TrimSpace(update.Status)
	switch update.Status {
	case "applied", "screening", "interview", "offer", "rejected", ai.StatusNoChange:
	default:
		c.logger.Warn("classifier returned unknown status", "status", update.Status)
		update.Status = ai.StatusNoChange
	}

	return &update, nil
}
