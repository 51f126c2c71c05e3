package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/tmc/langchaingo/llms"

	"github.com/seekwell-app/seekwell/internal/ai"
	"github.com/seekwell-app/seekwell/internal/retry"
)

// generateJSON prompts the model and decodes the response into out. Markdown
// fences and surrounding prose are stripped first; a failed decode gets one
// repair pass for trailing commas, then one fresh generation. Transport errors
// are retried with backoff before each attempt gives up.
func generateJSON(ctx context.Context, client llms.Model, logger *slog.Logger, prompt string, out any) error {
	var lastErr error

	for attempt := 0; attempt < 2; attempt++ {
		resp, err := retry.Do(ctx, 3, time.Second, func() (string, error) {
			return llms.GenerateFromSinglePrompt(ctx, client, prompt, llms.WithTemperature(0.1))
		})
		if err != nil {
			return fmt.Errorf("generate: %w", err)
		}

		cleaned := ai.CleanJSON(resp)
		if err := json.Unmarshal([]byte(cleaned), out); err == nil {
			return nil
		} else {
			lastErr = err
		}

		repaired := ai.RepairJSON(cleaned)
		if err := json.Unmarshal([]byte(repaired), out); err == nil {
			return nil
		} else {
			lastErr = err
			logger.Warn("model returned unparseable JSON", "attempt", attempt+1, "err", err)
		}
	}

	return fmt.Errorf("parse model response: %w", lastErr)
}
