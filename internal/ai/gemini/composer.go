package gemini

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tmc/langchaingo/llms"

	"github.com/seekwell-app/seekwell/internal/ai"
)

// Composer implements ai.Composer against the Gemini chat API.
type Composer struct {
	client llms.Model
	logger *slog.Logger
}

// DigestIntro writes the digest opener. Plain text in, plain text out.
func (c *Composer) DigestIntro(ctx context.Context, highlights []string) (string, error) {
	prompt := fmt.Sprintf(ai.DigestIntroPrompt, "- "+strings.Join(highlights, "\n- "))

	resp, err := llms.GenerateFromSinglePrompt(ctx, c.client, prompt, llms.WithTemperature(0.7))
	if err != nil {
		return "", fmt.Errorf("compose digest intro: %w", err)
	}

	return strings.TrimSpace(resp), nil
}
