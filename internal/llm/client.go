package llm

import (
	"context"
)

// Client is the single capability this system needs from a language model:
// prompt in, text out. The enrichment pipeline treats the call as one
// request/response with no streaming.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
