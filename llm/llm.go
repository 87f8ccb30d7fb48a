package llm

import "context"

// TextGenerator produces free-form text for a prompt. Implementations give
// no guarantee of well-formed output and may be entirely unavailable;
// callers must validate and carry a fallback.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, systemPrompt string) (string, error)
	Available(ctx context.Context) bool
}
