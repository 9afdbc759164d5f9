package providers

import (
	"context"
)

// LanguageModelProvider sends a single prompt to a hosted text-generation
// model. The API key is supplied per call by the user making the search.
type LanguageModelProvider interface {
	Generate(ctx context.Context, apiKey, prompt string) (string, error)

	// Name identifies the provider and model in logs and metrics
	Name() string
}
