package driven

import "context"

// LLMService provides language model text generation for the annotator.
// This is an optional service - when nil, bulk annotation is disabled and
// the extraction/location pipelines work unaffected.
type LLMService interface {
	// Generate produces a completion for a prompt and reports the token
	// usage the provider billed for the call.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (*GenerateResult, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight
	// request that does not run inference.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// GenerateOptions configures text generation behaviour.
type GenerateOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic, 1.0 = creative).
	Temperature float64
}

// GenerateResult carries a completion and its usage figures.
type GenerateResult struct {
	// Content is the generated text.
	Content string

	// PromptTokens is the prompt size the provider reported.
	PromptTokens int

	// CompletionTokens is the completion size the provider reported.
	CompletionTokens int
}
