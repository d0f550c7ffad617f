package llm

import (
	"context"
	"errors"
)

// Oracle failure classes. Providers wrap every failure in one of these so callers
// can tell an unreachable backend from a payload that could not be understood.
var (
	ErrUnavailable   = errors.New("ORACLE_UNAVAILABLE")
	ErrInvalidFormat = errors.New("ORACLE_INVALID_FORMAT")
	ErrNoGrounding   = errors.New("ORACLE_GROUNDING_UNSUPPORTED")
)

// Option keys understood by the providers. Unknown keys are ignored.
const (
	OptModel          = "model"           // string
	OptTemperature    = "temperature"     // float64
	OptJSON           = "json"            // bool: ask for application/json output
	OptResponseSchema = "response_schema" // *genai.Schema, honoured by GeminiProvider only
	OptGoogleSearch   = "google_search"   // bool: enable search grounding
)

// Provider is the interface for all LLM providers.
type Provider interface {
	GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error)
	// AdaptInstructions transforms raw instructions into model-specific formats
	AdaptInstructions(rawInstructions string) string
}

// Source is a web citation attached to a grounded response.
type Source struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// GroundedResponse is the text of a search-grounded generation plus its citations
// in the order the backend returned them.
type GroundedResponse struct {
	Text    string
	Sources []Source
}

// GroundedProvider is a Provider that can back its answer with web search citations.
type GroundedProvider interface {
	Provider
	GenerateGrounded(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (*GroundedResponse, error)
}

func stringOpt(options map[string]interface{}, key string) string {
	if val, ok := options[key].(string); ok {
		return val
	}
	return ""
}

func boolOpt(options map[string]interface{}, key string) bool {
	val, _ := options[key].(bool)
	return val
}

func floatOpt(options map[string]interface{}, key string) (float64, bool) {
	switch v := options[key].(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	}
	return 0, false
}
