package llm

import (
	"context"
	"fmt"
	"sync"

	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.5-flash"

// GeminiProvider implements the Provider interface for Google's Gemini models.
type GeminiProvider struct {
	APIKey string
	Model  string // e.g. "gemini-2.5-flash"

	mu     sync.Mutex
	client *genai.Client
}

// newGenAIClient is swapped in tests.
var newGenAIClient = genai.NewClient

// Ensure interface compliance
var _ GroundedProvider = (*GeminiProvider)(nil)

// NewGeminiProvider creates a provider bound to one API key. The SDK client is created lazily.
func NewGeminiProvider(apiKey, model string) *GeminiProvider {
	return &GeminiProvider{APIKey: apiKey, Model: model}
}

func (p *GeminiProvider) getClient(ctx context.Context) (*genai.Client, error) {
	if p.APIKey == "" {
		return nil, fmt.Errorf("%w: GEMINI_API_KEY not set", ErrUnavailable)
	}

	// Only a successful client is kept; a failed attempt is retried on the next call.
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.client != nil {
		return p.client, nil
	}
	client, err := newGenAIClient(ctx, &genai.ClientConfig{
		APIKey:  p.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create GenAI client: %v", ErrUnavailable, err)
	}
	p.client = client
	return client, nil
}

// GenerateResponse sends a generateContent request to the Gemini API using the official GenAI SDK.
func (p *GeminiProvider) GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error) {
	result, err := p.generate(ctx, prompt, systemPrompt, options)
	if err != nil {
		return "", err
	}
	return result.Text(), nil
}

// GenerateGrounded runs the prompt with Google Search grounding and returns the citations
// found in the first candidate's grounding metadata.
func (p *GeminiProvider) GenerateGrounded(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (*GroundedResponse, error) {
	opts := make(map[string]interface{}, len(options)+1)
	for k, v := range options {
		opts[k] = v
	}
	opts[OptGoogleSearch] = true

	result, err := p.generate(ctx, prompt, systemPrompt, opts)
	if err != nil {
		return nil, err
	}

	resp := &GroundedResponse{Text: result.Text()}
	if len(result.Candidates) > 0 {
		cand := result.Candidates[0]
		if cand.GroundingMetadata != nil {
			for _, chunk := range cand.GroundingMetadata.GroundingChunks {
				if chunk == nil || chunk.Web == nil {
					continue
				}
				resp.Sources = append(resp.Sources, Source{Title: chunk.Web.Title, URI: chunk.Web.URI})
			}
		}
	}
	return resp, nil
}

func (p *GeminiProvider) generate(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (*genai.GenerateContentResponse, error) {
	client, err := p.getClient(ctx)
	if err != nil {
		return nil, err
	}

	model := p.Model
	if model == "" {
		model = defaultGeminiModel
	}
	if val := stringOpt(options, OptModel); val != "" {
		model = val
	}

	config := &genai.GenerateContentConfig{}
	if t, ok := floatOpt(options, OptTemperature); ok {
		config.Temperature = genai.Ptr(float32(t))
	}

	// JSON mode and search grounding cannot be combined on the Gemini API, so grounding wins.
	if boolOpt(options, OptGoogleSearch) {
		config.Tools = []*genai.Tool{
			{GoogleSearch: &genai.GoogleSearch{}},
		}
	} else {
		if schema, ok := options[OptResponseSchema].(*genai.Schema); ok && schema != nil {
			config.ResponseMIMEType = "application/json"
			config.ResponseSchema = schema
		} else if boolOpt(options, OptJSON) {
			config.ResponseMIMEType = "application/json"
		}
	}

	if systemPrompt != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{
				{Text: systemPrompt},
			},
		}
	}

	result, err := client.Models.GenerateContent(ctx, model, genai.Text(prompt), config)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("gemini generation aborted: %w", ctx.Err())
		}
		return nil, fmt.Errorf("%w: gemini generation failed: %v", ErrUnavailable, err)
	}
	return result, nil
}

func (p *GeminiProvider) AdaptInstructions(raw string) string {
	return raw
}
