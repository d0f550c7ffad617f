package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiLegacyProvider talks to Gemini through the older generative-ai-go SDK.
// It has no search grounding support, so it can serve the scoring role but not news.
type GeminiLegacyProvider struct {
	APIKey string
	Model  string
}

var _ Provider = (*GeminiLegacyProvider)(nil)

func (p *GeminiLegacyProvider) GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error) {
	if p.APIKey == "" {
		return "", fmt.Errorf("%w: GEMINI_API_KEY not set", ErrUnavailable)
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(p.APIKey))
	if err != nil {
		return "", fmt.Errorf("%w: failed to create Gemini client: %v", ErrUnavailable, err)
	}
	defer client.Close()

	modelName := p.Model
	if modelName == "" {
		modelName = defaultGeminiModel
	}
	if val := stringOpt(options, OptModel); val != "" {
		modelName = val
	}

	model := client.GenerativeModel(modelName)
	if t, ok := floatOpt(options, OptTemperature); ok {
		model.SetTemperature(float32(t))
	}
	if boolOpt(options, OptJSON) || options[OptResponseSchema] != nil {
		model.ResponseMIMEType = "application/json"
	}
	if systemPrompt != "" {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(systemPrompt)},
		}
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("%w: gemini generation failed: %v", ErrUnavailable, err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("%w: gemini returned no candidates", ErrInvalidFormat)
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	return sb.String(), nil
}

func (p *GeminiLegacyProvider) AdaptInstructions(raw string) string {
	return raw
}
