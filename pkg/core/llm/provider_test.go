package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"google.golang.org/genai"
)

func TestMissingKeyIsUnavailable(t *testing.T) {
	providers := map[string]Provider{
		"gemini":        NewGeminiProvider("", ""),
		"gemini-legacy": &GeminiLegacyProvider{},
		"deepseek":      NewDeepSeekProvider(""),
		"qwen":          NewQwenProvider(""),
		"openai":        NewOpenAIProvider(""),
	}
	for name, p := range providers {
		t.Run(name, func(t *testing.T) {
			_, err := p.GenerateResponse(context.Background(), "hi", "", nil)
			if !errors.Is(err, ErrUnavailable) {
				t.Errorf("expected ErrUnavailable, got %v", err)
			}
		})
	}

	if _, err := NewGeminiProvider("", "").GenerateGrounded(context.Background(), "hi", "", nil); !errors.Is(err, ErrUnavailable) {
		t.Errorf("GenerateGrounded: expected ErrUnavailable, got %v", err)
	}
}

func TestOptionHelpers(t *testing.T) {
	opts := map[string]interface{}{
		OptModel:        "gemini-2.5-pro",
		OptTemperature:  0,
		OptJSON:         true,
		OptGoogleSearch: "yes",
	}

	if got := stringOpt(opts, OptModel); got != "gemini-2.5-pro" {
		t.Errorf("stringOpt = %q", got)
	}
	if got, ok := floatOpt(opts, OptTemperature); !ok || got != 0 {
		t.Errorf("floatOpt = %v, %v; want 0, true", got, ok)
	}
	if _, ok := floatOpt(nil, OptTemperature); ok {
		t.Error("floatOpt on nil map should report missing")
	}
	if !boolOpt(opts, OptJSON) {
		t.Error("boolOpt(json) = false")
	}
	if boolOpt(opts, OptGoogleSearch) {
		t.Error("non-bool value must not enable grounding")
	}
}

func TestGeminiClientRetriedAfterInitFailure(t *testing.T) {
	calls := 0
	orig := newGenAIClient
	newGenAIClient = func(ctx context.Context, cc *genai.ClientConfig) (*genai.Client, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("dial tcp: i/o timeout")
		}
		return &genai.Client{}, nil
	}
	t.Cleanup(func() { newGenAIClient = orig })

	p := NewGeminiProvider("key", "")
	if _, err := p.getClient(context.Background()); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("first attempt: expected ErrUnavailable, got %v", err)
	}
	first, err := p.getClient(context.Background())
	if err != nil || first == nil {
		t.Fatalf("second attempt: client %v, err %v", first, err)
	}
	again, _ := p.getClient(context.Background())
	if again != first || calls != 2 {
		t.Errorf("client not cached after success: calls = %d", calls)
	}
}

func TestChatModelRetriedAfterInitFailure(t *testing.T) {
	calls := 0
	orig := newChatModel
	newChatModel = func(ctx context.Context, cfg *openai.ChatModelConfig) (*openai.ChatModel, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("proxy unavailable")
		}
		return &openai.ChatModel{}, nil
	}
	t.Cleanup(func() { newChatModel = orig })

	p := NewDeepSeekProvider("key")
	if _, err := p.chatModel(context.Background()); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("first attempt: expected ErrUnavailable, got %v", err)
	}
	first, err := p.chatModel(context.Background())
	if err != nil || first == nil {
		t.Fatalf("second attempt: model %v, err %v", first, err)
	}
	again, _ := p.chatModel(context.Background())
	if again != first || calls != 2 {
		t.Errorf("chat model not cached after success: calls = %d", calls)
	}
}
