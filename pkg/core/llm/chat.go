package llm

import (
	"context"
	"fmt"
	"sync"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// Well-known OpenAI-compatible endpoints.
const (
	DeepSeekBaseURL = "https://api.deepseek.com"
	QwenBaseURL     = "https://dashscope.aliyuncs.com/compatible-mode/v1"
	OpenAIBaseURL   = "https://api.openai.com/v1"
)

// ChatProvider serves any OpenAI-compatible chat completions endpoint (DeepSeek, Qwen, OpenAI).
type ChatProvider struct {
	Name    string
	BaseURL string
	APIKey  string
	Model   string

	mu sync.Mutex
	cm *openai.ChatModel
}

// newChatModel is swapped in tests.
var newChatModel = openai.NewChatModel

var _ Provider = (*ChatProvider)(nil)

// NewDeepSeekProvider returns a ChatProvider for api.deepseek.com.
func NewDeepSeekProvider(apiKey string) *ChatProvider {
	return &ChatProvider{Name: "deepseek", BaseURL: DeepSeekBaseURL, APIKey: apiKey, Model: "deepseek-chat"}
}

// NewQwenProvider returns a ChatProvider for DashScope's compatible mode.
func NewQwenProvider(apiKey string) *ChatProvider {
	return &ChatProvider{Name: "qwen", BaseURL: QwenBaseURL, APIKey: apiKey, Model: "qwen-max"}
}

// NewOpenAIProvider returns a ChatProvider for api.openai.com.
func NewOpenAIProvider(apiKey string) *ChatProvider {
	return &ChatProvider{Name: "openai", BaseURL: OpenAIBaseURL, APIKey: apiKey, Model: "gpt-4o-mini"}
}

func (p *ChatProvider) chatModel(ctx context.Context) (*openai.ChatModel, error) {
	if p.APIKey == "" {
		return nil, fmt.Errorf("%w: %s API key not set", ErrUnavailable, p.Name)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cm != nil {
		return p.cm, nil
	}
	cm, err := newChatModel(ctx, &openai.ChatModelConfig{
		BaseURL: p.BaseURL,
		APIKey:  p.APIKey,
		Model:   p.Model,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s client init failed: %v", ErrUnavailable, p.Name, err)
	}
	p.cm = cm
	return cm, nil
}

func (p *ChatProvider) GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error) {
	cm, err := p.chatModel(ctx)
	if err != nil {
		return "", err
	}

	if boolOpt(options, OptJSON) || options[OptResponseSchema] != nil {
		systemPrompt += "\nRespond with a single JSON object only."
	}

	var messages []*schema.Message
	if systemPrompt != "" {
		messages = append(messages, &schema.Message{Role: schema.System, Content: systemPrompt})
	}
	messages = append(messages, &schema.Message{Role: schema.User, Content: prompt})

	var callOpts []model.Option
	if t, ok := floatOpt(options, OptTemperature); ok {
		callOpts = append(callOpts, model.WithTemperature(float32(t)))
	}
	if m := stringOpt(options, OptModel); m != "" {
		callOpts = append(callOpts, model.WithModel(m))
	}

	resp, err := cm.Generate(ctx, messages, callOpts...)
	if err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("%s generation aborted: %w", p.Name, ctx.Err())
		}
		return "", fmt.Errorf("%w: %s generation failed: %v", ErrUnavailable, p.Name, err)
	}
	return resp.Content, nil
}

func (p *ChatProvider) AdaptInstructions(raw string) string {
	return raw
}
