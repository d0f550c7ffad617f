package agent

import (
	"context"
	"fmt"

	"growth_analyzer/pkg/core/llm"
	"growth_analyzer/pkg/core/logger"

	"github.com/sirupsen/logrus"
)

// RoleProvider routes calls for one role through the Manager: provider resolution,
// model override, instruction adaptation and rate limiting.
type RoleProvider struct {
	mgr  *Manager
	role string
}

var _ llm.GroundedProvider = (*RoleProvider)(nil)

func (rp *RoleProvider) prepare(ctx context.Context, options map[string]interface{}) (llm.Provider, string, map[string]interface{}, error) {
	provider, name, model := rp.mgr.resolve(rp.role)
	if provider == nil {
		return nil, "", nil, fmt.Errorf("%w: no provider configured for role %s", llm.ErrUnavailable, rp.role)
	}

	opts := make(map[string]interface{}, len(options)+1)
	for k, v := range options {
		opts[k] = v
	}
	if _, set := opts[llm.OptModel]; !set && model != "" {
		opts[llm.OptModel] = model
	}

	if err := rp.mgr.wait(ctx); err != nil {
		return nil, "", nil, err
	}

	logger.Component("agent").WithFields(logrus.Fields{
		"role":     rp.role,
		"provider": name,
	}).Debug("dispatching oracle call")
	return provider, name, opts, nil
}

func (rp *RoleProvider) GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error) {
	provider, _, opts, err := rp.prepare(ctx, options)
	if err != nil {
		return "", err
	}
	return provider.GenerateResponse(ctx, prompt, provider.AdaptInstructions(systemPrompt), opts)
}

func (rp *RoleProvider) GenerateGrounded(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (*llm.GroundedResponse, error) {
	provider, name, opts, err := rp.prepare(ctx, options)
	if err != nil {
		return nil, err
	}
	grounded, ok := provider.(llm.GroundedProvider)
	if !ok {
		return nil, fmt.Errorf("%w: provider %s cannot serve role %s", llm.ErrNoGrounding, name, rp.role)
	}
	return grounded.GenerateGrounded(ctx, prompt, provider.AdaptInstructions(systemPrompt), opts)
}

func (rp *RoleProvider) AdaptInstructions(raw string) string {
	return raw
}
