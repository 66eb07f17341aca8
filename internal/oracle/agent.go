package oracle

import (
	"context"
	"fmt"

	"github.com/JaimeStill/go-agents/pkg/agent"
	gaconfig "github.com/JaimeStill/go-agents/pkg/config"
)

const systemPreamble = "You are a helpful AI assistant specialized in document " +
	"processing and analysis. Always provide accurate, structured responses.\n\n"

// AgentOracle implements TextOracle over a go-agents chat agent.
// A fresh agent is created per call, matching the stateless per-request
// usage of the underlying providers; per-request completion parameters
// are applied to a copy of the configured provider options.
type AgentOracle struct {
	cfg gaconfig.AgentConfig
}

// NewAgentOracle creates an AgentOracle from the given agent configuration.
func NewAgentOracle(cfg gaconfig.AgentConfig) *AgentOracle {
	return &AgentOracle{cfg: cfg}
}

func (o *AgentOracle) Complete(ctx context.Context, req Request) (string, error) {
	a, err := agent.New(o.requestConfig(req))
	if err != nil {
		return "", fmt.Errorf("create agent: %w", err)
	}

	resp, err := a.Chat(ctx, systemPreamble+req.Prompt)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	return resp.Text(), nil
}

func (o *AgentOracle) requestConfig(req Request) *gaconfig.AgentConfig {
	cfg := o.cfg
	if cfg.Provider == nil {
		cfg.Provider = &gaconfig.ProviderConfig{}
	}

	provider := *cfg.Provider
	options := make(map[string]any, len(provider.Options)+3)
	for k, v := range provider.Options {
		options[k] = v
	}

	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	temperature := req.Temperature
	if temperature <= 0 {
		temperature = DefaultTemperature
	}

	options["max_tokens"] = maxTokens
	options["temperature"] = temperature
	if req.JSONResponse {
		options["response_format"] = "json_object"
	}

	provider.Options = options
	cfg.Provider = &provider
	return &cfg
}
