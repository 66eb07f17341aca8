package config

import (
	"fmt"
	"os"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"
)

const (
	EnvAgentProviderName = "INTAKE_AGENT_PROVIDER_NAME"
	EnvAgentBaseURL      = "INTAKE_AGENT_BASE_URL"
	EnvAgentToken        = "INTAKE_AGENT_TOKEN"
	EnvAgentDeployment   = "INTAKE_AGENT_DEPLOYMENT"
	EnvAgentAPIVersion   = "INTAKE_AGENT_API_VERSION"
	EnvAgentAuthType     = "INTAKE_AGENT_AUTH_TYPE"
	EnvAgentModelName    = "INTAKE_AGENT_MODEL_NAME"
)

// agentOptionEnv maps environment variables onto provider option keys.
// Options ride in the provider's free-form map rather than typed fields,
// so credentials and Azure-specific settings share one override path.
var agentOptionEnv = map[string]string{
	EnvAgentToken:      "token",
	EnvAgentDeployment: "deployment",
	EnvAgentAPIVersion: "api_version",
	EnvAgentAuthType:   "auth_type",
}

// FinalizeAgent applies the three-phase finalize pattern to a go-agents
// AgentConfig: defaults from go-agents DefaultAgentConfig, environment
// variable overrides, and validation. Validation only runs when the oracle
// is enabled; a disabled oracle needs no provider.
func FinalizeAgent(c *gaconfig.AgentConfig, enabled bool) error {
	loadAgentDefaults(c)
	loadAgentEnv(c)
	if !enabled {
		return nil
	}
	return validateAgent(c)
}

func loadAgentDefaults(c *gaconfig.AgentConfig) {
	defaults := gaconfig.DefaultAgentConfig()
	defaults.Merge(c)
	*c = defaults
}

func loadAgentEnv(c *gaconfig.AgentConfig) {
	if c.Provider == nil {
		c.Provider = &gaconfig.ProviderConfig{}
	}
	if c.Provider.Options == nil {
		c.Provider.Options = make(map[string]any)
	}
	if c.Model == nil {
		c.Model = &gaconfig.ModelConfig{}
	}

	if v := os.Getenv(EnvAgentProviderName); v != "" {
		c.Provider.Name = v
	}
	if v := os.Getenv(EnvAgentBaseURL); v != "" {
		c.Provider.BaseURL = v
	}
	if v := os.Getenv(EnvAgentModelName); v != "" {
		c.Model.Name = v
	}
	for envVar, key := range agentOptionEnv {
		if v := os.Getenv(envVar); v != "" {
			c.Provider.Options[key] = v
		}
	}
}

func validateAgent(c *gaconfig.AgentConfig) error {
	if c.Name == "" {
		return fmt.Errorf("oracle enabled but agent name is empty")
	}
	if c.Provider == nil || c.Provider.Name == "" {
		return fmt.Errorf("oracle enabled but no provider configured")
	}
	if c.Model == nil {
		return fmt.Errorf("oracle enabled but no model configured")
	}
	return nil
}
