package api

import (
	"github.com/intakehq/intake/internal/config"
	"github.com/intakehq/intake/internal/infrastructure"
	"github.com/intakehq/intake/pkg/pagination"
)

// Runtime extends Infrastructure with API-specific configuration.
type Runtime struct {
	*infrastructure.Infrastructure
	Pagination pagination.Config
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle: infra.Lifecycle,
			Logger:    infra.Logger.With("module", "api"),
			Database:  infra.Database,
			Writer:    infra.Writer,
			Oracle:    infra.Oracle,
			Metrics:   infra.Metrics,
		},
		Pagination: cfg.API.Pagination,
	}
}
