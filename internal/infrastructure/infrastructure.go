// Package infrastructure provides core service initialization for application
// startup. It assembles the common dependencies (logging, database, oracle,
// metrics) that domain systems require.
package infrastructure

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/intakehq/intake/internal/config"
	"github.com/intakehq/intake/internal/oracle"
	"github.com/intakehq/intake/pkg/database"
	"github.com/intakehq/intake/pkg/lifecycle"
	"github.com/intakehq/intake/pkg/metrics"
	"github.com/intakehq/intake/pkg/repository"
)

// Infrastructure holds the core systems required by all domain modules.
// It provides a single point of initialization for lifecycle coordination,
// logging, database access, serialized writes, the oracle, and metrics.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Database  database.System
	Writer    *repository.Writer
	Oracle    oracle.TextOracle
	Metrics   *metrics.Metrics
}

// New creates an Infrastructure from the application configuration.
// It initializes all systems but does not start them; call Start separately.
func New(cfg *config.Config) (*Infrastructure, error) {
	lc := lifecycle.New()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	var textOracle oracle.TextOracle = oracle.Disabled{}
	if cfg.OracleEnabled {
		textOracle = oracle.NewAgentOracle(cfg.Agent)
	}

	return &Infrastructure{
		Lifecycle: lc,
		Logger:    logger,
		Database:  db,
		Writer:    repository.NewWriter(db.Connection()),
		Oracle:    textOracle,
		Metrics:   metrics.Default(),
	}, nil
}

// Start registers all infrastructure systems with the lifecycle coordinator.
func (i *Infrastructure) Start() error {
	if err := i.Database.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("database start failed: %w", err)
	}
	return nil
}
