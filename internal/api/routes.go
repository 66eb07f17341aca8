package api

import (
	"net/http"

	"github.com/intakehq/intake/internal/config"
	"github.com/intakehq/intake/internal/processing"
	"github.com/intakehq/intake/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
	runtime *Runtime,
) {
	processingHandler := processing.NewHandler(
		domain.Processing,
		runtime.Logger,
		cfg.API.MaxUploadSizeBytes(),
	)

	routes.Register(
		mux,
		processingHandler.Routes(),
		domain.Classifications.Handler().Routes(),
		domain.Results.Handler().Routes(),
		domain.Actions.Handler().Routes(),
		domain.Traces.Handler().Routes(),
		domain.Decisions.Handler().Routes(),
	)
}
