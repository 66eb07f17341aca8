package main

import (
	"encoding/json"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/intakehq/intake/internal/api"
	"github.com/intakehq/intake/internal/config"
	"github.com/intakehq/intake/internal/downstream"
	"github.com/intakehq/intake/internal/infrastructure"
	"github.com/intakehq/intake/pkg/middleware"
	"github.com/intakehq/intake/pkg/module"
	"github.com/intakehq/intake/pkg/routes"
)

type Modules struct {
	API        *module.Module
	Downstream *module.Module
}

func NewModules(infra *infrastructure.Infrastructure, cfg *config.Config) (*Modules, error) {
	apiModule, err := api.NewModule(cfg, infra)
	if err != nil {
		return nil, err
	}

	modules := &Modules{API: apiModule}

	if cfg.Downstream.Simulated() {
		modules.Downstream = downstreamModule(infra)
	}

	return modules, nil
}

func (m *Modules) Mount(router *module.Router) {
	router.Mount(m.API)
	if m.Downstream != nil {
		router.Mount(m.Downstream)
	}
}

// downstreamModule mounts the simulated CRM, risk, and compliance endpoints
// the action router posts to when no real systems are configured.
func downstreamModule(infra *infrastructure.Infrastructure) *module.Module {
	mux := http.NewServeMux()
	routes.Register(mux, downstream.NewSimulator(infra.Logger).Routes())

	m := module.New("/downstream", mux)
	m.Use(middleware.Logger(infra.Logger))

	return m
}

func buildRouter(infra *infrastructure.Infrastructure) *module.Router {
	router := module.NewRouter()

	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	router.HandleNative("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if !infra.Lifecycle.Ready() {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]string{"status": "not ready"})
			return
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ready"})
	})

	router.HandleNative("GET /metrics", promhttp.Handler().ServeHTTP)

	return router
}
