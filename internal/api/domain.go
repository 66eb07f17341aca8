package api

import (
	"github.com/intakehq/intake/internal/actions"
	"github.com/intakehq/intake/internal/agents/email"
	"github.com/intakehq/intake/internal/agents/jsondoc"
	"github.com/intakehq/intake/internal/agents/pdfdoc"
	"github.com/intakehq/intake/internal/classifications"
	"github.com/intakehq/intake/internal/classifier"
	"github.com/intakehq/intake/internal/config"
	"github.com/intakehq/intake/internal/decisions"
	"github.com/intakehq/intake/internal/downstream"
	"github.com/intakehq/intake/internal/extract"
	"github.com/intakehq/intake/internal/pipeline"
	"github.com/intakehq/intake/internal/processing"
	"github.com/intakehq/intake/internal/results"
	"github.com/intakehq/intake/internal/router"
	"github.com/intakehq/intake/internal/traces"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Classifications classifications.System
	Results         results.System
	Actions         actions.System
	Traces          traces.System
	Decisions       decisions.System
	Processing      *processing.Service
}

// NewDomain creates all domain systems from the API runtime. The audit
// stores share the serialized writer; the processing service composes the
// classifier, format agents, action router, and trace store into the
// pipeline runtime.
func NewDomain(cfg *config.Config, runtime *Runtime) *Domain {
	classificationStore := classifications.New(runtime.Writer, runtime.Logger, runtime.Pagination)
	resultStore := results.New(runtime.Writer, runtime.Logger, runtime.Pagination)
	actionStore := actions.New(runtime.Writer, runtime.Logger, runtime.Pagination)
	traceStore := traces.New(runtime.Writer, runtime.Logger, runtime.Pagination)
	decisionStore := decisions.New(runtime.Writer, runtime.Logger, runtime.Pagination)

	client := downstream.NewClient(
		cfg.Downstream.BaseURL,
		cfg.Downstream.TimeoutDuration(),
		runtime.Logger,
	)

	rt := &pipeline.Runtime{
		Classifier: classifier.New(runtime.Oracle, classificationStore, runtime.Logger, runtime.Metrics),
		Email:      email.New(runtime.Oracle, resultStore, runtime.Logger, runtime.Metrics),
		JSON:       jsondoc.New(runtime.Oracle, resultStore, runtime.Logger, runtime.Metrics),
		PDF:        pdfdoc.New(runtime.Oracle, resultStore, runtime.Logger, runtime.Metrics),
		Router:     router.New(client, actionStore, decisionStore, runtime.Logger, runtime.Metrics),
		Traces:     traceStore,
		Logger:     runtime.Logger,
		Metrics:    runtime.Metrics,
	}

	return &Domain{
		Classifications: classificationStore,
		Results:         resultStore,
		Actions:         actionStore,
		Traces:          traceStore,
		Decisions:       decisionStore,
		Processing: processing.NewService(
			rt,
			extract.NewPDFExtractor(runtime.Logger),
			runtime.Logger,
		),
	}
}
