// Package pipeline orchestrates the processing stages for one document:
// classification, format-specific agent analysis, action routing, and trace
// persistence. Stages run as a state graph with the classified format
// selecting the agent branch.
package pipeline

import (
	"errors"
	"log/slog"

	"github.com/intakehq/intake/internal/agents/email"
	"github.com/intakehq/intake/internal/agents/jsondoc"
	"github.com/intakehq/intake/internal/agents/pdfdoc"
	"github.com/intakehq/intake/internal/classifier"
	"github.com/intakehq/intake/internal/router"
	"github.com/intakehq/intake/internal/traces"
	"github.com/intakehq/intake/pkg/metrics"
)

// Stage errors. Each wraps the underlying cause; no trace row is written
// when any stage fails.
var (
	ErrClassifyFailed    = errors.New("classification stage failed")
	ErrAgentFailed       = errors.New("agent stage failed")
	ErrRouteFailed       = errors.New("routing stage failed")
	ErrTraceFailed       = errors.New("trace stage failed")
	ErrUnsupportedFormat = errors.New("unsupported document format")
)

// State keys used by the pipeline graph.
const (
	KeyContent        = "content"
	KeyDetectedFormat = "detected_format"
	KeyStartedAt      = "started_at"
	KeyClassification = "classification"
	KeyAgentResult    = "agent_result"
	KeyAgentRecord    = "agent_record"
	KeyRouting        = "routing"
	KeyTrace          = "trace"
)

// Runtime bundles the dependencies the pipeline nodes require. It is
// constructed once by composition code and shared across invocations.
type Runtime struct {
	Classifier *classifier.Classifier
	Email      *email.Agent
	JSON       *jsondoc.Agent
	PDF        *pdfdoc.Agent
	Router     *router.Router
	Traces     traces.System
	Logger     *slog.Logger
	Metrics    *metrics.Metrics
}
