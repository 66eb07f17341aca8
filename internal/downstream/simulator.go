package downstream

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
	"io"
	"log/slog"
	"net/http"

	"github.com/intakehq/intake/pkg/handlers"
	"github.com/intakehq/intake/pkg/routes"
)

// Simulator implements the downstream endpoints in-process. IDs are derived
// from a hash of the payload, so identical payloads receive identical IDs.
type Simulator struct {
	logger *slog.Logger
}

// NewSimulator creates a Simulator.
func NewSimulator(logger *slog.Logger) *Simulator {
	return &Simulator{logger: logger.With("handler", "downstream")}
}

// Routes returns the route group for the simulated endpoints. The group has
// no prefix: the paths match what the Client calls.
func (s *Simulator) Routes() routes.Group {
	return routes.Group{
		Prefix: "",
		Routes: []routes.Route{
			{Method: "POST", Pattern: PathCRMEscalate, Handler: s.crmEscalate},
			{Method: "POST", Pattern: PathCRMLog, Handler: s.crmLog},
			{Method: "POST", Pattern: PathRiskAlert, Handler: s.riskAlert},
			{Method: "POST", Pattern: PathComplianceFlag, Handler: s.complianceFlag},
		},
	}
}

func (s *Simulator) crmEscalate(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, Response{
		Success:  true,
		TicketID: payloadID(r, "CRM"),
		Message:  "Issue escalated to CRM system",
	})
}

func (s *Simulator) crmLog(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, Response{
		Success: true,
		LogID:   payloadID(r, "LOG"),
		Message: "Issue logged in CRM system",
	})
}

func (s *Simulator) riskAlert(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, Response{
		Success: true,
		AlertID: payloadID(r, "RISK"),
		Message: "Risk alert created",
	})
}

func (s *Simulator) complianceFlag(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, Response{
		Success: true,
		FlagID:  payloadID(r, "COMP"),
		Message: "Compliance issue flagged",
	})
}

// payloadID derives a stable 4-digit identifier from the request body.
func payloadID(r *http.Request, prefix string) string {
	body, _ := io.ReadAll(r.Body)

	// Normalize through decode/encode so key order does not change the hash.
	var decoded any
	if err := json.Unmarshal(body, &decoded); err == nil {
		if normalized, err := json.Marshal(decoded); err == nil {
			body = normalized
		}
	}

	h := fnv.New32a()
	h.Write(body)
	return fmt.Sprintf("%s-%d", prefix, h.Sum32()%10000)
}
