// Package downstream provides the client for the follow-up action endpoints
// (CRM escalation, CRM logging, risk alerts, compliance flags) and the
// simulated in-process implementations of those endpoints.
package downstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// Endpoint paths served by the simulator and called by the client.
const (
	PathCRMEscalate    = "/crm/escalate"
	PathCRMLog         = "/crm/log"
	PathRiskAlert      = "/risk_alert"
	PathComplianceFlag = "/compliance/flag"
)

// DefaultTimeout bounds each downstream call when no timeout is configured.
const DefaultTimeout = 10 * time.Second

// Response is the reply shape shared by all downstream endpoints. Exactly one
// of the ID fields is populated, matching the endpoint called.
type Response struct {
	Success  bool   `json:"success"`
	TicketID string `json:"ticket_id,omitempty"`
	LogID    string `json:"log_id,omitempty"`
	AlertID  string `json:"alert_id,omitempty"`
	FlagID   string `json:"flag_id,omitempty"`
	Message  string `json:"message"`
	Error    string `json:"error,omitempty"`
}

// Client posts action payloads to the downstream endpoints.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// NewClient creates a Client for the downstream endpoints at baseURL. A
// non-positive timeout falls back to DefaultTimeout.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		logger:  logger.With("system", "downstream"),
	}
}

// Post sends payload to the given endpoint path and decodes the reply.
// Transport failures and non-2xx statuses return an error; the caller
// records them as failed actions rather than aborting.
func (c *Client) Post(ctx context.Context, path string, payload any) (*Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("post %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("post %s: unexpected status %d", path, resp.StatusCode)
	}

	var decoded Response
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", path, err)
	}

	c.logger.Debug("downstream call completed", "path", path, "success", decoded.Success)
	return &decoded, nil
}
