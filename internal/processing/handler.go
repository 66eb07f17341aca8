package processing

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/intakehq/intake/internal/agents/jsondoc"
	"github.com/intakehq/intake/internal/classifier"
	"github.com/intakehq/intake/internal/extract"
	"github.com/intakehq/intake/internal/pipeline"
	"github.com/intakehq/intake/internal/router"
	"github.com/intakehq/intake/pkg/handlers"
	"github.com/intakehq/intake/pkg/routes"
)

// batchWorkers bounds concurrent pipeline executions for a batch upload.
const batchWorkers = 4

// Envelope is the success response for a processed document.
type Envelope struct {
	Success          bool                `json:"success"`
	TraceID          uuid.UUID           `json:"trace_id"`
	Classification   *classifier.Outcome `json:"classification"`
	AgentResult      any                 `json:"agent_result"`
	ActionsTriggered *router.Outcome     `json:"actions_triggered"`
	Message          string              `json:"message"`
}

// Failure is the error response for a rejected or failed document.
type Failure struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

// BatchEntry reports the outcome of a single file within a batch request.
// On success, TraceID is populated and Error is empty.
type BatchEntry struct {
	Filename string     `json:"filename"`
	Success  bool       `json:"success"`
	TraceID  *uuid.UUID `json:"trace_id,omitempty"`
	Error    string     `json:"error,omitempty"`
}

// BatchEnvelope is the response for a batch request.
type BatchEnvelope struct {
	Success   bool         `json:"success"`
	Processed int          `json:"processed"`
	Failed    int          `json:"failed"`
	Results   []BatchEntry `json:"results"`
}

// Handler provides the HTTP endpoints for document intake.
type Handler struct {
	svc           *Service
	logger        *slog.Logger
	maxUploadSize int64
}

// NewHandler creates a Handler.
func NewHandler(svc *Service, logger *slog.Logger, maxUploadSize int64) *Handler {
	return &Handler{
		svc:           svc,
		logger:        logger.With("handler", "processing"),
		maxUploadSize: maxUploadSize,
	}
}

// Routes returns the route group definition for intake endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/process",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "", Handler: h.Process},
			{Method: "POST", Pattern: "/batch", Handler: h.Batch},
		},
	}
}

// Process accepts a multipart file or a text_input form field, with an
// optional input_type hint, and runs it through the pipeline.
func (h *Handler) Process(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		if !errors.Is(err, http.ErrNotMultipart) {
			h.respondFailure(w, http.StatusBadRequest, err)
			return
		}
		if err := r.ParseForm(); err != nil {
			h.respondFailure(w, http.StatusBadRequest, err)
			return
		}
	}

	var (
		result *pipeline.Result
		err    error
	)

	file, header, ferr := r.FormFile("file")
	if ferr == nil && header.Filename != "" {
		defer file.Close()
		result, err = h.svc.ProcessFile(
			r.Context(),
			header.Filename,
			header.Header.Get("Content-Type"),
			file,
		)
	} else {
		detected := ParseFormat(r.FormValue("input_type"))
		result, err = h.svc.ProcessText(r.Context(), r.FormValue("text_input"), detected)
	}

	if err != nil {
		h.respondFailure(w, statusFor(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, Envelope{
		Success:          true,
		TraceID:          result.Trace.ID,
		Classification:   result.Classification,
		AgentResult:      result.AgentResult,
		ActionsTriggered: result.Routing,
		Message:          "Input processed successfully through multi-agent system",
	})
}

// Batch accepts multiple files under the "files" field and processes them
// with bounded concurrency. Per-file failures are reported in the entry for
// that file rather than failing the batch.
func (h *Handler) Batch(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		h.respondFailure(w, http.StatusBadRequest, err)
		return
	}

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		h.respondFailure(w, http.StatusBadRequest, ErrNoInput)
		return
	}

	entries := make([]BatchEntry, len(files))

	g, gctx := errgroup.WithContext(r.Context())
	g.SetLimit(batchWorkers)

	for i, fh := range files {
		g.Go(func() error {
			entries[i] = BatchEntry{Filename: fh.Filename}

			f, err := fh.Open()
			if err != nil {
				entries[i].Error = ErrFileRead.Error()
				return nil
			}
			defer f.Close()

			result, err := h.svc.ProcessFile(
				gctx,
				fh.Filename,
				fh.Header.Get("Content-Type"),
				f,
			)
			if err != nil {
				entries[i].Error = err.Error()
				return nil
			}

			entries[i].Success = true
			entries[i].TraceID = &result.Trace.ID
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		h.respondFailure(w, http.StatusInternalServerError, err)
		return
	}

	var failed int
	for _, entry := range entries {
		if !entry.Success {
			failed++
		}
	}

	handlers.RespondJSON(w, http.StatusOK, BatchEnvelope{
		Success:   failed == 0,
		Processed: len(entries) - failed,
		Failed:    failed,
		Results:   entries,
	})
}

func (h *Handler) respondFailure(w http.ResponseWriter, status int, err error) {
	h.logger.Error("processing request failed", "status", status, "error", err)
	handlers.RespondJSON(w, status, Failure{
		Success: false,
		Error:   err.Error(),
		Message: "Failed to process input through multi-agent system",
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrNoInput),
		errors.Is(err, ErrInputTooShort),
		errors.Is(err, ErrFileRead),
		errors.Is(err, jsondoc.ErrInvalidPayload),
		errors.Is(err, pipeline.ErrUnsupportedFormat),
		errors.Is(err, extract.ErrExtractFailed):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
