package traces

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/intakehq/intake/pkg/pagination"
	"github.com/intakehq/intake/pkg/query"
	"github.com/intakehq/intake/pkg/repository"
)

const detailColumns = `
	t.id, t.classification_id, t.agent_result_id, t.action_result_id,
	t.status, t.total_processing_time, t.created_at,
	c.format, c.intent, c.content_preview, c.confidence,
	ar.agent_type, a.actions_triggered, a.success_count, a.failure_count`

const detailJoins = `
	FROM processing_traces t
	JOIN classifications c ON c.id = t.classification_id
	JOIN agent_results ar ON ar.id = t.agent_result_id
	JOIN action_results a ON a.id = t.action_result_id`

type repo struct {
	writer     *repository.Writer
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a trace repository implementing the System interface.
// All inserts are serialized through the shared writer.
func New(
	writer *repository.Writer,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		writer:     writer,
		logger:     logger.With("system", "traces"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Trace], error) {
	page.Normalize(r.pagination)

	qb := query.NewBuilder(projection, defaultSort)
	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.writer.DB().QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count traces: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.writer.DB(), pageSQL, pageArgs, scanTrace)
	if err != nil {
		return nil, fmt.Errorf("query traces: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Trace, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	t, err := repository.QueryOne(ctx, r.writer.DB(), q, args, scanTrace)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &t, nil
}

// FindDetail returns the trace joined with its linked classification, agent
// result, and action result rows. The joins are inner joins on the stored
// identifiers, so a detail row exists for every trace.
func (r *repo) FindDetail(ctx context.Context, id uuid.UUID) (*Detail, error) {
	q := "SELECT" + detailColumns + detailJoins + " WHERE t.id = $1"

	d, err := repository.QueryOne(ctx, r.writer.DB(), q, []any{id}, scanDetail)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &d, nil
}

// ListDetails returns a page of joined trace views, most recent first.
func (r *repo) ListDetails(ctx context.Context, page pagination.PageRequest) (*pagination.PageResult[Detail], error) {
	page.Normalize(r.pagination)

	var total int
	if err := r.writer.DB().QueryRowContext(ctx, "SELECT COUNT(*) FROM processing_traces").Scan(&total); err != nil {
		return nil, fmt.Errorf("count traces: %w", err)
	}

	q := "SELECT" + detailColumns + detailJoins + " ORDER BY t.created_at DESC LIMIT $1 OFFSET $2"

	items, err := repository.QueryMany(ctx, r.writer.DB(), q, []any{page.PageSize, page.Offset()}, scanDetail)
	if err != nil {
		return nil, fmt.Errorf("query trace details: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Trace, error) {
	if cmd.ClassificationID == uuid.Nil || cmd.AgentResultID == uuid.Nil || cmd.ActionResultID == uuid.Nil {
		return nil, ErrMissingLink
	}

	insertQ := `
		INSERT INTO processing_traces(
			classification_id, agent_result_id, action_result_id,
			status, total_processing_time
		)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, classification_id, agent_result_id, action_result_id,
				  status, total_processing_time, created_at`

	insertArgs := []any{
		cmd.ClassificationID,
		cmd.AgentResultID,
		cmd.ActionResultID,
		cmd.Status,
		cmd.TotalProcessingTime,
	}

	t, err := repository.InsertOne(ctx, r.writer, insertQ, insertArgs, scanTrace)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("trace recorded",
		"id", t.ID,
		"classification_id", t.ClassificationID,
		"agent_result_id", t.AgentResultID,
		"action_result_id", t.ActionResultID,
		"total_processing_time", t.TotalProcessingTime,
	)
	return &t, nil
}
