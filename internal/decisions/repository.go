package decisions

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/intakehq/intake/pkg/pagination"
	"github.com/intakehq/intake/pkg/query"
	"github.com/intakehq/intake/pkg/repository"
)

type repo struct {
	writer     *repository.Writer
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a decision log repository implementing the System interface.
// All inserts are serialized through the shared writer.
func New(
	writer *repository.Writer,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		writer:     writer,
		logger:     logger.With("system", "decisions"),
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
) (*pagination.PageResult[DecisionLog], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Reasoning")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.writer.DB().QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count decision logs: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.writer.DB(), pageSQL, pageArgs, scanDecisionLog)
	if err != nil {
		return nil, fmt.Errorf("query decision logs: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*DecisionLog, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	d, err := repository.QueryOne(ctx, r.writer.DB(), q, args, scanDecisionLog)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &d, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*DecisionLog, error) {
	data, err := json.Marshal(cmd.DecisionData)
	if err != nil {
		return nil, fmt.Errorf("marshal decision data: %w", err)
	}

	insertQ := `
		INSERT INTO decision_logs(component, decision_type, decision_data, reasoning, trace_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, component, decision_type, decision_data, reasoning, trace_id, created_at`

	insertArgs := []any{
		cmd.Component,
		cmd.DecisionType,
		data,
		cmd.Reasoning,
		cmd.TraceID,
	}

	d, err := repository.InsertOne(ctx, r.writer, insertQ, insertArgs, scanDecisionLog)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("decision recorded",
		"id", d.ID,
		"component", d.Component,
		"decision_type", d.DecisionType,
	)
	return &d, nil
}
