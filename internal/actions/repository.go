package actions

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

// New creates an action result repository implementing the System interface.
// All inserts are serialized through the shared writer.
func New(
	writer *repository.Writer,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		writer:     writer,
		logger:     logger.With("system", "actions"),
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
) (*pagination.PageResult[ActionResult], error) {
	page.Normalize(r.pagination)

	qb := query.NewBuilder(projection, defaultSort)
	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.writer.DB().QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count action results: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.writer.DB(), pageSQL, pageArgs, scanActionResult)
	if err != nil {
		return nil, fmt.Errorf("query action results: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*ActionResult, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	a, err := repository.QueryOne(ctx, r.writer.DB(), q, args, scanActionResult)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &a, nil
}

func (r *repo) FindByAgentResult(ctx context.Context, agentResultID uuid.UUID) (*ActionResult, error) {
	q, args := query.NewBuilder(projection).BuildSingle("AgentResultID", agentResultID)

	a, err := repository.QueryOne(ctx, r.writer.DB(), q, args, scanActionResult)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &a, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*ActionResult, error) {
	triggered, err := json.Marshal(cmd.ActionsTriggered)
	if err != nil {
		return nil, fmt.Errorf("marshal actions triggered: %w", err)
	}

	insertQ := `
		INSERT INTO action_results(agent_result_id, actions_triggered, success_count, failure_count)
		VALUES ($1, $2, $3, $4)
		RETURNING id, agent_result_id, actions_triggered, success_count, failure_count, created_at`

	insertArgs := []any{
		cmd.AgentResultID,
		triggered,
		cmd.SuccessCount,
		cmd.FailureCount,
	}

	a, err := repository.InsertOne(ctx, r.writer, insertQ, insertArgs, scanActionResult)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("action result recorded",
		"id", a.ID,
		"agent_result_id", a.AgentResultID,
		"success_count", a.SuccessCount,
		"failure_count", a.FailureCount,
	)
	return &a, nil
}
