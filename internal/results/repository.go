package results

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

// New creates an agent result repository implementing the System interface.
// All inserts are serialized through the shared writer.
func New(
	writer *repository.Writer,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		writer:     writer,
		logger:     logger.With("system", "results"),
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
) (*pagination.PageResult[AgentResult], error) {
	page.Normalize(r.pagination)

	qb := query.NewBuilder(projection, defaultSort)
	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.writer.DB().QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count agent results: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.writer.DB(), pageSQL, pageArgs, scanAgentResult)
	if err != nil {
		return nil, fmt.Errorf("query agent results: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*AgentResult, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	ar, err := repository.QueryOne(ctx, r.writer.DB(), q, args, scanAgentResult)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &ar, nil
}

func (r *repo) FindByClassification(ctx context.Context, classificationID uuid.UUID) (*AgentResult, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ClassificationID", classificationID)

	ar, err := repository.QueryOne(ctx, r.writer.DB(), q, args, scanAgentResult)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &ar, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*AgentResult, error) {
	if !cmd.AgentType.Valid() {
		return nil, ErrInvalidAgentType
	}

	resultData, err := json.Marshal(cmd.ResultData)
	if err != nil {
		return nil, fmt.Errorf("marshal result data: %w", err)
	}

	insertQ := `
		INSERT INTO agent_results(classification_id, agent_type, result_data, processing_duration)
		VALUES ($1, $2, $3, $4)
		RETURNING id, classification_id, agent_type, result_data, processing_duration, created_at`

	insertArgs := []any{
		cmd.ClassificationID,
		cmd.AgentType,
		resultData,
		cmd.ProcessingDuration,
	}

	ar, err := repository.InsertOne(ctx, r.writer, insertQ, insertArgs, scanAgentResult)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("agent result recorded",
		"id", ar.ID,
		"classification_id", ar.ClassificationID,
		"agent_type", ar.AgentType,
		"duration", ar.ProcessingDuration,
	)
	return &ar, nil
}
