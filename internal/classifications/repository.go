package classifications

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

// New creates a classification repository implementing the System interface.
// All inserts are serialized through the shared writer.
func New(
	writer *repository.Writer,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		writer:     writer,
		logger:     logger.With("system", "classifications"),
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
) (*pagination.PageResult[Classification], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Intent", "ContentPreview")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.writer.DB().QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count classifications: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.writer.DB(), pageSQL, pageArgs, scanClassification)
	if err != nil {
		return nil, fmt.Errorf("query classifications: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Classification, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	c, err := repository.QueryOne(ctx, r.writer.DB(), q, args, scanClassification)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &c, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Classification, error) {
	if !cmd.Format.Valid() {
		return nil, ErrInvalidFormat
	}

	metadata, err := json.Marshal(cmd.Metadata)
	if err != nil {
		return nil, fmt.Errorf("marshal metadata: %w", err)
	}

	insertQ := `
		INSERT INTO classifications(format, intent, content_preview, confidence, metadata)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, format, intent, content_preview, confidence, metadata, created_at`

	insertArgs := []any{
		cmd.Format,
		cmd.Intent,
		cmd.ContentPreview,
		cmd.Confidence,
		metadata,
	}

	c, err := repository.InsertOne(ctx, r.writer, insertQ, insertArgs, scanClassification)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("classification recorded",
		"id", c.ID,
		"format", c.Format,
		"intent", c.Intent,
		"confidence", c.Confidence,
	)
	return &c, nil
}
