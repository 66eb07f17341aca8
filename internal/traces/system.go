package traces

import (
	"context"

	"github.com/google/uuid"

	"github.com/intakehq/intake/pkg/pagination"
)

// System defines the public contract for trace domain operations.
// Records are append-only; there are no update or delete operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Trace], error)

	Find(ctx context.Context, id uuid.UUID) (*Trace, error)
	FindDetail(ctx context.Context, id uuid.UUID) (*Detail, error)
	ListDetails(ctx context.Context, page pagination.PageRequest) (*pagination.PageResult[Detail], error)
	Create(ctx context.Context, cmd CreateCommand) (*Trace, error)
}
