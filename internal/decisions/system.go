package decisions

import (
	"context"

	"github.com/google/uuid"

	"github.com/intakehq/intake/pkg/pagination"
)

// System defines the public contract for decision log domain operations.
// Records are append-only; there are no update or delete operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[DecisionLog], error)

	Find(ctx context.Context, id uuid.UUID) (*DecisionLog, error)
	Create(ctx context.Context, cmd CreateCommand) (*DecisionLog, error)
}
