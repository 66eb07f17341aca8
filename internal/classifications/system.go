package classifications

import (
	"context"

	"github.com/google/uuid"

	"github.com/intakehq/intake/pkg/pagination"
)

// System defines the public contract for classification domain operations.
// Records are append-only; there are no update or delete operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Classification], error)

	Find(ctx context.Context, id uuid.UUID) (*Classification, error)
	Create(ctx context.Context, cmd CreateCommand) (*Classification, error)
}
