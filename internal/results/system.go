package results

import (
	"context"

	"github.com/google/uuid"

	"github.com/intakehq/intake/pkg/pagination"
)

// System defines the public contract for agent result domain operations.
// Records are append-only; there are no update or delete operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[AgentResult], error)

	Find(ctx context.Context, id uuid.UUID) (*AgentResult, error)
	FindByClassification(ctx context.Context, classificationID uuid.UUID) (*AgentResult, error)
	Create(ctx context.Context, cmd CreateCommand) (*AgentResult, error)
}
