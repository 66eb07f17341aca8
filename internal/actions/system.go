package actions

import (
	"context"

	"github.com/google/uuid"

	"github.com/intakehq/intake/pkg/pagination"
)

// System defines the public contract for action result domain operations.
// Records are append-only; there are no update or delete operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[ActionResult], error)

	Find(ctx context.Context, id uuid.UUID) (*ActionResult, error)
	FindByAgentResult(ctx context.Context, agentResultID uuid.UUID) (*ActionResult, error)
	Create(ctx context.Context, cmd CreateCommand) (*ActionResult, error)
}
