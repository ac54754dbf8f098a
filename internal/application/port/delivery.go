package port

import (
	"context"

	"github.com/bnema/siteperm/internal/domain/entity"
)

// DecisionDelivery sends the one-way completion message back to the renderer
// that asked for a permission decision. Fire-and-forget: no acknowledgment is
// modeled, and delivery after the requester is gone is silently dropped by
// the implementation.
//
// decision carries the decision that now applies to the origin; an abandoned
// or dismissed request delivers the unchanged (ask) decision so the requester
// is unblocked without being granted anything.
type DecisionDelivery interface {
	DeliverCompletion(ctx context.Context, requester entity.Requester, decision entity.Decision)
}
