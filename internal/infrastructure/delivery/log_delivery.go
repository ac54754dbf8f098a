// Package delivery provides DecisionDelivery implementations.
package delivery

import (
	"context"

	"github.com/bnema/siteperm/internal/application/port"
	"github.com/bnema/siteperm/internal/domain/entity"
	"github.com/bnema/siteperm/internal/logging"
)

// Log is a DecisionDelivery that records completions in the log. The CLI uses
// it in place of a renderer channel; fire-and-forget, like the real thing.
type Log struct {
	// OnDeliver, when set, additionally receives every completion. Used by
	// the request command to surface the result to the terminal.
	OnDeliver func(requester entity.Requester, decision entity.Decision)
}

var _ port.DecisionDelivery = (*Log)(nil)

// DeliverCompletion logs the completion and forwards it to OnDeliver.
func (l *Log) DeliverCompletion(ctx context.Context, requester entity.Requester, decision entity.Decision) {
	logging.FromContext(ctx).Info().
		Int("process_id", requester.ProcessID).
		Int("route_id", requester.RouteID).
		Int("request_id", requester.RequestID).
		Str("decision", decision.String()).
		Msg("permission request completed")

	if l.OnDeliver != nil {
		l.OnDeliver(requester, decision)
	}
}
