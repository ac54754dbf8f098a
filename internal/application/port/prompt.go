// Package port defines the interfaces between the permission core and its
// external collaborators (UI prompt, renderer delivery, label lookup).
package port

import (
	"context"

	"github.com/bnema/siteperm/internal/domain/entity"
)

// PromptOutcome is the user's response to a permission prompt.
type PromptOutcome int

const (
	// PromptAllow means the user granted the permission.
	PromptAllow PromptOutcome = iota

	// PromptBlock means the user denied the permission.
	PromptBlock

	// PromptDismissed means the prompt was closed without an explicit choice.
	PromptDismissed
)

func (o PromptOutcome) String() string {
	switch o {
	case PromptAllow:
		return "allow"
	case PromptBlock:
		return "block"
	case PromptDismissed:
		return "dismissed"
	default:
		return "unknown"
	}
}

// PromptPresenter displays a yes/no permission prompt for an origin.
// respond is invoked exactly once, on the control context, with the outcome.
// The presenter must not block the caller; surfacing the prompt is
// fire-and-forget with a future response.
type PromptPresenter interface {
	ShowPrompt(
		ctx context.Context,
		origin entity.Origin,
		displayName string,
		requester entity.Requester,
		respond func(outcome PromptOutcome),
	)
}
