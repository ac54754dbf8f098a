package port

import (
	"context"

	"github.com/bnema/siteperm/internal/domain/entity"
)

// OriginLabeler resolves a human-readable name for an origin, typically for
// extension-hosted origins whose raw host is an opaque identifier. When no
// label is known the caller falls back to the origin's host component.
type OriginLabeler interface {
	LabelForOrigin(ctx context.Context, origin entity.Origin) (label string, found bool)
}
