// Package labels provides a static, in-memory OriginLabeler.
package labels

import (
	"context"

	"github.com/bnema/siteperm/internal/application/port"
	"github.com/bnema/siteperm/internal/domain/entity"
)

// Static maps origins to fixed display labels, typically loaded from
// configuration. The zero value labels nothing.
type Static struct {
	byOrigin map[entity.Origin]string
}

var _ port.OriginLabeler = (*Static)(nil)

// NewStatic builds a labeler from raw origin -> label pairs. Entries whose
// origin fails to parse are dropped.
func NewStatic(raw map[string]string) *Static {
	byOrigin := make(map[entity.Origin]string, len(raw))
	for rawOrigin, label := range raw {
		origin, err := entity.ParseOrigin(rawOrigin)
		if err != nil || label == "" {
			continue
		}
		byOrigin[origin] = label
	}
	return &Static{byOrigin: byOrigin}
}

// LabelForOrigin returns the configured label for origin, if any.
func (s *Static) LabelForOrigin(_ context.Context, origin entity.Origin) (string, bool) {
	label, ok := s.byOrigin[origin]
	return label, ok
}
