package prompt

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bnema/siteperm/internal/application/port"
	"github.com/bnema/siteperm/internal/domain/entity"
	"github.com/bnema/siteperm/internal/logging"
)

// Presenter runs the terminal prompt as a PromptPresenter. Each prompt gets
// its own Bubble Tea program; the caller is never blocked.
type Presenter struct{}

var _ port.PromptPresenter = (*Presenter)(nil)

// ShowPrompt displays the dialog and reports the outcome through respond.
// A failed or interrupted program counts as a dismissal.
func (p *Presenter) ShowPrompt(
	ctx context.Context,
	origin entity.Origin,
	displayName string,
	_ entity.Requester,
	respond func(port.PromptOutcome),
) {
	log := logging.FromContext(ctx)
	go func() {
		final, err := tea.NewProgram(New(origin, displayName)).Run()
		if err != nil {
			log.Warn().Err(err).Str("origin", origin.String()).Msg("prompt aborted")
			respond(port.PromptDismissed)
			return
		}
		model, ok := final.(Model)
		if !ok || !model.Done() {
			respond(port.PromptDismissed)
			return
		}
		respond(model.Outcome())
	}()
}
