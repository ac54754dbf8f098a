// Package prompt implements the terminal permission prompt: a three-way
// allow / block / dismiss dialog rendered with Bubble Tea.
package prompt

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/siteperm/internal/application/port"
	"github.com/bnema/siteperm/internal/domain/entity"
)

// choice indexes the selectable buttons, left to right.
type choice int

const (
	choiceBlock choice = iota
	choiceAllow
)

// KeyMap defines keybindings for the permission prompt.
type KeyMap struct {
	Allow   key.Binding
	Block   key.Binding
	Left    key.Binding
	Right   key.Binding
	Confirm key.Binding
	Dismiss key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Allow:   key.NewBinding(key.WithKeys("a", "y"), key.WithHelp("a/y", "allow")),
		Block:   key.NewBinding(key.WithKeys("b", "n"), key.WithHelp("b/n", "block")),
		Left:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "block")),
		Right:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "allow")),
		Confirm: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
		Dismiss: key.NewBinding(key.WithKeys("esc", "q"), key.WithHelp("esc", "dismiss")),
	}
}

var (
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(1, 3)
	titleStyle    = lipgloss.NewStyle().Bold(true)
	originStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	subtleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	activeButton  = lipgloss.NewStyle().Bold(true).Reverse(true).Padding(0, 1)
	passiveButton = lipgloss.NewStyle().Padding(0, 1)
)

// Model is the permission prompt dialog.
type Model struct {
	origin      entity.Origin
	displayName string
	keys        KeyMap

	selected  choice
	done      bool
	dismissed bool
}

// New creates a prompt for origin, shown to the user as displayName.
func New(origin entity.Origin, displayName string) Model {
	return Model{
		origin:      origin,
		displayName: displayName,
		keys:        DefaultKeyMap(),
		selected:    choiceBlock, // safest default
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.done {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Allow):
		m.selected = choiceAllow
		m.done = true
	case key.Matches(keyMsg, m.keys.Block):
		m.selected = choiceBlock
		m.done = true
	case key.Matches(keyMsg, m.keys.Left):
		m.selected = choiceBlock
	case key.Matches(keyMsg, m.keys.Right):
		m.selected = choiceAllow
	case key.Matches(keyMsg, m.keys.Confirm):
		m.done = true
	case key.Matches(keyMsg, m.keys.Dismiss):
		m.done = true
		m.dismissed = true
	default:
		return m, nil
	}

	if m.done {
		return m, tea.Quit
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if m.done {
		return ""
	}

	blockStyle := passiveButton
	allowStyle := passiveButton
	if m.selected == choiceBlock {
		blockStyle = activeButton
	} else {
		allowStyle = activeButton
	}

	buttons := lipgloss.JoinHorizontal(
		lipgloss.Center,
		blockStyle.Render("Block"),
		"   ",
		allowStyle.Render("Allow"),
	)

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		titleStyle.Render(fmt.Sprintf("%s wants to show notifications", m.displayName)),
		subtleStyle.Render(originStyle.Render(m.origin.String())),
		"",
		buttons,
		"",
		subtleStyle.Render("a allow • b block • ←/→ select • enter confirm • esc dismiss"),
	)

	return boxStyle.Render(content)
}

// Done reports whether the user finished interacting with the prompt.
func (m Model) Done() bool {
	return m.done
}

// Outcome returns the user's response. Only meaningful once Done.
func (m Model) Outcome() port.PromptOutcome {
	switch {
	case m.dismissed:
		return port.PromptDismissed
	case m.selected == choiceAllow:
		return port.PromptAllow
	default:
		return port.PromptBlock
	}
}

var _ tea.Model = Model{}
