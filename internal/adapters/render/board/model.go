package board

import (
	"errors"
	"io"

	tea "github.com/charmbracelet/bubbletea"
)

var ErrUnexpectedRenderModel = errors.New("unexpected final bubbletea model type")

type renderReadyMsg struct{}

type model struct {
	board  Board
	opts   RenderOptions
	styles styles
	output string
}

func newModel(b Board, opts RenderOptions) model {
	return model{
		board:  b,
		opts:   opts,
		styles: newStyles(),
	}
}

func (m model) Init() tea.Cmd {
	return func() tea.Msg {
		return renderReadyMsg{}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg.(type) {
	case renderReadyMsg:
		m.output = renderView(m.board, m.opts, m.styles)
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m model) View() string {
	return m.output
}

// Render produces the leaderboard through a one-shot bubbletea program.
func Render(b Board, opts RenderOptions) (string, error) {
	p := tea.NewProgram(
		newModel(b, opts),
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	rendered, ok := finalModel.(model)
	if !ok {
		return "", ErrUnexpectedRenderModel
	}

	return rendered.View(), nil
}

// RenderString renders synchronously for callers that already run inside a
// bubbletea program, such as the watch view.
func RenderString(b Board, opts RenderOptions) string {
	return renderView(b, opts, newStyles())
}
