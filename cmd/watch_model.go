package cmd

import (
	"context"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kotrik/roomwatch/internal/adapters/render/board"
	"github.com/kotrik/roomwatch/internal/application"
	"github.com/kotrik/roomwatch/internal/debounce"
)

const (
	fieldRoom = iota
	fieldToken
	fieldCount
)

// debounceTickEvery drives the debounce clock; commits still only happen
// once a full quiet window has passed.
const debounceTickEvery = 100 * time.Millisecond

type debounceTickMsg time.Time

type sessionReadyMsg struct {
	gen     int
	session *application.Session
	err     error
}

type refreshDoneMsg struct {
	gen int
	err error
}

type watchStyles struct {
	label   lipgloss.Style
	hint    lipgloss.Style
	warning lipgloss.Style
	export  lipgloss.Style
	heading lipgloss.Style
}

func newWatchStyles() watchStyles {
	return watchStyles{
		label:   lipgloss.NewStyle().Bold(true),
		hint:    lipgloss.NewStyle().Faint(true),
		warning: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		export:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		heading: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).MarginTop(1),
	}
}

type watchModel struct {
	app    *app
	styles watchStyles

	inputs   [fieldCount]textinput.Model
	focus    int
	roomDeb  *debounce.Debouncer
	tokenDeb *debounce.Debouncer
	lastText [fieldCount]string

	roomID int64
	token  string

	// gen identifies the current (roomID, token) identity. Results carrying
	// an older gen arrive from a torn-down session and are discarded.
	gen     int
	cancel  context.CancelFunc
	session *application.Session
	loading bool
	loadErr error

	spin spinner.Model
	now  func() time.Time
}

func newWatchModel(app *app) *watchModel {
	roomInput := textinput.New()
	roomInput.Placeholder = "room id (ex. 1234586)"
	roomInput.CharLimit = 19
	roomInput.Focus()

	tokenInput := textinput.New()
	tokenInput.Placeholder = "osu! api v2 bearer token"
	tokenInput.EchoMode = textinput.EchoPassword

	return &watchModel{
		app:      app,
		styles:   newWatchStyles(),
		inputs:   [fieldCount]textinput.Model{roomInput, tokenInput},
		roomDeb:  debounce.New(app.cfg.DebounceWindow),
		tokenDeb: debounce.New(app.cfg.DebounceWindow),
		spin: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
		),
		now: app.now,
	}
}

func (m *watchModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spin.Tick, m.tick())
}

func (m *watchModel) tick() tea.Cmd {
	return tea.Tick(debounceTickEvery, func(t time.Time) tea.Msg {
		return debounceTickMsg(t)
	})
}

func (m *watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			if m.cancel != nil {
				m.cancel()
			}
			return m, tea.Quit
		case tea.KeyTab, tea.KeyShiftTab, tea.KeyEnter:
			m.setFocus((m.focus + 1) % fieldCount)
			return m, nil
		case tea.KeyCtrlR:
			return m, m.refreshCmd()
		}
		return m, m.updateFocusedInput(msg)

	case debounceTickMsg:
		cmd := m.flushCommits()
		return m, tea.Batch(cmd, m.tick())

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case sessionReadyMsg:
		if msg.gen != m.gen {
			// Result for a torn-down identity; never merge it into view.
			return m, nil
		}
		m.loading = false
		m.loadErr = msg.err
		if msg.err == nil {
			m.session = msg.session
		}
		return m, nil

	case refreshDoneMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.loadErr = msg.err
		return m, nil
	}

	return m, nil
}

func (m *watchModel) setFocus(focus int) {
	m.focus = focus
	for i := range m.inputs {
		if i == focus {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
}

func (m *watchModel) updateFocusedInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)

	now := m.now()
	if text := m.inputs[fieldRoom].Value(); text != m.lastText[fieldRoom] {
		m.lastText[fieldRoom] = text
		m.roomDeb.Observe(text, now)
	}
	if text := m.inputs[fieldToken].Value(); text != m.lastText[fieldToken] {
		m.lastText[fieldToken] = text
		m.tokenDeb.Observe(text, now)
	}

	return cmd
}

// flushCommits applies any debounced value whose quiet window has elapsed
// and restarts the session when the committed identity changed.
func (m *watchModel) flushCommits() tea.Cmd {
	now := m.now()
	changed := false

	if text, ok := m.roomDeb.Flush(now); ok {
		if roomID, valid := parseRoomID(text); valid && roomID != m.roomID {
			m.roomID = roomID
			changed = true
		}
	}
	if text, ok := m.tokenDeb.Flush(now); ok {
		if text != m.token {
			m.token = text
			changed = true
		}
	}

	if !changed {
		return nil
	}
	return m.restartSession()
}

// parseRoomID applies the numeric gate: the whole trimmed text must parse
// as a finite number. Non-numeric text is never committed.
func parseRoomID(text string) (int64, bool) {
	value, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false
	}
	return int64(value), true
}

func (m *watchModel) gated() bool {
	return m.roomID != 0 && len(m.token) > m.app.cfg.MinTokenLength
}

func (m *watchModel) restartSession() tea.Cmd {
	m.gen++
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.session = nil
	m.loadErr = nil
	m.loading = false

	if !m.gated() {
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.loading = true

	gen := m.gen
	session := m.app.newSession(m.roomID, m.token)
	return tea.Batch(m.spin.Tick, func() tea.Msg {
		err := session.Load(ctx)
		return sessionReadyMsg{gen: gen, session: session, err: err}
	})
}

func (m *watchModel) refreshCmd() tea.Cmd {
	if m.session == nil || m.loading || m.cancel == nil {
		return nil
	}

	gen := m.gen
	session := m.session
	ctx, cancel := context.WithCancel(context.Background())
	previousCancel := m.cancel
	m.cancel = func() {
		previousCancel()
		cancel()
	}

	return func() tea.Msg {
		return refreshDoneMsg{gen: gen, err: session.Refresh(ctx)}
	}
}

func (m *watchModel) View() string {
	s := m.styles
	lines := []string{
		s.label.Render("Room id"),
		m.inputs[fieldRoom].View(),
		s.label.Render("osu! api v2 bearer token"),
		m.inputs[fieldToken].View(),
		s.hint.Render("tab: switch field | ctrl+r: refresh | ctrl+c: quit"),
	}

	switch {
	case !m.gated():
		lines = append(lines, s.hint.Render("Enter a nonzero room id and a bearer token to load the room."))
	case m.loading:
		lines = append(lines, m.spin.View()+" Match resolving in progress...")
	case m.loadErr != nil:
		lines = append(lines, s.warning.Render("error happened: "+m.loadErr.Error()))
	case m.session != nil:
		lines = append(lines, m.renderSession())
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...) + "\n"
}

func (m *watchModel) renderSession() string {
	snapshot := m.session.Snapshot()
	room, _ := m.session.Room()

	rendered := board.RenderString(board.Board{
		Room:           room,
		Scores:         snapshot.Scores,
		PlaylistErrors: m.session.PlaylistErrors(),
	}, board.RenderOptions{Now: m.now()})

	parts := []string{rendered}
	if export := application.FormatExport(snapshot); export != "" {
		parts = append(parts,
			m.styles.heading.Render("Spreadsheet paste"),
			m.styles.export.Render(strings.TrimRight(export, "\n")),
		)
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
