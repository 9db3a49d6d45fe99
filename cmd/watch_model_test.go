package cmd

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kotrik/roomwatch/internal/adapters/render/board"
	"github.com/kotrik/roomwatch/internal/config"
	"github.com/kotrik/roomwatch/internal/domain"
	"github.com/kotrik/roomwatch/internal/ports"
)

type staticRoomSource struct {
	room   domain.Room
	scores map[int64][]domain.ScoreEntry
}

func (s *staticRoomSource) Room(_ context.Context, _ int64) (domain.Room, error) {
	return s.room, nil
}

func (s *staticRoomSource) PlaylistScores(_ context.Context, _ int64, playlistID int64) ([]domain.ScoreEntry, error) {
	return s.scores[playlistID], nil
}

type fakeClock struct {
	now time.Time
}

func newTestWatchModel(source ports.RoomSource) (*watchModel, *fakeClock) {
	clk := &fakeClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}

	testApp := &app{
		cfg: &config.Config{
			APIBaseURL:     "http://unused.invalid",
			DebounceWindow: 500 * time.Millisecond,
			MinTokenLength: 20,
			HTTPTimeout:    time.Second,
		},
		log:           zap.NewNop(),
		newSource:     func(string) ports.RoomSource { return source },
		boardRenderer: board.Render,
		now:           func() time.Time { return clk.now },
	}

	return newWatchModel(testApp), clk
}

func typeRunes(m *watchModel, text string) {
	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
}

// runCmd executes a command tree and feeds every resulting message back
// into the model, mirroring what the bubbletea runtime would do.
func runCmd(t *testing.T, m *watchModel, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		return
	}

	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, sub := range batch {
			runCmd(t, m, sub)
		}
		return
	}
	if msg == nil {
		return
	}
	_, _ = m.Update(msg)
}

func testSource() *staticRoomSource {
	return &staticRoomSource{
		room: domain.Room{
			ID:        1234586,
			Name:      "Sunday Cup",
			Playlists: []domain.Playlist{{ID: 100, Beatmap: domain.Beatmap{ID: 10}}},
		},
		scores: map[int64][]domain.ScoreEntry{
			100: {{ID: 1, UserID: 5, MapID: 10, TotalScore: 900000, Passed: true, Username: "peppy"}},
		},
	}
}

const longToken = "abcdefghijklmnopqrstuvwxy" // 25 chars, over the 20 gate

func TestWatchNumericGateRejectsNonNumericRoomID(t *testing.T) {
	m, clk := newTestWatchModel(testSource())

	typeRunes(m, "123abc")
	clk.now = clk.now.Add(time.Second)
	_, _ = m.Update(debounceTickMsg(clk.now))

	assert.Equal(t, int64(0), m.roomID)
	assert.False(t, m.gated())
}

func TestWatchDoesNotMountUntilBothGatesPass(t *testing.T) {
	m, clk := newTestWatchModel(testSource())

	typeRunes(m, "1234586")
	clk.now = clk.now.Add(600 * time.Millisecond)
	_, _ = m.Update(debounceTickMsg(clk.now))

	assert.Equal(t, int64(1234586), m.roomID)
	assert.False(t, m.loading, "no fetch until the token gate passes")
	assert.Nil(t, m.session)

	// A 20-char token does not exceed the gate.
	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	typeRunes(m, longToken[:20])
	clk.now = clk.now.Add(600 * time.Millisecond)
	_, _ = m.Update(debounceTickMsg(clk.now))
	assert.False(t, m.loading)
}

func TestWatchMountsAndRendersSession(t *testing.T) {
	m, clk := newTestWatchModel(testSource())

	typeRunes(m, "1234586")
	clk.now = clk.now.Add(600 * time.Millisecond)
	_, _ = m.Update(debounceTickMsg(clk.now))

	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	typeRunes(m, longToken)
	clk.now = clk.now.Add(600 * time.Millisecond)

	cmd := m.flushCommits()
	require.NotNil(t, cmd, "committed token change must start the session")
	require.True(t, m.loading)

	runCmd(t, m, cmd)

	require.False(t, m.loading)
	require.NotNil(t, m.session)
	require.NoError(t, m.loadErr)

	view := m.View()
	assert.Contains(t, view, "Sunday Cup (id: 1234586)")
	assert.Contains(t, view, "peppy")
	assert.Contains(t, view, "Sunday Cup,1234586,5,10,900000,TRUE,")
}

func TestWatchDiscardsStaleSessionResult(t *testing.T) {
	m, clk := newTestWatchModel(testSource())

	typeRunes(m, "1234586")
	clk.now = clk.now.Add(600 * time.Millisecond)
	_, _ = m.Update(debounceTickMsg(clk.now))
	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	typeRunes(m, longToken)
	clk.now = clk.now.Add(600 * time.Millisecond)
	_ = m.flushCommits()
	staleGen := m.gen

	// Identity changes again before the first load resolves.
	m.token = longToken + "z"
	_ = m.restartSession()
	require.Greater(t, m.gen, staleGen)

	_, _ = m.Update(sessionReadyMsg{gen: staleGen, session: m.app.newSession(1, "x")})
	assert.Nil(t, m.session, "stale result must not reach the view")
	assert.True(t, m.loading, "current generation is still loading")
}

func TestWatchRapidTypingNeverCommitsEarly(t *testing.T) {
	m, clk := newTestWatchModel(testSource())

	for _, digit := range []string{"1", "2", "3"} {
		typeRunes(m, digit)
		clk.now = clk.now.Add(100 * time.Millisecond)
		_, _ = m.Update(debounceTickMsg(clk.now))
	}

	assert.Equal(t, int64(0), m.roomID, "value must not commit while typing continues")

	clk.now = clk.now.Add(500 * time.Millisecond)
	_, _ = m.Update(debounceTickMsg(clk.now))
	assert.Equal(t, int64(123), m.roomID)
}
