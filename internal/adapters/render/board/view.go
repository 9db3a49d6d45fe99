package board

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/kotrik/roomwatch/internal/domain"
)

// Board carries everything one leaderboard render needs: the room snapshot,
// the accumulated scores, and any per-playlist fetch errors.
type Board struct {
	Room           domain.Room
	Scores         []domain.ScoreEntry
	PlaylistErrors map[int64]error
}

type RenderOptions struct {
	Now time.Time
}

func renderView(b Board, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render(fmt.Sprintf("%s (id: %d)", b.Room.Name, b.Room.ID)),
	}
	if !b.Room.StartsAt.IsZero() {
		lines = append(lines, s.header.Render(formatRelative(b.Room.StartsAt, opts.Now)))
	}

	if len(b.Room.Playlists) == 0 {
		lines = append(lines, s.empty.Render("Room has no playlists."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, playlist := range b.Room.Playlists {
		lines = append(lines, s.section.Render(renderPlaylist(b, playlist, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderPlaylist(b Board, playlist domain.Playlist, s styles) string {
	header := lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.ruleset.Render("["+domain.RulesetName(playlist.RulesetID)+"]"),
		" ",
		s.beatmap.Render(fmt.Sprintf("%s - %s", playlist.Beatmap.Artist, playlist.Beatmap.Title)),
		" ",
		s.diff.Render("["+playlist.Beatmap.Version+"]"),
	)
	parts := []string{header}

	if err, ok := b.PlaylistErrors[playlist.ID]; ok {
		parts = append(parts, s.warning.Render("scores unavailable: "+err.Error()))
		return lipgloss.JoinVertical(lipgloss.Left, parts...)
	}

	scores := scoresForPlaylist(b.Scores, playlist)
	if len(scores) == 0 {
		parts = append(parts, s.empty.Render("no scores yet"))
		return lipgloss.JoinVertical(lipgloss.Left, parts...)
	}

	for i, score := range scores {
		parts = append(parts, renderScoreRow(i, score, s))
		if times := scoreTimes(score); times != "" {
			parts = append(parts, "    "+s.times.Render(times))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderScoreRow(index int, score domain.ScoreEntry, s styles) string {
	rankStyle := s.rank
	switch index {
	case 0:
		rankStyle = s.gold
	case 1:
		rankStyle = s.silver
	case 2:
		rankStyle = s.bronze
	}

	segments := []string{
		rankStyle.Render(fmt.Sprintf("%2d.", index+1)),
		" ",
		s.player.Render(score.Username),
	}
	if score.CountryCode != "" {
		segments = append(segments, " ", s.country.Render("("+score.CountryCode+")"))
	}
	if acronyms := modAcronyms(score.Mods); acronyms != "" {
		segments = append(segments, " ", s.mods.Render(acronyms))
	}
	if !score.Passed {
		segments = append(segments, " ", s.failed.Render("FAILED"))
	}
	segments = append(segments, "  ", s.score.Render(formatThousands(score.TotalScore)))

	return lipgloss.JoinHorizontal(lipgloss.Top, segments...)
}

// scoreTimeLayout matches the long timestamp format the site shows next to
// each attempt.
const scoreTimeLayout = "Jan 2 2006, 3:04:05 PM"

func scoreTimes(score domain.ScoreEntry) string {
	switch {
	case score.StartedAt.IsZero() && score.EndedAt.IsZero():
		return ""
	case score.EndedAt.IsZero():
		return fmt.Sprintf("(started at: %s)", score.StartedAt.Format(scoreTimeLayout))
	case score.StartedAt.IsZero():
		return fmt.Sprintf("(ended at: %s)", score.EndedAt.Format(scoreTimeLayout))
	default:
		return fmt.Sprintf("(started at: %s, ended at: %s)",
			score.StartedAt.Format(scoreTimeLayout),
			score.EndedAt.Format(scoreTimeLayout))
	}
}

// scoresForPlaylist filters the accumulated collection down to the entries
// set on this playlist's beatmap, keeping accumulation order.
func scoresForPlaylist(scores []domain.ScoreEntry, playlist domain.Playlist) []domain.ScoreEntry {
	var out []domain.ScoreEntry
	for _, score := range scores {
		if score.MapID == playlist.Beatmap.ID {
			out = append(out, score)
		}
	}
	return out
}

func modAcronyms(mods []domain.Mod) string {
	if len(mods) == 0 {
		return ""
	}
	acronyms := make([]string, 0, len(mods))
	for _, mod := range mods {
		acronyms = append(acronyms, mod.Acronym)
	}
	return strings.Join(acronyms, " ")
}

// formatThousands renders 1234567 as "1,234,567".
func formatThousands(n int64) string {
	raw := fmt.Sprintf("%d", n)
	negative := strings.HasPrefix(raw, "-")
	digits := strings.TrimPrefix(raw, "-")

	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	if negative {
		return "-" + b.String()
	}
	return b.String()
}

func formatRelative(t, now time.Time) string {
	if now.IsZero() {
		return "starts at " + t.Format(time.RFC1123)
	}

	diff := t.Sub(now)
	if diff >= 0 {
		return "starts in " + formatDuration(diff)
	}
	return "started " + formatDuration(-diff) + " ago"
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= 48*time.Hour:
		return fmt.Sprintf("%d days", int(d.Hours()/24))
	case d >= 2*time.Hour:
		return fmt.Sprintf("%d hours", int(d.Hours()))
	case d >= 2*time.Minute:
		return fmt.Sprintf("%d minutes", int(d.Minutes()))
	default:
		return fmt.Sprintf("%d seconds", int(d.Seconds()))
	}
}
