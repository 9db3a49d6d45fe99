package application

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/kotrik/roomwatch/internal/domain"
)

type ExportFormat string

const (
	FormatCSV  ExportFormat = "csv"
	FormatJSON ExportFormat = "json"
	FormatTOML ExportFormat = "toml"
)

// FormatExport renders the session as spreadsheet-paste text: one line per
// accumulated score, fixed column order, a trailing comma per line, no
// header. The room name is written verbatim.
func FormatExport(session domain.Session) string {
	var b strings.Builder
	for _, score := range session.Scores {
		fmt.Fprintf(&b, "%s,%d,%d,%d,%d,%s,\n",
			session.RoomName,
			session.RoomID,
			score.UserID,
			score.MapID,
			score.TotalScore,
			passFlag(score.Passed),
		)
	}

	return b.String()
}

func passFlag(passed bool) string {
	if passed {
		return "TRUE"
	}
	return "FALSE"
}

// Encode serializes the session snapshot in the requested format. CSV is
// the delimited text from FormatExport; json and toml carry the full entry
// shape including user and mod details.
func Encode(session domain.Session, format ExportFormat) ([]byte, error) {
	switch format {
	case FormatCSV, "":
		return []byte(FormatExport(session)), nil
	case FormatJSON:
		data, err := json.MarshalIndent(toExportSchema(session), "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode session json: %w", err)
		}
		return append(data, '\n'), nil
	case FormatTOML:
		data, err := toml.Marshal(toExportSchema(session))
		if err != nil {
			return nil, fmt.Errorf("encode session toml: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("unsupported export format %q", format)
	}
}

type exportSchema struct {
	RoomID   int64         `json:"room_id" toml:"room_id"`
	RoomName string        `json:"room_name" toml:"room_name"`
	Scores   []scoreSchema `json:"scores" toml:"scores"`
}

type scoreSchema struct {
	ScoreID     int64      `json:"score_id" toml:"score_id"`
	UserID      int64      `json:"user_id" toml:"user_id"`
	Username    string     `json:"username" toml:"username"`
	CountryCode string     `json:"country_code" toml:"country_code"`
	MapID       int64      `json:"map_id" toml:"map_id"`
	TotalScore  int64      `json:"total_score" toml:"total_score"`
	Passed      bool       `json:"passed" toml:"passed"`
	Mods        []string   `json:"mods,omitempty" toml:"mods,omitempty"`
	StartedAt   *time.Time `json:"started_at,omitempty" toml:"started_at,omitempty"`
	EndedAt     *time.Time `json:"ended_at,omitempty" toml:"ended_at,omitempty"`
}

func toExportSchema(session domain.Session) exportSchema {
	out := exportSchema{
		RoomID:   session.RoomID,
		RoomName: session.RoomName,
		Scores:   make([]scoreSchema, 0, len(session.Scores)),
	}

	for _, score := range session.Scores {
		entry := scoreSchema{
			ScoreID:     int64(score.ID),
			UserID:      score.UserID,
			Username:    score.Username,
			CountryCode: score.CountryCode,
			MapID:       score.MapID,
			TotalScore:  score.TotalScore,
			Passed:      score.Passed,
		}
		for _, mod := range score.Mods {
			entry.Mods = append(entry.Mods, mod.Acronym)
		}
		if !score.StartedAt.IsZero() {
			startedAt := score.StartedAt
			entry.StartedAt = &startedAt
		}
		if !score.EndedAt.IsZero() {
			endedAt := score.EndedAt
			entry.EndedAt = &endedAt
		}
		out.Scores = append(out.Scores, entry)
	}

	return out
}
