package osuapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/kotrik/roomwatch/internal/domain"
)

// coverKey selects which beatmapset cover variant feeds Beatmap.CoverURL.
const coverKey = "card@2x"

type roomPayload struct {
	ID       int64             `json:"id"`
	Name     string            `json:"name"`
	StartsAt time.Time         `json:"starts_at"`
	Playlist []playlistPayload `json:"playlist"`
}

type playlistPayload struct {
	ID        int64          `json:"id"`
	RulesetID int            `json:"ruleset_id"`
	Beatmap   beatmapPayload `json:"beatmap"`
}

type beatmapPayload struct {
	ID         int64             `json:"id"`
	Version    string            `json:"version"`
	Beatmapset beatmapsetPayload `json:"beatmapset"`
}

type beatmapsetPayload struct {
	Artist string            `json:"artist"`
	Title  string            `json:"title"`
	Covers map[string]string `json:"covers"`
}

func (p roomPayload) toDomain() domain.Room {
	room := domain.Room{
		ID:        p.ID,
		Name:      p.Name,
		StartsAt:  p.StartsAt,
		Playlists: make([]domain.Playlist, 0, len(p.Playlist)),
	}

	for _, playlist := range p.Playlist {
		room.Playlists = append(room.Playlists, domain.Playlist{
			ID:        playlist.ID,
			RulesetID: playlist.RulesetID,
			Beatmap: domain.Beatmap{
				ID:       playlist.Beatmap.ID,
				Version:  playlist.Beatmap.Version,
				Artist:   playlist.Beatmap.Beatmapset.Artist,
				Title:    playlist.Beatmap.Beatmapset.Title,
				CoverURL: playlist.Beatmap.Beatmapset.Covers[coverKey],
			},
		})
	}

	return room
}

type scoresPayload struct {
	Scores []scorePayload `json:"scores"`
}

type scorePayload struct {
	SoloScoreID int64        `json:"solo_score_id"`
	UserID      int64        `json:"user_id"`
	BeatmapID   int64        `json:"beatmap_id"`
	TotalScore  int64        `json:"total_score"`
	Passed      bool         `json:"passed"`
	User        userPayload  `json:"user"`
	Mods        []modPayload `json:"mods"`
	StartedAt   time.Time    `json:"started_at"`
	EndedAt     time.Time    `json:"ended_at"`
}

type userPayload struct {
	Username string         `json:"username"`
	Country  countryPayload `json:"country"`
}

type countryPayload struct {
	Code string `json:"code"`
}

type modPayload struct {
	Acronym  string          `json:"acronym"`
	Settings json.RawMessage `json:"settings"`
}

func (p scoresPayload) toDomain() ([]domain.ScoreEntry, error) {
	entries := make([]domain.ScoreEntry, 0, len(p.Scores))
	for _, score := range p.Scores {
		mods := make([]domain.Mod, 0, len(score.Mods))
		for _, mod := range score.Mods {
			settings, err := decodeModSettings(mod.Settings)
			if err != nil {
				return nil, fmt.Errorf("decode settings for mod %s: %w", mod.Acronym, err)
			}
			mods = append(mods, domain.Mod{Acronym: mod.Acronym, Settings: settings})
		}

		entries = append(entries, domain.ScoreEntry{
			ID:          domain.ScoreID(score.SoloScoreID),
			UserID:      score.UserID,
			MapID:       score.BeatmapID,
			TotalScore:  score.TotalScore,
			Passed:      score.Passed,
			Username:    score.User.Username,
			CountryCode: score.User.Country.Code,
			Mods:        mods,
			StartedAt:   score.StartedAt,
			EndedAt:     score.EndedAt,
		})
	}

	return entries, nil
}

// decodeModSettings turns the free-form settings object into ordered
// (name, value) pairs. A token walk keeps the wire order, which a plain
// map[string]any decode would lose.
func decodeModSettings(raw json.RawMessage) ([]domain.ModSetting, error) {
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	token, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := token.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("settings is not an object")
	}

	var settings []domain.ModSetting
	for dec.More() {
		keyToken, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyToken.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected settings key token %v", keyToken)
		}

		var value any
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}
		settings = append(settings, domain.ModSetting{Name: key, Value: value})
	}

	return settings, nil
}
