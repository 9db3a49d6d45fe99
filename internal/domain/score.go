package domain

import "time"

type ScoreID int64

// ScoreEntry is one player's completed attempt on a playlist item. ID is the
// solo score id and is the only field the dedup invariant applies to; the
// remaining fields are carried for display and export.
type ScoreEntry struct {
	ID          ScoreID
	UserID      int64
	MapID       int64
	TotalScore  int64
	Passed      bool
	Username    string
	CountryCode string
	Mods        []Mod
	StartedAt   time.Time
	EndedAt     time.Time
}

type Mod struct {
	Acronym  string
	Settings []ModSetting
}

// ModSetting is one free-form setting attached to a mod. Settings keep the
// order they appeared in on the wire instead of collapsing into a map.
type ModSetting struct {
	Name  string
	Value any
}
