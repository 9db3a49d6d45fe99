package domain

import "time"

// Room is an immutable snapshot of one multiplayer room as returned by the
// API. Playlists keep the order the API reported them in.
type Room struct {
	ID        int64
	Name      string
	StartsAt  time.Time
	Playlists []Playlist
}

type Playlist struct {
	ID        int64
	RulesetID int
	Beatmap   Beatmap
}

type Beatmap struct {
	ID       int64
	Version  string
	Artist   string
	Title    string
	CoverURL string
}

// Session is the exported view of one room-viewing session: the room
// identity plus every score accumulated so far, in first-seen order.
type Session struct {
	RoomID   int64
	RoomName string
	Scores   []ScoreEntry
}
