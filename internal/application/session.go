package application

import (
	"context"
	"fmt"
	"sync"

	"github.com/kotrik/roomwatch/internal/domain"
	"github.com/kotrik/roomwatch/internal/ports"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// pollConcurrency bounds how many playlist score fetches run at once.
const pollConcurrency = 4

// Session accumulates scores for exactly one (room, credential) identity.
// Callers discard the whole Session and build a fresh one when either half
// of the identity changes; accumulated state never crosses that boundary.
type Session struct {
	source ports.RoomSource
	roomID int64
	log    *zap.Logger

	mu           sync.Mutex
	room         domain.Room
	loaded       bool
	seen         map[domain.ScoreID]struct{}
	scores       []domain.ScoreEntry
	playlistErrs map[int64]error
}

func NewSession(source ports.RoomSource, roomID int64, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}

	return &Session{
		source:       source,
		roomID:       roomID,
		log:          log,
		seen:         map[domain.ScoreID]struct{}{},
		scores:       []domain.ScoreEntry{},
		playlistErrs: map[int64]error{},
	}
}

// Load fetches the room snapshot and then polls every playlist once. A room
// fetch failure halts the whole session; a single playlist failure is
// recorded against that playlist and leaves its siblings untouched.
func (s *Session) Load(ctx context.Context) error {
	room, err := s.source.Room(ctx, s.roomID)
	if err != nil {
		return fmt.Errorf("fetch room %d: %w", s.roomID, err)
	}

	s.mu.Lock()
	s.room = room
	s.loaded = true
	s.mu.Unlock()

	s.log.Debug("room loaded",
		zap.Int64("room_id", room.ID),
		zap.String("name", room.Name),
		zap.Int("playlists", len(room.Playlists)))

	return s.pollPlaylists(ctx, room.Playlists)
}

// Refresh re-polls every playlist of the already-loaded room and merges any
// newly observed scores. Dedup makes repeated refreshes idempotent.
func (s *Session) Refresh(ctx context.Context) error {
	s.mu.Lock()
	if !s.loaded {
		s.mu.Unlock()
		return domain.ErrRoomNotLoaded
	}
	playlists := s.room.Playlists
	s.mu.Unlock()

	return s.pollPlaylists(ctx, playlists)
}

func (s *Session) pollPlaylists(ctx context.Context, playlists []domain.Playlist) error {
	var g errgroup.Group
	g.SetLimit(pollConcurrency)

	for _, playlist := range playlists {
		g.Go(func() error {
			entries, err := s.source.PlaylistScores(ctx, s.roomID, playlist.ID)

			s.mu.Lock()
			if err != nil {
				s.playlistErrs[playlist.ID] = err
				s.mu.Unlock()
				s.log.Warn("playlist scores fetch failed",
					zap.Int64("playlist_id", playlist.ID),
					zap.Error(err))
				return nil
			}
			delete(s.playlistErrs, playlist.ID)
			added := s.mergeLocked(entries)
			s.mu.Unlock()

			s.log.Debug("playlist scores merged",
				zap.Int64("playlist_id", playlist.ID),
				zap.Int("received", len(entries)),
				zap.Int("added", added))
			return nil
		})
	}

	return g.Wait()
}

// Merge folds a batch of entries into the accumulated collection. Entries
// whose id has been seen before are dropped; the remainder is appended in
// batch order. Returns how many entries were appended.
func (s *Session) Merge(incoming []domain.ScoreEntry) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mergeLocked(incoming)
}

func (s *Session) mergeLocked(incoming []domain.ScoreEntry) int {
	added := 0
	for _, entry := range incoming {
		if _, ok := s.seen[entry.ID]; ok {
			continue
		}
		s.seen[entry.ID] = struct{}{}
		s.scores = append(s.scores, entry)
		added++
	}

	return added
}

// Room returns the loaded room snapshot. ok is false before Load succeeds.
func (s *Session) Room() (domain.Room, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.room, s.loaded
}

// Snapshot returns a copy of the exported session state.
func (s *Session) Snapshot() domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	scores := make([]domain.ScoreEntry, len(s.scores))
	copy(scores, s.scores)

	return domain.Session{
		RoomID:   s.room.ID,
		RoomName: s.room.Name,
		Scores:   scores,
	}
}

// PlaylistErrors returns the last fetch error per playlist id, if any.
func (s *Session) PlaylistErrors() map[int64]error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.playlistErrs) == 0 {
		return nil
	}
	errs := make(map[int64]error, len(s.playlistErrs))
	for id, err := range s.playlistErrs {
		errs[id] = err
	}
	return errs
}
