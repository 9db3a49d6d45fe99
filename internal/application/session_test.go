package application

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kotrik/roomwatch/internal/domain"
)

type fakeRoomSource struct {
	mu         sync.Mutex
	room       domain.Room
	roomErr    error
	scores     map[int64][]domain.ScoreEntry
	scoreErrs  map[int64]error
	scoreCalls map[int64]int
}

func (f *fakeRoomSource) Room(_ context.Context, roomID int64) (domain.Room, error) {
	if f.roomErr != nil {
		return domain.Room{}, f.roomErr
	}
	return f.room, nil
}

func (f *fakeRoomSource) PlaylistScores(_ context.Context, _ int64, playlistID int64) ([]domain.ScoreEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.scoreCalls == nil {
		f.scoreCalls = map[int64]int{}
	}
	f.scoreCalls[playlistID]++

	if err, ok := f.scoreErrs[playlistID]; ok {
		return nil, err
	}
	return f.scores[playlistID], nil
}

func entry(id int64, userID int64, total int64) domain.ScoreEntry {
	return domain.ScoreEntry{
		ID:         domain.ScoreID(id),
		UserID:     userID,
		MapID:      userID * 10,
		TotalScore: total,
		Passed:     true,
	}
}

func TestMergeAppendsInBatchOrder(t *testing.T) {
	session := NewSession(&fakeRoomSource{}, 1, nil)

	added := session.Merge([]domain.ScoreEntry{entry(1, 5, 100), entry(2, 6, 200), entry(3, 7, 300)})
	require.Equal(t, 3, added)

	scores := session.Snapshot().Scores
	require.Len(t, scores, 3)
	assert.Equal(t, domain.ScoreID(1), scores[0].ID)
	assert.Equal(t, domain.ScoreID(2), scores[1].ID)
	assert.Equal(t, domain.ScoreID(3), scores[2].ID)
}

func TestMergeIsIdempotent(t *testing.T) {
	session := NewSession(&fakeRoomSource{}, 1, nil)
	batch := []domain.ScoreEntry{entry(1, 5, 100), entry(2, 6, 200)}

	require.Equal(t, 2, session.Merge(batch))
	require.Equal(t, 0, session.Merge(batch))

	assert.Len(t, session.Snapshot().Scores, 2)
}

func TestMergeFirstSeenWins(t *testing.T) {
	session := NewSession(&fakeRoomSource{}, 1, nil)

	session.Merge([]domain.ScoreEntry{entry(1, 5, 100)})
	session.Merge([]domain.ScoreEntry{entry(1, 5, 999)})

	scores := session.Snapshot().Scores
	require.Len(t, scores, 1)
	assert.Equal(t, int64(100), scores[0].TotalScore)
}

func TestMergeDropsCollisionsAcrossBatches(t *testing.T) {
	session := NewSession(&fakeRoomSource{}, 1, nil)

	session.Merge([]domain.ScoreEntry{entry(1, 5, 100), entry(2, 6, 200)})
	added := session.Merge([]domain.ScoreEntry{entry(2, 8, 555), entry(3, 7, 300)})

	require.Equal(t, 1, added)
	scores := session.Snapshot().Scores
	require.Len(t, scores, 3)
	assert.Equal(t, int64(6), scores[1].UserID, "earlier entry for id 2 must survive")
}

func TestLoadFailsWhenRoomFetchFails(t *testing.T) {
	source := &fakeRoomSource{roomErr: errors.New("boom")}
	session := NewSession(source, 42, nil)

	err := session.Load(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "fetch room 42")

	_, loaded := session.Room()
	assert.False(t, loaded)
	assert.Empty(t, session.Snapshot().Scores)
}

func TestLoadPollsEveryPlaylistOnce(t *testing.T) {
	source := &fakeRoomSource{
		room: domain.Room{
			ID:       42,
			Name:     "weekly cup",
			StartsAt: time.Date(2024, 3, 1, 18, 0, 0, 0, time.UTC),
			Playlists: []domain.Playlist{
				{ID: 100, RulesetID: 0, Beatmap: domain.Beatmap{ID: 10}},
				{ID: 200, RulesetID: 3, Beatmap: domain.Beatmap{ID: 20}},
				{ID: 300, RulesetID: 1, Beatmap: domain.Beatmap{ID: 30}},
			},
		},
		scores: map[int64][]domain.ScoreEntry{
			100: {entry(1, 5, 100), entry(2, 6, 200)},
			200: {entry(3, 7, 300)},
			300: {entry(4, 8, 400)},
		},
	}
	session := NewSession(source, 42, nil)

	require.NoError(t, session.Load(context.Background()))

	room, loaded := session.Room()
	require.True(t, loaded)
	assert.Equal(t, "weekly cup", room.Name)

	// Merge arrival order across playlists is fetch-resolution order, so
	// only assert set membership, not cross-playlist positions.
	ids := map[domain.ScoreID]int{}
	for _, score := range session.Snapshot().Scores {
		ids[score.ID]++
	}
	assert.Equal(t, map[domain.ScoreID]int{1: 1, 2: 1, 3: 1, 4: 1}, ids)

	for _, playlistID := range []int64{100, 200, 300} {
		assert.Equal(t, 1, source.scoreCalls[playlistID])
	}
	assert.Nil(t, session.PlaylistErrors())
}

func TestPlaylistFailureIsScopedToThatPlaylist(t *testing.T) {
	source := &fakeRoomSource{
		room: domain.Room{
			ID:   42,
			Name: "weekly cup",
			Playlists: []domain.Playlist{
				{ID: 100},
				{ID: 200},
			},
		},
		scores: map[int64][]domain.ScoreEntry{
			100: {entry(1, 5, 100)},
		},
		scoreErrs: map[int64]error{
			200: errors.New("upstream 500"),
		},
	}
	session := NewSession(source, 42, nil)

	require.NoError(t, session.Load(context.Background()))

	scores := session.Snapshot().Scores
	require.Len(t, scores, 1)
	assert.Equal(t, domain.ScoreID(1), scores[0].ID)

	errs := session.PlaylistErrors()
	require.Len(t, errs, 1)
	assert.ErrorContains(t, errs[200], "upstream 500")
}

func TestRefreshMergesOnlyNewScores(t *testing.T) {
	source := &fakeRoomSource{
		room: domain.Room{
			ID:        42,
			Name:      "weekly cup",
			Playlists: []domain.Playlist{{ID: 100}},
		},
		scores: map[int64][]domain.ScoreEntry{
			100: {entry(1, 5, 100)},
		},
	}
	session := NewSession(source, 42, nil)
	require.NoError(t, session.Load(context.Background()))

	source.mu.Lock()
	source.scores[100] = []domain.ScoreEntry{entry(1, 5, 100), entry(2, 6, 200)}
	source.mu.Unlock()

	require.NoError(t, session.Refresh(context.Background()))

	scores := session.Snapshot().Scores
	require.Len(t, scores, 2)
	assert.Equal(t, domain.ScoreID(1), scores[0].ID)
	assert.Equal(t, domain.ScoreID(2), scores[1].ID)
}

func TestRefreshClearsRecoveredPlaylistError(t *testing.T) {
	source := &fakeRoomSource{
		room: domain.Room{
			ID:        42,
			Playlists: []domain.Playlist{{ID: 100}},
		},
		scoreErrs: map[int64]error{
			100: errors.New("upstream 500"),
		},
	}
	session := NewSession(source, 42, nil)
	require.NoError(t, session.Load(context.Background()))
	require.Len(t, session.PlaylistErrors(), 1)

	source.mu.Lock()
	delete(source.scoreErrs, 100)
	source.scores = map[int64][]domain.ScoreEntry{100: {entry(1, 5, 100)}}
	source.mu.Unlock()

	require.NoError(t, session.Refresh(context.Background()))
	assert.Nil(t, session.PlaylistErrors())
	assert.Len(t, session.Snapshot().Scores, 1)
}

func TestRefreshBeforeLoadReturnsSentinel(t *testing.T) {
	session := NewSession(&fakeRoomSource{}, 42, nil)

	err := session.Refresh(context.Background())
	assert.ErrorIs(t, err, domain.ErrRoomNotLoaded)
}
