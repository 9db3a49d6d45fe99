package ports

import (
	"context"

	"github.com/kotrik/roomwatch/internal/domain"
)

// RoomSource reads multiplayer room data on behalf of the session service.
// Implementations attach whatever credentials the backing API requires.
type RoomSource interface {
	Room(ctx context.Context, roomID int64) (domain.Room, error)
	PlaylistScores(ctx context.Context, roomID, playlistID int64) ([]domain.ScoreEntry, error)
}
