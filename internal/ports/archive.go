package ports

import (
	"context"

	"github.com/floriangiral/Bougnat-darts-counter/internal/domain"
)

// ArchivePort persists finished matches for later history lookups.
type ArchivePort interface {
	// SaveMatch stores the final snapshot under the owning user's history.
	// Saving the same match id twice overwrites the earlier record.
	SaveMatch(ctx context.Context, ownerID string, match *domain.MatchState) error

	// ListMatches returns the most recent finished matches for a user,
	// newest first, up to limit.
	ListMatches(ctx context.Context, ownerID string, limit int) ([]*domain.MatchState, error)
}
