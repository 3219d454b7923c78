package nakama

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/floriangiral/Bougnat-darts-counter/internal/domain"
	"github.com/floriangiral/Bougnat-darts-counter/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

const matchHistoryCollection = "match_history"

// ArchiveAdapter persists finished matches with Nakama storage, one record
// per player under their own user id.
type ArchiveAdapter struct {
	nk runtime.NakamaModule
}

// NewArchiveAdapter creates a new archive adapter.
func NewArchiveAdapter(nk runtime.NakamaModule) *ArchiveAdapter {
	return &ArchiveAdapter{nk: nk}
}

// SaveMatch stores the final snapshot keyed by match id. Re-saving the same
// match overwrites the earlier record, so retries are harmless.
func (a *ArchiveAdapter) SaveMatch(ctx context.Context, ownerID string, match *domain.MatchState) error {
	if ownerID == "" {
		return fmt.Errorf("ownerID is required")
	}
	if match == nil || match.Status != domain.StatusFinished {
		return fmt.Errorf("only finished matches can be archived")
	}

	value, err := json.Marshal(match)
	if err != nil {
		return fmt.Errorf("failed to marshal match %s: %w", match.ID, err)
	}

	writes := []*runtime.StorageWrite{
		{
			Collection:      matchHistoryCollection,
			Key:             match.ID,
			UserID:          ownerID,
			Value:           string(value),
			PermissionRead:  runtime.STORAGE_PERMISSION_OWNER_READ,
			PermissionWrite: runtime.STORAGE_PERMISSION_NO_WRITE,
		},
	}

	if _, err := a.nk.StorageWrite(ctx, writes); err != nil {
		return fmt.Errorf("failed to archive match %s: %w", match.ID, err)
	}
	return nil
}

// ListMatches returns the owner's archived matches, most recently saved
// first, up to limit.
func (a *ArchiveAdapter) ListMatches(ctx context.Context, ownerID string, limit int) ([]*domain.MatchState, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("ownerID is required")
	}
	if limit <= 0 {
		limit = 10
	}

	objects, _, err := a.nk.StorageList(ctx, "", ownerID, matchHistoryCollection, limit, "")
	if err != nil {
		return nil, fmt.Errorf("failed to list match history: %w", err)
	}

	sort.SliceStable(objects, func(i, j int) bool {
		return objects[i].GetUpdateTime().AsTime().After(objects[j].GetUpdateTime().AsTime())
	})

	matches := make([]*domain.MatchState, 0, len(objects))
	for _, obj := range objects {
		var m domain.MatchState
		if err := json.Unmarshal([]byte(obj.GetValue()), &m); err != nil {
			return nil, fmt.Errorf("corrupt archive record %s: %w", obj.GetKey(), err)
		}
		matches = append(matches, &m)
	}
	return matches, nil
}

var _ ports.ArchivePort = (*ArchiveAdapter)(nil)
