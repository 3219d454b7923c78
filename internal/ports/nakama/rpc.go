package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/floriangiral/Bougnat-darts-counter/internal/domain"

	"github.com/heroiclabs/nakama-common/runtime"
)

// FindMatchRequest optionally narrows match search and creation.
type FindMatchRequest struct {
	// Players requests a table size when a new match must be created; one of
	// 1, 2 or 4. Ignored when an existing match is joined.
	Players int `json:"players"`
}

// FindMatchResponse is the payload returned to clients looking for a match.
type FindMatchResponse struct {
	MatchID string `json:"match_id"`
	IsNew   bool   `json:"is_new"`
}

// MatchHistoryRequest bounds a history listing.
type MatchHistoryRequest struct {
	Limit int `json:"limit"`
}

// MatchHistoryResponse carries a user's archived matches, newest first.
type MatchHistoryResponse struct {
	Matches []*domain.MatchState `json:"matches"`
}

// RegisterRPCs registers Nakama RPC endpoints.
func RegisterRPCs(initializer runtime.Initializer) error {
	if err := initializer.RegisterRpc(RpcFindMatch, rpcFindMatch); err != nil {
		return err
	}
	return initializer.RegisterRpc(RpcMatchHistory, rpcMatchHistory)
}

// rpcFindMatch searches for a lobby with open seats and joins the caller to
// it, creating a fresh match when none exists.
func rpcFindMatch(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)

	request := FindMatchRequest{}
	if payload != "" {
		if err := json.Unmarshal([]byte(payload), &request); err != nil {
			return "", runtime.NewError("invalid request payload", 3)
		}
	}

	// Filter on the open seat count and game key in the JSON match label.
	limit := 1
	authoritative := true
	labelQuery := fmt.Sprintf("+label.%s:>=1 +label.game:x01 +label.state:lobby", MatchLabelKeyOpenSeats)
	minSize := 0
	maxSize := 4

	matches, err := nk.MatchList(ctx, limit, authoritative, "", &minSize, &maxSize, labelQuery)
	if err != nil {
		logger.Error("rpcFindMatch [User:%s]: Failed to list matches: %v", userID, err)
		return "", err
	}

	if len(matches) > 0 {
		matchID := matches[0].MatchId
		logger.Info("rpcFindMatch [User:%s]: Found existing match %s", userID, matchID)
		return marshalResponse(FindMatchResponse{MatchID: matchID, IsNew: false})
	}

	params := map[string]interface{}{}
	if request.Players > 0 {
		params["players"] = request.Players
	}
	matchID, err := nk.MatchCreate(ctx, MatchNameX01, params)
	if err != nil {
		logger.Error("rpcFindMatch [User:%s]: Failed to create match: %v", userID, err)
		return "", err
	}

	logger.Info("rpcFindMatch [User:%s]: Created new match %s", userID, matchID)
	return marshalResponse(FindMatchResponse{MatchID: matchID, IsNew: true})
}

// rpcMatchHistory lists the caller's archived matches.
func rpcMatchHistory(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, ok := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)
	if !ok || userID == "" {
		return "", runtime.NewError("authentication required", 16)
	}

	request := MatchHistoryRequest{}
	if payload != "" {
		if err := json.Unmarshal([]byte(payload), &request); err != nil {
			return "", runtime.NewError("invalid request payload", 3)
		}
	}

	matches, err := NewArchiveAdapter(nk).ListMatches(ctx, userID, request.Limit)
	if err != nil {
		logger.Error("rpcMatchHistory [User:%s]: %v", userID, err)
		return "", err
	}

	return marshalResponse(MatchHistoryResponse{Matches: matches})
}

func marshalResponse(v interface{}) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
