package nakama

import (
	"github.com/floriangiral/Bougnat-darts-counter/internal/app"
	"github.com/floriangiral/Bougnat-darts-counter/internal/domain"
)

// Client request payloads, JSON-encoded in the match data frame.

// StartMatchRequest configures and starts a match from the lobby. The roster
// is the seated players in join order; only the owner may start.
type StartMatchRequest struct {
	PresetID string `json:"preset_id"`
	// Doubles pairs the four seated players into two teams. Keys are user
	// ids, values are team ids; required when Doubles is true.
	Doubles bool              `json:"doubles"`
	Teams   map[string]string `json:"teams,omitempty"`
}

// SubmitTurnRequest records one visit for the sender.
type SubmitTurnRequest struct {
	Score int `json:"score"`
	Darts int `json:"darts"`
}

// ReorderDoublesRequest applies the pre-match doubles rotation setup.
type ReorderDoublesRequest struct {
	Team1StarterID string `json:"team1_starter_id"`
	Team2StarterID string `json:"team2_starter_id"`
	StartingTeamID string `json:"starting_team_id"`
}

// Server event payloads.

// RosterEntry describes one seated player in lobby broadcasts.
type RosterEntry struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	Seat        int    `json:"seat"`
	IsOwner     bool   `json:"is_owner"`
}

// LobbyMessage is broadcast whenever the seat assignment changes.
type LobbyMessage struct {
	Roster    []RosterEntry `json:"roster"`
	OpenSeats int           `json:"open_seats"`
}

// SnapshotMessage carries the full authoritative match state.
type SnapshotMessage struct {
	Match *domain.MatchState `json:"match"`
}

// ErrorMessage is sent to a single user when their request is rejected.
type ErrorMessage struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// eventOpCode maps a use-case event to its wire opcode; -1 for unknown kinds.
func eventOpCode(kind app.EventKind) int64 {
	switch kind {
	case app.EventMatchCreated:
		return OpMatchStarted
	case app.EventTurnRecorded:
		return OpTurnRecorded
	case app.EventLegWon:
		return OpLegWon
	case app.EventSetWon:
		return OpSetWon
	case app.EventMatchEnded:
		return OpMatchEnded
	case app.EventTurnUndone:
		return OpTurnUndone
	case app.EventStarterSwitched:
		return OpStarterSwitched
	case app.EventOrderChanged:
		return OpOrderChanged
	default:
		return -1
	}
}
