package app

import "github.com/floriangiral/Bougnat-darts-counter/internal/domain"

// EventKind identifies emitted scoreboard events for dispatch.
type EventKind string

const (
	EventMatchCreated    EventKind = "match_created"
	EventTurnRecorded    EventKind = "turn_recorded"
	EventLegWon          EventKind = "leg_won"
	EventSetWon          EventKind = "set_won"
	EventMatchEnded      EventKind = "match_ended"
	EventTurnUndone      EventKind = "turn_undone"
	EventStarterSwitched EventKind = "starter_switched"
	EventOrderChanged    EventKind = "order_changed"
)

// Event is a use-case event with optional targeted recipients.
type Event struct {
	Kind       EventKind
	Payload    any
	Recipients []string // contestant IDs; empty means broadcast
}

type MatchCreatedPayload struct {
	MatchID     string
	Contestants []domain.Contestant
	Config      domain.GameConfig
}

type TurnRecordedPayload struct {
	ContestantID   string
	TeamID         string
	Score          int
	Busted         bool
	RemainingAfter int
	DartsThrown    int
	NextIndex      int
	// CheckoutHint is the suggested route for the next thrower's remainder,
	// empty when none exists or the exit rule is not double-out.
	CheckoutHint string
}

type LegWonPayload struct {
	TeamID       string
	Teams        []string
	LegsWon      []int
	NextStarter  int
	LegDartCount int // darts the winning team spent in the leg
}

type SetWonPayload struct {
	TeamID  string
	Teams   []string
	SetsWon []int
}

type MatchEndedPayload struct {
	WinnerTeamID string
	Teams        []string
	LegsWon      []int
	SetsWon      []int
}

type TurnUndonePayload struct {
	ContestantID string
	Remaining    int
	CurrentIndex int
}

type StarterSwitchedPayload struct {
	CurrentIndex int
}

type OrderChangedPayload struct {
	Order []string // contestant IDs in new rotation order
}
