package app

import (
	"errors"

	"github.com/floriangiral/Bougnat-darts-counter/internal/domain"
)

var (
	ErrScoreOutOfRange     = errors.New("turn score must be between 0 and 180")
	ErrDartCountOutOfRange = errors.New("darts thrown must be between 1 and 3")
	ErrImpossibleFinish    = errors.New("claimed dart count cannot produce this finish")
)

// Service contains X01 scoreboard use-cases operating on domain snapshots.
// Transitions return the next snapshot plus the events to dispatch; a legal
// but ineffective call returns the input snapshot with no events and no
// error, so callers can invoke them speculatively.
type Service struct{}

// NewService constructs the scoreboard service.
func NewService() *Service {
	return &Service{}
}

// CreateMatch builds the initial snapshot for the given roster and rules.
func (s *Service) CreateMatch(contestants []domain.Contestant, config domain.GameConfig) (*domain.MatchState, []Event, error) {
	m, err := domain.NewMatch(contestants, config)
	if err != nil {
		return nil, nil, err
	}

	events := []Event{{
		Kind: EventMatchCreated,
		Payload: MatchCreatedPayload{
			MatchID:     m.ID,
			Contestants: m.Contestants,
			Config:      m.Config,
		},
	}}
	return m, events, nil
}

// SubmitTurn validates and applies one visit for the current contestant.
//
// Numeric bounds are enforced here, before the domain transition: the score
// must be 0..180, the dart count 1..3, and a checkout claim must carry at
// least the minimum darts the finish physically needs. The domain layer
// never truncates or clamps.
func (s *Service) SubmitTurn(m *domain.MatchState, score, darts int) (*domain.MatchState, []Event, error) {
	if score < 0 || score > MaxTurnScore {
		return m, nil, ErrScoreOutOfRange
	}
	if darts < MinDartsPerTurn || darts > MaxDartsPerTurn {
		return m, nil, ErrDartCountOutOfRange
	}
	if m.Status == domain.StatusActive {
		actor := m.CurrentContestant()
		remaining := m.CurrentLeg.Remaining[m.TeamIndex(actor.TeamID)]
		if remaining-score == 0 && darts < domain.MinDartsForScore(remaining, m.Config.CheckOut) {
			return m, nil, ErrImpossibleFinish
		}
	}

	next := domain.SubmitTurn(m, score, darts)
	if next == m {
		return m, nil, nil
	}

	return next, s.turnEvents(m, next), nil
}

// turnEvents derives the dispatchable events from a before/after pair.
func (s *Service) turnEvents(before, after *domain.MatchState) []Event {
	turn := lastRecordedTurn(after)
	winnerTeam := ""
	legWon := len(after.CompletedLegs) > len(before.CompletedLegs)
	if legWon {
		winnerTeam = after.CompletedLegs[len(after.CompletedLegs)-1].WinnerTeamID
	}

	events := []Event{{
		Kind: EventTurnRecorded,
		Payload: TurnRecordedPayload{
			ContestantID:   turn.ContestantID,
			TeamID:         after.TeamOf(turn.ContestantID),
			Score:          turn.Score,
			Busted:         turn.Busted,
			RemainingAfter: turn.RemainingAfter,
			DartsThrown:    turn.DartsThrown,
			NextIndex:      after.CurrentIndex,
			CheckoutHint:   nextCheckoutHint(after),
		},
	}}

	if !legWon {
		return events
	}

	wonLeg := after.CompletedLegs[len(after.CompletedLegs)-1]
	events = append(events, Event{
		Kind: EventLegWon,
		Payload: LegWonPayload{
			TeamID:       winnerTeam,
			Teams:        after.Teams,
			LegsWon:      after.LegsWon,
			NextStarter:  after.CurrentLeg.StarterIndex,
			LegDartCount: teamDarts(after, wonLeg, winnerTeam),
		},
	})

	if after.Config.Mode == domain.ModeSets && sum(after.SetsWon) > sum(before.SetsWon) {
		events = append(events, Event{
			Kind: EventSetWon,
			Payload: SetWonPayload{
				TeamID:  winnerTeam,
				Teams:   after.Teams,
				SetsWon: after.SetsWon,
			},
		})
	}

	if after.Status == domain.StatusFinished {
		events = append(events, Event{
			Kind: EventMatchEnded,
			Payload: MatchEndedPayload{
				WinnerTeamID: after.WinnerTeamID,
				Teams:        after.Teams,
				LegsWon:      after.LegsWon,
				SetsWon:      after.SetsWon,
			},
		})
	}

	return events
}

// UndoTurn removes the last visit of the current leg. No-op with no events
// when there is nothing to undo.
func (s *Service) UndoTurn(m *domain.MatchState) (*domain.MatchState, []Event, error) {
	next := domain.UndoTurn(m)
	if next == m {
		return m, nil, nil
	}

	removed := m.CurrentLeg.History[len(m.CurrentLeg.History)-1]
	ti := next.TeamIndex(next.TeamOf(removed.ContestantID))
	events := []Event{{
		Kind: EventTurnUndone,
		Payload: TurnUndonePayload{
			ContestantID: removed.ContestantID,
			Remaining:    next.CurrentLeg.Remaining[ti],
			CurrentIndex: next.CurrentIndex,
		},
	}}
	return next, events, nil
}

// SwitchStartPlayer rotates the leg starter before the first throw.
func (s *Service) SwitchStartPlayer(m *domain.MatchState) (*domain.MatchState, []Event, error) {
	next := domain.SwitchStartPlayer(m)
	if next == m {
		return m, nil, nil
	}

	events := []Event{{
		Kind:    EventStarterSwitched,
		Payload: StarterSwitchedPayload{CurrentIndex: next.CurrentIndex},
	}}
	return next, events, nil
}

// ReorderForDoubles applies the pre-match doubles rotation setup.
func (s *Service) ReorderForDoubles(m *domain.MatchState, team1StarterID, team2StarterID, startingTeamID string) (*domain.MatchState, []Event, error) {
	next := domain.ReorderForDoubles(m, team1StarterID, team2StarterID, startingTeamID)
	if next == m {
		return m, nil, nil
	}

	order := make([]string, len(next.Contestants))
	for i, c := range next.Contestants {
		order[i] = c.ID
	}
	events := []Event{{
		Kind:    EventOrderChanged,
		Payload: OrderChangedPayload{Order: order},
	}}
	return next, events, nil
}

// lastRecordedTurn finds the visit a transition just appended: the tail of
// the current leg, or of the freshly completed leg when the visit closed it.
func lastRecordedTurn(m *domain.MatchState) domain.Turn {
	if n := len(m.CurrentLeg.History); n > 0 && m.CurrentLeg.WinnerTeamID == "" {
		return m.CurrentLeg.History[n-1]
	}
	if len(m.CompletedLegs) > 0 {
		leg := m.CompletedLegs[len(m.CompletedLegs)-1]
		return leg.History[len(leg.History)-1]
	}
	return m.CurrentLeg.History[len(m.CurrentLeg.History)-1]
}

// nextCheckoutHint suggests a finishing route for whoever throws next.
func nextCheckoutHint(m *domain.MatchState) string {
	if m.Status != domain.StatusActive || m.Config.CheckOut != domain.CheckDouble {
		return ""
	}
	remaining := m.CurrentLeg.Remaining[m.TeamIndex(m.CurrentContestant().TeamID)]
	return domain.CheckoutPath(remaining)
}

func teamDarts(m *domain.MatchState, leg domain.LegState, teamID string) int {
	darts := 0
	for _, t := range leg.History {
		if m.TeamOf(t.ContestantID) == teamID {
			darts += t.DartsThrown
		}
	}
	return darts
}

func sum(values []int) int {
	total := 0
	for _, v := range values {
		total += v
	}
	return total
}
