package domain

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNoContestants        = errors.New("match needs at least one contestant")
	ErrInvalidStartingScore = errors.New("starting score must be positive")
	ErrInvalidRoster        = errors.New("doubles roster must be two teams of two")
)

// NewMatch constructs the initial snapshot for a match. Contestant order is
// the rotation order; the team table is built from it, first appearance
// first. Zero win targets are normalized to 1.
func NewMatch(contestants []Contestant, config GameConfig) (*MatchState, error) {
	if len(contestants) == 0 {
		return nil, ErrNoContestants
	}
	if config.StartingScore <= 0 {
		return nil, ErrInvalidStartingScore
	}
	if config.LegsToWin <= 0 {
		config.LegsToWin = 1
	}
	if config.SetsToWin <= 0 {
		config.SetsToWin = 1
	}

	roster := make([]Contestant, len(contestants))
	copy(roster, contestants)

	var teams []string
	for _, c := range roster {
		found := false
		for _, t := range teams {
			if t == c.TeamID {
				found = true
				break
			}
		}
		if !found {
			teams = append(teams, c.TeamID)
		}
	}

	if config.Doubles && (len(roster) != 4 || len(teams) != 2) {
		return nil, ErrInvalidRoster
	}

	m := &MatchState{
		ID:          uuid.NewString(),
		Config:      config,
		Contestants: roster,
		Teams:       teams,
		LegsWon:     make([]int, len(teams)),
		SetsWon:     make([]int, len(teams)),
		CurrentLeg:  freshLeg(config.StartingScore, len(teams), 0),
		Status:      StatusActive,
	}
	return m, nil
}

func freshLeg(startingScore, teamCount, starterIndex int) LegState {
	remaining := make([]int, teamCount)
	for i := range remaining {
		remaining[i] = startingScore
	}
	return LegState{Remaining: remaining, StarterIndex: starterIndex}
}

// SubmitTurn applies one visit for the current contestant and returns the
// next snapshot. The input snapshot is never modified. On a finished match
// the call is a no-op returning the input.
//
// A bust records a turn with the score unchanged and darts forced to 3 (a
// bust always consumes the full visit). A valid checkout freezes the leg,
// updates the leg/set tallies and either opens the next leg with the
// starter rotated by one, or finishes the match.
func SubmitTurn(m *MatchState, score, darts int) *MatchState {
	if m.Status == StatusFinished {
		return m
	}

	actor := m.CurrentContestant()
	ti := m.TeamIndex(actor.TeamID)
	remaining := m.CurrentLeg.Remaining[ti]

	busted := IsBust(remaining, score, m.Config.CheckOut)
	newScore := remaining
	legWon := false
	if !busted {
		newScore = remaining - score
		if newScore == 0 {
			legWon = IsValidCheckout(remaining, score)
		}
	}

	turn := Turn{
		ContestantID:   actor.ID,
		Score:          score,
		Busted:         busted,
		RemainingAfter: newScore,
		DartsThrown:    darts,
	}
	if busted {
		turn.DartsThrown = 3
	}

	next := m.clone()
	next.CurrentLeg.Remaining[ti] = newScore
	next.CurrentLeg.History = append(next.CurrentLeg.History, turn)

	if !legWon {
		next.CurrentIndex = (next.CurrentIndex + 1) % len(next.Contestants)
		return next
	}

	finished := next.CurrentLeg
	finished.WinnerTeamID = actor.TeamID
	next.CompletedLegs = append(next.CompletedLegs, finished)
	next.LegsWon[ti]++

	matchOver := false
	if next.Config.Mode == ModeSets {
		if next.LegsWon[ti] >= next.Config.LegsToWin {
			next.SetsWon[ti]++
			if next.SetsWon[ti] >= next.Config.SetsToWin {
				matchOver = true
			} else {
				for i := range next.LegsWon {
					next.LegsWon[i] = 0
				}
			}
		}
	} else if next.LegsWon[ti] >= next.Config.LegsToWin {
		matchOver = true
	}

	if matchOver {
		// Keep the final leg visible as the current leg.
		next.CurrentLeg = finished
		next.Status = StatusFinished
		next.WinnerTeamID = actor.TeamID
		return next
	}

	nextStarter := (finished.StarterIndex + 1) % len(next.Contestants)
	next.CurrentLeg = freshLeg(next.Config.StartingScore, len(next.Teams), nextStarter)
	next.CurrentIndex = nextStarter
	return next
}

// UndoTurn removes the last recorded visit of the current leg and restores
// the thrower's team score (busts never changed it, so nothing is added
// back). The current contestant index rewinds to whoever threw the removed
// turn. No-op when the current leg has no history.
//
// Undoing a match-ending checkout re-opens the final leg: the leg is popped
// from the completed list and the winner's leg tally (and set tally, when
// the win closed a set) is rolled back. Legs that were already replaced by
// a fresh leg mid-match stay archived; undo never crosses that boundary.
func UndoTurn(m *MatchState) *MatchState {
	if len(m.CurrentLeg.History) == 0 {
		return m
	}

	next := m.clone()

	if next.Status == StatusFinished {
		ti := next.TeamIndex(next.WinnerTeamID)
		next.LegsWon[ti]--
		if next.Config.Mode == ModeSets {
			next.SetsWon[ti]--
		}
		next.CompletedLegs = next.CompletedLegs[:len(next.CompletedLegs)-1]
		next.CurrentLeg.WinnerTeamID = ""
		next.Status = StatusActive
		next.WinnerTeamID = ""
	}

	last := next.CurrentLeg.History[len(next.CurrentLeg.History)-1]
	_, idx := next.ContestantByID(last.ContestantID)
	if idx < 0 {
		return m
	}

	ti := next.TeamIndex(next.TeamOf(last.ContestantID))
	if !last.Busted {
		next.CurrentLeg.Remaining[ti] += last.Score
	}
	next.CurrentLeg.History = next.CurrentLeg.History[:len(next.CurrentLeg.History)-1]
	next.CurrentIndex = idx
	return next
}

// SwitchStartPlayer rotates both the current contestant and the leg starter
// to the next rotation slot. Only legal before the first throw of a leg;
// otherwise a no-op.
func SwitchStartPlayer(m *MatchState) *MatchState {
	if len(m.CurrentLeg.History) > 0 {
		return m
	}

	next := m.clone()
	next.CurrentIndex = (next.CurrentIndex + 1) % len(next.Contestants)
	next.CurrentLeg.StarterIndex = next.CurrentIndex
	return next
}

// ReorderForDoubles re-sequences a 2v2 rotation so the starting team's
// chosen starter throws first, strictly alternating teams with partners two
// slots apart: starter, opposing starter, partner, opposing partner. Called
// once before the first throw; a no-op for singles matches, after throws
// have begun, or when any id does not resolve.
func ReorderForDoubles(m *MatchState, team1StarterID, team2StarterID, startingTeamID string) *MatchState {
	if !m.Config.Doubles || len(m.Contestants) != 4 || len(m.CurrentLeg.History) > 0 {
		return m
	}

	t1Starter, i1 := m.ContestantByID(team1StarterID)
	t2Starter, i2 := m.ContestantByID(team2StarterID)
	if i1 < 0 || i2 < 0 || t1Starter.TeamID == t2Starter.TeamID {
		return m
	}

	t1Partner, ok1 := partnerOf(m.Contestants, t1Starter)
	t2Partner, ok2 := partnerOf(m.Contestants, t2Starter)
	if !ok1 || !ok2 {
		return m
	}

	var order []Contestant
	switch startingTeamID {
	case t1Starter.TeamID:
		order = []Contestant{t1Starter, t2Starter, t1Partner, t2Partner}
	case t2Starter.TeamID:
		order = []Contestant{t2Starter, t1Starter, t2Partner, t1Partner}
	default:
		return m
	}

	next := m.clone()
	next.Contestants = order
	next.CurrentIndex = 0
	next.CurrentLeg.StarterIndex = 0
	return next
}

func partnerOf(roster []Contestant, c Contestant) (Contestant, bool) {
	for _, other := range roster {
		if other.TeamID == c.TeamID && other.ID != c.ID {
			return other, true
		}
	}
	return Contestant{}, false
}

// clone returns a copy of the snapshot safe to mutate during a transition.
// Completed legs are frozen, so the slice header copy is enough for them;
// the current leg's slices are copied deeply.
func (m *MatchState) clone() *MatchState {
	next := *m

	next.Contestants = append([]Contestant(nil), m.Contestants...)
	next.Teams = append([]string(nil), m.Teams...)
	next.LegsWon = append([]int(nil), m.LegsWon...)
	next.SetsWon = append([]int(nil), m.SetsWon...)
	next.CompletedLegs = append([]LegState(nil), m.CompletedLegs...)
	next.CurrentLeg = cloneLeg(m.CurrentLeg)
	return &next
}

func cloneLeg(leg LegState) LegState {
	out := leg
	out.Remaining = append([]int(nil), leg.Remaining...)
	out.History = append([]Turn(nil), leg.History...)
	return out
}

// Validate checks the structural invariants of a snapshot. Used by tests
// after every transition; returns the first violation found.
func (m *MatchState) Validate() error {
	if len(m.Contestants) == 0 || len(m.Teams) == 0 {
		return errors.New("empty roster")
	}
	if m.CurrentIndex < 0 || m.CurrentIndex >= len(m.Contestants) {
		return errors.New("current contestant index out of range")
	}
	if len(m.LegsWon) != len(m.Teams) || len(m.SetsWon) != len(m.Teams) || len(m.CurrentLeg.Remaining) != len(m.Teams) {
		return errors.New("team table and tallies out of sync")
	}
	for i, r := range m.CurrentLeg.Remaining {
		if r < 0 || r > m.Config.StartingScore {
			return errors.New("remaining score out of range for team " + m.Teams[i])
		}
	}
	if (m.Status == StatusFinished) != (m.WinnerTeamID != "") {
		return errors.New("finished status and winner disagree")
	}
	if m.Config.Mode == ModeLegs {
		// Without set resets every archived win is still on the tally.
		sum := 0
		for _, n := range m.LegsWon {
			sum += n
		}
		won := 0
		for _, leg := range m.CompletedLegs {
			if leg.WinnerTeamID != "" {
				won++
			}
		}
		if sum != won {
			return errors.New("leg tally does not match completed legs")
		}
	}
	return nil
}
