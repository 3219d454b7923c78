package domain

// Status represents the lifecycle stage of an X01 match.
type Status string

const (
	// StatusActive is the state while legs are being played.
	StatusActive Status = "active"
	// StatusFinished is the state after a team has won the match.
	StatusFinished Status = "finished"
)

// CheckRule constrains how a contestant may start or finish a leg.
type CheckRule string

const (
	// CheckOpen places no constraint on the dart used.
	CheckOpen CheckRule = "Open"
	// CheckDouble requires a double.
	CheckDouble CheckRule = "Double"
	// CheckMaster allows a double or a triple.
	CheckMaster CheckRule = "Master"
)

// MatchMode selects whether a match is decided on legs or on sets of legs.
type MatchMode string

const (
	ModeLegs MatchMode = "LEGS"
	ModeSets MatchMode = "SETS"
)

// Contestant is one thrower in the rotation. In singles TeamID equals ID;
// in doubles two contestants share a TeamID and one scoring pool.
type Contestant struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	TeamID      string `json:"team_id"`
}

// GameConfig holds the immutable rules of a match.
type GameConfig struct {
	StartingScore int       `json:"starting_score"` // 301, 501, 701, ...
	CheckIn       CheckRule `json:"check_in"`
	CheckOut      CheckRule `json:"check_out"`
	Mode          MatchMode `json:"mode"`
	LegsToWin     int       `json:"legs_to_win"` // legs per match (LEGS) or per set (SETS)
	SetsToWin     int       `json:"sets_to_win"` // only meaningful in SETS mode
	Doubles       bool      `json:"doubles"`     // 2v2 with partner rotation
}

// Turn is one recorded visit. Immutable once appended; RemainingAfter is
// fixed at creation from the bust outcome.
type Turn struct {
	ContestantID   string `json:"contestant_id"`
	Score          int    `json:"score"` // claimed visit total, 0..180
	Busted         bool   `json:"busted"`
	RemainingAfter int    `json:"remaining_after"`
	DartsThrown    int    `json:"darts_thrown"` // 1..3, forced to 3 on a bust
}

// LegState is one race from the starting score down to zero. Remaining is
// indexed by team slot, parallel to MatchState.Teams. A leg freezes once
// WinnerTeamID is set.
type LegState struct {
	Remaining    []int  `json:"remaining"`
	History      []Turn `json:"history"`
	WinnerTeamID string `json:"winner_team_id"` // empty until the leg is won
	StarterIndex int    `json:"starter_index"`  // contestant index that opened the leg
}

// MatchState is the authoritative snapshot of a match. Transitions never
// mutate a snapshot in place; they return a new value (see match.go).
//
// Teams is a small ordered table; LegsWon and SetsWon are parallel tallies
// indexed by team slot. Contestants is the rotation order and holds 1, 2 or
// 4 entries.
type MatchState struct {
	ID             string       `json:"id"`
	Config         GameConfig   `json:"config"`
	Contestants    []Contestant `json:"contestants"`
	Teams          []string     `json:"teams"`
	LegsWon        []int        `json:"legs_won"`
	SetsWon        []int        `json:"sets_won"`
	CompletedLegs  []LegState   `json:"completed_legs"`
	CurrentLeg     LegState     `json:"current_leg"`
	Status         Status       `json:"status"`
	WinnerTeamID   string       `json:"winner_team_id"`  // empty while active
	CurrentIndex   int          `json:"current_index"`   // index into Contestants
	ElapsedSeconds int64        `json:"elapsed_seconds"` // stamped by the surrounding clock at completion
}

// TeamIndex returns the slot of teamID in the team table, or -1 if absent.
func (m *MatchState) TeamIndex(teamID string) int {
	for i, t := range m.Teams {
		if t == teamID {
			return i
		}
	}
	return -1
}

// ContestantByID returns the contestant with the given id and its rotation
// index, or (zero, -1) when unknown.
func (m *MatchState) ContestantByID(id string) (Contestant, int) {
	for i, c := range m.Contestants {
		if c.ID == id {
			return c, i
		}
	}
	return Contestant{}, -1
}

// CurrentContestant returns the contestant whose visit is next.
func (m *MatchState) CurrentContestant() Contestant {
	return m.Contestants[m.CurrentIndex]
}

// TeamOf resolves the team of a contestant id; empty when unknown.
func (m *MatchState) TeamOf(contestantID string) string {
	c, idx := m.ContestantByID(contestantID)
	if idx < 0 {
		return ""
	}
	return c.TeamID
}
