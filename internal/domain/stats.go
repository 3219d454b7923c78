package domain

import "strconv"

// Summary is the lightweight per-tick scoreboard readout for one contestant.
type Summary struct {
	LegAvg     string `json:"leg_avg"` // three-dart average, one decimal
	LegDarts   int    `json:"leg_darts"`
	MatchAvg   string `json:"match_avg"`
	MatchDarts int    `json:"match_darts"`
}

// ScoreBrackets counts non-bust visits per scoring band. Bands are mutually
// exclusive and checked highest first, so each visit lands in exactly one.
type ScoreBrackets struct {
	C180 int `json:"c180"`
	C160 int `json:"c160"` // 160..179
	C140 int `json:"c140"` // 140..159
	C120 int `json:"c120"` // 120..139
	C100 int `json:"c100"` // 100..119
	C80  int `json:"c80"`  // 80..99
	C60  int `json:"c60"`  // 60..79
	C40  int `json:"c40"`  // 40..59
}

// DetailedStats is the full stats-report aggregate for one contestant (or
// one team, see ComputeTeamStats).
//
// CheckoutPercent is always "N/A": the engine records no missed-double
// attempts, so there is nothing honest to divide. BestLegDarts and
// WorstLegDarts are 0 while no leg has been won.
type DetailedStats struct {
	ThreeDartAvg    string        `json:"three_dart_avg"`
	FirstNineAvg    string        `json:"first_nine_avg"`
	CheckoutPercent string        `json:"checkout_percent"`
	HighestCheckout int           `json:"highest_checkout"`
	HighestScore    int           `json:"highest_score"`
	BestLegDarts    int           `json:"best_leg_darts"`
	WorstLegDarts   int           `json:"worst_leg_darts"`
	Brackets        ScoreBrackets `json:"brackets"`
	LegsWon         int           `json:"legs_won"`
}

const checkoutNotAvailable = "N/A"

// ComputeSummary derives the per-leg and whole-match three-dart averages
// for a contestant. Unknown ids get a zeroed result; stats are advisory.
func ComputeSummary(m *MatchState, contestantID string) Summary {
	if _, idx := m.ContestantByID(contestantID); idx < 0 {
		return Summary{LegAvg: formatAvg(0), MatchAvg: formatAvg(0)}
	}

	mine := func(t Turn) bool { return t.ContestantID == contestantID }

	legAvg, legDarts := visitAverage(m.CurrentLeg.History, mine)
	var all []Turn
	for _, leg := range m.CompletedLegs {
		all = append(all, leg.History...)
	}
	all = append(all, m.CurrentLeg.History...)
	matchAvg, matchDarts := visitAverage(all, mine)

	return Summary{
		LegAvg:     formatAvg(legAvg),
		LegDarts:   legDarts,
		MatchAvg:   formatAvg(matchAvg),
		MatchDarts: matchDarts,
	}
}

// ComputeDetailedStats derives the full aggregate for one contestant across
// completed legs plus the current leg. Never mutates the snapshot; always
// recomputed from the turn history, not cached.
func ComputeDetailedStats(m *MatchState, contestantID string) DetailedStats {
	c, idx := m.ContestantByID(contestantID)
	if idx < 0 {
		return DetailedStats{
			ThreeDartAvg:    formatAvg(0),
			FirstNineAvg:    formatAvg(0),
			CheckoutPercent: checkoutNotAvailable,
		}
	}
	// Highest checkout counts only when this contestant threw the winning
	// visit; best/worst legs count all darts the team spent in legs its
	// team won.
	mine := func(t Turn) bool { return t.ContestantID == contestantID }
	return computeDetailed(m, mine, c.TeamID)
}

// ComputeTeamStats aggregates both teammates' visits under one team id,
// using the same formulas as the per-contestant report. Unknown team ids
// get a zeroed result.
func ComputeTeamStats(m *MatchState, teamID string) DetailedStats {
	if m.TeamIndex(teamID) < 0 {
		return DetailedStats{
			ThreeDartAvg:    formatAvg(0),
			FirstNineAvg:    formatAvg(0),
			CheckoutPercent: checkoutNotAvailable,
		}
	}
	mine := func(t Turn) bool { return m.TeamOf(t.ContestantID) == teamID }
	return computeDetailed(m, mine, teamID)
}

func computeDetailed(m *MatchState, mine func(Turn) bool, teamID string) DetailedStats {
	allLegs := append(append([]LegState(nil), m.CompletedLegs...), m.CurrentLeg)

	var brackets ScoreBrackets
	highestScore := 0
	totalScore := 0
	totalDarts := 0

	for _, leg := range allLegs {
		for _, t := range leg.History {
			if !mine(t) {
				continue
			}
			totalDarts += t.DartsThrown
			if t.Busted {
				continue
			}
			totalScore += t.Score
			if t.Score > highestScore {
				highestScore = t.Score
			}
			bucket(&brackets, t.Score)
		}
	}

	// First nine darts per leg, accumulated across legs.
	f9Score, f9Darts := 0, 0
	for _, leg := range allLegs {
		counted := 0
		for _, t := range leg.History {
			if !mine(t) {
				continue
			}
			if counted >= 9 {
				break
			}
			if !t.Busted {
				f9Score += t.Score
			}
			f9Darts += t.DartsThrown
			counted += t.DartsThrown
		}
	}

	bestLeg, worstLeg := 0, 0
	highestCheckout := 0
	legsWon := 0
	for _, leg := range m.CompletedLegs {
		if leg.WinnerTeamID != teamID {
			continue
		}
		legsWon++

		teamDarts := 0
		for _, t := range leg.History {
			if m.TeamOf(t.ContestantID) == teamID {
				teamDarts += t.DartsThrown
			}
		}
		if bestLeg == 0 || teamDarts < bestLeg {
			bestLeg = teamDarts
		}
		if teamDarts > worstLeg {
			worstLeg = teamDarts
		}

		last := leg.History[len(leg.History)-1]
		if mine(last) && last.Score > highestCheckout {
			highestCheckout = last.Score
		}
	}

	avg := 0.0
	if totalDarts > 0 {
		avg = float64(totalScore) / float64(totalDarts) * 3
	}
	f9Avg := 0.0
	if f9Darts > 0 {
		f9Avg = float64(f9Score) / float64(f9Darts) * 3
	}

	return DetailedStats{
		ThreeDartAvg:    formatAvg(avg),
		FirstNineAvg:    formatAvg(f9Avg),
		CheckoutPercent: checkoutNotAvailable,
		HighestCheckout: highestCheckout,
		HighestScore:    highestScore,
		BestLegDarts:    bestLeg,
		WorstLegDarts:   worstLeg,
		Brackets:        brackets,
		LegsWon:         legsWon,
	}
}

func bucket(b *ScoreBrackets, score int) {
	switch {
	case score == 180:
		b.C180++
	case score >= 160:
		b.C160++
	case score >= 140:
		b.C140++
	case score >= 120:
		b.C120++
	case score >= 100:
		b.C100++
	case score >= 80:
		b.C80++
	case score >= 60:
		b.C60++
	case score >= 40:
		b.C40++
	}
}

func visitAverage(turns []Turn, mine func(Turn) bool) (float64, int) {
	score, darts := 0, 0
	for _, t := range turns {
		if !mine(t) {
			continue
		}
		darts += t.DartsThrown
		if !t.Busted {
			score += t.Score
		}
	}
	if darts == 0 {
		return 0, 0
	}
	return float64(score) / float64(darts) * 3, darts
}

func formatAvg(avg float64) string {
	return strconv.FormatFloat(avg, 'f', 1, 64)
}
