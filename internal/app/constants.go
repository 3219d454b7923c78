package app

const (
	// MaxTurnScore is the highest total three darts can score (three T20s).
	// Keep this centralized so input validation and tests share one bound.
	MaxTurnScore = 180

	// MinDartsPerTurn and MaxDartsPerTurn bound a single visit.
	MinDartsPerTurn = 1
	MaxDartsPerTurn = 3
)
