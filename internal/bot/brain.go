package bot

import (
	"math/rand"

	"github.com/floriangiral/Bougnat-darts-counter/internal/domain"
)

// BotLevel selects how well a bot throws.
type BotLevel int

const (
	// BotLevelPub scores like a casual pub player.
	BotLevelPub BotLevel = iota
	// BotLevelCounty scores like a decent league player.
	BotLevelCounty
	// BotLevelPro rarely misses a reachable finish.
	BotLevelPro
)

// Visit is one calculated three-dart turn.
type Visit struct {
	Score int
	Darts int
}

// Brain decides what a bot throws from a given remainder.
type Brain interface {
	CalculateVisit(remaining int, checkOut domain.CheckRule, rng *rand.Rand) Visit
}

// profile shapes the visit distribution for one level: scoring visits are
// drawn from a normal around mean, and a reachable finish is converted with
// probability checkoutRate.
type profile struct {
	mean         float64
	spread       float64
	checkoutRate float64
}

func (p profile) CalculateVisit(remaining int, checkOut domain.CheckRule, rng *rand.Rand) Visit {
	if domain.HasCheckout(remaining, checkOut) && rng.Float64() < p.checkoutRate {
		return Visit{Score: remaining, Darts: domain.MinDartsForScore(remaining, checkOut)}
	}

	score := int(rng.NormFloat64()*p.spread + p.mean)
	if score < 0 {
		score = 0
	}
	if score > 180 {
		score = 180
	}
	// Never overshoot and never leave 1: stay on a finishable remainder.
	if left := remaining - score; left < 2 {
		score = remaining - 2
		if score < 0 {
			score = 0
		}
	}
	return Visit{Score: score, Darts: 3}
}
