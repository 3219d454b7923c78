package bot

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/floriangiral/Bougnat-darts-counter/internal/domain"
)

// Agent represents an autonomous bot thrower.
type Agent struct {
	ID       string
	Name     string
	Strategy Brain
	rng      *rand.Rand
}

// NewAgent creates an agent for a built-in bot user id.
func NewAgent(userID string) (*Agent, error) {
	if !IsBot(userID) {
		return nil, fmt.Errorf("not a bot user id: %s", userID)
	}

	brain, err := NewBrain(LevelFor(userID))
	if err != nil {
		return nil, err
	}

	return &Agent{
		ID:       userID,
		Name:     UsernameFor(userID),
		Strategy: brain,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}, nil
}

// Throw asks the agent for its next visit from the given remainder.
func (a *Agent) Throw(remaining int, checkOut domain.CheckRule) (score, darts int) {
	visit := a.Strategy.CalculateVisit(remaining, checkOut, a.rng)
	return visit.Score, visit.Darts
}
