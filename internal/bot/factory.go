package bot

import "fmt"

// NewBrain creates a bot brain for the specified level.
func NewBrain(level BotLevel) (Brain, error) {
	switch level {
	case BotLevelPub:
		return profile{mean: 40, spread: 15, checkoutRate: 0.2}, nil
	case BotLevelCounty:
		return profile{mean: 60, spread: 18, checkoutRate: 0.45}, nil
	case BotLevelPro:
		return profile{mean: 85, spread: 20, checkoutRate: 0.8}, nil
	default:
		return nil, fmt.Errorf("unknown bot level: %d", level)
	}
}
