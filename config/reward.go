package config

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Reward parses MiningReward. It must be a positive decimal.
func (c Config) Reward() (decimal.Decimal, error) {
	r, err := decimal.NewFromString(c.MiningReward)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid mining reward %q: %w", c.MiningReward, err)
	}
	if !r.IsPositive() {
		return decimal.Zero, fmt.Errorf("mining reward must be positive, got %s", r.String())
	}
	return r, nil
}
