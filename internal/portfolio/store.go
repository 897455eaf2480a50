package portfolio

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"AssetSentinel/internal/model"
)

// Store keeps the session's holdings in memory and persists edits back to the
// CSV file. Holdings are immutable for the duration of an evaluation; the
// engine only ever sees copies.
type Store struct {
	mu       sync.RWMutex
	holdings []model.AssetHolding
	filePath string
}

// NewStore loads the portfolio file and wraps it in a Store.
func NewStore(filePath string) (*Store, error) {
	holdings, err := Load(filePath)
	if err != nil {
		return nil, err
	}
	log.Info().Int("holdings", len(holdings)).Str("path", filePath).Msg("portfolio loaded")
	return &Store{holdings: holdings, filePath: filePath}, nil
}

// Holdings returns a copy of the current rows.
func (s *Store) Holdings() []model.AssetHolding {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.AssetHolding, len(s.holdings))
	copy(out, s.holdings)
	return out
}

// TotalValue sums the current holdings.
func (s *Store) TotalValue() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return model.PortfolioValue(s.holdings).String()
}

// Replace validates the new rows, swaps them in, and persists to disk.
func (s *Store) Replace(holdings []model.AssetHolding) error {
	for i, h := range holdings {
		if _, err := model.ParseAssetType(string(h.Type)); err != nil {
			return fmt.Errorf("holding %d: %w", i, err)
		}
		if h.Amount.Sign() < 0 {
			return fmt.Errorf("holding %d (%s): amount must be non-negative, got %s", i, h.FundName, h.Amount)
		}
		if h.LiquidityDays < 0 {
			return fmt.Errorf("holding %d (%s): liquidity days must be non-negative, got %d", i, h.FundName, h.LiquidityDays)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.holdings = make([]model.AssetHolding, len(holdings))
	copy(s.holdings, holdings)

	if err := Save(s.filePath, s.holdings); err != nil {
		return fmt.Errorf("persist portfolio: %w", err)
	}
	log.Info().Int("holdings", len(s.holdings)).Msg("portfolio replaced and saved")
	return nil
}
