package marketdata

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"AssetSentinel/internal/model"
)

// proxies maps each asset class to the market series that stands in for it
// when estimating expected returns.
var proxies = map[model.AssetType]string{
	model.AssetMultiAsset:  "MSCI_World",
	model.AssetBondFund:    "Global_Bonds",
	model.AssetMoneyMarket: "sora_rate",
	model.AssetTimeDeposit: "fd_rates_average",
	model.AssetCash:        "sora_rate",
}

// Manager orchestrates reference-data retrieval with a dated JSON file cache.
// Fallback order on refresh: live fetch, then any stale cache, then mock
// values. The stress engine never reads from here; this surface exists for
// the dashboard and reports.
type Manager struct {
	fetcher     Fetcher
	cacheDir    string
	freshDays   int
	cleanupDays int
	mu          sync.Mutex
}

// NewManager creates a Manager and ensures the cache directory exists.
func NewManager(fetcher Fetcher, cacheDir string, freshDays, cleanupDays int) (*Manager, error) {
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &Manager{
		fetcher:     fetcher,
		cacheDir:    cacheDir,
		freshDays:   freshDays,
		cleanupDays: cleanupDays,
	}, nil
}

// Snapshot returns market reference data, refreshing if the cache is stale
// or force is set.
func (m *Manager) Snapshot(force bool) (*model.MarketSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !force {
		if snap := m.loadCached(m.freshDays); snap != nil {
			return snap, nil
		}
	}

	snap, err := m.fetch()
	if err == nil {
		m.saveCached(snap)
		return snap, nil
	}
	log.Warn().Err(err).Str("source", m.fetcher.Name()).Msg("market fetch failed")

	// Stale cache beats fabricated data.
	if snap := m.loadCached(0); snap != nil {
		log.Warn().Time("fetched_at", snap.FetchedAt).Msg("serving stale cached market data")
		return snap, nil
	}

	log.Warn().Msg("no cache available, falling back to mock market data")
	mock := &MockFetcher{}
	snap, err = fetchFrom(mock)
	if err != nil {
		return nil, fmt.Errorf("mock fallback: %w", err)
	}
	m.saveCached(snap)
	return snap, nil
}

// Refresh forces a fetch and returns the resulting snapshot.
func (m *Manager) Refresh() (*model.MarketSnapshot, error) {
	return m.Snapshot(true)
}

func (m *Manager) fetch() (*model.MarketSnapshot, error) {
	return fetchFrom(m.fetcher)
}

func fetchFrom(f Fetcher) (*model.MarketSnapshot, error) {
	rates, err := f.FetchRates()
	if err != nil {
		return nil, err
	}
	indices, err := f.FetchIndices()
	if err != nil {
		return nil, err
	}
	yields, err := f.FetchBondYields()
	if err != nil {
		return nil, err
	}
	return &model.MarketSnapshot{
		Rates:      rates,
		Indices:    indices,
		BondYields: yields,
		Source:     f.Name(),
		FetchedAt:  time.Now(),
	}, nil
}

// loadCached returns the newest cached snapshot no older than maxAgeDays.
// maxAgeDays 0 means any age is acceptable.
func (m *Manager) loadCached(maxAgeDays int) *model.MarketSnapshot {
	entries, err := os.ReadDir(m.cacheDir)
	if err != nil {
		return nil
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".json") {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return nil
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names))) // dated names sort chronologically

	for _, name := range names {
		day, err := time.Parse("2006-01-02", strings.TrimSuffix(name, ".json"))
		if err != nil {
			continue
		}
		if maxAgeDays > 0 && time.Since(day) >= time.Duration(maxAgeDays)*24*time.Hour {
			return nil // newest valid file is already too old
		}
		data, err := os.ReadFile(filepath.Join(m.cacheDir, name))
		if err != nil {
			continue
		}
		var snap model.MarketSnapshot
		if err := json.Unmarshal(data, &snap); err != nil {
			log.Warn().Err(err).Str("file", name).Msg("corrupt market cache file skipped")
			continue
		}
		return &snap
	}
	return nil
}

func (m *Manager) saveCached(snap *model.MarketSnapshot) {
	name := snap.FetchedAt.Format("2006-01-02") + ".json"
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		log.Error().Err(err).Msg("marshal market snapshot")
		return
	}
	if err := os.WriteFile(filepath.Join(m.cacheDir, name), data, 0o644); err != nil {
		log.Error().Err(err).Str("file", name).Msg("write market cache")
	}
}

// Cleanup removes cache files older than the cleanup window.
func (m *Manager) Cleanup() {
	m.mu.Lock()
	defer m.mu.Unlock()

	entries, err := os.ReadDir(m.cacheDir)
	if err != nil {
		return
	}
	cutoff := time.Now().AddDate(0, 0, -m.cleanupDays)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(m.cacheDir, e.Name())); err == nil {
			log.Info().Str("file", e.Name()).Msg("removed old market cache file")
		}
	}
}

// ExpectedReturns estimates a per-class return over the horizon using each
// class's market proxy. Purely informational for the dashboard.
func ExpectedReturns(snap *model.MarketSnapshot, horizonYears float64) map[model.AssetType]float64 {
	out := make(map[model.AssetType]float64, len(proxies))
	for t, proxy := range proxies {
		switch {
		case snap.Rates[proxy] != 0:
			out[t] = snap.Rates[proxy] * horizonYears
		case snap.Indices[proxy].OneYearRet != 0:
			out[t] = snap.Indices[proxy].OneYearRet * horizonYears
		default:
			out[t] = 0.03 * horizonYears
		}
	}
	return out
}

// Context summarizes the snapshot for dashboard display.
func Context(snap *model.MarketSnapshot) map[string]any {
	return map[string]any{
		"data_freshness": snap.FetchedAt,
		"data_source":    snap.Source,
		"key_rates": map[string]string{
			"SORA":         fmt.Sprintf("%.2f%%", snap.Rates["sora_rate"]*100),
			"12M Treasury": fmt.Sprintf("%.2f%%", snap.Rates["12m_treasury"]*100),
			"Average FD":   fmt.Sprintf("%.2f%%", snap.Rates["fd_rates_average"]*100),
		},
	}
}
