package marketdata

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"AssetSentinel/internal/model"
)

func TestSnapshot_FetchAndCache(t *testing.T) {
	dir := t.TempDir()
	mgr, err := NewManager(&MockFetcher{}, dir, 7, 14)
	require.NoError(t, err)

	snap, err := mgr.Snapshot(false)
	require.NoError(t, err)
	assert.Equal(t, "mock", snap.Source)
	assert.InDelta(t, 0.035, snap.Rates["sora_rate"], 1e-12)

	// The fetch must have left a dated cache file behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, time.Now().Format("2006-01-02")+".json", entries[0].Name())
}

func TestSnapshot_ServesFreshCacheWithoutFetching(t *testing.T) {
	dir := t.TempDir()
	cached := &model.MarketSnapshot{
		Rates:     map[string]float64{"sora_rate": 0.042},
		Source:    "rest",
		FetchedAt: time.Now(),
	}
	writeCacheFile(t, dir, time.Now(), cached)

	// A fetcher that always errors proves the cache short-circuits fetching.
	mgr, err := NewManager(&MockFetcher{Err: errors.New("unreachable")}, dir, 7, 14)
	require.NoError(t, err)

	snap, err := mgr.Snapshot(false)
	require.NoError(t, err)
	assert.Equal(t, "rest", snap.Source)
	assert.InDelta(t, 0.042, snap.Rates["sora_rate"], 1e-12)
}

func TestSnapshot_StaleCacheBeatsMock(t *testing.T) {
	dir := t.TempDir()
	cached := &model.MarketSnapshot{
		Rates:     map[string]float64{"sora_rate": 0.029},
		Source:    "rest",
		FetchedAt: time.Now().AddDate(0, 0, -10),
	}
	writeCacheFile(t, dir, time.Now().AddDate(0, 0, -10), cached)

	mgr, err := NewManager(&MockFetcher{Err: errors.New("unreachable")}, dir, 7, 14)
	require.NoError(t, err)

	snap, err := mgr.Snapshot(false)
	require.NoError(t, err)
	assert.Equal(t, "rest", snap.Source, "stale cache should be preferred over mock fallback")
	assert.InDelta(t, 0.029, snap.Rates["sora_rate"], 1e-12)
}

func TestSnapshot_MockFallbackWhenNothingCached(t *testing.T) {
	mgr, err := NewManager(&MockFetcher{Err: errors.New("unreachable")}, t.TempDir(), 7, 14)
	require.NoError(t, err)

	snap, err := mgr.Snapshot(false)
	require.NoError(t, err)
	assert.Equal(t, "mock", snap.Source)
	assert.NotEmpty(t, snap.Indices)
}

func TestSnapshot_ForceBypassesCache(t *testing.T) {
	dir := t.TempDir()
	writeCacheFile(t, dir, time.Now(), &model.MarketSnapshot{
		Rates:     map[string]float64{"sora_rate": 0.042},
		Source:    "rest",
		FetchedAt: time.Now(),
	})

	mgr, err := NewManager(&MockFetcher{}, dir, 7, 14)
	require.NoError(t, err)

	snap, err := mgr.Refresh()
	require.NoError(t, err)
	assert.Equal(t, "mock", snap.Source)
}

func TestCleanup(t *testing.T) {
	dir := t.TempDir()
	oldFile := filepath.Join(dir, "2020-01-01.json")
	require.NoError(t, os.WriteFile(oldFile, []byte("{}"), 0o644))
	oldTime := time.Now().AddDate(0, 0, -30)
	require.NoError(t, os.Chtimes(oldFile, oldTime, oldTime))

	newFile := filepath.Join(dir, time.Now().Format("2006-01-02")+".json")
	require.NoError(t, os.WriteFile(newFile, []byte("{}"), 0o644))

	mgr, err := NewManager(&MockFetcher{}, dir, 7, 14)
	require.NoError(t, err)
	mgr.Cleanup()

	assert.NoFileExists(t, oldFile)
	assert.FileExists(t, newFile)
}

func TestExpectedReturns(t *testing.T) {
	snap := &model.MarketSnapshot{
		Rates: map[string]float64{"sora_rate": 0.035, "fd_rates_average": 0.031},
		Indices: map[string]model.IndexQuote{
			"MSCI_World":   {OneYearRet: 0.12},
			"Global_Bonds": {OneYearRet: 0.025},
		},
	}
	returns := ExpectedReturns(snap, 1.0)

	assert.InDelta(t, 0.035, returns[model.AssetCash], 1e-12)
	assert.InDelta(t, 0.035, returns[model.AssetMoneyMarket], 1e-12)
	assert.InDelta(t, 0.031, returns[model.AssetTimeDeposit], 1e-12)
	assert.InDelta(t, 0.12, returns[model.AssetMultiAsset], 1e-12)
	assert.InDelta(t, 0.025, returns[model.AssetBondFund], 1e-12)
}

func writeCacheFile(t *testing.T, dir string, day time.Time, snap *model.MarketSnapshot) {
	t.Helper()
	data, err := json.Marshal(snap)
	require.NoError(t, err)
	name := filepath.Join(dir, day.Format("2006-01-02")+".json")
	require.NoError(t, os.WriteFile(name, data, 0o644))
}
