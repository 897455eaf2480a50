package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 2_400_000.0, cfg.Finance.AnnualOpexSGD)
	assert.Equal(t, 12, cfg.Finance.ReserveMonths)
	assert.Equal(t, 0.20, cfg.Finance.DrawdownBreachLimit)
	assert.Equal(t, 90.0, cfg.Finance.LiquidityBreachDays)
	assert.Equal(t, ":8080", cfg.Server.Listen)
	assert.Equal(t, "CPC", cfg.Report.OrgPrefix)
	require.NoError(t, cfg.Validate())
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
finance:
  annual_opex_sgd: 1800000
server:
  listen: ":9090"
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))
	t.Setenv("LISTEN_ADDR", ":7070")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 1_800_000.0, cfg.Finance.AnnualOpexSGD)
	assert.Equal(t, ":7070", cfg.Server.Listen, "env beats file")
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestValidate(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	cfg.Finance.DrawdownBreachLimit = 1.5
	assert.Error(t, cfg.Validate())

	cfg.Finance.DrawdownBreachLimit = 0.2
	cfg.Portfolio.CSVPath = ""
	assert.Error(t, cfg.Validate())
}
