package recorder

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists evaluation history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so dashboard history reads don't block evaluation writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Info().Str("path", dbPath).Msg("sqlite recorder opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS evaluations (
			id                       TEXT PRIMARY KEY,
			timestamp                INTEGER NOT NULL,
			scenario                 TEXT,
			interest_rate_shock      REAL,
			inflation_spike          REAL,
			multi_asset_drawdown     REAL,
			redemption_freeze_days   INTEGER,
			early_withdrawal_penalty REAL,
			counterparty_risk_shock  REAL,
			original_value           TEXT,
			stressed_value           TEXT,
			maximum_drawdown         REAL,
			reserve_coverage_ratio   REAL,
			time_to_liquidity_days   REAL,
			volatility_breach        INTEGER,
			liquidity_breach         INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_evaluations_ts ON evaluations(timestamp)`,

		`CREATE TABLE IF NOT EXISTS market_refreshes (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp  INTEGER NOT NULL,
			source     TEXT,
			sora_rate  REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_refreshes_ts ON market_refreshes(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordEvaluation inserts one evaluation row, assigning an id and timestamp
// if the caller left them empty.
func (r *SQLiteRecorder) RecordEvaluation(rec *EvaluationRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}

	_, err := r.db.Exec(`INSERT INTO evaluations
		(id, timestamp, scenario,
		 interest_rate_shock, inflation_spike, multi_asset_drawdown,
		 redemption_freeze_days, early_withdrawal_penalty, counterparty_risk_shock,
		 original_value, stressed_value, maximum_drawdown,
		 reserve_coverage_ratio, time_to_liquidity_days,
		 volatility_breach, liquidity_breach)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		rec.ID, rec.CreatedAt.Unix(), rec.Scenario,
		rec.Parameters.InterestRateShock, rec.Parameters.InflationSpike, rec.Parameters.MultiAssetDrawdown,
		rec.Parameters.RedemptionFreezeDays, rec.Parameters.EarlyWithdrawalPenalty, rec.Parameters.CounterpartyShock,
		rec.OriginalValue, rec.StressedValue, rec.MaxDrawdown,
		rec.Coverage, rec.LiquidityDays,
		boolToInt(rec.VolBreach), boolToInt(rec.LiqBreach),
	)
	return err
}

func (r *SQLiteRecorder) RecordMarketRefresh(evt *MarketRefreshEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ts := evt.FetchedAt
	if ts.IsZero() {
		ts = time.Now()
	}
	_, err := r.db.Exec(`INSERT INTO market_refreshes (timestamp, source, sora_rate) VALUES (?,?,?)`,
		ts.Unix(), evt.Source, evt.SoraRate)
	return err
}

// RecentEvaluations returns the newest evaluations, most recent first.
func (r *SQLiteRecorder) RecentEvaluations(limit int) ([]EvaluationRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.Query(`SELECT
		id, timestamp, scenario,
		interest_rate_shock, inflation_spike, multi_asset_drawdown,
		redemption_freeze_days, early_withdrawal_penalty, counterparty_risk_shock,
		original_value, stressed_value, maximum_drawdown,
		reserve_coverage_ratio, time_to_liquidity_days,
		volatility_breach, liquidity_breach
		FROM evaluations ORDER BY timestamp DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []EvaluationRecord
	for rows.Next() {
		var rec EvaluationRecord
		var ts int64
		var volBreach, liqBreach int
		if err := rows.Scan(
			&rec.ID, &ts, &rec.Scenario,
			&rec.Parameters.InterestRateShock, &rec.Parameters.InflationSpike, &rec.Parameters.MultiAssetDrawdown,
			&rec.Parameters.RedemptionFreezeDays, &rec.Parameters.EarlyWithdrawalPenalty, &rec.Parameters.CounterpartyShock,
			&rec.OriginalValue, &rec.StressedValue, &rec.MaxDrawdown,
			&rec.Coverage, &rec.LiquidityDays,
			&volBreach, &liqBreach,
		); err != nil {
			return nil, err
		}
		rec.CreatedAt = time.Unix(ts, 0)
		rec.VolBreach = volBreach != 0
		rec.LiqBreach = liqBreach != 0
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	log.Info().Msg("closing sqlite recorder")
	return r.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
