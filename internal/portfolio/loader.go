package portfolio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"AssetSentinel/internal/model"
	"AssetSentinel/internal/risk"
)

// csvHeader is the required column order for portfolio files.
var csvHeader = []string{"Asset_Type", "Amount_SGD", "Fund_Name", "Liquidity_Period_Days", "Notes"}

// Load reads and validates a portfolio CSV. Rows with unknown asset types or
// negative amounts are rejected outright; the engine assumes pre-validated
// input, so all checking happens here.
func Load(path string) ([]model.AssetHolding, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open portfolio: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads holdings from CSV content.
func Parse(r io.Reader) ([]model.AssetHolding, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read portfolio header: %w", err)
	}
	if err := checkHeader(header); err != nil {
		return nil, err
	}

	var holdings []model.AssetHolding
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read portfolio line %d: %w", line, err)
		}
		h, err := parseRow(record)
		if err != nil {
			return nil, fmt.Errorf("portfolio line %d: %w", line, err)
		}
		holdings = append(holdings, h)
	}
	return holdings, nil
}

func checkHeader(header []string) error {
	if len(header) != len(csvHeader) {
		return fmt.Errorf("portfolio header has %d columns, want %d", len(header), len(csvHeader))
	}
	for i, col := range csvHeader {
		if strings.TrimSpace(header[i]) != col {
			return fmt.Errorf("portfolio header column %d is %q, want %q", i+1, header[i], col)
		}
	}
	return nil
}

func parseRow(record []string) (model.AssetHolding, error) {
	var h model.AssetHolding
	if len(record) != len(csvHeader) {
		return h, fmt.Errorf("row has %d columns, want %d", len(record), len(csvHeader))
	}

	assetType, err := model.ParseAssetType(strings.TrimSpace(record[0]))
	if err != nil {
		return h, err
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(record[1]))
	if err != nil {
		return h, fmt.Errorf("parse amount %q: %w", record[1], err)
	}
	if amount.Sign() < 0 {
		return h, fmt.Errorf("amount must be non-negative, got %s", amount)
	}

	liquidityDays, err := parseLiquidityDays(record[3], assetType)
	if err != nil {
		return h, err
	}

	return model.AssetHolding{
		Type:          assetType,
		Amount:        amount,
		FundName:      strings.TrimSpace(record[2]),
		LiquidityDays: liquidityDays,
		Notes:         strings.TrimSpace(record[4]),
	}, nil
}

// parseLiquidityDays falls back to the class default from the risk-profile
// table when the column is blank.
func parseLiquidityDays(s string, t model.AssetType) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		profile, _ := risk.ProfileFor(t)
		return profile.BaseLiquidityDays, nil
	}
	days, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("parse liquidity days %q: %w", s, err)
	}
	if days < 0 {
		return 0, fmt.Errorf("liquidity days must be non-negative, got %d", days)
	}
	return days, nil
}

// Save writes holdings back to a portfolio CSV.
func Save(path string, holdings []model.AssetHolding) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create portfolio: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("write portfolio header: %w", err)
	}
	for _, h := range holdings {
		record := []string{
			string(h.Type),
			h.Amount.String(),
			h.FundName,
			strconv.Itoa(h.LiquidityDays),
			h.Notes,
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("write portfolio row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}
