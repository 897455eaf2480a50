package portfolio

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"AssetSentinel/internal/model"
)

const sampleCSV = `Asset_Type,Amount_SGD,Fund_Name,Liquidity_Period_Days,Notes
Cash_Equivalent,200000,DBS Operating Account,0,
MMF,1000000,Fullerton SGD Cash Fund,2,T+2 settlement
Bond_Fund,350000,ABF Singapore Bond Fund,5,
Multi_Asset,550000,Balanced Growth Fund,30,
Time_Deposit,1300000,UOB 12M Fixed Deposit,90,matures 2027-03
`

func TestParse(t *testing.T) {
	holdings, err := Parse(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, holdings, 5)

	assert.Equal(t, model.AssetCash, holdings[0].Type)
	assert.True(t, holdings[0].Amount.Equal(decimal.NewFromInt(200_000)))
	assert.Equal(t, "Fullerton SGD Cash Fund", holdings[1].FundName)
	assert.Equal(t, "T+2 settlement", holdings[1].Notes)
	assert.Equal(t, 90, holdings[4].LiquidityDays)

	total := model.PortfolioValue(holdings)
	assert.True(t, total.Equal(decimal.NewFromInt(3_400_000)), "total %s", total)
}

func TestParse_BlankLiquidityUsesClassDefault(t *testing.T) {
	csv := "Asset_Type,Amount_SGD,Fund_Name,Liquidity_Period_Days,Notes\nTime_Deposit,100000,FD,,\n"
	holdings, err := Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, holdings, 1)
	assert.Equal(t, 180, holdings[0].LiquidityDays)
}

func TestParse_Rejections(t *testing.T) {
	tests := []struct {
		name string
		csv  string
		want string
	}{
		{
			name: "unknown asset type",
			csv:  "Asset_Type,Amount_SGD,Fund_Name,Liquidity_Period_Days,Notes\nCrypto,100,Fund,0,\n",
			want: "unknown asset type",
		},
		{
			name: "negative amount",
			csv:  "Asset_Type,Amount_SGD,Fund_Name,Liquidity_Period_Days,Notes\nMMF,-100,Fund,2,\n",
			want: "non-negative",
		},
		{
			name: "negative liquidity days",
			csv:  "Asset_Type,Amount_SGD,Fund_Name,Liquidity_Period_Days,Notes\nMMF,100,Fund,-2,\n",
			want: "non-negative",
		},
		{
			name: "bad header",
			csv:  "Type,Amount,Name,Days,Notes\nMMF,100,Fund,2,\n",
			want: "header",
		},
		{
			name: "malformed amount",
			csv:  "Asset_Type,Amount_SGD,Fund_Name,Liquidity_Period_Days,Notes\nMMF,1oo,Fund,2,\n",
			want: "parse amount",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.csv))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portfolio.csv")
	holdings, err := Parse(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.NoError(t, Save(path, holdings))

	store, err := NewStore(path)
	require.NoError(t, err)
	assert.Len(t, store.Holdings(), 5)

	// Edits validate, swap, and persist.
	edited := store.Holdings()[:3]
	require.NoError(t, store.Replace(edited))

	reloaded, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, reloaded, 3)
	assert.Equal(t, edited, reloaded)
}

func TestStore_ReplaceRejectsBadRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portfolio.csv")
	holdings, err := Parse(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.NoError(t, Save(path, holdings))

	store, err := NewStore(path)
	require.NoError(t, err)

	bad := []model.AssetHolding{{Type: model.AssetCash, Amount: decimal.NewFromInt(-1)}}
	require.Error(t, store.Replace(bad))
	// Original rows stay in place after a rejected edit.
	assert.Len(t, store.Holdings(), 5)
}
