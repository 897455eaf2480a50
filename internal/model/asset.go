package model

import "fmt"

// AssetType identifies one of the five supported holding classes.
type AssetType string

const (
	AssetCash        AssetType = "Cash_Equivalent"
	AssetTimeDeposit AssetType = "Time_Deposit"
	AssetMoneyMarket AssetType = "MMF"
	AssetBondFund    AssetType = "Bond_Fund"
	AssetMultiAsset  AssetType = "Multi_Asset"
)

// AllAssetTypes lists every supported class in display order.
var AllAssetTypes = []AssetType{
	AssetCash,
	AssetTimeDeposit,
	AssetMoneyMarket,
	AssetBondFund,
	AssetMultiAsset,
}

var displayNames = map[AssetType]string{
	AssetCash:        "Cash & Equivalents",
	AssetTimeDeposit: "Time Deposits",
	AssetMoneyMarket: "Money Market Funds",
	AssetBondFund:    "Bond Funds",
	AssetMultiAsset:  "Multi-Asset Funds",
}

// ParseAssetType converts a CSV/API label into an AssetType.
func ParseAssetType(s string) (AssetType, error) {
	switch AssetType(s) {
	case AssetCash, AssetTimeDeposit, AssetMoneyMarket, AssetBondFund, AssetMultiAsset:
		return AssetType(s), nil
	}
	// Accept a few spellings seen in exported portfolio files.
	switch s {
	case "Cash", "Cash_Eq":
		return AssetCash, nil
	case "Money_Market", "Money_Market_Fund":
		return AssetMoneyMarket, nil
	}
	return "", fmt.Errorf("unknown asset type %q", s)
}

// DisplayName returns the human-readable class name for reports and charts.
func (t AssetType) DisplayName() string {
	if name, ok := displayNames[t]; ok {
		return name
	}
	return string(t)
}
