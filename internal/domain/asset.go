package domain

import (
	"errors"
	"time"
)

var (
	// ErrAssetNotFound indicates that the asset is not found.
	ErrAssetNotFound = errors.New("asset not found")
	// ErrTickerAlreadyExists indicates that an asset with the given ticker already exists.
	ErrTickerAlreadyExists = errors.New("asset ticker already exists")
)

// AssetTypeCurrency is the only asset type in use.
const AssetTypeCurrency = "currency"

// Bounds for asset creation input.
const (
	TickerMaxLen      = 8
	SymbolMaxLen      = 8
	AssetLabelMaxLen  = 200
	AssetMaxPrecision = 4
)

// Asset defines a currency or instrument. Precision is the number of decimal
// digits its integer minor-unit amounts represent.
type Asset struct {
	ID        string    `json:"id"`
	Ticker    string    `json:"ticker"`
	Symbol    string    `json:"symbol,omitempty"`
	Label     string    `json:"label"`
	Precision int32     `json:"precision"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateAssetParams is the input data to create an asset.
type CreateAssetParams struct {
	Ticker    string `json:"ticker"`
	Symbol    string `json:"symbol"`
	Label     string `json:"label"`
	Precision int32  `json:"precision"`
}
