package models

import "github.com/hankli/FinSeriesGo/internal/finsource"

type SeriesInput struct {
	TradingSymbol string `json:"trading_symbol"`
	Unit          string `json:"unit,omitempty"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
	Format        string `json:"format,omitempty"`
}

// SeriesOutput carries either a payload or an error message, never both. The
// error travels in the payload so a model caller can read and recover from it.
type SeriesOutput struct {
	Data  []finsource.Record `json:"data,omitempty"`
	CSV   string             `json:"csv,omitempty"`
	Error string             `json:"error,omitempty"`
}

type MarketDataInput struct {
	TradingSymbol string `json:"trading_symbol"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
}

type MarketDataOutput struct {
	Data  []*MarketData `json:"data,omitempty"`
	Error string        `json:"error,omitempty"`
}
