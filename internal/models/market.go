package models

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/hankli/FinSeriesGo/internal/finsource"
)

// MarketData is one typed OHLCV bar. Prices stay exact through decimal
// arithmetic instead of floats.
type MarketData struct {
	Symbol string          `json:"symbol"`
	Date   string          `json:"date"`
	Open   decimal.Decimal `json:"open"`
	High   decimal.Decimal `json:"high"`
	Low    decimal.Decimal `json:"low"`
	Close  decimal.Decimal `json:"close"`
	Volume int64           `json:"volume"`
}

var dateKeys = []string{"datetime", "date", "timestamp", "time", "date_time"}

// MarketDataFromRecord converts one generic upstream record into a typed bar.
// Records without a date or a parsable close price are rejected; the other
// price fields default to zero when absent.
func MarketDataFromRecord(symbol string, r finsource.Record) (*MarketData, error) {
	date := ""
	for _, key := range dateKeys {
		if v, ok := finsource.StringField(r, key); ok {
			date = v
			break
		}
	}
	if date == "" {
		return nil, fmt.Errorf("record for %s has no date field", symbol)
	}

	closePrice, err := decimalField(r, "close")
	if err != nil {
		return nil, fmt.Errorf("record for %s at %s: %w", symbol, date, err)
	}

	bar := &MarketData{
		Symbol: symbol,
		Date:   date,
		Close:  closePrice,
		Volume: volumeField(r),
	}
	bar.Open, _ = decimalField(r, "open")
	bar.High, _ = decimalField(r, "high")
	bar.Low, _ = decimalField(r, "low")
	return bar, nil
}

// MarketDataFromRecords converts a record series, skipping records that do
// not form a valid bar.
func MarketDataFromRecords(symbol string, records []finsource.Record) []*MarketData {
	out := make([]*MarketData, 0, len(records))
	for _, r := range records {
		bar, err := MarketDataFromRecord(symbol, r)
		if err != nil {
			continue
		}
		out = append(out, bar)
	}
	return out
}

func decimalField(r finsource.Record, key string) (decimal.Decimal, error) {
	val, ok := r[key]
	if !ok || val == nil {
		return decimal.Zero, fmt.Errorf("missing %s", key)
	}
	switch v := val.(type) {
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(v))
		if err != nil {
			return decimal.Zero, fmt.Errorf("bad %s value %q", key, v)
		}
		return d, nil
	case float64:
		return decimal.NewFromFloat(v), nil
	}
	return decimal.Zero, fmt.Errorf("bad %s value %v", key, val)
}

func volumeField(r finsource.Record) int64 {
	switch v := r["volume"].(type) {
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err == nil {
			return n
		}
	case float64:
		return int64(v)
	}
	return 0
}
