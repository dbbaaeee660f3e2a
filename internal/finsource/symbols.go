package finsource

import (
	"context"
	"strconv"
)

// symbolPageStep is the upstream page limit for symbol listings.
const symbolPageStep = 500

// SymbolEntry is one row of the upstream symbol catalog.
type SymbolEntry struct {
	TradingSymbol  string `json:"trading_symbol"`
	RegistrantName string `json:"registrant_name"`
}

func entriesFromRecords(records []Record) []SymbolEntry {
	entries := make([]SymbolEntry, 0, len(records))
	for _, r := range records {
		sym, ok := StringField(r, "trading_symbol")
		if !ok || sym == "" {
			continue
		}
		name, _ := StringField(r, "registrant_name")
		if name == "" {
			// Index rows name the index itself
			name, _ = StringField(r, "name")
		}
		entries = append(entries, SymbolEntry{TradingSymbol: sym, RegistrantName: name})
	}
	return entries
}

// ListStockSymbols exhausts the paginated stock-symbols catalog.
func (c *Client) ListStockSymbols(ctx context.Context) ([]SymbolEntry, error) {
	var entries []SymbolEntry
	offset := 0
	for {
		records, err := c.GetRecords(ctx, "/stock-symbols", map[string]string{
			"offset": strconv.Itoa(offset),
			"format": "json",
		})
		if err != nil {
			return nil, err
		}
		entries = append(entries, entriesFromRecords(records)...)
		if len(records) < symbolPageStep {
			break
		}
		offset += symbolPageStep
	}
	return entries, nil
}

// ListIndexSymbols fetches the market index catalog. The index listing is
// small enough that upstream serves it in a single page.
func (c *Client) ListIndexSymbols(ctx context.Context) ([]SymbolEntry, error) {
	records, err := c.GetRecords(ctx, "/index-symbols", map[string]string{
		"format": "json",
	})
	if err != nil {
		return nil, err
	}
	return entriesFromRecords(records), nil
}
