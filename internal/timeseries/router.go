package timeseries

import "strings"

// Upstream resources, relative to the API base URL.
const (
	endpointStockPrices  = "/stock-prices"
	endpointIndexPrices  = "/index-prices"
	endpointMinutePrices = "/minute-prices"
)

// indexMarker is the leading character that distinguishes market index
// symbols (^GSPC, ^DJI) from equity and crypto identifiers.
const indexMarker = "^"

// Decision names the upstream resource for a (symbol, granularity) pair.
// SupportsMinute is false for symbol classes with no minute-level resource;
// for those the minute decision carries no endpoint and the caller must
// reject before fetching.
type Decision struct {
	Endpoint       string
	SupportsMinute bool
}

// Route maps every (symbol, granularity) pair to exactly one decision.
// Index symbols only have a daily resource; everything else has both.
func Route(symbol string, granularity Granularity) Decision {
	if strings.HasPrefix(symbol, indexMarker) {
		if granularity == GranularityMinute {
			return Decision{Endpoint: "", SupportsMinute: false}
		}
		return Decision{Endpoint: endpointIndexPrices, SupportsMinute: false}
	}

	if granularity == GranularityMinute {
		return Decision{Endpoint: endpointMinutePrices, SupportsMinute: true}
	}
	return Decision{Endpoint: endpointStockPrices, SupportsMinute: true}
}
