package timeseries

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hankli/FinSeriesGo/config"
	"github.com/hankli/FinSeriesGo/internal/finsource"
	"github.com/hankli/FinSeriesGo/internal/symbols"
)

func testEntries() []finsource.SymbolEntry {
	return []finsource.SymbolEntry{
		{TradingSymbol: "MSFT", RegistrantName: "Microsoft Corporation"},
		{TradingSymbol: "AAPL", RegistrantName: "Apple Inc."},
		{TradingSymbol: "^GSPC", RegistrantName: "S&P 500"},
	}
}

func testService(baseURL string) *Service {
	cfg := &config.Config{
		FinDataBaseURL:     baseURL,
		FinancialDataKey:   "test-key",
		HTTPTimeoutSeconds: 5,
		MaxDayFetchers:     2,
	}
	retry := &finsource.RetryConfig{MaxAttempts: 1, BaseDelay: time.Millisecond, MaxDelay: time.Millisecond, Multiplier: 1.0}
	client := finsource.NewClientWithRetry(cfg, retry)
	resolver := symbols.NewResolver(symbols.NewDirectory(testEntries()), nil)
	return NewServiceWith(cfg, resolver, NewFetcher(client, cfg.MaxDayFetchers))
}

func TestRetrieveValidationOrder(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		_, _ = w.Write([]byte("[]"))
	}))
	defer server.Close()
	svc := testService(server.URL)
	ctx := context.Background()

	// Format is checked before unit even when both are wrong.
	_, err := svc.Retrieve(ctx, Request{Symbol: "MSFT", Unit: "weekly", Start: "2024-01-01", End: "2024-01-02", Format: "xml"})
	if !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("expected ErrInvalidFormat, got %v", err)
	}

	_, err = svc.Retrieve(ctx, Request{Symbol: "MSFT", Unit: "weekly", Start: "2024-01-01", End: "2024-01-02", Format: FormatJSON})
	if !errors.Is(err, ErrInvalidUnit) {
		t.Errorf("expected ErrInvalidUnit, got %v", err)
	}

	svc.cfg.FinancialDataKey = ""
	_, err = svc.Retrieve(ctx, Request{Symbol: "MSFT", Unit: GranularityDaily, Start: "2024-01-01", End: "2024-01-02", Format: FormatJSON})
	if !errors.Is(err, ErrMissingKey) {
		t.Errorf("expected ErrMissingKey, got %v", err)
	}

	if got := requests.Load(); got != 0 {
		t.Errorf("validation failures must not reach upstream, got %d requests", got)
	}
}

func TestRetrieveInvalidDates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("[]"))
	}))
	defer server.Close()
	svc := testService(server.URL)

	_, err := svc.Retrieve(context.Background(), Request{
		Symbol: "MSFT", Unit: GranularityDaily, Start: "yesterday", End: "2024-01-02", Format: FormatJSON,
	})
	if !errors.Is(err, ErrInvalidDate) {
		t.Errorf("expected ErrInvalidDate, got %v", err)
	}
}

func TestRetrieveUnresolvedSymbol(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("[]"))
	}))
	defer server.Close()
	svc := testService(server.URL)

	_, err := svc.Retrieve(context.Background(), Request{
		Symbol: "Totally Unknown Industries", Unit: GranularityDaily, Start: "2024-01-01", End: "2024-01-02", Format: FormatJSON,
	})
	var resolveErr *symbols.ResolveError
	if !errors.As(err, &resolveErr) {
		t.Fatalf("expected ResolveError, got %v", err)
	}
}

func TestRetrieveIndexMinuteRejectedWithoutFetch(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		_, _ = w.Write([]byte("[]"))
	}))
	defer server.Close()
	svc := testService(server.URL)

	_, err := svc.Retrieve(context.Background(), Request{
		Symbol: "^GSPC", Unit: GranularityMinute, Start: "2024-01-02", End: "2024-01-02", Format: FormatJSON,
	})
	if !errors.Is(err, ErrMinuteUnsupported) {
		t.Fatalf("expected ErrMinuteUnsupported, got %v", err)
	}
	if got := requests.Load(); got != 0 {
		t.Errorf("rejected request must not reach upstream, got %d requests", got)
	}
}

func TestRetrieveDailyJSONFiltersWindow(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/stock-prices" {
			t.Errorf("expected /stock-prices, got %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`[
			{"date": "2023-12-29", "close": "374.07"},
			{"date": "2024-01-02", "close": "370.87"},
			{"date": "2024-01-03", "close": "369.12"},
			{"date": "2024-01-08", "close": "374.69"}
		]`))
	}))
	defer server.Close()
	svc := testService(server.URL)

	// Company name in, validated symbol out.
	result, err := svc.Retrieve(context.Background(), Request{
		Symbol: "microsoft", Unit: GranularityDaily, Start: "2024-01-01", End: "2024-01-05", Format: FormatJSON,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Symbol != "MSFT" {
		t.Errorf("expected resolved symbol MSFT, got %q", result.Symbol)
	}
	if len(result.Records) != 2 {
		t.Fatalf("expected 2 records inside window, got %d", len(result.Records))
	}
}

func TestRetrieveMinuteBareDatesExpandToSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/minute-prices" {
			t.Errorf("expected /minute-prices, got %s", r.URL.Path)
		}
		if r.URL.Query().Get("date") != "2024-01-02" {
			t.Errorf("expected date 2024-01-02, got %q", r.URL.Query().Get("date"))
		}
		_, _ = w.Write([]byte(`[
			{"datetime": "2024-01-02T09:29:59Z", "close": "99.00"},
			{"datetime": "2024-01-02T09:30:00Z", "close": "100.00"},
			{"datetime": "2024-01-02T16:00:00Z", "close": "101.00"},
			{"datetime": "2024-01-02T16:00:01Z", "close": "102.00"}
		]`))
	}))
	defer server.Close()
	svc := testService(server.URL)

	result, err := svc.Retrieve(context.Background(), Request{
		Symbol: "MSFT", Unit: GranularityMinute, Start: "2024-01-02", End: "2024-01-02", Format: FormatJSON,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Records) != 2 {
		t.Fatalf("expected session-bounded records, got %d", len(result.Records))
	}
}

func TestRetrieveCSVShapesOutput(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("date,close\n2023-12-29,374.07\n2024-01-02,370.87\n2024-01-03,369.12\n"))
	}))
	defer server.Close()
	svc := testService(server.URL)

	result, err := svc.Retrieve(context.Background(), Request{
		Symbol: "MSFT", Unit: GranularityDaily, Start: "2024-01-01", End: "2024-01-05", Format: FormatCSV,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "date,close\n2024-01-02,370.87\n2024-01-03,369.12"
	if result.CSV != want {
		t.Errorf("csv payload:\n%q\nwant:\n%q", result.CSV, want)
	}
	if result.Records != nil {
		t.Errorf("csv result must not carry records")
	}
}

func TestRetrieveCSVEmptyUpstream(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(""))
	}))
	defer server.Close()
	svc := testService(server.URL)

	result, err := svc.Retrieve(context.Background(), Request{
		Symbol: "MSFT", Unit: GranularityDaily, Start: "2024-01-01", End: "2024-01-05", Format: FormatCSV,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.CSV != "" {
		t.Errorf("expected empty csv payload, got %q", result.CSV)
	}
}

func TestRetrieveUpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()
	svc := testService(server.URL)

	result, err := svc.Retrieve(context.Background(), Request{
		Symbol: "MSFT", Unit: GranularityDaily, Start: "2024-01-01", End: "2024-01-05", Format: FormatJSON,
	})
	if err == nil {
		t.Fatal("expected upstream error, got nil")
	}
	if result != nil {
		t.Errorf("expected no result on failure, got %+v", result)
	}
	if !strings.Contains(err.Error(), "status 502") {
		t.Errorf("expected status in error, got %v", err)
	}
}
