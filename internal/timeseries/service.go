package timeseries

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/hankli/FinSeriesGo/config"
	"github.com/hankli/FinSeriesGo/internal/finsource"
	"github.com/hankli/FinSeriesGo/internal/symbols"
)

// Error classes surfaced by Retrieve. Everything is a value the boundary can
// show to a user; nothing panics across layers.
var (
	ErrInvalidFormat = errors.New("invalid format, expected json or csv")
	ErrInvalidUnit   = errors.New("invalid unit, expected daily or minute")
	ErrMissingKey    = errors.New("FINANCIAL_DATA_KEY not provided")
	ErrInvalidDate   = errors.New("invalid date format")
	// ErrMinuteUnsupported rejects sub-day granularity for symbol classes
	// without a minute-level resource.
	ErrMinuteUnsupported = errors.New("minute data not supported for this symbol, please use daily data")
)

// Request carries the caller's raw retrieval inputs.
type Request struct {
	Symbol string
	Unit   Granularity
	Start  string
	End    string
	Format Format
}

// Result is the shaped payload: Records for json format, CSV text otherwise.
type Result struct {
	Format  Format
	Symbol  string
	Records []finsource.Record
	CSV     string
}

// Service is the retrieval facade: validation, symbol resolution, endpoint
// routing, paginated fetch, and date-range trimming in sequence.
type Service struct {
	cfg      *config.Config
	resolver *symbols.Resolver
	fetcher  *Fetcher
}

// NewService wires the facade from explicit configuration. The extractor is
// optional; without it the resolver simply skips the model-assisted stage.
func NewService(cfg *config.Config, extractor symbols.Extractor) *Service {
	dir := symbols.LoadDirectory(cfg.SymbolsPath)
	client := finsource.NewClient(cfg)
	return &Service{
		cfg:      cfg,
		resolver: symbols.NewResolver(dir, extractor),
		fetcher:  NewFetcher(client, cfg.MaxDayFetchers),
	}
}

// NewServiceWith assembles a facade from pre-built parts, mainly for tests
// and callers that manage the directory themselves.
func NewServiceWith(cfg *config.Config, resolver *symbols.Resolver, fetcher *Fetcher) *Service {
	return &Service{cfg: cfg, resolver: resolver, fetcher: fetcher}
}

// Retrieve runs the full pipeline for one request. Validation failures,
// resolution failures, routing incompatibilities, and upstream failures all
// come back as errors; the payload is never partial.
func (s *Service) Retrieve(ctx context.Context, req Request) (*Result, error) {
	if !req.Format.Valid() {
		return nil, ErrInvalidFormat
	}
	if !req.Unit.Valid() {
		return nil, ErrInvalidUnit
	}
	if s.cfg.FinancialDataKey == "" {
		return nil, ErrMissingKey
	}

	symbol, err := s.resolver.Resolve(ctx, req.Symbol)
	if err != nil {
		return nil, err
	}

	start, end := NormalizeRange(req.Unit, req.Start, req.End)
	win, err := ParseWindow(req.Unit, start, end)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}

	decision := Route(symbol, req.Unit)
	if req.Unit == GranularityMinute && !decision.SupportsMinute {
		return nil, ErrMinuteUnsupported
	}

	var series *Series
	if req.Unit == GranularityDaily {
		series, err = s.fetcher.FetchDaily(ctx, decision.Endpoint, symbol, req.Format)
	} else {
		series, err = s.fetcher.FetchMinute(ctx, decision.Endpoint, symbol, req.Format, win)
	}
	if err != nil {
		log.Printf("%s fetch for %s failed: %v", req.Unit, symbol, err)
		return nil, err
	}

	return s.shape(symbol, req.Format, series, win), nil
}

func (s *Service) shape(symbol string, format Format, series *Series, win Window) *Result {
	result := &Result{Format: format, Symbol: symbol}
	if format == FormatJSON {
		result.Records = FilterRecords(series.Records, win)
		return result
	}

	if series.Header == "" {
		return result
	}
	filtered := FilterCSVRows(series.Header, series.Rows, win)
	result.CSV = strings.Join(append([]string{series.Header}, filtered...), "\n")
	return result
}
