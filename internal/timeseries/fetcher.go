package timeseries

import (
	"context"
	"strconv"
	"sync"

	"github.com/hankli/FinSeriesGo/internal/finsource"
)

// priceStep is the upstream page limit for price resources. A page shorter
// than the step signals end of data.
const priceStep = 300

// Series is the assembled, unfiltered result of a fetch: either generic
// records (JSON format) or a header plus raw rows (CSV format).
type Series struct {
	Records []finsource.Record
	Header  string
	Rows    []string
}

// Fetcher drives offset pagination against a price resource, partitioning
// minute requests into one sub-request per calendar day.
type Fetcher struct {
	client         *finsource.Client
	maxDayFetchers int
}

func NewFetcher(client *finsource.Client, maxDayFetchers int) *Fetcher {
	if maxDayFetchers < 1 {
		maxDayFetchers = 1
	}
	return &Fetcher{client: client, maxDayFetchers: maxDayFetchers}
}

// FetchDaily exhausts the daily resource for one symbol.
func (f *Fetcher) FetchDaily(ctx context.Context, endpoint, symbol string, format Format) (*Series, error) {
	params := map[string]string{
		"identifier": symbol,
		"format":     string(format),
	}
	return f.fetchPages(ctx, endpoint, params, format)
}

// FetchMinute fetches every calendar day in the window independently and
// concatenates the results in chronological day order. Days are fetched
// concurrently up to the configured fan-out; ordering of the assembled
// series is part of the contract, not a side effect of scheduling.
func (f *Fetcher) FetchMinute(ctx context.Context, endpoint, symbol string, format Format, win Window) (*Series, error) {
	days := win.Days()

	type dayResult struct {
		series *Series
		err    error
	}
	results := make([]dayResult, len(days))

	sem := make(chan struct{}, f.maxDayFetchers)
	var wg sync.WaitGroup
	for i, day := range days {
		wg.Add(1)
		go func(slot int, date string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			params := map[string]string{
				"identifier": symbol,
				"date":       date,
				"format":     string(format),
			}
			s, err := f.fetchPages(ctx, endpoint, params, format)
			results[slot] = dayResult{series: s, err: err}
		}(i, day.Format("2006-01-02"))
	}
	wg.Wait()

	// No partial data: the first failing day, in day order, fails the fetch.
	for _, r := range results {
		if r.err != nil {
			return nil, r.err
		}
	}

	out := &Series{}
	for _, r := range results {
		if format == FormatJSON {
			out.Records = append(out.Records, r.series.Records...)
			continue
		}
		if out.Header == "" {
			out.Header = r.series.Header
		}
		out.Rows = append(out.Rows, r.series.Rows...)
	}
	return out, nil
}

// fetchPages runs one offset-pagination loop until a short page.
func (f *Fetcher) fetchPages(ctx context.Context, endpoint string, params map[string]string, format Format) (*Series, error) {
	if format == FormatJSON {
		records, err := f.fetchRecordPages(ctx, endpoint, params)
		if err != nil {
			return nil, err
		}
		return &Series{Records: records}, nil
	}

	header, rows, err := f.fetchCSVPages(ctx, endpoint, params)
	if err != nil {
		return nil, err
	}
	return &Series{Header: header, Rows: rows}, nil
}

func (f *Fetcher) fetchRecordPages(ctx context.Context, endpoint string, params map[string]string) ([]finsource.Record, error) {
	var out []finsource.Record
	offset := 0
	for {
		page, err := f.client.GetRecords(ctx, endpoint, withOffset(params, offset))
		if err != nil {
			return nil, err
		}
		out = append(out, page...)
		if len(page) < priceStep {
			break
		}
		offset += priceStep
	}
	return out, nil
}

func (f *Fetcher) fetchCSVPages(ctx context.Context, endpoint string, params map[string]string) (string, []string, error) {
	var (
		header string
		rows   []string
	)
	offset := 0
	for {
		text, err := f.client.GetCSV(ctx, endpoint, withOffset(params, offset))
		if err != nil {
			return "", nil, err
		}

		lines := finsource.SplitCSVLines(text)
		if len(lines) == 0 {
			break
		}

		// Header comes from the first non-empty page; repeats on later
		// pages are dropped.
		body := lines
		if header == "" {
			header = lines[0]
			body = lines[1:]
		} else if lines[0] == header {
			body = lines[1:]
		}
		rows = append(rows, body...)

		if len(body) < priceStep {
			break
		}
		offset += priceStep
	}
	return header, rows, nil
}

func withOffset(params map[string]string, offset int) map[string]string {
	page := make(map[string]string, len(params)+1)
	for k, v := range params {
		page[k] = v
	}
	page["offset"] = strconv.Itoa(offset)
	return page
}
