package finsource

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/hankli/FinSeriesGo/config"
)

// Client wraps access to the financialdata.net API. Every request carries the
// configured credential, runs under the client timeout, and is retried with
// exponential backoff on any failure, including non-2xx statuses.
type Client struct {
	http   *resty.Client
	apiKey string
	retry  *RetryConfig
}

// NewClient creates a financialdata.net client from the application config.
func NewClient(cfg *config.Config) *Client {
	client := resty.New()
	client.SetBaseURL(cfg.FinDataBaseURL)
	client.SetTimeout(time.Duration(cfg.HTTPTimeoutSeconds) * time.Second)

	return &Client{
		http:   client,
		apiKey: cfg.FinancialDataKey,
		retry:  DefaultRetryConfig(),
	}
}

// NewClientWithRetry creates a client with a custom retry policy instead of
// the default backoff schedule.
func NewClientWithRetry(cfg *config.Config, retry *RetryConfig) *Client {
	c := NewClient(cfg)
	if retry != nil {
		c.retry = retry
	}
	return c
}

// HasKey reports whether a credential is configured.
func (c *Client) HasKey() bool {
	return c.apiKey != ""
}

// get issues one status-checked GET under the retry policy and returns the
// raw body.
func (c *Client) get(ctx context.Context, path string, params map[string]string) ([]byte, error) {
	var body []byte
	err := WithRetry(c.retry, func() error {
		req := c.http.R().SetContext(ctx).SetQueryParams(params)
		if c.apiKey != "" {
			req.SetQueryParam("key", c.apiKey)
		}

		resp, err := req.Get(path)
		if err != nil {
			return fmt.Errorf("GET %s: %w", path, err)
		}
		if resp.StatusCode() >= 400 {
			return fmt.Errorf("GET %s: upstream status %d: %s", path, resp.StatusCode(), resp.String())
		}

		body = resp.Body()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return body, nil
}

// GetRecords fetches one JSON-format page and decodes it as a list of
// records. Anything other than a JSON array is an unexpected response.
func (c *Client) GetRecords(ctx context.Context, path string, params map[string]string) ([]Record, error) {
	body, err := c.get(ctx, path, params)
	if err != nil {
		return nil, err
	}

	var records []Record
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("GET %s: unexpected response: %w", path, err)
	}
	return records, nil
}

// GetCSV fetches one CSV-format page and returns the raw text.
func (c *Client) GetCSV(ctx context.Context, path string, params map[string]string) (string, error) {
	body, err := c.get(ctx, path, params)
	if err != nil {
		return "", err
	}
	return string(body), nil
}
