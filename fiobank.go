// Package fiobank is a client for the Fio bank transaction-export REST API.
// It normalizes the API's column-coded statement JSON into typed records and
// shields callers from the one-request-per-30-seconds token throttle with a
// per-URL response cache. Throttling is surfaced as ErrThrottling and never
// retried internally.
package fiobank

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// DefaultBaseURL is the public transaction-export endpoint.
const DefaultBaseURL = "https://fioapi.fio.cz/v1/rest/"

// Client talks to the transaction-export API on behalf of one access token.
// Each client owns its own response cache; see responseCache for the
// concurrency caveats of the throttle guard.
type Client struct {
	token      string
	baseURL    string
	httpClient *http.Client
	cache      *responseCache

	// Transactions offers the common statement queries preconfigured.
	Transactions *Query
}

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL points the client at a different API root, e.g. a test server.
// The URL must end with a trailing slash.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = baseURL }
}

// WithHTTPClient replaces the default HTTP client and its 30 second timeout.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.httpClient = httpClient }
}

// New creates a client for the given access token.
func New(token string, opts ...Option) *Client {
	c := &Client{
		token:   token,
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		cache: newResponseCache(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.Transactions = &Query{client: c}
	return c
}

// Info fetches the account header of the checkpoint statement.
func (c *Client) Info(ctx context.Context) (*AccountInfo, error) {
	doc, err := c.request(ctx, "last", nil)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, fmt.Errorf("Info: api returned an empty body")
	}
	return parseAccountInfo(doc)
}

// Period lists the transactions recorded between from and to, inclusive.
// Both bounds accept a civil.Date, a time.Time, or a string starting with
// YYYY-MM-DD.
func (c *Client) Period(ctx context.Context, from, to any) ([]*Transaction, error) {
	fromDate, err := coerceDate(from)
	if err != nil {
		return nil, fmt.Errorf("Period: from date: %w", err)
	}
	toDate, err := coerceDate(to)
	if err != nil {
		return nil, fmt.Errorf("Period: to date: %w", err)
	}

	doc, err := c.request(ctx, "periods", map[string]string{
		"from_date": fromDate.String(),
		"to_date":   toDate.String(),
	})
	if err != nil {
		return nil, err
	}
	return parseTransactions(doc)
}

// Statement lists the transactions of one numbered statement of a year.
func (c *Client) Statement(ctx context.Context, year, number int) ([]*Transaction, error) {
	doc, err := c.request(ctx, "by-id", map[string]string{
		"year":   strconv.Itoa(year),
		"number": strconv.Itoa(number),
	})
	if err != nil {
		return nil, err
	}
	return parseTransactions(doc)
}

// LastOptions narrows a Last call. At most one filter may be set; setting a
// filter advances the token's server-side checkpoint before fetching.
type LastOptions struct {
	// FromID moves the checkpoint to the transaction with this id.
	FromID string

	// FromDate moves the checkpoint to this date. It accepts the same
	// inputs as Period.
	FromDate any
}

// Last lists the transactions recorded since the token's server-side
// checkpoint. With both filters unset the existing checkpoint is used.
func (c *Client) Last(ctx context.Context, opts LastOptions) ([]*Transaction, error) {
	if opts.FromID != "" && opts.FromDate != nil {
		return nil, ErrConflictingFilters
	}

	switch {
	case opts.FromID != "":
		_, err := c.request(ctx, "set-last-id", map[string]string{"from_id": opts.FromID})
		if err != nil {
			return nil, err
		}
	case opts.FromDate != nil:
		fromDate, err := coerceDate(opts.FromDate)
		if err != nil {
			return nil, fmt.Errorf("Last: from date: %w", err)
		}
		_, err = c.request(ctx, "set-last-date", map[string]string{"from_date": fromDate.String()})
		if err != nil {
			return nil, err
		}
	}

	doc, err := c.request(ctx, "last", nil)
	if err != nil {
		return nil, err
	}
	return parseTransactions(doc)
}
