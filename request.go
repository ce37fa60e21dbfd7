package fiobank

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dvloznov/fiobank/internal/logger"
)

// throttleWindow is the minimum interval the API enforces between uses of
// one access token. Responses cached within the window are served without a
// network call; violating the interval server-side yields HTTP 409.
const throttleWindow = 30 * time.Second

// actionTemplates maps action names to URL templates relative to the base
// URL. Placeholders are filled from the client token and per-call params.
var actionTemplates = map[string]string{
	"periods":       "periods/{token}/{from_date}/{to_date}/transactions.json",
	"by-id":         "by-id/{token}/{year}/{number}/transactions.json",
	"last":          "last/{token}/transactions.json",
	"set-last-id":   "set-last-id/{token}/{from_id}/",
	"set-last-date": "set-last-date/{token}/{from_date}/",
}

type cacheEntry struct {
	fetchedAt time.Time
	document  map[string]any
}

// responseCache remembers the last decoded body per request URL so that
// repeat calls inside the throttle window are answered locally. Entries
// older than the window are skipped and overwritten on the next fetch; they
// are never purged eagerly. The map is mutex-guarded, but the throttle check
// is advisory: two goroutines that miss simultaneously will both hit the
// network and the token may still be throttled server-side.
type responseCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	now     func() time.Time
}

func newResponseCache() *responseCache {
	return &responseCache{
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

func (c *responseCache) get(url string) (map[string]any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[url]
	if !ok || c.now().Sub(entry.fetchedAt) >= throttleWindow {
		return nil, false
	}
	return entry.document, true
}

func (c *responseCache) put(url string, doc map[string]any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[url] = cacheEntry{fetchedAt: c.now(), document: doc}
}

// buildURL resolves an action name to a fully qualified request URL.
func (c *Client) buildURL(action string, params map[string]string) (string, error) {
	template, ok := actionTemplates[action]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}

	oldnew := make([]string, 0, 2*(len(params)+1))
	oldnew = append(oldnew, "{token}", c.token)
	for key, value := range params {
		oldnew = append(oldnew, "{"+key+"}", value)
	}
	return c.baseURL + strings.NewReplacer(oldnew...).Replace(template), nil
}

// request resolves the action to a URL, serves a fresh cached response when
// one exists, and otherwise performs a blocking GET. A nil document with a
// nil error means the API answered success with an empty body, which the
// set-last-* actions do; empty bodies never touch the cache.
func (c *Client) request(ctx context.Context, action string, params map[string]string) (map[string]any, error) {
	url, err := c.buildURL(action, params)
	if err != nil {
		return nil, err
	}

	if doc, ok := c.cache.get(url); ok {
		return doc, nil
	}

	// The URL embeds the token, so log the action, not the URL.
	log := logger.FromContext(ctx).With().
		Str("request_id", uuid.NewString()).
		Str("action", action).
		Logger()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	log.Debug().Msg("Requesting transaction-export API")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusConflict {
		log.Warn().Msg("API throttled the token")
		return nil, ErrThrottling
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Error().Int("status", resp.StatusCode).Msg("API returned non-success status")
		return nil, &TransportError{StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("request: reading response body: %w", err)
	}
	if len(body) == 0 {
		return nil, nil
	}

	var doc map[string]any
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("request: unmarshal response body: %w", err)
	}

	c.cache.put(url, doc)
	return doc, nil
}
