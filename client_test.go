package fiobank

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"
)

const testToken = "test-token"

// newTestClient wires a client to a test server and returns a call counter
// the handlers bump.
func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *int) {
	t.Helper()
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return New(testToken, WithBaseURL(srv.URL+"/")), &calls
}

func serveStatement(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(sampleStatementJSON))
}

func TestBuildURL(t *testing.T) {
	c := New(testToken)

	url, err := c.buildURL("periods", map[string]string{
		"from_date": "2016-09-01",
		"to_date":   "2016-10-01",
	})
	if err != nil {
		t.Fatalf("buildURL() error = %v", err)
	}
	want := DefaultBaseURL + "periods/test-token/2016-09-01/2016-10-01/transactions.json"
	if url != want {
		t.Errorf("buildURL() = %s, want %s", url, want)
	}
}

func TestBuildURL_UnknownAction(t *testing.T) {
	c, calls := newTestClient(t, serveStatement)

	_, err := c.request(context.Background(), "download-everything", nil)
	if !errors.Is(err, ErrUnknownAction) {
		t.Fatalf("request with unknown action error = %v, want ErrUnknownAction", err)
	}
	if *calls != 0 {
		t.Errorf("unknown action made %d network calls, want 0", *calls)
	}
}

func TestRequestCaching(t *testing.T) {
	c, calls := newTestClient(t, serveStatement)

	now := time.Now()
	c.cache.now = func() time.Time { return now }

	ctx := context.Background()
	first, err := c.request(ctx, "last", nil)
	if err != nil {
		t.Fatalf("first request error = %v", err)
	}
	second, err := c.request(ctx, "last", nil)
	if err != nil {
		t.Fatalf("second request error = %v", err)
	}

	if *calls != 1 {
		t.Errorf("two requests inside the window made %d network calls, want 1", *calls)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("cached response differs from the original")
	}

	// Once the window elapses the cache entry is stale.
	now = now.Add(31 * time.Second)
	if _, err := c.request(ctx, "last", nil); err != nil {
		t.Fatalf("post-window request error = %v", err)
	}
	if *calls != 2 {
		t.Errorf("post-window request made %d total network calls, want 2", *calls)
	}
}

func TestRequestCaching_PerURL(t *testing.T) {
	c, calls := newTestClient(t, serveStatement)

	ctx := context.Background()
	if _, err := c.request(ctx, "last", nil); err != nil {
		t.Fatalf("last request error = %v", err)
	}
	if _, err := c.request(ctx, "by-id", map[string]string{"year": "2016", "number": "1"}); err != nil {
		t.Fatalf("by-id request error = %v", err)
	}
	if *calls != 2 {
		t.Errorf("distinct URLs made %d network calls, want 2", *calls)
	}
}

func TestRequestThrottling(t *testing.T) {
	c, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	})

	ctx := context.Background()
	_, err := c.request(ctx, "last", nil)
	if !errors.Is(err, ErrThrottling) {
		t.Fatalf("request error = %v, want ErrThrottling", err)
	}

	// A throttled response must not populate the cache.
	if _, err := c.request(ctx, "last", nil); !errors.Is(err, ErrThrottling) {
		t.Fatalf("second request error = %v, want ErrThrottling", err)
	}
	if *calls != 2 {
		t.Errorf("throttled responses made %d network calls, want 2 (no caching)", *calls)
	}
}

func TestRequestTransportError(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := c.request(context.Background(), "last", nil)

	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("request error = %v, want *TransportError", err)
	}
	if transportErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("StatusCode = %d, want 500", transportErr.StatusCode)
	}
}

func TestRequestEmptyBody(t *testing.T) {
	c, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	ctx := context.Background()
	doc, err := c.request(ctx, "set-last-date", map[string]string{"from_date": "2016-10-23"})
	if err != nil {
		t.Fatalf("request error = %v", err)
	}
	if doc != nil {
		t.Errorf("empty body returned document %v, want nil", doc)
	}

	// Empty bodies never populate the cache.
	if _, err := c.request(ctx, "set-last-date", map[string]string{"from_date": "2016-10-23"}); err != nil {
		t.Fatalf("second request error = %v", err)
	}
	if *calls != 2 {
		t.Errorf("empty-body responses made %d network calls, want 2 (no caching)", *calls)
	}
}

func TestPeriod(t *testing.T) {
	var gotPath string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		serveStatement(w, r)
	})

	transactions, err := c.Period(context.Background(), "2016-09-01", "2016-10-24T00:00:00")
	if err != nil {
		t.Fatalf("Period() error = %v", err)
	}

	wantPath := "/periods/test-token/2016-09-01/2016-10-24/transactions.json"
	if gotPath != wantPath {
		t.Errorf("Period() requested %s, want %s", gotPath, wantPath)
	}
	if len(transactions) != 2 {
		t.Errorf("Period() returned %d transactions, want 2", len(transactions))
	}
}

func TestPeriod_BadDate(t *testing.T) {
	c, calls := newTestClient(t, serveStatement)

	if _, err := c.Period(context.Background(), "soon", "2016-10-24"); !errors.Is(err, ErrDateFormat) {
		t.Fatalf("Period() error = %v, want ErrDateFormat", err)
	}
	if *calls != 0 {
		t.Errorf("bad date made %d network calls, want 0", *calls)
	}
}

func TestStatement(t *testing.T) {
	var gotPath string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		serveStatement(w, r)
	})

	if _, err := c.Statement(context.Background(), 2016, 4); err != nil {
		t.Fatalf("Statement() error = %v", err)
	}

	wantPath := "/by-id/test-token/2016/4/transactions.json"
	if gotPath != wantPath {
		t.Errorf("Statement() requested %s, want %s", gotPath, wantPath)
	}
}

func TestInfo(t *testing.T) {
	c, _ := newTestClient(t, serveStatement)

	info, err := c.Info(context.Background())
	if err != nil {
		t.Fatalf("Info() error = %v", err)
	}
	if deref(info.AccountNumberFull) != "2400111111/2010" {
		t.Errorf("Info().AccountNumberFull = %s, want 2400111111/2010", deref(info.AccountNumberFull))
	}
}

func TestInfo_EmptyBody(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	if _, err := c.Info(context.Background()); err == nil {
		t.Error("Info() with empty body expected error, got nil")
	}
}

// lastHandler answers the checkpoint actions with an empty body and
// everything else with the sample statement, recording each request path.
func lastHandler(paths *[]string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		*paths = append(*paths, r.URL.Path)
		if strings.HasPrefix(r.URL.Path, "/set-last-") {
			w.WriteHeader(http.StatusOK)
			return
		}
		serveStatement(w, r)
	}
}

func TestLast(t *testing.T) {
	var paths []string
	c, _ := newTestClient(t, lastHandler(&paths))

	transactions, err := c.Last(context.Background(), LastOptions{})
	if err != nil {
		t.Fatalf("Last() error = %v", err)
	}
	if len(paths) != 1 || paths[0] != "/last/test-token/transactions.json" {
		t.Fatalf("Last() without filters requested %v", paths)
	}
	if len(transactions) != 2 {
		t.Errorf("Last() returned %d transactions, want 2", len(transactions))
	}
}

func TestLast_FromID(t *testing.T) {
	var paths []string
	c, _ := newTestClient(t, lastHandler(&paths))

	if _, err := c.Last(context.Background(), LastOptions{FromID: "13351406489"}); err != nil {
		t.Fatalf("Last(FromID) error = %v", err)
	}
	want := []string{
		"/set-last-id/test-token/13351406489/",
		"/last/test-token/transactions.json",
	}
	if !reflect.DeepEqual(paths, want) {
		t.Errorf("Last(FromID) requested %v, want %v", paths, want)
	}
}

func TestLast_FromDate(t *testing.T) {
	var paths []string
	c, _ := newTestClient(t, lastHandler(&paths))

	if _, err := c.Last(context.Background(), LastOptions{FromDate: "2016-10-23T08:15:00"}); err != nil {
		t.Fatalf("Last(FromDate) error = %v", err)
	}
	want := []string{
		"/set-last-date/test-token/2016-10-23/",
		"/last/test-token/transactions.json",
	}
	if !reflect.DeepEqual(paths, want) {
		t.Errorf("Last(FromDate) requested %v, want %v", paths, want)
	}
}

func TestLast_ConflictingFilters(t *testing.T) {
	c, calls := newTestClient(t, serveStatement)

	_, err := c.Last(context.Background(), LastOptions{
		FromID:   "13351406489",
		FromDate: "2016-10-23",
	})
	if !errors.Is(err, ErrConflictingFilters) {
		t.Fatalf("Last() error = %v, want ErrConflictingFilters", err)
	}
	if *calls != 0 {
		t.Errorf("conflicting filters made %d network calls, want 0", *calls)
	}
}
