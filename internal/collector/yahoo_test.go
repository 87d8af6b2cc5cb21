package collector

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const chartFixture = `{"chart":{"result":[{
	"timestamp":[1700172800,1700000000,1700086400,1700259200],
	"indicators":{"quote":[{
		"open":[103,100,101,null],
		"high":[104,101,102,null],
		"low":[102,99,100,null],
		"close":[103.5,100.5,101.5,null],
		"volume":[1200,1000,1100,null]
	}]}
}],"error":null}}`

// requestLog remembers the last URL a test server was asked for.
type requestLog struct {
	mu   sync.Mutex
	last *url.URL
}

func (l *requestLog) URL() *url.URL {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.last
}

func newYahooTestServer(t *testing.T, status int, body string) (*YahooFetcher, *requestLog) {
	t.Helper()
	seen := &requestLog{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen.mu.Lock()
		seen.last = r.URL
		seen.mu.Unlock()
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	f := NewYahooFetcher("")
	f.BaseURL = srv.URL
	return f, seen
}

func TestYahooFetcher_FetchDailyBars(t *testing.T) {
	f, seen := newYahooTestServer(t, http.StatusOK, chartFixture)

	bars, err := f.FetchDailyBars(context.Background(), "SPX500", 60)
	require.NoError(t, err)
	require.Len(t, bars, 3)

	// sorted oldest first, null bar dropped
	assert.Equal(t, 100.5, bars[0].Close)
	assert.Equal(t, 101.5, bars[1].Close)
	assert.Equal(t, 103.5, bars[2].Close)
	assert.Equal(t, 1200.0, bars[2].Volume)

	u := seen.URL()
	require.NotNil(t, u)
	assert.Equal(t, "/v8/finance/chart/^GSPC", u.Path)
	assert.Equal(t, "1d", u.Query().Get("interval"))
	assert.Equal(t, "3mo", u.Query().Get("range"))
}

func TestYahooFetcher_TrimsToDays(t *testing.T) {
	f, _ := newYahooTestServer(t, http.StatusOK, chartFixture)

	bars, err := f.FetchDailyBars(context.Background(), "AAPL", 2)
	require.NoError(t, err)
	require.Len(t, bars, 2)
	assert.Equal(t, 101.5, bars[0].Close)
	assert.Equal(t, 103.5, bars[1].Close)
}

func TestYahooFetcher_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{"http status", http.StatusNotFound, "nope", "status 404"},
		{"bad json", http.StatusOK, "{", "yahoo decode"},
		{"api error", http.StatusOK, `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found"}}}`, "No data found"},
		{"empty result", http.StatusOK, `{"chart":{"result":[],"error":null}}`, "no data returned"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, _ := newYahooTestServer(t, tt.status, tt.body)
			_, err := f.FetchDailyBars(context.Background(), "AAPL", 60)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestRangeForDays(t *testing.T) {
	assert.Equal(t, "1mo", rangeForDays(20))
	assert.Equal(t, "3mo", rangeForDays(60))
	assert.Equal(t, "6mo", rangeForDays(100))
	assert.Equal(t, "1y", rangeForDays(250))
	assert.Equal(t, "2y", rangeForDays(400))
	assert.Equal(t, "5y", rangeForDays(1000))
}
