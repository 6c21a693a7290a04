package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/LJTian/NewsGetter/internal/collector"
	"github.com/LJTian/NewsGetter/internal/config"
	"github.com/gin-gonic/gin"
)

func newTestEngine(s *Server) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	s.RegisterRoutes(r)
	return r
}

func testConfig() *config.Config {
	return &config.Config{
		HackerNewsLimit: 30,
		YahooNewsLimit:  20,
		FetchTimeout:    10 * time.Second,
	}
}

func TestHealth(t *testing.T) {
	r := newTestEngine(NewServer(testConfig()))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("GET /health = %d, want 200", w.Code)
	}
}

func TestListNewsPassesLimitAndTimeout(t *testing.T) {
	s := NewServer(testConfig())
	var gotLimit int
	var gotTimeout time.Duration
	s.sources["hackernews"] = func(limit int, timeout time.Duration) (any, error) {
		gotLimit, gotTimeout = limit, timeout
		return []collector.HackerNewsItem{{Title: "t", URL: "https://news.ycombinator.com/item?id=1", Score: 3, Author: "a", Date: "now"}}, nil
	}
	r := newTestEngine(s)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/news?source=hackernews&limit=5&timeout=3", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body=%s", w.Code, w.Body.String())
	}
	if gotLimit != 5 || gotTimeout != 3*time.Second {
		t.Fatalf("limit/timeout not forwarded: %d %s", gotLimit, gotTimeout)
	}

	var resp struct {
		Code string                     `json:"code"`
		Data []collector.HackerNewsItem `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Code != "ok" || len(resp.Data) != 1 || resp.Data[0].Score != 3 {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestListNewsDefaultsPerSource(t *testing.T) {
	s := NewServer(testConfig())
	var gotLimit int
	s.sources["yahoo"] = func(limit int, timeout time.Duration) (any, error) {
		gotLimit = limit
		return []collector.YahooNewsItem{}, nil
	}
	r := newTestEngine(s)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/news?source=yahoo&limit=-1", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if gotLimit != 20 {
		t.Fatalf("expected yahoo default limit 20, got %d", gotLimit)
	}
}

func TestListNewsUnknownSource(t *testing.T) {
	r := newTestEngine(NewServer(testConfig()))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/news?source=weibo", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestListNewsErrorMapping(t *testing.T) {
	cases := []struct {
		err      error
		wantCode int
		wantBody string
	}{
		{&collector.FetchError{Source: "hackernews", Kind: collector.ErrTimeout, Err: errors.New("slow")}, http.StatusGatewayTimeout, "timeout"},
		{&collector.FetchError{Source: "hackernews", Kind: collector.ErrConnectivity, Err: errors.New("refused")}, http.StatusBadGateway, "upstream_unavailable"},
		{&collector.FetchError{Source: "hackernews", Kind: collector.ErrFormat, Err: errors.New("empty")}, http.StatusBadGateway, "format_error"},
		{errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}

	for _, c := range cases {
		s := NewServer(testConfig())
		fetchErr := c.err
		s.sources["hackernews"] = func(int, time.Duration) (any, error) { return nil, fetchErr }
		r := newTestEngine(s)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/news", nil))
		if w.Code != c.wantCode {
			t.Fatalf("%v: status = %d, want %d", c.err, w.Code, c.wantCode)
		}
		var resp struct {
			Code string `json:"code"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if resp.Code != c.wantBody {
			t.Fatalf("%v: code = %q, want %q", c.err, resp.Code, c.wantBody)
		}
	}
}
