package collector

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestFetchPageAllowedDomainsOnRedirect(t *testing.T) {
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			http.Redirect(w, r, strings.Replace(srv.URL, "127.0.0.1", "localhost", 1)+"/news/", http.StatusMovedPermanently)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	cases := []struct {
		name    string
		domains []string
		wantErr bool
	}{
		{"unrestricted", nil, false},
		{"target listed", []string{"localhost"}, false},
		{"target not listed", []string{"example.com"}, true},
	}
	for _, c := range cases {
		body, err := fetchPage(pageRequest{
			source:         "test",
			url:            srv.URL + "/",
			timeout:        2 * time.Second,
			allowedDomains: c.domains,
		})
		if c.wantErr {
			if !errors.Is(err, ErrConnectivity) {
				t.Fatalf("%s: expected ErrConnectivity, got %v", c.name, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%s: fetchPage error: %v", c.name, err)
		}
		if string(body) != "ok" {
			t.Fatalf("%s: body = %q, want %q", c.name, body, "ok")
		}
	}
}
