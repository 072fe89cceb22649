package dashboard

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClientFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Accept") != "application/json" {
			t.Errorf("Accept = %q", r.Header.Get("Accept"))
		}
		switch r.URL.Path {
		case "/api/volumes":
			w.Write([]byte(`[{"dex":"Hyperliquid","volume":1}]`))
		default:
			http.Error(w, `{"error":"boom"}`, http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL + "/api/")

	body, err := c.FetchFunc("/volumes")(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if string(body) != `[{"dex":"Hyperliquid","volume":1}]` {
		t.Errorf("body = %s", body)
	}

	if _, err := c.Fetch(context.Background(), "/yields"); err == nil {
		t.Error("expected error for status 500")
	}
}

func TestClientFetchUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	if _, err := NewClient(srv.URL).Fetch(context.Background(), "/volumes"); err == nil {
		t.Error("expected error for closed server")
	}
}
