package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCORS(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name       string
		origins    []string
		reqOrigin  string
		method     string
		wantOrigin string
		wantStatus int
	}{
		{"wildcard", []string{"*"}, "https://a.example", http.MethodGet, "*", http.StatusOK},
		{"listed origin", []string{"https://a.example", "https://b.example"}, "https://b.example", http.MethodGet, "https://b.example", http.StatusOK},
		{"unlisted origin", []string{"https://a.example"}, "https://evil.example", http.MethodGet, "", http.StatusOK},
		{"no origin header", []string{"https://a.example"}, "", http.MethodGet, "", http.StatusOK},
		{"preflight", []string{"https://a.example"}, "https://a.example", http.MethodOptions, "https://a.example", http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/api/volumes", nil)
			if tt.reqOrigin != "" {
				req.Header.Set("Origin", tt.reqOrigin)
			}
			rec := httptest.NewRecorder()
			CORS(tt.origins)(ok).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Errorf("Allow-Origin = %q, want %q", got, tt.wantOrigin)
			}
		})
	}
}
