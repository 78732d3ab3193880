package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()

	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("scrape status = %d", rr.Code)
	}
	body, _ := io.ReadAll(rr.Body)
	return string(body)
}

func TestMiddlewareUsesRoutePattern(t *testing.T) {
	m := New("ewarranty_ui")

	router := chi.NewRouter()
	router.Use(m.Middleware)
	router.Get("/claims/{claimID}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	for _, path := range []string{"/claims/1", "/claims/2", "/missing"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	out := scrape(t, m)

	tests := []string{
		`ewarranty_ui_http_requests_total{method="GET",route="/claims/{claimID}",status="200"} 2`,
		`ewarranty_ui_http_requests_total{method="GET",route="unmatched",status="404"} 1`,
	}
	for _, want := range tests {
		if !strings.Contains(out, want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
	if strings.Contains(out, `route="/claims/1"`) {
		t.Error("raw paths should not be used as labels")
	}
}

func TestObserveAPICall(t *testing.T) {
	m := New("ewarranty_ui")

	m.ObserveAPICall("get claims", 200, 15*time.Millisecond)
	m.ObserveAPICall("get claims", 200, 20*time.Millisecond)
	m.ObserveAPICall("updating password", 0, time.Second)

	out := scrape(t, m)

	tests := []string{
		`ewarranty_ui_api_calls_total{operation="get claims",status="200"} 2`,
		`ewarranty_ui_api_calls_total{operation="updating password",status="0"} 1`,
		`ewarranty_ui_api_call_duration_seconds_count{operation="get claims"} 2`,
	}
	for _, want := range tests {
		if !strings.Contains(out, want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}
