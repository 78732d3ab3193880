package client

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/kokweikhong/profilm_ewarranty/ui/internal/ui/endpoint"
)

// recordedRequest is what the stub backend saw
type recordedRequest struct {
	Method        string
	Path          string
	Body          string
	Authorization string
	ContentType   string
}

// newTestBackend starts a stub api that records the request and replies with status and body
func newTestBackend(t *testing.T, status int, body string) (*Client, *recordedRequest) {
	t.Helper()

	recorded := &recordedRequest{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		*recorded = recordedRequest{
			Method:        r.Method,
			Path:          r.URL.Path,
			Body:          string(b),
			Authorization: r.Header.Get("Authorization"),
			ContentType:   r.Header.Get("Content-Type"),
		}
		if body != "" {
			w.Header().Set("Content-Type", "application/json")
		}
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(server.Close)

	return NewClient(endpoint.NewResolver(server.URL), 0), recorded
}

// newUnreachableClient returns a client pointing at a server that has already been shut down
func newUnreachableClient(t *testing.T) *Client {
	t.Helper()

	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	return NewClient(endpoint.NewResolver(url), 0)
}

func TestBaseURL(t *testing.T) {
	c := NewClient(endpoint.NewResolver(""), 0)
	if got := c.BaseURL(); got != "http://localhost:8080/api/v1" {
		t.Errorf("BaseURL() = %q, want http://localhost:8080/api/v1", got)
	}
}

func TestContextAccessToken(t *testing.T) {
	ctx := t.Context()
	if _, ok := ContextAccessToken(ctx); ok {
		t.Error("expected no access token on empty context")
	}

	if _, ok := ContextAccessToken(ContextWithAccessToken(ctx, "")); ok {
		t.Error("empty access token should be ignored")
	}

	token, ok := ContextAccessToken(ContextWithAccessToken(ctx, "abc"))
	if !ok || token != "abc" {
		t.Errorf("ContextAccessToken() = %q, %v, want abc, true", token, ok)
	}
}

type observedCall struct {
	operation string
	status    int
}

type recordingObserver struct {
	calls []observedCall
}

func (o *recordingObserver) ObserveAPICall(operation string, status int, _ time.Duration) {
	o.calls = append(o.calls, observedCall{operation, status})
}

func TestCallObserver(t *testing.T) {
	c, _ := newTestBackend(t, http.StatusNotFound, `{"message":"claim not found"}`)
	observer := &recordingObserver{}
	c.SetCallObserver(observer)

	_, _ = c.GetClaimByID(t.Context(), 3)

	unreachable := newUnreachableClient(t)
	unreachable.SetCallObserver(observer)
	_ = unreachable.UpdatePassword(t.Context(), 1, "secret")

	want := []observedCall{
		{"get claim", http.StatusNotFound},
		{"updating password", 0},
	}
	if len(observer.calls) != len(want) {
		t.Fatalf("observed %d calls, want %d", len(observer.calls), len(want))
	}
	for i := range want {
		if observer.calls[i] != want[i] {
			t.Errorf("call %d = %+v, want %+v", i, observer.calls[i], want[i])
		}
	}
}
