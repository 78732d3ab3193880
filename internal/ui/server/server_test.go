package server

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/kokweikhong/profilm_ewarranty/ui/internal/ui/config"
)

// backendRoute is a canned response from the stub e-warranty api
type backendRoute struct {
	status int
	body   string
}

type recordedCall struct {
	header http.Header
	body   string
}

type stubBackend struct {
	server *httptest.Server
	routes map[string]backendRoute // keyed by "METHOD /path"

	mu    sync.Mutex
	calls []recordedCall
}

func (b *stubBackend) recorded() []recordedCall {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]recordedCall(nil), b.calls...)
}

func newStubBackend(t *testing.T, routes map[string]backendRoute) *stubBackend {
	t.Helper()

	b := &stubBackend{routes: routes}
	b.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		b.mu.Lock()
		b.calls = append(b.calls, recordedCall{header: r.Header.Clone(), body: string(body)})
		b.mu.Unlock()

		route, ok := b.routes[r.Method+" "+r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(route.status)
		_, _ = io.WriteString(w, route.body)
	}))
	t.Cleanup(b.server.Close)

	return b
}

func newTestServer(t *testing.T, apiURL string) http.Handler {
	t.Helper()

	cfg := &config.Config{
		Environment:    "test",
		Host:           "127.0.0.1",
		Port:           3000,
		APIURL:         apiURL,
		ClientTimeout:  5 * time.Second,
		RateLimitRPS:   100,
		RateLimitBurst: 100,
		MetricsEnabled: true,
	}
	return NewServer(cfg, slog.New(slog.NewTextHandler(io.Discard, nil))).Handler()
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func postForm(path string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("HX-Request", "true")
	return req
}

func TestClaimsPageShowsPlaceholder(t *testing.T) {
	backend := newStubBackend(t, nil)
	h := newTestServer(t, backend.server.URL)

	rr := serve(h, httptest.NewRequest(http.MethodGet, "/claims", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `hx-get="/ui-api/claims"`) {
		t.Error("claims page does not load the claims table")
	}
	if len(backend.recorded()) != 0 {
		t.Error("the page itself should not call the api")
	}
	if rr.Header().Get("X-Frame-Options") != "DENY" {
		t.Error("security headers not set")
	}
}

func TestClaimsTableFragment(t *testing.T) {
	backend := newStubBackend(t, map[string]backendRoute{
		"GET /api/v1/claims": {http.StatusOK, `[{"id":2,"claimNo":"CLM-0002"},{"id":1,"claimNo":"CLM-0001"}]`},
	})
	h := newTestServer(t, backend.server.URL)

	req := httptest.NewRequest(http.MethodGet, "/ui-api/claims", nil)
	req.AddCookie(&http.Cookie{Name: config.AccessTokenCookieName, Value: "token123"})
	rr := serve(h, req)

	out := rr.Body.String()
	if !strings.Contains(out, "2 claims") {
		t.Errorf("unexpected table: %s", out)
	}
	if strings.Index(out, "CLM-0002") > strings.Index(out, "CLM-0001") {
		t.Error("claims not rendered in api order")
	}
	if got := backend.recorded()[0].header.Get("Authorization"); got != "Bearer token123" {
		t.Errorf("Authorization = %q, want Bearer token123", got)
	}
}

func TestClaimsTableApiUnavailable(t *testing.T) {
	backend := newStubBackend(t, nil)
	apiURL := backend.server.URL
	backend.server.Close()

	h := newTestServer(t, apiURL)
	rr := serve(h, httptest.NewRequest(http.MethodGet, "/ui-api/claims", nil))

	if !strings.Contains(rr.Body.String(), "Unable to connect") {
		t.Errorf("expected connection error alert, got %s", rr.Body.String())
	}
}

func TestClaimDetailFragment(t *testing.T) {
	backend := newStubBackend(t, map[string]backendRoute{
		"GET /api/v1/claims/7": {http.StatusOK, `{"id":7,"claimNo":"CLM-0007","warrantyId":3}`},
	})
	h := newTestServer(t, backend.server.URL)

	rr := serve(h, httptest.NewRequest(http.MethodGet, "/ui-api/claims/7", nil))

	if !strings.Contains(rr.Body.String(), "CLM-0007") {
		t.Errorf("claim not rendered: %s", rr.Body.String())
	}

	rr = serve(h, httptest.NewRequest(http.MethodGet, "/ui-api/claims/8", nil))
	if !strings.Contains(rr.Body.String(), "could not be found") {
		t.Errorf("expected not found alert, got %s", rr.Body.String())
	}
}

func TestClaimDetailPageRejectsNonNumericID(t *testing.T) {
	backend := newStubBackend(t, nil)
	h := newTestServer(t, backend.server.URL)

	rr := serve(h, httptest.NewRequest(http.MethodGet, "/claims/abc", nil))
	if rr.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rr.Code)
	}
}

func TestUpdatePassword(t *testing.T) {
	tests := []struct {
		name         string
		form         url.Values
		route        backendRoute
		wantMessage  string
		wantAPICalls int
	}{
		{
			name:         "api rejects password",
			form:         url.Values{"new-password": {"abc"}, "confirm-password": {"abc"}},
			route:        backendRoute{http.StatusBadRequest, `{"message":"Password too short"}`},
			wantMessage:  "Password too short",
			wantAPICalls: 1,
		},
		{
			name:         "api error without message",
			form:         url.Values{"new-password": {"abc"}, "confirm-password": {"abc"}},
			route:        backendRoute{http.StatusInternalServerError, ``},
			wantMessage:  "Failed to update password",
			wantAPICalls: 1,
		},
		{
			name:         "success",
			form:         url.Values{"new-password": {"a-long-password"}, "confirm-password": {"a-long-password"}},
			route:        backendRoute{http.StatusOK, `{}`},
			wantMessage:  "Password updated successfully.",
			wantAPICalls: 1,
		},
		{
			name:         "passwords do not match",
			form:         url.Values{"new-password": {"abc"}, "confirm-password": {"abd"}},
			route:        backendRoute{http.StatusOK, `{}`},
			wantMessage:  "Passwords do not match.",
			wantAPICalls: 0,
		},
		{
			name:         "missing fields",
			form:         url.Values{"new-password": {"abc"}},
			route:        backendRoute{http.StatusOK, `{}`},
			wantMessage:  "Please fill in all fields.",
			wantAPICalls: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := newStubBackend(t, map[string]backendRoute{
				"PUT /api/v1/users/42/password": tt.route,
			})
			h := newTestServer(t, backend.server.URL)

			rr := serve(h, postForm("/ui-api/users/42/password", tt.form))

			if !strings.Contains(rr.Body.String(), tt.wantMessage) {
				t.Errorf("response %q does not contain %q", rr.Body.String(), tt.wantMessage)
			}
			calls := backend.recorded()
			if len(calls) != tt.wantAPICalls {
				t.Fatalf("api called %d times, want %d", len(calls), tt.wantAPICalls)
			}
			if tt.wantAPICalls > 0 && calls[0].body != `{"newPassword":"`+tt.form.Get("new-password")+`"}` {
				t.Errorf("api body = %s", calls[0].body)
			}
		})
	}
}

func TestClaimActions(t *testing.T) {
	backend := newStubBackend(t, map[string]backendRoute{
		"PUT /api/v1/claims/4/approval": {http.StatusOK, `{"id":4}`},
		"PUT /api/v1/claims/4/status":   {http.StatusBadRequest, `{"message":"Claim has open parts"}`},
	})
	h := newTestServer(t, backend.server.URL)

	rr := serve(h, postForm("/ui-api/claims/4/approval", url.Values{"approval-status": {"APPROVED"}}))
	if !strings.Contains(rr.Body.String(), "Claim approval updated.") {
		t.Errorf("approval response: %s", rr.Body.String())
	}

	rr = serve(h, postForm("/ui-api/claims/4/approval", url.Values{"approval-status": {"maybe"}}))
	if !strings.Contains(rr.Body.String(), "valid approval status") {
		t.Errorf("invalid approval response: %s", rr.Body.String())
	}

	rr = serve(h, postForm("/ui-api/claims/4/status", url.Values{"is-open": {"false"}}))
	if !strings.Contains(rr.Body.String(), "Claim has open parts") {
		t.Errorf("status response: %s", rr.Body.String())
	}

	if calls := backend.recorded(); len(calls) != 2 {
		t.Errorf("api called %d times, want 2", len(calls))
	}
}

func TestClaimPartActions(t *testing.T) {
	tests := []struct {
		name        string
		path        string
		form        url.Values
		wantMessage string
		wantBody    string
	}{
		{
			name:        "approve part",
			path:        "/ui-api/claim-warranty-parts/31/approval",
			form:        url.Values{"approval-status": {"REJECTED"}},
			wantMessage: "Part approval updated.",
			wantBody:    `{"approvalStatus":"REJECTED"}`,
		},
		{
			name:        "lowercase approval status",
			path:        "/ui-api/claim-warranty-parts/31/approval",
			form:        url.Values{"approval-status": {"rejected"}},
			wantMessage: "valid approval status",
		},
		{
			name:        "close part",
			path:        "/ui-api/claim-warranty-parts/31/status",
			form:        url.Values{"is-open": {"false"}},
			wantMessage: "Part closed.",
			wantBody:    `{"isOpen":false}`,
		},
		{
			name:        "reopen part",
			path:        "/ui-api/claim-warranty-parts/31/status",
			form:        url.Values{"is-open": {"true"}},
			wantMessage: "Part reopened.",
			wantBody:    `{"isOpen":true}`,
		},
		{
			name:        "missing is-open",
			path:        "/ui-api/claim-warranty-parts/31/status",
			form:        url.Values{},
			wantMessage: "Please choose whether the part is open.",
		},
		{
			name:        "non numeric part id",
			path:        "/ui-api/claim-warranty-parts/abc/status",
			form:        url.Values{"is-open": {"true"}},
			wantMessage: "Invalid claim part.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := newStubBackend(t, map[string]backendRoute{
				"PUT /api/v1/claims/claim-warranty-parts/31/approval": {http.StatusOK, `{"id":31}`},
				"PUT /api/v1/claims/claim-warranty-parts/31/status":   {http.StatusOK, `{"id":31}`},
			})
			h := newTestServer(t, backend.server.URL)

			rr := serve(h, postForm(tt.path, tt.form))

			if !strings.Contains(rr.Body.String(), tt.wantMessage) {
				t.Errorf("response %q does not contain %q", rr.Body.String(), tt.wantMessage)
			}
			calls := backend.recorded()
			if tt.wantBody == "" {
				if len(calls) != 0 {
					t.Errorf("api called %d times, want 0", len(calls))
				}
				return
			}
			if len(calls) != 1 || calls[0].body != tt.wantBody {
				t.Errorf("api calls = %+v, want one call with body %s", calls, tt.wantBody)
			}
		})
	}
}

func TestCreateClaim(t *testing.T) {
	valid := url.Values{
		"warranty-id":               {"12"},
		"claim-no":                  {"CLM-9"},
		"claim-date":                {"2025-03-01"},
		"part-id":                   {"", ""},
		"part-warranty-part-id":     {"5", ""},
		"part-damaged-image-url":    {"https://example.com/a.png", ""},
		"part-remarks":              {"", ""},
		"part-resolution-date":      {"", ""},
		"part-resolution-image-url": {"", ""},
	}

	t.Run("success redirects to the claims list", func(t *testing.T) {
		backend := newStubBackend(t, map[string]backendRoute{
			"POST /api/v1/claims": {http.StatusCreated, `{"id":9}`},
		})
		h := newTestServer(t, backend.server.URL)

		rr := serve(h, postForm("/ui-api/claims", valid))

		if rr.Code != http.StatusOK || rr.Header().Get("HX-Redirect") != "/claims" {
			t.Errorf("got %d HX-Redirect=%q, want 200 /claims", rr.Code, rr.Header().Get("HX-Redirect"))
		}
		want := `{"claim":{"warrantyId":12,"claimNo":"CLM-9","claimDate":"2025-03-01"},"parts":[{"warrantyPartId":5,"damagedImageUrl":"https://example.com/a.png"}]}`
		if calls := backend.recorded(); len(calls) != 1 || calls[0].body != want {
			t.Errorf("api calls = %+v, want one call with body %s", calls, want)
		}
	})

	t.Run("api error is shown", func(t *testing.T) {
		backend := newStubBackend(t, map[string]backendRoute{
			"POST /api/v1/claims": {http.StatusConflict, `{"message":"Claim number already exists"}`},
		})
		h := newTestServer(t, backend.server.URL)

		rr := serve(h, postForm("/ui-api/claims", valid))

		if rr.Header().Get("HX-Redirect") != "" || !strings.Contains(rr.Body.String(), "Claim number already exists") {
			t.Errorf("unexpected response %q", rr.Body.String())
		}
	})

	t.Run("invalid form is not sent", func(t *testing.T) {
		backend := newStubBackend(t, nil)
		h := newTestServer(t, backend.server.URL)

		form := url.Values{"warranty-id": {"12"}, "claim-no": {"CLM-9"}, "claim-date": {"01/03/2025"}}
		rr := serve(h, postForm("/ui-api/claims", form))

		if !strings.Contains(rr.Body.String(), "YYYY-MM-DD") {
			t.Errorf("unexpected response %q", rr.Body.String())
		}
		if len(backend.recorded()) != 0 {
			t.Error("api should not be called for an invalid form")
		}
	})
}

func TestUpdateClaim(t *testing.T) {
	backend := newStubBackend(t, map[string]backendRoute{
		"PUT /api/v1/claims/7": {http.StatusOK, `{"id":7}`},
	})
	h := newTestServer(t, backend.server.URL)

	form := url.Values{
		"warranty-id":               {"12"},
		"claim-no":                  {"CLM-7"},
		"claim-date":                {"2025-03-01"},
		"is-approved":               {"true"},
		"part-id":                   {"31"},
		"part-warranty-part-id":     {"5"},
		"part-damaged-image-url":    {"https://example.com/a.png"},
		"part-remarks":              {"cracked"},
		"part-resolution-date":      {"2025-03-10"},
		"part-resolution-image-url": {""},
	}
	rr := serve(h, postForm("/ui-api/claims/7", form))

	if !strings.Contains(rr.Body.String(), "Claim updated.") {
		t.Errorf("unexpected response %q", rr.Body.String())
	}
	want := `{"claim":{"id":7,"warrantyId":12,"claimNo":"CLM-7","claimDate":"2025-03-01","isApproved":true},` +
		`"parts":[{"id":31,"warrantyPartId":5,"damagedImageUrl":"https://example.com/a.png","remarks":"cracked","resolutionDate":"2025-03-10"}]}`
	if calls := backend.recorded(); len(calls) != 1 || calls[0].body != want {
		t.Errorf("api calls = %+v, want one call with body %s", calls, want)
	}
}

func TestClaimFormRoutes(t *testing.T) {
	backend := newStubBackend(t, map[string]backendRoute{
		"GET /api/v1/claims/7": {http.StatusOK, `{"id":7,"claimNo":"CLM-0007","warrantyId":3}`},
	})
	h := newTestServer(t, backend.server.URL)

	tests := []struct {
		path string
		want string
	}{
		{"/claims/new", `hx-post="/ui-api/claims"`},
		{"/claims/7/edit", `hx-get="/ui-api/claims/7/form"`},
		{"/ui-api/claims/7/form", `value="CLM-0007"`},
		{"/ui-api/claims/8/form", "could not be found"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rr := serve(h, httptest.NewRequest(http.MethodGet, tt.path, nil))
			if !strings.Contains(rr.Body.String(), tt.want) {
				t.Errorf("response %q does not contain %q", rr.Body.String(), tt.want)
			}
		})
	}
}

func TestCarPartOptions(t *testing.T) {
	backend := newStubBackend(t, nil)
	h := newTestServer(t, backend.server.URL)

	rr := serve(h, httptest.NewRequest(http.MethodGet, "/ui-api/car-parts?selected=FB", nil))

	if !strings.Contains(rr.Body.String(), `<option value="FB" selected>Front Bumper</option>`) {
		t.Errorf("unexpected options: %s", rr.Body.String())
	}
}

func TestHomeRedirect(t *testing.T) {
	backend := newStubBackend(t, nil)
	h := newTestServer(t, backend.server.URL)

	rr := serve(h, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusSeeOther || rr.Header().Get("Location") != "/claims" {
		t.Errorf("got %d %q, want 303 /claims", rr.Code, rr.Header().Get("Location"))
	}
}

func TestRateLimit(t *testing.T) {
	router := chi.NewRouter()
	router.Use(RateLimit(1, 2))
	router.Post("/test", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	for i := 0; i < 2; i++ {
		rr := serve(router, httptest.NewRequest(http.MethodPost, "/test", nil))
		if rr.Code != http.StatusOK {
			t.Errorf("request %d: status = %d, want 200", i+1, rr.Code)
		}
	}

	rr := serve(router, httptest.NewRequest(http.MethodPost, "/test", nil))
	if rr.Code != http.StatusTooManyRequests {
		t.Errorf("status = %d, want 429", rr.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/test", nil)
	req.Header.Set("HX-Request", "true")
	rr = serve(router, req)
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), "Too many requests") {
		t.Errorf("htmx request got %d %q, want 200 with alert", rr.Code, rr.Body.String())
	}
}

func TestMetricsEndpoint(t *testing.T) {
	backend := newStubBackend(t, map[string]backendRoute{
		"GET /api/v1/claims": {http.StatusOK, `[]`},
	})
	h := newTestServer(t, backend.server.URL)

	serve(h, httptest.NewRequest(http.MethodGet, "/ui-api/claims", nil))

	rr := serve(h, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}

	out := rr.Body.String()
	for _, want := range []string{
		`ewarranty_ui_http_requests_total{method="GET",route="/ui-api/claims",status="200"} 1`,
		`ewarranty_ui_api_calls_total{operation="get claims",status="200"} 1`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}
