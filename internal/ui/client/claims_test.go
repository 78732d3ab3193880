package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/kokweikhong/profilm_ewarranty/ui/internal/ui/types"
)

func TestGetClaims(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantIDs []int64
	}{
		{
			name:    "order is preserved",
			body:    `[{"id":3,"claimNo":"C-3"},{"id":1,"claimNo":"C-1"},{"id":2,"claimNo":"C-2"}]`,
			wantIDs: []int64{3, 1, 2},
		},
		{
			name:    "empty list",
			body:    `[]`,
			wantIDs: []int64{},
		},
		{
			name:    "null list",
			body:    `null`,
			wantIDs: []int64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, recorded := newTestBackend(t, http.StatusOK, tt.body)

			claims, err := c.GetClaims(t.Context())
			if err != nil {
				t.Fatalf("GetClaims() error = %v", err)
			}

			if recorded.Method != http.MethodGet || recorded.Path != "/api/v1/claims" {
				t.Errorf("request = %s %s, want GET /api/v1/claims", recorded.Method, recorded.Path)
			}

			if claims == nil {
				t.Fatal("GetClaims() returned nil slice")
			}
			if len(claims) != len(tt.wantIDs) {
				t.Fatalf("got %d claims, want %d", len(claims), len(tt.wantIDs))
			}
			for i, id := range tt.wantIDs {
				if claims[i].ID != id {
					t.Errorf("claim %d: id = %d, want %d", i, claims[i].ID, id)
				}
			}
		})
	}
}

func TestGetClaimByID(t *testing.T) {
	body := `{"id":7,"warrantyId":2,"claimNo":"CLM-7","claimDate":"2025-03-01","isApproved":false,"remarks":"cracked"}`
	c, recorded := newTestBackend(t, http.StatusOK, body)

	claim, err := c.GetClaimByID(t.Context(), 7)
	if err != nil {
		t.Fatalf("GetClaimByID() error = %v", err)
	}

	if recorded.Path != "/api/v1/claims/7" {
		t.Errorf("path = %q, want /api/v1/claims/7", recorded.Path)
	}

	if claim.ID != 7 || claim.ClaimNo != "CLM-7" {
		t.Errorf("unexpected claim %+v", claim)
	}

	// the claim is returned exactly as the api sent it
	out, err := json.Marshal(claim)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != body {
		t.Errorf("got %s, want %s", out, body)
	}
}

func TestGetClaimByIDInterpolatesID(t *testing.T) {
	for _, id := range []int64{0, 1, 42, 9007199254740991} {
		c, recorded := newTestBackend(t, http.StatusOK, `{"id":1}`)
		if _, err := c.GetClaimByID(t.Context(), id); err != nil {
			t.Fatalf("GetClaimByID(%d) error = %v", id, err)
		}
		want := "/api/v1/claims/" + jsonNumber(id)
		if recorded.Path != want {
			t.Errorf("path = %q, want %q", recorded.Path, want)
		}
	}
}

func jsonNumber(n int64) string {
	b, _ := json.Marshal(n)
	return string(b)
}

func TestGetClaimsErrors(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantKind   ErrorKind
		wantStatus int
	}{
		{"server error", http.StatusInternalServerError, `{"message":"db down"}`, KindAPI, http.StatusInternalServerError},
		{"unauthorized", http.StatusUnauthorized, ``, KindAPI, http.StatusUnauthorized},
		{"malformed body", http.StatusOK, `{"id":`, KindInternal, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestBackend(t, tt.status, tt.body)

			claims, err := c.GetClaims(t.Context())
			if err == nil {
				t.Fatalf("GetClaims() = %v, want error", claims)
			}

			ce, ok := AsClientError(err)
			if !ok {
				t.Fatalf("error %T is not a *ClientError", err)
			}
			if ce.Kind != tt.wantKind {
				t.Errorf("kind = %q, want %q", ce.Kind, tt.wantKind)
			}
			if ce.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", ce.StatusCode, tt.wantStatus)
			}
		})
	}
}

func TestGetClaimByIDNotFound(t *testing.T) {
	c, _ := newTestBackend(t, http.StatusNotFound, `{"message":"claim not found"}`)

	_, err := c.GetClaimByID(t.Context(), 999)
	ce, ok := AsClientError(err)
	if !ok {
		t.Fatalf("expected *ClientError, got %v", err)
	}
	if ce.ServerMessage != "claim not found" {
		t.Errorf("ServerMessage = %q, want %q", ce.ServerMessage, "claim not found")
	}
	if ce.UserError() != "The requested item could not be found." {
		t.Errorf("UserError() = %q", ce.UserError())
	}
}

func TestGetClaimByIDNullBody(t *testing.T) {
	c, _ := newTestBackend(t, http.StatusOK, `null`)

	claim, err := c.GetClaimByID(t.Context(), 5)
	if claim != nil {
		t.Errorf("GetClaimByID() = %+v, want nil claim", claim)
	}
	ce, ok := AsClientError(err)
	if !ok {
		t.Fatalf("expected *ClientError, got %v", err)
	}
	if ce.Kind != KindInternal {
		t.Errorf("kind = %q, want %q", ce.Kind, KindInternal)
	}
}

func TestGetClaimsConnectionError(t *testing.T) {
	c := newUnreachableClient(t)

	_, err := c.GetClaims(t.Context())
	ce, ok := AsClientError(err)
	if !ok {
		t.Fatalf("expected *ClientError, got %v", err)
	}
	if ce.Kind != KindConnection {
		t.Errorf("kind = %q, want %q", ce.Kind, KindConnection)
	}
}

func TestGetClaimsCancelled(t *testing.T) {
	c, _ := newTestBackend(t, http.StatusOK, `[]`)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := c.GetClaims(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled in chain", err)
	}
}

func TestAccessTokenForwarded(t *testing.T) {
	c, recorded := newTestBackend(t, http.StatusOK, `[]`)

	if _, err := c.GetClaims(ContextWithAccessToken(t.Context(), "token123")); err != nil {
		t.Fatalf("GetClaims() error = %v", err)
	}
	if recorded.Authorization != "Bearer token123" {
		t.Errorf("Authorization = %q, want %q", recorded.Authorization, "Bearer token123")
	}

	if _, err := c.GetClaims(t.Context()); err != nil {
		t.Fatalf("GetClaims() error = %v", err)
	}
	if recorded.Authorization != "" {
		t.Errorf("Authorization = %q, want none", recorded.Authorization)
	}
}

func TestClaimActions(t *testing.T) {
	remarks := "scratched"

	tests := []struct {
		name       string
		call       func(c *Client) types.OperationResult
		wantMethod string
		wantPath   string
		wantBody   string
	}{
		{
			name: "create claim",
			call: func(c *Client) types.OperationResult {
				return c.CreateClaim(t.Context(), types.CreateClaimWithPartsRequest{
					Claim: types.CreateClaimRequest{WarrantyID: 3, ClaimNo: "CLM-1", ClaimDate: "2025-01-02"},
					Parts: []types.ClaimWarrantyPart{{WarrantyPartID: 5, DamagedImageURL: "https://img/1.png", Remarks: &remarks}},
				})
			},
			wantMethod: http.MethodPost,
			wantPath:   "/api/v1/claims",
			wantBody:   `{"claim":{"warrantyId":3,"claimNo":"CLM-1","claimDate":"2025-01-02"},"parts":[{"warrantyPartId":5,"damagedImageUrl":"https://img/1.png","remarks":"scratched"}]}`,
		},
		{
			name: "update claim",
			call: func(c *Client) types.OperationResult {
				return c.UpdateClaim(t.Context(), types.UpdateClaimWithPartsRequest{
					Claim: types.UpdateClaimRequest{ID: 9, WarrantyID: 3, ClaimNo: "CLM-9", ClaimDate: "2025-01-02"},
				})
			},
			wantMethod: http.MethodPut,
			wantPath:   "/api/v1/claims/9",
			wantBody:   `{"claim":{"id":9,"warrantyId":3,"claimNo":"CLM-9","claimDate":"2025-01-02","isApproved":false},"parts":null}`,
		},
		{
			name: "claim approval",
			call: func(c *Client) types.OperationResult {
				return c.UpdateClaimApproval(t.Context(), 4, "APPROVED")
			},
			wantMethod: http.MethodPut,
			wantPath:   "/api/v1/claims/4/approval",
			wantBody:   `{"approvalStatus":"APPROVED"}`,
		},
		{
			name: "claim status",
			call: func(c *Client) types.OperationResult {
				return c.UpdateClaimStatus(t.Context(), 4, false)
			},
			wantMethod: http.MethodPut,
			wantPath:   "/api/v1/claims/4/status",
			wantBody:   `{"isOpen":false}`,
		},
		{
			name: "part approval",
			call: func(c *Client) types.OperationResult {
				return c.UpdateClaimWarrantyPartApproval(t.Context(), 11, "REJECTED")
			},
			wantMethod: http.MethodPut,
			wantPath:   "/api/v1/claims/claim-warranty-parts/11/approval",
			wantBody:   `{"approvalStatus":"REJECTED"}`,
		},
		{
			name: "part status",
			call: func(c *Client) types.OperationResult {
				return c.UpdateClaimWarrantyPartStatus(t.Context(), 11, true)
			},
			wantMethod: http.MethodPut,
			wantPath:   "/api/v1/claims/claim-warranty-parts/11/status",
			wantBody:   `{"isOpen":true}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, recorded := newTestBackend(t, http.StatusOK, `{"id":1}`)

			result := tt.call(c)
			if !result.Success {
				t.Fatalf("result = %+v, want success", result)
			}
			if string(result.Data) != `{"id":1}` {
				t.Errorf("Data = %s, want {\"id\":1}", result.Data)
			}
			if recorded.Method != tt.wantMethod || recorded.Path != tt.wantPath {
				t.Errorf("request = %s %s, want %s %s", recorded.Method, recorded.Path, tt.wantMethod, tt.wantPath)
			}
			if recorded.Body != tt.wantBody {
				t.Errorf("body = %s, want %s", recorded.Body, tt.wantBody)
			}
			if recorded.ContentType != "application/json" {
				t.Errorf("Content-Type = %q, want application/json", recorded.ContentType)
			}
		})
	}
}

func TestClaimActionFallbackMessages(t *testing.T) {
	c, _ := newTestBackend(t, http.StatusInternalServerError, ``)

	tests := []struct {
		name   string
		result types.OperationResult
		want   string
	}{
		{"create", c.CreateClaim(t.Context(), types.CreateClaimWithPartsRequest{}), "Failed to create claim"},
		{"update", c.UpdateClaim(t.Context(), types.UpdateClaimWithPartsRequest{}), "Failed to update claim"},
		{"approval", c.UpdateClaimApproval(t.Context(), 1, "APPROVED"), "Failed to update claim approval"},
		{"status", c.UpdateClaimStatus(t.Context(), 1, true), "Failed to update claim status"},
		{"part approval", c.UpdateClaimWarrantyPartApproval(t.Context(), 1, "APPROVED"), "Failed to update claim warranty part approval"},
		{"part status", c.UpdateClaimWarrantyPartStatus(t.Context(), 1, true), "Failed to update claim warranty part status"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.result.Success {
				t.Fatal("expected failure")
			}
			if tt.result.Error != tt.want {
				t.Errorf("Error = %q, want %q", tt.result.Error, tt.want)
			}
		})
	}
}
