package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/kokweikhong/profilm_ewarranty/ui/internal/ui/types"
)

var errNullClaim = errors.New("response body is null")

// GetClaims returns the claims in the order the api sent them. An empty list is returned as an empty (non nil) slice.
func (c *Client) GetClaims(ctx context.Context) ([]types.Claim, error) {
	res, err := c.send(ctx, http.MethodGet, "/claims", nil, "get claims")
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	var claims []types.Claim
	if err := json.NewDecoder(res.Body).Decode(&claims); err != nil {
		return nil, NewClientInternalError(err, "decoding get claims response")
	}

	if claims == nil {
		claims = []types.Claim{}
	}
	return claims, nil
}

// GetClaimByID returns a single claim. The id is not validated locally - the api rejects ids it does not recognise.
// A null response body is reported as an internal error rather than returned as an empty claim.
func (c *Client) GetClaimByID(ctx context.Context, id int64) (*types.Claim, error) {
	res, err := c.send(ctx, http.MethodGet, fmt.Sprintf("/claims/%d", id), nil, "get claim")
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	var claim types.Claim
	if err := json.NewDecoder(res.Body).Decode(&claim); err != nil {
		return nil, NewClientInternalError(err, "decoding get claim response")
	}
	if string(claim.Raw) == "null" {
		return nil, NewClientInternalError(errNullClaim, "decoding get claim response")
	}

	return &claim, nil
}

// CreateClaim creates a claim along with its damaged warranty parts
func (c *Client) CreateClaim(ctx context.Context, req types.CreateClaimWithPartsRequest) types.OperationResult {
	return c.action(ctx, http.MethodPost, "/claims", req, "creating claim", "Failed to create claim")
}

// UpdateClaim replaces a claim and its warranty parts
func (c *Client) UpdateClaim(ctx context.Context, req types.UpdateClaimWithPartsRequest) types.OperationResult {
	path := fmt.Sprintf("/claims/%d", req.Claim.ID)
	return c.action(ctx, http.MethodPut, path, req, "updating claim", "Failed to update claim")
}

type approvalRequest struct {
	ApprovalStatus string `json:"approvalStatus"`
}

type statusRequest struct {
	IsOpen bool `json:"isOpen"`
}

func (c *Client) UpdateClaimApproval(ctx context.Context, claimID int64, approvalStatus string) types.OperationResult {
	path := fmt.Sprintf("/claims/%d/approval", claimID)
	return c.action(ctx, http.MethodPut, path, approvalRequest{ApprovalStatus: approvalStatus},
		"updating claim approval", "Failed to update claim approval")
}

// UpdateClaimStatus opens or closes a claim
func (c *Client) UpdateClaimStatus(ctx context.Context, claimID int64, isOpen bool) types.OperationResult {
	path := fmt.Sprintf("/claims/%d/status", claimID)
	return c.action(ctx, http.MethodPut, path, statusRequest{IsOpen: isOpen},
		"updating claim status", "Failed to update claim status")
}

func (c *Client) UpdateClaimWarrantyPartApproval(ctx context.Context, partID int64, approvalStatus string) types.OperationResult {
	path := fmt.Sprintf("/claims/claim-warranty-parts/%d/approval", partID)
	return c.action(ctx, http.MethodPut, path, approvalRequest{ApprovalStatus: approvalStatus},
		"updating claim warranty part approval", "Failed to update claim warranty part approval")
}

func (c *Client) UpdateClaimWarrantyPartStatus(ctx context.Context, partID int64, isOpen bool) types.OperationResult {
	path := fmt.Sprintf("/claims/claim-warranty-parts/%d/status", partID)
	return c.action(ctx, http.MethodPut, path, statusRequest{IsOpen: isOpen},
		"updating claim warranty part status", "Failed to update claim warranty part status")
}
