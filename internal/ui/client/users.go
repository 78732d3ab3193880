package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/kokweikhong/profilm_ewarranty/ui/internal/ui/types"
)

type updatePasswordRequest struct {
	NewPassword string `json:"newPassword"`
}

// UpdatePassword sets a new password for the user.
//
// The response body is ignored: any 2xx status is a success.
// On failure the message supplied by the api is returned, or "Failed to update password" when there is none.
func (c *Client) UpdatePassword(ctx context.Context, userID int64, newPassword string) types.OperationResult {
	path := fmt.Sprintf("/users/%d/password", userID)

	result := c.action(ctx, http.MethodPut, path, updatePasswordRequest{NewPassword: newPassword},
		"updating password", "Failed to update password")

	return types.OperationResult{Success: result.Success, Error: result.Error}
}
