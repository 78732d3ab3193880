package client

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"

	"github.com/kokweikhong/profilm_ewarranty/ui/internal/logger"
	"github.com/kokweikhong/profilm_ewarranty/ui/internal/ui/types"
)

// action performs a mutating request and reports the outcome as an OperationResult.
//
// Failures are logged with the response status and payload and converted to a failed result: the message is the
// api's "message" field when present, otherwise fallback. A successful result carries the response body as Data when it is json.
func (c *Client) action(ctx context.Context, method, path string, body any, while, fallback string) types.OperationResult {
	res, err := c.send(ctx, method, path, body, while)
	if err != nil {
		return actionFailed(ctx, err, while, fallback)
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil || len(data) == 0 || !json.Valid(data) {
		return types.Succeeded(nil)
	}
	return types.Succeeded(data)
}

func actionFailed(ctx context.Context, err error, while, fallback string) types.OperationResult {
	reqLogger := logger.ContextRequestLogger(ctx)

	ce, ok := AsClientError(err)
	if !ok {
		reqLogger.Error("Error "+while, slog.String("error", err.Error()))
		return types.Failed(fallback)
	}

	reqLogger.Error("Error "+while,
		slog.String("kind", string(ce.Kind)),
		slog.Int("status", ce.StatusCode),
		slog.String("payload", ce.Payload),
		slog.String("error", ce.LogMessage),
	)

	if ce.ServerMessage != "" {
		return types.Failed(ce.ServerMessage)
	}
	return types.Failed(fallback)
}
