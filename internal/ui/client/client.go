// the client package is used by the ui handlers to call the e-warranty backend API.
//
// Each method performs exactly one request; there is no retry, caching or batching.
// Read methods return a *ClientError on failure and leave it to the caller to decide how to render it.
// Mutating actions never return an error - failures are logged and reported as a types.OperationResult carrying a displayable message (see actions.go)
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/kokweikhong/profilm_ewarranty/ui/internal/ui/endpoint"
)

// CallObserver is notified after every api call. status is 0 when no response was received.
type CallObserver interface {
	ObserveAPICall(operation string, status int, duration time.Duration)
}

// Client handles communication with the e-warranty API
type Client struct {
	resolver   *endpoint.Resolver
	httpClient *http.Client
	observer   CallObserver
}

// NewClient creates a client that sends requests to the api base supplied by resolver.
// A zero timeout means requests are only bounded by their context.
func NewClient(resolver *endpoint.Resolver, timeout time.Duration) *Client {
	return &Client{
		resolver: resolver,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// SetCallObserver registers o to be told about each api call (used for metrics)
func (c *Client) SetCallObserver(o CallObserver) {
	c.observer = o
}

// BaseURL returns the api base the next request will be sent to
func (c *Client) BaseURL() string {
	return c.resolver.Base()
}

// context keys
type contextKey struct {
	name string
}

var accessTokenKey = contextKey{"access_token"}

// ContextWithAccessToken attaches the caller's access token. Requests made with the returned context carry it as a bearer token.
func ContextWithAccessToken(ctx context.Context, accessToken string) context.Context {
	return context.WithValue(ctx, accessTokenKey, accessToken)
}

func ContextAccessToken(ctx context.Context) (string, bool) {
	accessToken, ok := ctx.Value(accessTokenKey).(string)
	return accessToken, ok && accessToken != ""
}

// send issues a single request to the api and returns the response when the status is 2xx.
// the caller must close the response body.
func (c *Client) send(ctx context.Context, method, path string, body any, while string) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, NewClientInternalError(err, fmt.Sprintf("marshaling %s request", while))
		}
		reader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.resolver.URL(path), reader)
	if err != nil {
		return nil, NewClientInternalError(err, fmt.Sprintf("creating %s request", while))
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if accessToken, ok := ContextAccessToken(ctx); ok {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", accessToken))
	}

	start := time.Now()
	res, err := c.httpClient.Do(req)
	if c.observer != nil {
		status := 0
		if res != nil {
			status = res.StatusCode
		}
		c.observer.ObserveAPICall(while, status, time.Since(start))
	}
	if err != nil {
		return nil, NewClientConnectionError(err)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		defer res.Body.Close()
		return nil, NewClientApiError(res)
	}

	return res, nil
}
