package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// ErrorKind tells the caller what sort of failure occurred without having to inspect status codes
type ErrorKind string

const (
	// KindConnection - the backend could not be reached (dns, refused, timeout, cancelled)
	KindConnection ErrorKind = "connection"
	// KindAPI - the backend responded with a non-2xx status
	KindAPI ErrorKind = "api"
	// KindInternal - the request could not be built or the response could not be decoded
	KindInternal ErrorKind = "internal"
)

const (
	// maxErrorBody limits how much of an error response is read when looking for the server message
	maxErrorBody = 1 << 20
	// maxErrorPayload limits how much of an error response body is kept for logging
	maxErrorPayload = 4096
)

// ClientError represents an error encountered when communicating with the e-warranty API
// StatusCode 0 = network/connection or internal error, >0 = HTTP response received
type ClientError struct {
	Kind          ErrorKind `json:"kind"`
	StatusCode    int       `json:"status_code"`
	UserMessage   string    `json:"user_message"`
	ServerMessage string    `json:"server_message,omitempty"`
	Payload       string    `json:"payload,omitempty"`
	LogMessage    string    `json:"log_message"`

	err error
}

func (e *ClientError) Error() string {
	return e.LogMessage
}

func (e *ClientError) Unwrap() error {
	return e.err
}

// UserError returns the user-friendly message
func (e *ClientError) UserError() string {
	return e.UserMessage
}

// AsClientError returns the ClientError in err's chain, if any
func AsClientError(err error) (*ClientError, bool) {
	var ce *ClientError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// NewClientConnectionError creates a ClientError for network/connection issues
func NewClientConnectionError(err error) *ClientError {
	return &ClientError{
		Kind:        KindConnection,
		StatusCode:  0,
		UserMessage: "Unable to connect. Please check your internet connection and try again.",
		LogMessage:  fmt.Sprintf("network error: %v", err),
		err:         err,
	}
}

// NewClientInternalError creates a ClientError for internal errors, supply the error and an explanation of what was being done when the error occurred
func NewClientInternalError(err error, while string) *ClientError {
	return &ClientError{
		Kind:        KindInternal,
		StatusCode:  0,
		UserMessage: "An error occurred. Please try again later.",
		LogMessage:  fmt.Sprintf("internal error: %v while %v", err, while),
		err:         err,
	}
}

// NewClientApiError creates a ClientError from a non-2xx HTTP response sent by the e-warranty API.
//
// When the body is a json object with a message field the message is used as the ServerMessage.
// The body is kept for logging, truncated to maxErrorPayload bytes.
func NewClientApiError(res *http.Response) *ClientError {
	var body []byte
	if res.Body != nil {
		body, _ = io.ReadAll(io.LimitReader(res.Body, maxErrorBody))
	}

	var serverErr struct {
		Message string `json:"message"`
	}
	_ = json.Unmarshal(body, &serverErr)

	payload := body
	if len(payload) > maxErrorPayload {
		payload = payload[:maxErrorPayload]
	}

	var userMsg string
	switch res.StatusCode {
	case http.StatusUnauthorized:
		userMsg = "Your session has expired. Please log in again."
	case http.StatusForbidden:
		userMsg = "You don't have permission to access this resource."
	case http.StatusNotFound:
		userMsg = "The requested item could not be found."
	case http.StatusBadRequest:
		// Use server message for validation errors if available
		if serverErr.Message != "" {
			userMsg = serverErr.Message
		} else {
			userMsg = "Invalid request. Please check your input and try again."
		}
	case http.StatusTooManyRequests:
		userMsg = "Too many requests. Please try again in a few moments."
	case http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable:
		userMsg = "The service is temporarily unavailable. Please try again later."
	default:
		userMsg = "An error occurred. Please try again."
	}

	logMsg := fmt.Sprintf("e-warranty api status %d", res.StatusCode)
	if serverErr.Message != "" {
		logMsg += fmt.Sprintf(" - %s", serverErr.Message)
	}

	return &ClientError{
		Kind:          KindAPI,
		StatusCode:    res.StatusCode,
		UserMessage:   userMsg,
		ServerMessage: serverErr.Message,
		Payload:       string(payload),
		LogMessage:    logMsg,
	}
}
