package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"github.com/kokweikhong/profilm_ewarranty/ui/internal/logger"
	"github.com/kokweikhong/profilm_ewarranty/ui/internal/ui/client"
	"github.com/kokweikhong/profilm_ewarranty/ui/internal/ui/config"
	"github.com/kokweikhong/profilm_ewarranty/ui/internal/ui/templates"
)

// render writes the component and logs (but otherwise ignores) render failures - the response has already started
func (h *HandlerService) render(w http.ResponseWriter, r *http.Request, component templ.Component, name string) {
	if err := component.Render(r.Context(), w); err != nil {
		reqLogger := logger.ContextRequestLogger(r.Context())
		reqLogger.Error("Failed to render "+name, slog.String("error", err.Error()))
	}
}

// renderErrorAlert logs logMsg and shows userMsg to the user
func (h *HandlerService) renderErrorAlert(w http.ResponseWriter, r *http.Request, userMsg, logMsg string) {
	reqLogger := logger.ContextRequestLogger(r.Context())
	reqLogger.Error(logMsg)

	h.render(w, r, templates.ErrorAlert(userMsg), "ErrorAlert")
}

// renderClientError renders the user facing message of an error returned by the api client
func (h *HandlerService) renderClientError(w http.ResponseWriter, r *http.Request, err error, while string) {
	msg := "An error occurred. Please try again."
	if ce, ok := client.AsClientError(err); ok {
		msg = ce.UserError()
	}
	h.renderErrorAlert(w, r, msg, "Failed "+while+": "+err.Error())
}

// apiContext returns the request context carrying the caller's access token (if any) so it is forwarded to the api
func (h *HandlerService) apiContext(r *http.Request) context.Context {
	cookie, err := r.Cookie(config.AccessTokenCookieName)
	if err != nil {
		return r.Context()
	}
	return client.ContextWithAccessToken(r.Context(), cookie.Value)
}

// idParam parses a positive numeric url parameter. Only the format is checked - the api decides whether the id exists.
func idParam(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

// isOpenValue reads the "is-open" form field submitted by the open/close buttons
func isOpenValue(r *http.Request) (isOpen bool, ok bool) {
	switch r.FormValue("is-open") {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	return false, false
}
