package handlers

import (
	"log/slog"
	"net/http"

	"github.com/kokweikhong/profilm_ewarranty/ui/internal/logger"
	"github.com/kokweikhong/profilm_ewarranty/ui/internal/ui/templates"
)

func (h *HandlerService) ChangePasswordPage(w http.ResponseWriter, r *http.Request) {
	userID, ok := idParam(r, "userID")
	if !ok {
		http.NotFound(w, r)
		return
	}

	h.render(w, r, templates.ChangePasswordPage(userID), "ChangePasswordPage")
}

// UpdatePassword changes the user's password.
// The api's own message is shown when the update is rejected (e.g the password is too short)
func (h *HandlerService) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := idParam(r, "userID")
	if !ok {
		h.renderErrorAlert(w, r, "Invalid user.", "invalid user id in url")
		return
	}

	newPassword := r.FormValue("new-password")
	confirmPassword := r.FormValue("confirm-password")

	if newPassword == "" || confirmPassword == "" {
		h.render(w, r, templates.ErrorAlert("Please fill in all fields."), "ErrorAlert")
		return
	}

	if newPassword != confirmPassword {
		h.render(w, r, templates.ErrorAlert("Passwords do not match."), "ErrorAlert")
		return
	}

	_ = logger.ContextWithLogAttrs(r.Context(), slog.Int64("user_id", userID))

	result := h.ApiClient.UpdatePassword(h.apiContext(r), userID, newPassword)
	if !result.Success {
		h.render(w, r, templates.ErrorAlert(result.Error), "ErrorAlert")
		return
	}

	h.render(w, r, templates.SuccessAlert("Password updated successfully."), "SuccessAlert")
}
