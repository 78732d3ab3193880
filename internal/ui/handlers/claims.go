package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/kokweikhong/profilm_ewarranty/ui/internal/logger"
	"github.com/kokweikhong/profilm_ewarranty/ui/internal/ui/templates"
	"github.com/kokweikhong/profilm_ewarranty/ui/internal/ui/types"
)

// ClaimsPage renders the claims page. The page only contains a placeholder - the table is fetched separately by RenderClaimsTable
func (h *HandlerService) ClaimsPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, templates.ClaimsPage(), "ClaimsPage")
}

// RenderClaimsTable fetches the claims from the api and renders them in the order received
func (h *HandlerService) RenderClaimsTable(w http.ResponseWriter, r *http.Request) {
	claims, err := h.ApiClient.GetClaims(h.apiContext(r))
	if err != nil {
		h.renderClientError(w, r, err, "to get claims")
		return
	}

	_ = logger.ContextWithLogAttrs(r.Context(), slog.Int("claims_returned", len(claims)))

	h.render(w, r, templates.ClaimsTable(claims), "ClaimsTable")
}

func (h *HandlerService) ClaimDetailPage(w http.ResponseWriter, r *http.Request) {
	claimID, ok := idParam(r, "claimID")
	if !ok {
		http.NotFound(w, r)
		return
	}

	h.render(w, r, templates.ClaimDetailPage(claimID), "ClaimDetailPage")
}

func (h *HandlerService) RenderClaimDetail(w http.ResponseWriter, r *http.Request) {
	claimID, ok := idParam(r, "claimID")
	if !ok {
		h.renderErrorAlert(w, r, "Invalid claim.", "invalid claim id in url")
		return
	}

	_ = logger.ContextWithLogAttrs(r.Context(), slog.Int64("claim_id", claimID))

	claim, err := h.ApiClient.GetClaimByID(h.apiContext(r), claimID)
	if err != nil {
		h.renderClientError(w, r, err, fmt.Sprintf("to get claim %d", claimID))
		return
	}

	h.render(w, r, templates.ClaimDetail(claim, h.ImagePatterns), "ClaimDetail")
}

// UpdateClaimApproval sets the approval status submitted in the "approval-status" form field
func (h *HandlerService) UpdateClaimApproval(w http.ResponseWriter, r *http.Request) {
	claimID, ok := idParam(r, "claimID")
	if !ok {
		h.renderErrorAlert(w, r, "Invalid claim.", "invalid claim id in url")
		return
	}

	approvalStatus := r.FormValue("approval-status")
	if !types.IsValidApprovalStatus(approvalStatus) {
		h.renderErrorAlert(w, r, "Please select a valid approval status.", fmt.Sprintf("invalid approval status %q", approvalStatus))
		return
	}

	_ = logger.ContextWithLogAttrs(r.Context(), slog.Int64("claim_id", claimID))

	result := h.ApiClient.UpdateClaimApproval(h.apiContext(r), claimID, approvalStatus)
	if !result.Success {
		h.render(w, r, templates.ErrorAlert(result.Error), "ErrorAlert")
		return
	}

	h.render(w, r, templates.SuccessAlert("Claim approval updated."), "SuccessAlert")
}

// UpdateClaimStatus opens or closes a claim depending on the "is-open" form field
func (h *HandlerService) UpdateClaimStatus(w http.ResponseWriter, r *http.Request) {
	claimID, ok := idParam(r, "claimID")
	if !ok {
		h.renderErrorAlert(w, r, "Invalid claim.", "invalid claim id in url")
		return
	}

	isOpen, ok := isOpenValue(r)
	if !ok {
		h.renderErrorAlert(w, r, "Please choose whether the claim is open.", "missing or invalid is-open form value")
		return
	}

	_ = logger.ContextWithLogAttrs(r.Context(), slog.Int64("claim_id", claimID))

	result := h.ApiClient.UpdateClaimStatus(h.apiContext(r), claimID, isOpen)
	if !result.Success {
		h.render(w, r, templates.ErrorAlert(result.Error), "ErrorAlert")
		return
	}

	msg := "Claim closed."
	if isOpen {
		msg = "Claim reopened."
	}
	h.render(w, r, templates.SuccessAlert(msg), "SuccessAlert")
}

// UpdateClaimPartApproval sets the approval status of a single claimed part
func (h *HandlerService) UpdateClaimPartApproval(w http.ResponseWriter, r *http.Request) {
	partID, ok := idParam(r, "partID")
	if !ok {
		h.renderErrorAlert(w, r, "Invalid claim part.", "invalid part id in url")
		return
	}

	approvalStatus := r.FormValue("approval-status")
	if !types.IsValidApprovalStatus(approvalStatus) {
		h.renderErrorAlert(w, r, "Please select a valid approval status.", fmt.Sprintf("invalid approval status %q", approvalStatus))
		return
	}

	_ = logger.ContextWithLogAttrs(r.Context(), slog.Int64("claim_warranty_part_id", partID))

	result := h.ApiClient.UpdateClaimWarrantyPartApproval(h.apiContext(r), partID, approvalStatus)
	if !result.Success {
		h.render(w, r, templates.ErrorAlert(result.Error), "ErrorAlert")
		return
	}

	h.render(w, r, templates.SuccessAlert("Part approval updated."), "SuccessAlert")
}

func (h *HandlerService) UpdateClaimPartStatus(w http.ResponseWriter, r *http.Request) {
	partID, ok := idParam(r, "partID")
	if !ok {
		h.renderErrorAlert(w, r, "Invalid claim part.", "invalid part id in url")
		return
	}

	isOpen, ok := isOpenValue(r)
	if !ok {
		h.renderErrorAlert(w, r, "Please choose whether the part is open.", "missing or invalid is-open form value")
		return
	}

	_ = logger.ContextWithLogAttrs(r.Context(), slog.Int64("claim_warranty_part_id", partID))

	result := h.ApiClient.UpdateClaimWarrantyPartStatus(h.apiContext(r), partID, isOpen)
	if !result.Success {
		h.render(w, r, templates.ErrorAlert(result.Error), "ErrorAlert")
		return
	}

	msg := "Part closed."
	if isOpen {
		msg = "Part reopened."
	}
	h.render(w, r, templates.SuccessAlert(msg), "SuccessAlert")
}
