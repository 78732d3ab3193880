package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/kokweikhong/profilm_ewarranty/ui/internal/logger"
	"github.com/kokweikhong/profilm_ewarranty/ui/internal/ui/templates"
	"github.com/kokweikhong/profilm_ewarranty/ui/internal/ui/types"
)

// claimForm holds the validated values submitted by templates.ClaimForm
type claimForm struct {
	WarrantyID int64
	ClaimNo    string
	ClaimDate  string
	IsApproved bool
	Parts      []types.ClaimWarrantyPart
}

// part rows are submitted as parallel lists, one entry per row
const (
	partIDField                 = "part-id"
	partWarrantyPartIDField     = "part-warranty-part-id"
	partDamagedImageURLField    = "part-damaged-image-url"
	partRemarksField            = "part-remarks"
	partResolutionDateField     = "part-resolution-date"
	partResolutionImageURLField = "part-resolution-image-url"
)

// parseClaimForm validates the claim form. On failure the returned message can be shown to the user as-is.
func parseClaimForm(r *http.Request) (claimForm, string) {
	var form claimForm

	if err := r.ParseForm(); err != nil {
		return form, "Invalid form submission."
	}

	warrantyID, err := strconv.ParseInt(strings.TrimSpace(r.PostFormValue("warranty-id")), 10, 64)
	if err != nil || warrantyID < 1 {
		return form, "Please enter a valid warranty id."
	}
	form.WarrantyID = warrantyID

	form.ClaimNo = strings.TrimSpace(r.PostFormValue("claim-no"))
	if form.ClaimNo == "" {
		return form, "Please enter the claim number."
	}

	form.ClaimDate = strings.TrimSpace(r.PostFormValue("claim-date"))
	if !isDate(form.ClaimDate) {
		return form, "Please enter the claim date as YYYY-MM-DD."
	}

	form.IsApproved = r.PostFormValue("is-approved") == "true"

	rows := len(r.PostForm[partWarrantyPartIDField])
	for _, field := range []string{partIDField, partDamagedImageURLField, partRemarksField, partResolutionDateField, partResolutionImageURLField} {
		if len(r.PostForm[field]) != rows {
			return form, "Invalid claim parts."
		}
	}

	for i := 0; i < rows; i++ {
		row := func(field string) string {
			return strings.TrimSpace(r.PostForm[field][i])
		}

		if row(partWarrantyPartIDField) == "" && row(partDamagedImageURLField) == "" {
			continue
		}

		var part types.ClaimWarrantyPart

		if id := row(partIDField); id != "" {
			partID, err := strconv.ParseInt(id, 10, 64)
			if err != nil || partID < 1 {
				return form, "Invalid claim parts."
			}
			part.ID = partID
		}

		warrantyPartID, err := strconv.ParseInt(row(partWarrantyPartIDField), 10, 64)
		if err != nil || warrantyPartID < 1 {
			return form, fmt.Sprintf("Part %d: please enter a valid warranty part id.", i+1)
		}
		part.WarrantyPartID = warrantyPartID

		part.DamagedImageURL = row(partDamagedImageURLField)
		if part.DamagedImageURL == "" {
			return form, fmt.Sprintf("Part %d: please enter the damaged image url.", i+1)
		}

		if remarks := row(partRemarksField); remarks != "" {
			part.Remarks = &remarks
		}
		if resolutionDate := row(partResolutionDateField); resolutionDate != "" {
			if !isDate(resolutionDate) {
				return form, fmt.Sprintf("Part %d: please enter the resolution date as YYYY-MM-DD.", i+1)
			}
			part.ResolutionDate = &resolutionDate
		}
		if resolutionImageURL := row(partResolutionImageURLField); resolutionImageURL != "" {
			part.ResolutionImageURL = &resolutionImageURL
		}

		form.Parts = append(form.Parts, part)
	}

	if len(form.Parts) == 0 {
		return form, "Please add at least one damaged part."
	}

	return form, ""
}

func isDate(s string) bool {
	_, err := time.Parse(time.DateOnly, s)
	return err == nil
}

func (h *HandlerService) NewClaimPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, templates.NewClaimPage(), "NewClaimPage")
}

// EditClaimPage renders a placeholder; the form is loaded with the claim's current values by RenderClaimForm
func (h *HandlerService) EditClaimPage(w http.ResponseWriter, r *http.Request) {
	claimID, ok := idParam(r, "claimID")
	if !ok {
		http.NotFound(w, r)
		return
	}

	h.render(w, r, templates.EditClaimPage(claimID), "EditClaimPage")
}

func (h *HandlerService) RenderClaimForm(w http.ResponseWriter, r *http.Request) {
	claimID, ok := idParam(r, "claimID")
	if !ok {
		h.renderErrorAlert(w, r, "Invalid claim.", "invalid claim id in url")
		return
	}

	claim, err := h.ApiClient.GetClaimByID(h.apiContext(r), claimID)
	if err != nil {
		h.renderClientError(w, r, err, fmt.Sprintf("to get claim %d", claimID))
		return
	}

	h.render(w, r, templates.ClaimForm(claim), "ClaimForm")
}

// CreateClaim creates a claim and sends the browser to the claims list
func (h *HandlerService) CreateClaim(w http.ResponseWriter, r *http.Request) {
	form, msg := parseClaimForm(r)
	if msg != "" {
		h.render(w, r, templates.ErrorAlert(msg), "ErrorAlert")
		return
	}

	result := h.ApiClient.CreateClaim(h.apiContext(r), types.CreateClaimWithPartsRequest{
		Claim: types.CreateClaimRequest{
			WarrantyID: form.WarrantyID,
			ClaimNo:    form.ClaimNo,
			ClaimDate:  form.ClaimDate,
		},
		Parts: form.Parts,
	})
	if !result.Success {
		h.render(w, r, templates.ErrorAlert(result.Error), "ErrorAlert")
		return
	}

	w.Header().Set("HX-Redirect", "/claims")
	w.WriteHeader(http.StatusOK)
}

func (h *HandlerService) UpdateClaim(w http.ResponseWriter, r *http.Request) {
	claimID, ok := idParam(r, "claimID")
	if !ok {
		h.renderErrorAlert(w, r, "Invalid claim.", "invalid claim id in url")
		return
	}

	form, msg := parseClaimForm(r)
	if msg != "" {
		h.render(w, r, templates.ErrorAlert(msg), "ErrorAlert")
		return
	}

	_ = logger.ContextWithLogAttrs(r.Context(), slog.Int64("claim_id", claimID))

	result := h.ApiClient.UpdateClaim(h.apiContext(r), types.UpdateClaimWithPartsRequest{
		Claim: types.UpdateClaimRequest{
			ID:         claimID,
			WarrantyID: form.WarrantyID,
			ClaimNo:    form.ClaimNo,
			ClaimDate:  form.ClaimDate,
			IsApproved: form.IsApproved,
		},
		Parts: form.Parts,
	})
	if !result.Success {
		h.render(w, r, templates.ErrorAlert(result.Error), "ErrorAlert")
		return
	}

	h.render(w, r, templates.SuccessAlert("Claim updated."), "SuccessAlert")
}
