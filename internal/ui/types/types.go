package types

import "encoding/json"

// =============================================================================
// CLAIM TYPES
// =============================================================================

// Claim is a warranty claim owned by the e-warranty backend. The ui only reads claims.
//
// The known fields are decoded for rendering; Raw keeps the object exactly as the backend sent it
// (including any fields not listed here) and is what gets re-encoded.
type Claim struct {
	ID         int64  `json:"id"`
	WarrantyID int64  `json:"warrantyId"`
	ClaimNo    string `json:"claimNo"`
	ClaimDate  string `json:"claimDate"`
	IsApproved bool   `json:"isApproved"`
	CreatedAt  string `json:"createdAt"`
	UpdatedAt  string `json:"updatedAt"`

	// only populated by endpoints that embed the claim's parts
	WarrantyParts []ClaimWarrantyPart `json:"warrantyParts,omitempty"`

	Raw json.RawMessage `json:"-"`
}

func (c *Claim) UnmarshalJSON(data []byte) error {
	type claimFields Claim
	var fields claimFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	*c = Claim(fields)
	c.Raw = append(json.RawMessage(nil), data...)
	return nil
}

func (c Claim) MarshalJSON() ([]byte, error) {
	if len(c.Raw) > 0 {
		return c.Raw, nil
	}
	type claimFields Claim
	return json.Marshal(claimFields(c))
}

// ClaimWarrantyPart is a damaged warranty part submitted with a claim
type ClaimWarrantyPart struct {
	ID                 int64   `json:"id,omitempty"` // unset when the part is being created
	ClaimID            int64   `json:"claimId,omitempty"`
	WarrantyPartID     int64   `json:"warrantyPartId"`
	CarPartName        string  `json:"carPartName,omitempty"`
	DamagedImageURL    string  `json:"damagedImageUrl"`
	Remarks            *string `json:"remarks,omitempty"`
	ResolutionDate     *string `json:"resolutionDate,omitempty"` // YYYY-MM-DD
	ResolutionImageURL *string `json:"resolutionImageUrl,omitempty"`
}

// =============================================================================
// REQUEST TYPES
// =============================================================================

type CreateClaimRequest struct {
	WarrantyID int64  `json:"warrantyId"`
	ClaimNo    string `json:"claimNo"`
	ClaimDate  string `json:"claimDate"` // YYYY-MM-DD
}

type CreateClaimWithPartsRequest struct {
	Claim CreateClaimRequest  `json:"claim"`
	Parts []ClaimWarrantyPart `json:"parts"`
}

type UpdateClaimRequest struct {
	ID         int64  `json:"id"`
	WarrantyID int64  `json:"warrantyId"`
	ClaimNo    string `json:"claimNo"`
	ClaimDate  string `json:"claimDate"`
	IsApproved bool   `json:"isApproved"`
}

type UpdateClaimWithPartsRequest struct {
	Claim UpdateClaimRequest  `json:"claim"`
	Parts []ClaimWarrantyPart `json:"parts"`
}

// =============================================================================
// RESULT TYPES
// =============================================================================

// OperationResult is the outcome of a mutating action.
// When Success is false, Error holds a message that can be shown to the user as-is.
// Data holds the backend response for actions that return one.
type OperationResult struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func Succeeded(data json.RawMessage) OperationResult {
	return OperationResult{Success: true, Data: data}
}

func Failed(message string) OperationResult {
	return OperationResult{Success: false, Error: message}
}
