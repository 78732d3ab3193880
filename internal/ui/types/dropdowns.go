package types

// =============================================================================
// DROPDOWN OPTIONS
// =============================================================================
// These types are used for UI dropdown components in templates and handlers

// CarPart is a vehicle inspection zone offered when recording warranty and claim parts
type CarPart struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// carParts is in display order and must not be modified - use CarParts() to get a copy
var carParts = [...]CarPart{
	{Name: "Front Windscreen", Code: "FWS"},
	{Name: "Front Right", Code: "R1"},
	{Name: "Front Left", Code: "L1"},
	{Name: "Rear Right", Code: "R2"},
	{Name: "Rear Left", Code: "L2"},
	{Name: "Rear Windscreen", Code: "RWS"},
	{Name: "Sunroof", Code: "Sunroof"},
	{Name: "Front Bumper", Code: "FB"},
	{Name: "Rear Bumper", Code: "RB"},
}

// CarParts returns the car part zones in display order
func CarParts() []CarPart {
	parts := make([]CarPart, len(carParts))
	copy(parts, carParts[:])
	return parts
}

func CarPartByCode(code string) (CarPart, bool) {
	for _, p := range carParts {
		if p.Code == code {
			return p, true
		}
	}
	return CarPart{}, false
}

// ApprovalStatusOption is a value accepted by the claim approval endpoints
type ApprovalStatusOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

var approvalStatuses = [...]ApprovalStatusOption{
	{Value: "PENDING", Label: "Pending"},
	{Value: "APPROVED", Label: "Approved"},
	{Value: "REJECTED", Label: "Rejected"},
}

func ApprovalStatuses() []ApprovalStatusOption {
	opts := make([]ApprovalStatusOption, len(approvalStatuses))
	copy(opts, approvalStatuses[:])
	return opts
}

func IsValidApprovalStatus(status string) bool {
	for _, s := range approvalStatuses {
		if s.Value == status {
			return true
		}
	}
	return false
}
