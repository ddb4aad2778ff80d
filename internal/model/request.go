package model

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "Pending"
	RequestStatusApproved RequestStatus = "Approved"
	RequestStatusRejected RequestStatus = "Rejected"
)

// AssetRequest is the server-side request entity. The portal consumes it and
// changes its status through the backend, but never creates or deletes it
// directly.
type AssetRequest struct {
	ID             string        `json:"id"`
	RequesterName  string        `json:"requesterName"`
	RequesterEmail string        `json:"requesterEmail"`
	Purpose        string        `json:"purpose"`
	CreatedAt      string        `json:"createdAt"`
	Deadline       string        `json:"deadline"`
	Status         RequestStatus `json:"status"`
	Items          []string      `json:"items"`
}

// RequestDraft is the in-progress form data for a new asset request.
// Deadline is an ISO date (yyyy-mm-dd) that must not be before today.
type RequestDraft struct {
	RequesterName  string `json:"requesterName" validate:"required,trimmedmin=2"`
	RequesterEmail string `json:"requesterEmail" validate:"required,email"`
	Purpose        string `json:"purpose" validate:"required,trimmedmin=10"`
	Deadline       string `json:"deadline" validate:"required,fromtoday"`
}
