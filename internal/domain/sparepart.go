package domain

import "time"

// SparePartStatus enumerates lifecycle states for spare-part requests.
type SparePartStatus string

const (
	SparePartStatusRequested SparePartStatus = "REQUESTED"
	SparePartStatusApproved  SparePartStatus = "APPROVED"
	SparePartStatusRejected  SparePartStatus = "REJECTED"
	SparePartStatusDelivered SparePartStatus = "DELIVERED"
)

// SparePartRequest tracks a part ordered while servicing an incident.
// TechnicianID is the requesting technician; Justification explains why the
// part is needed and is what approvers review.
type SparePartRequest struct {
	ID            string
	IncidentID    string
	TechnicianID  string
	Part          string
	Quantity      int
	Justification *string
	Status        SparePartStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
