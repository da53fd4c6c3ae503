package domain

import "time"

// IncidentStatus enumerates lifecycle states for incidents.
type IncidentStatus string

const (
	IncidentStatusPending    IncidentStatus = "PENDING"
	IncidentStatusAssigned   IncidentStatus = "ASSIGNED"
	IncidentStatusInProgress IncidentStatus = "IN_PROGRESS"
	IncidentStatusResolved   IncidentStatus = "RESOLVED"
	IncidentStatusClosed     IncidentStatus = "CLOSED"
)

// KnownStatus reports whether s is one of the five lifecycle states.
func KnownStatus(s IncidentStatus) bool {
	switch s {
	case IncidentStatusPending, IncidentStatusAssigned, IncidentStatusInProgress,
		IncidentStatusResolved, IncidentStatusClosed:
		return true
	}
	return false
}

// MaxDescriptionLength caps the free-text description of an incident.
const MaxDescriptionLength = 1000

// Incident is the aggregate for client-reported service incidents.
type Incident struct {
	ID           string
	ClientID     string
	TechnicianID *string
	FaultID      *string
	Description  string
	Status       IncidentStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
