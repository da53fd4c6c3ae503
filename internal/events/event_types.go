package events

import (
	"time"

	"github.com/vcsystems/incident-service/internal/domain"
)

// Kind enumerates lifecycle event identifiers.
type Kind string

const (
	KindIncidentCreated    Kind = "incident_created"
	KindTechnicianAssigned Kind = "technician_assigned"
	KindStatusChanged      Kind = "status_changed"
)

// Event is an immutable record of one successful incident mutation. The
// incident field is a value snapshot taken at publish time; handlers never
// share state with the engine through it.
type Event struct {
	ID        string          `json:"id"`
	Kind      Kind            `json:"kind"`
	Incident  domain.Incident `json:"incident"`
	Timestamp time.Time       `json:"timestamp"`

	// Kind-specific payload, exactly one of the following is set.
	Created    *CreatedPayload    `json:"created,omitempty"`
	Assigned   *AssignedPayload   `json:"assigned,omitempty"`
	Transition *TransitionPayload `json:"transition,omitempty"`
}

// CreatedPayload accompanies KindIncidentCreated.
type CreatedPayload struct {
	ClientCompany string `json:"client_company"`
}

// AssignedPayload accompanies KindTechnicianAssigned.
type AssignedPayload struct {
	TechnicianID    string `json:"technician_id"`
	TechnicianName  string `json:"technician_name"`
	TechnicianEmail string `json:"technician_email"`
}

// TransitionPayload accompanies KindStatusChanged.
type TransitionPayload struct {
	OldStatus domain.IncidentStatus `json:"old_status"`
	NewStatus domain.IncidentStatus `json:"new_status"`
}
