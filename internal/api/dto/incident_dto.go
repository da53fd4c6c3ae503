package dto

import (
	"time"

	"github.com/vcsystems/incident-service/internal/domain"
)

// CreateIncidentRequest payload.
type CreateIncidentRequest struct {
	ClientID    string  `json:"client_id"`
	Description string  `json:"description"`
	FaultID     *string `json:"fault_id,omitempty"`
}

// AssignTechnicianRequest payload.
type AssignTechnicianRequest struct {
	TechnicianID string `json:"technician_id"`
}

// ChangeStatusRequest payload.
type ChangeStatusRequest struct {
	Status domain.IncidentStatus `json:"status"`
}

// IncidentResponse represents one incident.
type IncidentResponse struct {
	ID           string                `json:"id"`
	ClientID     string                `json:"client_id"`
	TechnicianID *string               `json:"technician_id,omitempty"`
	FaultID      *string               `json:"fault_id,omitempty"`
	Description  string                `json:"description"`
	Status       domain.IncidentStatus `json:"status"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
}

// FromIncident maps the domain aggregate to its response shape.
func FromIncident(incident *domain.Incident) IncidentResponse {
	return IncidentResponse{
		ID:           incident.ID,
		ClientID:     incident.ClientID,
		TechnicianID: incident.TechnicianID,
		FaultID:      incident.FaultID,
		Description:  incident.Description,
		Status:       incident.Status,
		CreatedAt:    incident.CreatedAt,
		UpdatedAt:    incident.UpdatedAt,
	}
}

// FaultResponse represents one fault-dictionary entry.
type FaultResponse struct {
	ID          string  `json:"id"`
	Code        string  `json:"code"`
	Description *string `json:"description,omitempty"`
}
