package dto

import (
	"time"

	"github.com/vcsystems/incident-service/internal/domain"
)

// CreateSparePartRequest payload. The requesting technician comes from the
// authenticated principal, not the body.
type CreateSparePartRequest struct {
	IncidentID    string  `json:"incident_id"`
	Part          string  `json:"part"`
	Quantity      int     `json:"quantity"`
	Justification *string `json:"justification,omitempty"`
}

// UpdateSparePartRequest payload.
type UpdateSparePartRequest struct {
	Status domain.SparePartStatus `json:"status"`
}

// SparePartResponse represents one spare-part request.
type SparePartResponse struct {
	ID            string                 `json:"id"`
	IncidentID    string                 `json:"incident_id"`
	TechnicianID  string                 `json:"technician_id"`
	Part          string                 `json:"part"`
	Quantity      int                    `json:"quantity"`
	Justification *string                `json:"justification,omitempty"`
	Status        domain.SparePartStatus `json:"status"`
	CreatedAt     time.Time              `json:"created_at"`
	UpdatedAt     time.Time              `json:"updated_at"`
}

// FromSparePart maps the domain record to its response shape.
func FromSparePart(request *domain.SparePartRequest) SparePartResponse {
	return SparePartResponse{
		ID:            request.ID,
		IncidentID:    request.IncidentID,
		TechnicianID:  request.TechnicianID,
		Part:          request.Part,
		Quantity:      request.Quantity,
		Justification: request.Justification,
		Status:        request.Status,
		CreatedAt:     request.CreatedAt,
		UpdatedAt:     request.UpdatedAt,
	}
}
