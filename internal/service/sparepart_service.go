package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/vcsystems/incident-service/internal/domain"
	"github.com/vcsystems/incident-service/internal/repository"
	apperrors "github.com/vcsystems/incident-service/pkg/util/errorutil"
)

// SparePartService handles spare-part requests raised from incidents.
type SparePartService struct {
	parts     repository.SparePartRepository
	incidents repository.IncidentRepository
}

// NewSparePartService constructs the service.
func NewSparePartService(parts repository.SparePartRepository, incidents repository.IncidentRepository) *SparePartService {
	return &SparePartService{parts: parts, incidents: incidents}
}

// CreateRequest registers a part request raised by a technician for an
// existing incident.
func (s *SparePartService) CreateRequest(ctx context.Context, incidentID, technicianID, part string, quantity int, justification *string) (*domain.SparePartRequest, error) {
	part = strings.TrimSpace(part)
	if part == "" {
		return nil, apperrors.NewValidationError("part is required", nil)
	}
	if technicianID == "" {
		return nil, apperrors.NewValidationError("requesting technician is required", nil)
	}
	if quantity <= 0 {
		return nil, apperrors.NewValidationError("quantity must be positive", nil)
	}
	if _, err := s.incidents.GetByID(ctx, incidentID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("incident", map[string]any{"incident_id": incidentID})
		}
		return nil, apperrors.MapError(err)
	}

	request := &domain.SparePartRequest{
		IncidentID:    incidentID,
		TechnicianID:  technicianID,
		Part:          part,
		Quantity:      quantity,
		Justification: justification,
		Status:        domain.SparePartStatusRequested,
	}
	if err := s.parts.Create(ctx, request); err != nil {
		return nil, apperrors.MapError(err)
	}
	return request, nil
}

// UpdateStatus moves a request to a new status.
func (s *SparePartService) UpdateStatus(ctx context.Context, requestID string, status domain.SparePartStatus) (*domain.SparePartRequest, error) {
	switch status {
	case domain.SparePartStatusRequested, domain.SparePartStatusApproved,
		domain.SparePartStatusRejected, domain.SparePartStatusDelivered:
	default:
		return nil, apperrors.NewValidationError("unknown request status", nil)
	}

	request, err := s.parts.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("spare part request", map[string]any{"request_id": requestID})
		}
		return nil, apperrors.MapError(err)
	}
	request.Status = status
	if err := s.parts.Update(ctx, request); err != nil {
		return nil, apperrors.MapError(err)
	}
	return request, nil
}

// List returns requests, optionally filtered by status.
func (s *SparePartService) List(ctx context.Context, status *domain.SparePartStatus) ([]domain.SparePartRequest, error) {
	if status != nil {
		return s.parts.ListByStatus(ctx, *status)
	}
	return s.parts.ListAll(ctx)
}
