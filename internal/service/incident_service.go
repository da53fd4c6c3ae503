package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/vcsystems/incident-service/internal/domain"
	"github.com/vcsystems/incident-service/internal/events"
	"github.com/vcsystems/incident-service/internal/observability"
	"github.com/vcsystems/incident-service/internal/repository"
)

// IncidentService owns the incident lifecycle state machine. Every mutating
// operation validates, persists, publishes exactly one lifecycle event after
// the write committed, and returns a tagged OperationResult.
type IncidentService struct {
	incidents  repository.IncidentRepository
	users      repository.UserRepository
	clients    repository.ClientRepository
	faults     repository.FaultRepository
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
}

// IncidentDependencies bundles collaborators for the lifecycle engine.
type IncidentDependencies struct {
	IncidentRepo repository.IncidentRepository
	UserRepo     repository.UserRepository
	ClientRepo   repository.ClientRepository
	FaultRepo    repository.FaultRepository
	Dispatcher   events.Dispatcher
	Metrics      *observability.Metrics
}

// NewIncidentService constructs the engine.
func NewIncidentService(deps IncidentDependencies) *IncidentService {
	return &IncidentService{
		incidents:  deps.IncidentRepo,
		users:      deps.UserRepo,
		clients:    deps.ClientRepo,
		faults:     deps.FaultRepo,
		dispatcher: deps.Dispatcher,
		metrics:    deps.Metrics,
	}
}

// allowedTransitions is the lifecycle adjacency table. CLOSED has no
// outgoing edges; a transition to the current state is always rejected
// before this table is consulted.
var allowedTransitions = map[domain.IncidentStatus][]domain.IncidentStatus{
	domain.IncidentStatusPending:    {domain.IncidentStatusAssigned, domain.IncidentStatusClosed},
	domain.IncidentStatusAssigned:   {domain.IncidentStatusInProgress, domain.IncidentStatusPending, domain.IncidentStatusClosed, domain.IncidentStatusResolved},
	domain.IncidentStatusInProgress: {domain.IncidentStatusResolved, domain.IncidentStatusAssigned, domain.IncidentStatusClosed},
	domain.IncidentStatusResolved:   {domain.IncidentStatusClosed, domain.IncidentStatusInProgress},
	domain.IncidentStatusClosed:     {},
}

func transitionAllowed(from, to domain.IncidentStatus) bool {
	for _, candidate := range allowedTransitions[from] {
		if candidate == to {
			return true
		}
	}
	return false
}

// Create registers a new incident in PENDING status. All validation happens
// before any insert; nothing is persisted on a business error.
func (s *IncidentService) Create(ctx context.Context, clientID, description string, faultID *string) OperationResult {
	description = strings.TrimSpace(description)
	if clientID == "" {
		return BusinessError("incident must have a client", CodeValidation)
	}
	if description == "" {
		return BusinessError("description is required", CodeValidation)
	}
	// Counted in characters, matching the char_length constraint in the schema.
	if utf8.RuneCountInString(description) > domain.MaxDescriptionLength {
		return BusinessError(fmt.Sprintf("description exceeds %d characters", domain.MaxDescriptionLength), CodeValidation)
	}

	client, err := s.clients.GetByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return BusinessError("unknown client", CodeValidation)
		}
		return TechnicalError("client lookup failed")
	}
	if faultID != nil {
		if _, err := s.faults.GetByID(ctx, *faultID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return BusinessError("unknown fault reference", CodeValidation)
			}
			return TechnicalError("fault lookup failed")
		}
	}

	incident := &domain.Incident{
		ClientID:    clientID,
		FaultID:     faultID,
		Description: description,
		Status:      domain.IncidentStatusPending,
	}
	if err := s.incidents.Create(ctx, incident); err != nil {
		return TechnicalError("incident store unavailable")
	}

	s.publish(ctx, events.Event{
		Kind:     events.KindIncidentCreated,
		Incident: *incident,
		Created:  &events.CreatedPayload{ClientCompany: client.CompanyName},
	})
	return Success(incident)
}

// AssignTechnician sets the technician and forces status to ASSIGNED.
// Reassignment through this operation is rejected, as is assignment on a
// RESOLVED or CLOSED incident.
func (s *IncidentService) AssignTechnician(ctx context.Context, incidentID, technicianID string) OperationResult {
	if technicianID == "" {
		return BusinessError("technician reference is required", CodeValidation)
	}
	technician, err := s.users.GetByID(ctx, technicianID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return BusinessError("technician reference does not resolve", CodeValidation)
		}
		return TechnicalError("user lookup failed")
	}
	if technician.Role != domain.RoleTechnician {
		return BusinessError("assigned user must be a technician", CodeInvalidRole)
	}

	incident, err := s.incidents.GetByID(ctx, incidentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return NotFound("incident not found")
		}
		return TechnicalError("incident store unavailable")
	}
	if incident.TechnicianID != nil {
		return BusinessError("incident already has a technician", CodeAlreadyAssigned)
	}
	if incident.Status == domain.IncidentStatusResolved || incident.Status == domain.IncidentStatusClosed {
		return BusinessError(fmt.Sprintf("cannot assign technician in status %s", incident.Status), CodeIllegalTransition)
	}

	incident.TechnicianID = &technician.ID
	incident.Status = domain.IncidentStatusAssigned
	if err := s.incidents.Update(ctx, incident); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return NotFound("incident not found")
		}
		return TechnicalError("incident store unavailable")
	}

	s.publish(ctx, events.Event{
		Kind:     events.KindTechnicianAssigned,
		Incident: *incident,
		Assigned: &events.AssignedPayload{
			TechnicianID:    technician.ID,
			TechnicianName:  technician.Name,
			TechnicianEmail: technician.Email,
		},
	})
	return Success(incident)
}

// ChangeStatus moves the incident along the transition table. A transition
// to the same state is always rejected; IN_PROGRESS additionally requires a
// technician regardless of the table.
func (s *IncidentService) ChangeStatus(ctx context.Context, incidentID string, newStatus domain.IncidentStatus) OperationResult {
	if newStatus == "" {
		return BusinessError("target status is required", CodeValidation)
	}
	if !domain.KnownStatus(newStatus) {
		return BusinessError(fmt.Sprintf("unknown status %q", newStatus), CodeValidation)
	}

	incident, err := s.incidents.GetByID(ctx, incidentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return NotFound("incident not found")
		}
		return TechnicalError("incident store unavailable")
	}

	oldStatus := incident.Status
	if newStatus == oldStatus {
		return BusinessError("incident is already in that status", CodeIllegalTransition)
	}
	if !transitionAllowed(oldStatus, newStatus) {
		return BusinessError(fmt.Sprintf("transition %s -> %s is not allowed", oldStatus, newStatus), CodeIllegalTransition)
	}
	if newStatus == domain.IncidentStatusInProgress && incident.TechnicianID == nil {
		return BusinessError("incident needs a technician before work can start", CodeMissingTechnician)
	}

	incident.Status = newStatus
	if err := s.incidents.Update(ctx, incident); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return NotFound("incident not found")
		}
		return TechnicalError("incident store unavailable")
	}

	s.publish(ctx, events.Event{
		Kind:     events.KindStatusChanged,
		Incident: *incident,
		Transition: &events.TransitionPayload{
			OldStatus: oldStatus,
			NewStatus: newStatus,
		},
	})
	return Success(incident)
}

// FindByID resolves one incident without mutating it.
func (s *IncidentService) FindByID(ctx context.Context, incidentID string) OperationResult {
	incident, err := s.incidents.GetByID(ctx, incidentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return NotFound("incident not found")
		}
		return TechnicalError("incident store unavailable")
	}
	return Success(incident)
}

// ListAll returns every incident, newest first.
func (s *IncidentService) ListAll(ctx context.Context) ([]domain.Incident, error) {
	return s.incidents.ListAll(ctx)
}

// ListByStatus returns incidents in the given status.
func (s *IncidentService) ListByStatus(ctx context.Context, status domain.IncidentStatus) ([]domain.Incident, error) {
	if !domain.KnownStatus(status) {
		return nil, fmt.Errorf("unknown status %q", status)
	}
	return s.incidents.ListByStatus(ctx, status)
}

// ListByTechnician returns incidents assigned to the given technician.
func (s *IncidentService) ListByTechnician(ctx context.Context, technicianID string) ([]domain.Incident, error) {
	return s.incidents.ListByTechnician(ctx, technicianID)
}

// IncidentStatistics aggregates counts per status.
type IncidentStatistics struct {
	Total    int                           `json:"total"`
	ByStatus map[domain.IncidentStatus]int `json:"by_status"`
}

// Statistics recomputes aggregate counts on demand from the store; there are
// no incremental counters to go stale.
func (s *IncidentService) Statistics(ctx context.Context) (*IncidentStatistics, error) {
	incidents, err := s.incidents.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	stats := &IncidentStatistics{
		Total:    len(incidents),
		ByStatus: make(map[domain.IncidentStatus]int, 5),
	}
	for _, status := range []domain.IncidentStatus{
		domain.IncidentStatusPending,
		domain.IncidentStatusAssigned,
		domain.IncidentStatusInProgress,
		domain.IncidentStatusResolved,
		domain.IncidentStatusClosed,
	} {
		stats.ByStatus[status] = 0
	}
	for _, incident := range incidents {
		stats.ByStatus[incident.Status]++
	}
	return stats, nil
}

func (s *IncidentService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	s.metrics.RecordEventPublished(string(event.Kind))
	s.dispatcher.Publish(ctx, event)
}
