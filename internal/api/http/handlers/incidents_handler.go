package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/vcsystems/incident-service/internal/api/dto"
	"github.com/vcsystems/incident-service/internal/auth"
	"github.com/vcsystems/incident-service/internal/domain"
	"github.com/vcsystems/incident-service/internal/service"
	apperrors "github.com/vcsystems/incident-service/pkg/util/errorutil"
)

// IncidentsHandler exposes the lifecycle engine over HTTP.
type IncidentsHandler struct {
	incidents *service.IncidentService
}

// NewIncidentsHandler constructs the handler.
func NewIncidentsHandler(incidents *service.IncidentService) *IncidentsHandler {
	return &IncidentsHandler{incidents: incidents}
}

// Create POST /incidents.
func (h *IncidentsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateIncidentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	result := h.incidents.Create(c.UserContext(), req.ClientID, req.Description, req.FaultID)
	return respondResult(c, result, http.StatusCreated)
}

// List GET /incidents.
func (h *IncidentsHandler) List(c *fiber.Ctx) error {
	if statusStr := c.Query("status"); statusStr != "" {
		incidents, err := h.incidents.ListByStatus(c.UserContext(), domain.IncidentStatus(statusStr))
		if err != nil {
			return apperrors.NewValidationError(err.Error(), nil)
		}
		return c.JSON(fiber.Map{"data": incidentList(incidents)})
	}
	incidents, err := h.incidents.ListAll(c.UserContext())
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": incidentList(incidents)})
}

// ListMine GET /incidents/assigned — incidents of the calling technician.
func (h *IncidentsHandler) ListMine(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	incidents, err := h.incidents.ListByTechnician(c.UserContext(), principal.User.ID)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": incidentList(incidents)})
}

// Get GET /incidents/:id.
func (h *IncidentsHandler) Get(c *fiber.Ctx) error {
	result := h.incidents.FindByID(c.UserContext(), c.Params("id"))
	return respondResult(c, result, http.StatusOK)
}

// AssignTechnician PUT /incidents/:id/technician.
func (h *IncidentsHandler) AssignTechnician(c *fiber.Ctx) error {
	var req dto.AssignTechnicianRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	result := h.incidents.AssignTechnician(c.UserContext(), c.Params("id"), req.TechnicianID)
	return respondResult(c, result, http.StatusOK)
}

// ChangeStatus PUT /incidents/:id/status.
func (h *IncidentsHandler) ChangeStatus(c *fiber.Ctx) error {
	var req dto.ChangeStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	result := h.incidents.ChangeStatus(c.UserContext(), c.Params("id"), req.Status)
	return respondResult(c, result, http.StatusOK)
}

// Statistics GET /incidents/statistics.
func (h *IncidentsHandler) Statistics(c *fiber.Ctx) error {
	stats, err := h.incidents.Statistics(c.UserContext())
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": stats})
}

// respondResult maps the engine's tagged result onto the transport:
// not-found -> 404, business error -> 400, technical error -> 500.
func respondResult(c *fiber.Ctx, result service.OperationResult, successStatus int) error {
	if result.IsSuccess() {
		return c.Status(successStatus).JSON(fiber.Map{"data": dto.FromIncident(result.Incident)})
	}
	return c.Status(result.HTTPStatus()).JSON(fiber.Map{"error": fiber.Map{
		"code":    result.Code,
		"message": result.Message,
	}})
}

func incidentList(incidents []domain.Incident) []dto.IncidentResponse {
	items := make([]dto.IncidentResponse, 0, len(incidents))
	for i := range incidents {
		items = append(items, dto.FromIncident(&incidents[i]))
	}
	return items
}
