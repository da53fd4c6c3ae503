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

// SparePartsHandler exposes spare-part requests raised from incidents.
type SparePartsHandler struct {
	parts *service.SparePartService
}

// NewSparePartsHandler constructs the handler.
func NewSparePartsHandler(parts *service.SparePartService) *SparePartsHandler {
	return &SparePartsHandler{parts: parts}
}

// Create POST /spare-parts. The requesting technician is the caller.
func (h *SparePartsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateSparePartRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	request, err := h.parts.CreateRequest(c.UserContext(), req.IncidentID, principal.User.ID, req.Part, req.Quantity, req.Justification)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.FromSparePart(request)})
}

// UpdateStatus PUT /spare-parts/:id/status.
func (h *SparePartsHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.UpdateSparePartRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	request, err := h.parts.UpdateStatus(c.UserContext(), c.Params("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromSparePart(request)})
}

// List GET /spare-parts.
func (h *SparePartsHandler) List(c *fiber.Ctx) error {
	var filter *domain.SparePartStatus
	if statusStr := c.Query("status"); statusStr != "" {
		status := domain.SparePartStatus(statusStr)
		filter = &status
	}
	requests, err := h.parts.List(c.UserContext(), filter)
	if err != nil {
		return apperrors.MapError(err)
	}
	items := make([]dto.SparePartResponse, 0, len(requests))
	for i := range requests {
		items = append(items, dto.FromSparePart(&requests[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}
