package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/vcsystems/incident-service/internal/api/dto"
	"github.com/vcsystems/incident-service/internal/domain"
	"github.com/vcsystems/incident-service/internal/repository"
	apperrors "github.com/vcsystems/incident-service/pkg/util/errorutil"
)

// FaultsHandler exposes the fault dictionary.
type FaultsHandler struct {
	faults repository.FaultRepository
}

// NewFaultsHandler constructs the handler.
func NewFaultsHandler(faults repository.FaultRepository) *FaultsHandler {
	return &FaultsHandler{faults: faults}
}

// Create POST /faults.
func (h *FaultsHandler) Create(c *fiber.Ctx) error {
	var req struct {
		Code        string  `json:"code"`
		Description *string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	req.Code = strings.TrimSpace(req.Code)
	if req.Code == "" {
		return apperrors.NewValidationError("code is required", nil)
	}
	fault := &domain.FaultEntry{Code: req.Code, Description: req.Description}
	if err := h.faults.Create(c.UserContext(), fault); err != nil {
		return apperrors.MapError(err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": faultResponse(fault)})
}

// Get GET /faults/:id.
func (h *FaultsHandler) Get(c *fiber.Ctx) error {
	fault, err := h.faults.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": faultResponse(fault)})
}

// List GET /faults.
func (h *FaultsHandler) List(c *fiber.Ctx) error {
	faults, err := h.faults.ListAll(c.UserContext())
	if err != nil {
		return apperrors.MapError(err)
	}
	items := make([]dto.FaultResponse, 0, len(faults))
	for i := range faults {
		items = append(items, faultResponse(&faults[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

func faultResponse(fault *domain.FaultEntry) dto.FaultResponse {
	return dto.FaultResponse{
		ID:          fault.ID,
		Code:        fault.Code,
		Description: fault.Description,
	}
}
