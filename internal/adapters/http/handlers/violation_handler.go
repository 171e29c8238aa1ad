package handlers

import (
	"github.com/gimhantharuke456/policeappbackend/internal/core/services"
	"github.com/gimhantharuke456/policeappbackend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ViolationHandler handles tourist violation endpoints
type ViolationHandler struct {
	violationService *services.ViolationService
}

// NewViolationHandler creates a new violation handler
func NewViolationHandler(violationService *services.ViolationService) *ViolationHandler {
	return &ViolationHandler{
		violationService: violationService,
	}
}

// OfficerViolationsRequest represents the officer lookup body
type OfficerViolationsRequest struct {
	OfficerID string `json:"officerId"`
}

// Create handles filing a new violation
// @Summary File violation
// @Description Record a violation; a reference number is generated and status starts as pending
// @Tags Violations
// @Accept json
// @Produce json
// @Param body body services.CreateViolationInput true "Violation form"
// @Success 201 {object} response.Response{data=models.ViolationResponse}
// @Failure 400 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /violations/violation [post]
func (h *ViolationHandler) Create(c *fiber.Ctx) error {
	var req services.CreateViolationInput
	if err := parseBody(c, &req); err != nil {
		return writeError(c, err)
	}

	violation, err := h.violationService.Create(c.Context(), &req)
	if err != nil {
		return writeError(c, err)
	}

	return response.Created(c, "Violation recorded successfully", violation)
}

// Find handles violation search
// @Summary Search violations
// @Description Every non-empty filter must match; tourist.name is a case-insensitive substring
// @Tags Violations
// @Accept json
// @Produce json
// @Param body body services.ViolationQuery false "Filters"
// @Success 200 {object} services.FindViolationsOutput
// @Failure 400 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /violations/getviolation [post]
func (h *ViolationHandler) Find(c *fiber.Ctx) error {
	var req services.ViolationQuery
	if len(c.Body()) > 0 {
		if err := parseBody(c, &req); err != nil {
			return writeError(c, err)
		}
	}

	result, err := h.violationService.Find(c.Context(), &req)
	if err != nil {
		return writeError(c, err)
	}

	return response.JSON(c, fiber.StatusOK, fiber.Map{
		"violations": result.Violations,
		"total":      result.Total,
	})
}

// GetByID handles getting one violation
// @Summary Get violation
// @Tags Violations
// @Produce json
// @Param id path string true "Violation ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /violations/violation/{id} [get]
func (h *ViolationHandler) GetByID(c *fiber.Ctx) error {
	violation, err := h.violationService.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}

	return response.JSON(c, fiber.StatusOK, fiber.Map{"violation": violation})
}

// ByOfficer handles listing the violations filed by an officer
// @Summary Violations by officer
// @Tags Violations
// @Accept json
// @Produce json
// @Param body body OfficerViolationsRequest true "Officer"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /violations/officer [post]
func (h *ViolationHandler) ByOfficer(c *fiber.Ctx) error {
	var req OfficerViolationsRequest
	if err := parseBody(c, &req); err != nil {
		return writeError(c, err)
	}

	result, err := h.violationService.ByOfficer(c.Context(), req.OfficerID)
	if err != nil {
		return writeError(c, err)
	}

	return response.JSON(c, fiber.StatusOK, fiber.Map{"violations": result.Violations})
}

// ByTourist handles listing a tourist's violations
// @Summary Violations by tourist
// @Description Looks up by passport number, or by tourist ID when no passport is given
// @Tags Violations
// @Produce json
// @Param passport query string false "Passport number"
// @Param id query string false "Tourist ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /violations/tourist [get]
func (h *ViolationHandler) ByTourist(c *fiber.Ctx) error {
	result, err := h.violationService.ByTourist(c.Context(), c.Query("passport"), c.Query("id"))
	if err != nil {
		return writeError(c, err)
	}

	return response.JSON(c, fiber.StatusOK, fiber.Map{"violations": result.Violations})
}

// UpdateStatus handles status transitions
// @Summary Update violation status
// @Description Payment details are recorded only when the new status is paid
// @Tags Violations
// @Accept json
// @Produce json
// @Param body body services.UpdateStatusInput true "Status change"
// @Success 200 {object} response.Response{data=models.ViolationResponse}
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /violations/status [post]
func (h *ViolationHandler) UpdateStatus(c *fiber.Ctx) error {
	var req services.UpdateStatusInput
	if err := parseBody(c, &req); err != nil {
		return writeError(c, err)
	}

	violation, err := h.violationService.UpdateStatus(c.Context(), &req)
	if err != nil {
		return writeError(c, err)
	}

	return response.Success(c, "Violation status updated to "+violation.Status+" successfully", violation)
}
