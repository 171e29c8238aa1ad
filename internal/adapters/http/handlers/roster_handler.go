package handlers

import (
	"github.com/gimhantharuke456/policeappbackend/internal/core/services"
	"github.com/gimhantharuke456/policeappbackend/internal/pkg/pagination"
	"github.com/gimhantharuke456/policeappbackend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// RosterHandler handles admin roster endpoints
type RosterHandler struct {
	rosterService *services.RosterService
}

// NewRosterHandler creates a new roster handler
func NewRosterHandler(rosterService *services.RosterService) *RosterHandler {
	return &RosterHandler{
		rosterService: rosterService,
	}
}

// Add handles bulk roster inserts
// @Summary Add roster entries
// @Description Authorize service numbers for registration; existing numbers are skipped
// @Tags Admin
// @Accept json
// @Produce json
// @Security AdminKey
// @Param body body services.AddRosterInput true "Entries"
// @Success 201 {object} response.Response{data=services.ImportResult}
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /admin/roster [post]
func (h *RosterHandler) Add(c *fiber.Ctx) error {
	var req services.AddRosterInput
	if err := parseBody(c, &req); err != nil {
		return writeError(c, err)
	}

	result, err := h.rosterService.Add(c.Context(), &req)
	if err != nil {
		return writeError(c, err)
	}

	return response.Created(c, "Roster entries added", result)
}

// List handles listing roster entries
// @Summary List roster
// @Tags Admin
// @Produce json
// @Security AdminKey
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page (1-50)" default(10)
// @Success 200 {object} response.Response{data=services.ListRosterOutput}
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /admin/roster [get]
func (h *RosterHandler) List(c *fiber.Ctx) error {
	params, err := pagination.GetParams(c)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	result, err := h.rosterService.List(c.Context(), params)
	if err != nil {
		return writeError(c, err)
	}

	return response.Success(c, "Roster retrieved successfully", result)
}

// Deactivate handles withdrawing a service number from the roster
// @Summary Deactivate roster entry
// @Tags Admin
// @Produce json
// @Security AdminKey
// @Param svc path string true "Officer service number"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /admin/roster/{svc}/deactivate [post]
func (h *RosterHandler) Deactivate(c *fiber.Ctx) error {
	if err := h.rosterService.Deactivate(c.Context(), c.Params("svc")); err != nil {
		return writeError(c, err)
	}
	return response.Success(c, "Roster entry deactivated", nil)
}
