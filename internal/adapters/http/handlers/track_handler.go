package handlers

import (
	"github.com/gimhantharuke456/policeappbackend/internal/core/services"
	"github.com/gimhantharuke456/policeappbackend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// TrackHandler handles voice record listing endpoints
type TrackHandler struct {
	trackService *services.TrackService
}

// NewTrackHandler creates a new track handler
func NewTrackHandler(trackService *services.TrackService) *TrackHandler {
	return &TrackHandler{
		trackService: trackService,
	}
}

// ListFolders handles listing track folders
// @Summary List track folders
// @Tags Tracks
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} response.Response
// @Router /tracks [get]
func (h *TrackHandler) ListFolders(c *fiber.Ctx) error {
	folders, err := h.trackService.ListFolders(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return response.JSON(c, fiber.StatusOK, fiber.Map{"folders": folders})
}

// ListTracks handles listing the tracks of one folder
// @Summary List tracks
// @Tags Tracks
// @Produce json
// @Param folder path string true "Folder name"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /tracks/{folder} [get]
func (h *TrackHandler) ListTracks(c *fiber.Ctx) error {
	tracks, err := h.trackService.ListTracks(c.Context(), c.Params("folder"))
	if err != nil {
		return writeError(c, err)
	}
	return response.JSON(c, fiber.StatusOK, fiber.Map{"tracks": tracks})
}
