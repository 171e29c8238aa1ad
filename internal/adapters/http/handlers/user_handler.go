package handlers

import (
	"github.com/gimhantharuke456/policeappbackend/internal/core/domain"
	"github.com/gimhantharuke456/policeappbackend/internal/core/services"
	"github.com/gimhantharuke456/policeappbackend/internal/pkg/pagination"
	"github.com/gimhantharuke456/policeappbackend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles officer profile endpoints
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// GetProfile handles getting an officer profile by service number
// @Summary Get profile
// @Description Get an officer's public profile
// @Tags Users
// @Produce json
// @Param id path string true "Officer service number"
// @Success 200 {object} response.Response{data=models.OfficerProfile}
// @Failure 404 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /profile/{id} [get]
func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	return h.profile(c, c.Params("id"))
}

// GetBySVC handles getting an officer profile by service number
// @Summary Get officer by service number
// @Tags Users
// @Produce json
// @Param svcNumber path string true "Officer service number"
// @Success 200 {object} response.Response{data=models.OfficerProfile}
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /svc/{svcNumber} [get]
func (h *UserHandler) GetBySVC(c *fiber.Ctx) error {
	return h.profile(c, c.Params("svcNumber"))
}

func (h *UserHandler) profile(c *fiber.Ctx, officerSVC string) error {
	profile, err := h.userService.GetProfile(c.Context(), officerSVC)
	if err != nil {
		return writeError(c, err)
	}
	return response.Success(c, "Profile retrieved successfully", profile)
}

// ListUsers handles listing officers
// @Summary List officers
// @Description Get a paginated list of officers, newest first
// @Tags Users
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page (1-50)" default(10)
// @Param search query string false "Case-insensitive search"
// @Success 200 {object} response.Response{data=services.ListUsersOutput}
// @Failure 400 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /users [get]
func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	params, err := pagination.GetParams(c)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	result, err := h.userService.ListUsers(c.Context(), params)
	if err != nil {
		return writeError(c, err)
	}

	return response.Success(c, "Users retrieved successfully", result)
}

// UploadProfilePicture handles profile picture uploads for the calling officer
// @Summary Upload profile picture
// @Description Store a JPEG, PNG or WebP image as the officer's profile picture
// @Tags Users
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param profilepicture formData file true "Image file"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /profile/picture [post]
func (h *UserHandler) UploadProfilePicture(c *fiber.Ctx) error {
	officerSVC, _ := c.Locals("officerSVC").(string)
	if officerSVC == "" {
		return writeError(c, domain.ErrUnauthenticated)
	}

	header, err := c.FormFile("profilepicture")
	if err != nil {
		return writeError(c, domain.Validation("profilepicture is required"))
	}

	file, err := header.Open()
	if err != nil {
		return writeError(c, domain.Validation("could not read upload"))
	}
	defer file.Close()

	ref, err := h.userService.UpdateProfilePicture(c.Context(), officerSVC, file, header.Size)
	if err != nil {
		return writeError(c, err)
	}

	return response.Success(c, "Profile picture updated successfully", fiber.Map{
		"profilePicture": ref,
	})
}
