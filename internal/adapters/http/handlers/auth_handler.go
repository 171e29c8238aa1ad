package handlers

import (
	"github.com/gimhantharuke456/policeappbackend/internal/core/services"
	"github.com/gimhantharuke456/policeappbackend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// UpdateProfileRequest represents the profile update body. Older clients send
// contactNumber instead of phone.
type UpdateProfileRequest struct {
	OfficerSVC    string  `json:"officerSVC"`
	FullName      *string `json:"fullName"`
	PoliceStation *string `json:"policeStation"`
	OfficerRank   *string `json:"officerRank"`
	ContactNumber *string `json:"contactNumber"`
	Phone         *string `json:"phone"`
	Email         *string `json:"email"`
}

// Register handles officer registration
// @Summary Register officer
// @Description Register a new officer whose service number is on the active roster
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body services.RegisterInput true "Registration data"
// @Success 201 {object} response.Response{data=services.AuthResponse}
// @Failure 400 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /registration [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req services.RegisterInput
	if err := parseBody(c, &req); err != nil {
		return writeError(c, err)
	}

	result, err := h.authService.Register(c.Context(), &req)
	if err != nil {
		return writeError(c, err)
	}

	return response.Created(c, "Officer registered successfully", result)
}

// Login handles officer login
// @Summary Login
// @Description Authenticate with service number and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body services.LoginInput true "Login credentials"
// @Success 201 {object} response.Response{data=services.AuthResponse}
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req services.LoginInput
	if err := parseBody(c, &req); err != nil {
		return writeError(c, err)
	}

	result, err := h.authService.Login(c.Context(), &req)
	if err != nil {
		return writeError(c, err)
	}

	return response.Created(c, "Login successful", result)
}

// Verify handles token verification
// @Summary Verify token
// @Description Validate a bearer token and return the officer it names
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 201 {object} response.Response{data=models.OfficerSummary}
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /verify [post]
func (h *AuthHandler) Verify(c *fiber.Ctx) error {
	identity, err := h.authService.Verify(c.Get(fiber.HeaderAuthorization))
	if err != nil {
		return writeError(c, err)
	}

	officer, err := h.authService.CurrentOfficer(c.Context(), identity)
	if err != nil {
		return writeError(c, err)
	}

	return response.Created(c, "Valid Token", officer.ToSummary())
}

// UpdateProfile handles partial profile updates
// @Summary Update profile
// @Description Apply the non-empty fields to the officer's profile
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body UpdateProfileRequest true "Profile fields"
// @Success 200 {object} response.Response{data=models.OfficerSummary}
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /profile [post]
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	var req UpdateProfileRequest
	if err := parseBody(c, &req); err != nil {
		return writeError(c, err)
	}

	phone := req.Phone
	if phone == nil {
		phone = req.ContactNumber
	}

	summary, err := h.authService.UpdateProfile(c.Context(), &services.UpdateProfileInput{
		OfficerSVC:    req.OfficerSVC,
		FullName:      req.FullName,
		PoliceStation: req.PoliceStation,
		OfficerRank:   req.OfficerRank,
		Phone:         phone,
		Email:         req.Email,
	})
	if err != nil {
		return writeError(c, err)
	}

	return response.Success(c, "Profile updated successfully", summary)
}
