package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gimhantharuke456/policeappbackend/internal/adapters/persistence/models"
	"github.com/gimhantharuke456/policeappbackend/internal/adapters/persistence/repositories"
	"github.com/gimhantharuke456/policeappbackend/internal/core/domain"
	"github.com/gimhantharuke456/policeappbackend/internal/pkg/jwt"
	"github.com/gimhantharuke456/policeappbackend/internal/pkg/metrics"
	"github.com/gimhantharuke456/policeappbackend/internal/pkg/password"
	"github.com/gimhantharuke456/policeappbackend/internal/pkg/validation"

	"github.com/rs/zerolog/log"
)

// AuthService handles registration, login and token verification
type AuthService struct {
	officerRepo  repositories.OfficerRepository
	rosterRepo   repositories.RosterRepository
	hasher       *password.Hasher
	tokens       *jwt.Manager
	queryTimeout time.Duration
}

// NewAuthService creates a new auth service
func NewAuthService(
	officerRepo repositories.OfficerRepository,
	rosterRepo repositories.RosterRepository,
	hasher *password.Hasher,
	tokens *jwt.Manager,
	queryTimeout time.Duration,
) *AuthService {
	return &AuthService{
		officerRepo:  officerRepo,
		rosterRepo:   rosterRepo,
		hasher:       hasher,
		tokens:       tokens,
		queryTimeout: queryTimeout,
	}
}

// RegisterInput represents registration input
type RegisterInput struct {
	FullName      string `json:"fullName" validate:"required"`
	OfficerSVC    string `json:"officerSVC" validate:"required"`
	OfficerRank   string `json:"officerRank" validate:"required"`
	PoliceStation string `json:"policeStation" validate:"required"`
	// Password is checked after the roster gate
	Password string `json:"Password"`
}

// LoginInput represents login input
type LoginInput struct {
	OfficerSVC string `json:"officerSVC" validate:"required"`
	Password   string `json:"Password" validate:"required"`
}

// UpdateProfileInput is a sparse update; nil or blank fields are left unchanged
type UpdateProfileInput struct {
	OfficerSVC    string  `json:"officerSVC"`
	FullName      *string `json:"fullName"`
	PoliceStation *string `json:"policeStation"`
	OfficerRank   *string `json:"officerRank"`
	Phone         *string `json:"phone"`
	Email         *string `json:"email"`
}

// AuthResponse is returned by register and login
type AuthResponse struct {
	Token         string `json:"token"`
	OfficerSVC    string `json:"officerSVC"`
	FullName      string `json:"fullName"`
	PoliceStation string `json:"policeStation"`
}

// Register creates an account for a roster-authorized service number
func (s *AuthService) Register(ctx context.Context, input *RegisterInput) (_ *AuthResponse, err error) {
	defer func() { metrics.RecordAuth("register", err) }()

	input.OfficerSVC = strings.TrimSpace(input.OfficerSVC)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	// 1. Roster gate
	if err := s.checkRoster(ctx, input.OfficerSVC); err != nil {
		return nil, err
	}

	// 2. Check if service number already registered
	exists, err := s.existsBySVC(ctx, input.OfficerSVC)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.Errorf(domain.ErrAlreadyExists, "User already exists")
	}

	// 3. Hash password
	if !password.ValidatePassword(input.Password) {
		return nil, domain.Validation("Password must be at least %d characters", password.MinLength)
	}
	hashedPassword, err := s.hasher.Hash(ctx, input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	// 4. Create officer
	officer := &models.Officer{
		FullName:      strings.TrimSpace(input.FullName),
		OfficerSVC:    input.OfficerSVC,
		OfficerRank:   strings.TrimSpace(input.OfficerRank),
		PoliceStation: strings.TrimSpace(input.PoliceStation),
		Password:      hashedPassword,
	}
	if err := s.createOfficer(ctx, officer); err != nil {
		if repositories.IsDuplicateKey(err) {
			return nil, domain.Errorf(domain.ErrAlreadyExists, "User already exists")
		}
		return nil, fmt.Errorf("create officer: %w", err)
	}

	// 5. Generate token
	resp, err := s.authResponse(officer)
	if err != nil {
		return nil, err
	}

	log.Info().Str("officerSVC", officer.OfficerSVC).Msg("✅ Officer registered")
	return resp, nil
}

// Login authenticates an officer; unknown service numbers and wrong
// passwords fail identically
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (_ *AuthResponse, err error) {
	defer func() { metrics.RecordAuth("login", err) }()

	input.OfficerSVC = strings.TrimSpace(input.OfficerSVC)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	// 1. Find officer by service number
	officer, err := s.getBySVC(ctx, input.OfficerSVC)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get officer: %w", err)
	}

	// 2. Verify password
	if !s.hasher.Verify(ctx, input.Password, officer.Password) {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, domain.ErrInvalidCredentials
	}

	// 3. Generate token
	resp, err := s.authResponse(officer)
	if err != nil {
		return nil, err
	}

	log.Info().Str("officerSVC", officer.OfficerSVC).Msg("✅ Officer logged in")
	return resp, nil
}

// Verify checks an Authorization header value and returns the token identity
func (s *AuthService) Verify(authorization string) (_ *domain.TokenIdentity, err error) {
	defer func() { metrics.RecordAuth("verify", err) }()

	token, err := BearerToken(authorization)
	if err != nil {
		return nil, err
	}

	claims, err := s.tokens.Validate(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.Errorf(domain.ErrInvalidToken, "Token has expired")
		}
		return nil, domain.ErrInvalidToken
	}

	return &domain.TokenIdentity{ID: claims.ID, OfficerSVC: claims.OfficerSVC}, nil
}

// CurrentOfficer re-fetches the officer named by a verified token
func (s *AuthService) CurrentOfficer(ctx context.Context, identity *domain.TokenIdentity) (*models.Officer, error) {
	officer, err := s.getBySVC(ctx, identity.OfficerSVC)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, domain.Errorf(domain.ErrUnauthenticated, "No User Found")
		}
		return nil, fmt.Errorf("get officer: %w", err)
	}
	return officer, nil
}

// UpdateProfile applies only the fields present in input
func (s *AuthService) UpdateProfile(ctx context.Context, input *UpdateProfileInput) (*models.OfficerSummary, error) {
	svc := strings.TrimSpace(input.OfficerSVC)
	if svc == "" {
		return nil, domain.Validation("Officer SVC is required")
	}

	fields := make(map[string]interface{})
	if v, ok := optional(input.FullName); ok {
		fields["full_name"] = v
	}
	if v, ok := optional(input.PoliceStation); ok {
		fields["police_station"] = v
	}
	if v, ok := optional(input.OfficerRank); ok {
		fields["officer_rank"] = v
	}
	if v, ok := optional(input.Phone); ok {
		fields["phone"] = v
	}
	if v, ok := optional(input.Email); ok {
		if err := validation.Validator().Var(v, "email"); err != nil {
			return nil, domain.Validation("email must be a valid email address")
		}
		taken, err := s.emailTaken(ctx, v, svc)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, domain.Errorf(domain.ErrAlreadyExists, "Email is already in use")
		}
		fields["email"] = v
	}

	storeCtx, cancel := storeContext(ctx, s.queryTimeout)
	defer cancel()

	officer, err := s.officerRepo.UpdateFields(storeCtx, svc, fields)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, domain.Errorf(domain.ErrNotFound, "User not found")
		}
		if repositories.IsDuplicateKey(err) {
			return nil, domain.Errorf(domain.ErrAlreadyExists, "Email is already in use")
		}
		return nil, fmt.Errorf("update officer: %w", err)
	}

	log.Info().Str("officerSVC", svc).Int("fields", len(fields)).Msg("✅ Profile updated")
	return officer.ToSummary(), nil
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" value
func BearerToken(authorization string) (string, error) {
	authorization = strings.TrimSpace(authorization)
	if authorization == "" {
		return "", domain.ErrUnauthenticated
	}
	scheme, token, ok := strings.Cut(authorization, " ")
	token = strings.TrimSpace(token)
	if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", domain.Validation("Authorization header must be 'Bearer <token>'")
	}
	return token, nil
}

func (s *AuthService) authResponse(officer *models.Officer) (*AuthResponse, error) {
	token, err := s.tokens.Generate(officer.ID, officer.OfficerSVC)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &AuthResponse{
		Token:         token,
		OfficerSVC:    officer.OfficerSVC,
		FullName:      officer.FullName,
		PoliceStation: officer.PoliceStation,
	}, nil
}

func (s *AuthService) checkRoster(ctx context.Context, svc string) error {
	storeCtx, cancel := storeContext(ctx, s.queryTimeout)
	defer cancel()

	if _, err := s.rosterRepo.GetActiveBySVC(storeCtx, svc); err != nil {
		if repositories.IsNotFound(err) {
			return domain.ErrNotAuthorized
		}
		return fmt.Errorf("roster lookup: %w", err)
	}
	return nil
}

func (s *AuthService) existsBySVC(ctx context.Context, svc string) (bool, error) {
	storeCtx, cancel := storeContext(ctx, s.queryTimeout)
	defer cancel()

	exists, err := s.officerRepo.ExistsBySVC(storeCtx, svc)
	if err != nil {
		return false, fmt.Errorf("officer lookup: %w", err)
	}
	return exists, nil
}

func (s *AuthService) emailTaken(ctx context.Context, email, svc string) (bool, error) {
	storeCtx, cancel := storeContext(ctx, s.queryTimeout)
	defer cancel()

	taken, err := s.officerRepo.ExistsByEmailExcept(storeCtx, email, svc)
	if err != nil {
		return false, fmt.Errorf("email lookup: %w", err)
	}
	return taken, nil
}

func (s *AuthService) createOfficer(ctx context.Context, officer *models.Officer) error {
	storeCtx, cancel := storeContext(ctx, s.queryTimeout)
	defer cancel()
	return s.officerRepo.Create(storeCtx, officer)
}

func (s *AuthService) getBySVC(ctx context.Context, svc string) (*models.Officer, error) {
	storeCtx, cancel := storeContext(ctx, s.queryTimeout)
	defer cancel()
	return s.officerRepo.GetBySVC(storeCtx, svc)
}
