package services

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/gimhantharuke456/policeappbackend/internal/adapters/persistence/models"
	"github.com/gimhantharuke456/policeappbackend/internal/adapters/persistence/repositories"
	"github.com/gimhantharuke456/policeappbackend/internal/core/domain"
	"github.com/gimhantharuke456/policeappbackend/internal/pkg/metrics"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ViolationService files and queries tourist violation records
type ViolationService struct {
	violationRepo repositories.ViolationRepository
	queryTimeout  time.Duration
	now           func() time.Time
}

// NewViolationService creates a new violation service
func NewViolationService(violationRepo repositories.ViolationRepository, queryTimeout time.Duration) *ViolationService {
	return &ViolationService{
		violationRepo: violationRepo,
		queryTimeout:  queryTimeout,
		now:           time.Now,
	}
}

// ViolationForm is the payload filed by an officer
type ViolationForm struct {
	Tourist   domain.Tourist          `json:"tourist" validate:"required"`
	Violation domain.ViolationDetails `json:"violation" validate:"required"`
	Officer   domain.OfficerRef       `json:"officer" validate:"required"`
	Timestamp string                  `json:"timestamp"`
}

// CreateViolationInput represents the create request body
type CreateViolationInput struct {
	FormData *ViolationForm `json:"formData" validate:"required"`
}

// ViolationQuery holds the optional filters of a search; keys mirror the stored document paths
type ViolationQuery struct {
	ID              string `json:"_id"`
	TouristName     string `json:"tourist.name"`
	TouristPassport string `json:"tourist.passport"`
	TouristCountry  string `json:"tourist.country"`
	ViolationType   string `json:"violation.type"`
	ViolationDate   string `json:"violation.date"`
	OfficerID       string `json:"officer.id"`
	Status          string `json:"status"`
}

// UpdateStatusInput represents a status transition
type UpdateStatusInput struct {
	ViolationID    string          `json:"violationId" validate:"required"`
	Status         string          `json:"status" validate:"required"`
	PaymentDetails *domain.Payment `json:"paymentDetails"`
}

// FindViolationsOutput is a search result
type FindViolationsOutput struct {
	Violations []*models.ViolationResponse `json:"violations"`
	Total      int64                       `json:"total"`
}

// ReferenceNumber formats VIO-YYYYMMDD-NNNN with a random NNNN in 1000..9999.
// Uniqueness is left to the unique index.
func ReferenceNumber(t time.Time) string {
	return fmt.Sprintf("VIO-%s-%d", t.Format("20060102"), 1000+rand.IntN(9000))
}

// Create files a violation with a fresh reference number and pending status
func (s *ViolationService) Create(ctx context.Context, input *CreateViolationInput) (*models.ViolationResponse, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	form := input.FormData

	now := s.now()
	timestamp := strings.TrimSpace(form.Timestamp)
	if timestamp == "" {
		timestamp = now.UTC().Format(time.RFC3339)
	}

	violation := &models.Violation{
		ID: uuid.NewString(),
		Tourist: models.TouristInfo{
			Name:       form.Tourist.Name,
			Passport:   form.Tourist.Passport,
			Country:    form.Tourist.Country,
			Identifier: form.Tourist.ID,
		},
		Details: models.ViolationInfo{
			Type:     form.Violation.Type,
			Date:     form.Violation.Date,
			Time:     form.Violation.Time,
			Location: form.Violation.Location,
			Fine:     form.Violation.Fine,
		},
		Officer: models.OfficerInfo{
			Identifier: form.Officer.ID,
			Name:       form.Officer.Name,
		},
		ReferenceNumber: ReferenceNumber(now),
		Status:          string(domain.StatusPending),
		Timestamp:       timestamp,
	}

	storeCtx, cancel := storeContext(ctx, s.queryTimeout)
	defer cancel()

	if err := s.violationRepo.Create(storeCtx, violation); err != nil {
		if repositories.IsDuplicateKey(err) {
			return nil, domain.Errorf(domain.ErrAlreadyExists, "Reference number %s already exists, please retry", violation.ReferenceNumber)
		}
		return nil, fmt.Errorf("create violation: %w", err)
	}

	metrics.ViolationsCreated.Inc()
	log.Info().
		Str("referenceNumber", violation.ReferenceNumber).
		Str("officerId", violation.Officer.Identifier).
		Msg("✅ Violation recorded")
	return violation.ToResponse(), nil
}

// Find returns violations matching every non-empty filter, newest first
func (s *ViolationService) Find(ctx context.Context, query *ViolationQuery) (*FindViolationsOutput, error) {
	if query.Status != "" && !domain.ViolationStatus(query.Status).Valid() {
		return nil, domain.Validation("Invalid status value")
	}

	filter := repositories.ViolationFilter{
		ID:              strings.TrimSpace(query.ID),
		TouristName:     strings.TrimSpace(query.TouristName),
		TouristPassport: strings.TrimSpace(query.TouristPassport),
		TouristCountry:  strings.TrimSpace(query.TouristCountry),
		ViolationType:   strings.TrimSpace(query.ViolationType),
		ViolationDate:   strings.TrimSpace(query.ViolationDate),
		OfficerID:       strings.TrimSpace(query.OfficerID),
		Status:          query.Status,
	}
	return s.find(ctx, filter)
}

// GetByID gets one violation
func (s *ViolationService) GetByID(ctx context.Context, id string) (*models.ViolationResponse, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, domain.Validation("Violation ID is required")
	}

	storeCtx, cancel := storeContext(ctx, s.queryTimeout)
	defer cancel()

	violation, err := s.violationRepo.GetByID(storeCtx, id)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, domain.Errorf(domain.ErrNotFound, "Violation not found")
		}
		return nil, fmt.Errorf("get violation: %w", err)
	}
	return violation.ToResponse(), nil
}

// ByOfficer lists violations filed by one officer
func (s *ViolationService) ByOfficer(ctx context.Context, officerID string) (*FindViolationsOutput, error) {
	officerID = strings.TrimSpace(officerID)
	if officerID == "" {
		return nil, domain.Validation("Officer ID is required")
	}
	return s.find(ctx, repositories.ViolationFilter{OfficerID: officerID})
}

// ByTourist lists violations for a passport number, or a tourist id when
// no passport is given
func (s *ViolationService) ByTourist(ctx context.Context, passport, touristID string) (*FindViolationsOutput, error) {
	passport = strings.TrimSpace(passport)
	touristID = strings.TrimSpace(touristID)

	var filter repositories.ViolationFilter
	switch {
	case passport != "":
		filter.TouristPassport = passport
	case touristID != "":
		filter.TouristID = touristID
	default:
		return nil, domain.Validation("Passport number or ID is required")
	}
	return s.find(ctx, filter)
}

// UpdateStatus moves a violation to a new status. Payment details are
// recorded only for "paid"; other transitions leave the payment untouched.
func (s *ViolationService) UpdateStatus(ctx context.Context, input *UpdateStatusInput) (*models.ViolationResponse, error) {
	input.ViolationID = strings.TrimSpace(input.ViolationID)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	status := domain.ViolationStatus(input.Status)
	if !status.Valid() {
		return nil, domain.Validation("Invalid status value")
	}

	fields := map[string]interface{}{
		"status": string(status),
	}
	if status == domain.StatusPaid && input.PaymentDetails != nil {
		p := input.PaymentDetails
		date := strings.TrimSpace(p.Date)
		if date == "" {
			date = s.now().UTC().Format(time.RFC3339)
		}
		fields["payment_amount"] = p.Amount
		fields["payment_date"] = date
		fields["payment_method"] = p.Method
		fields["payment_receipt"] = p.Receipt
	}

	storeCtx, cancel := storeContext(ctx, s.queryTimeout)
	defer cancel()

	violation, err := s.violationRepo.UpdateStatus(storeCtx, input.ViolationID, fields)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, domain.Errorf(domain.ErrNotFound, "Violation not found")
		}
		return nil, fmt.Errorf("update violation status: %w", err)
	}

	log.Info().
		Str("referenceNumber", violation.ReferenceNumber).
		Str("status", violation.Status).
		Msg("✅ Violation status updated")
	return violation.ToResponse(), nil
}

func (s *ViolationService) find(ctx context.Context, filter repositories.ViolationFilter) (*FindViolationsOutput, error) {
	storeCtx, cancel := storeContext(ctx, s.queryTimeout)
	defer cancel()

	violations, total, err := s.violationRepo.Find(storeCtx, filter)
	if err != nil {
		return nil, fmt.Errorf("find violations: %w", err)
	}
	return &FindViolationsOutput{
		Violations: models.ToViolationResponses(violations),
		Total:      total,
	}, nil
}
