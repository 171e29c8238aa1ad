package services

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gimhantharuke456/policeappbackend/internal/adapters/persistence/models"
	"github.com/gimhantharuke456/policeappbackend/internal/adapters/persistence/repositories"
	"github.com/gimhantharuke456/policeappbackend/internal/core/domain"
	"github.com/gimhantharuke456/policeappbackend/internal/pkg/pagination"

	"github.com/rs/zerolog/log"
)

// RosterService manages the service numbers allowed to self-register
type RosterService struct {
	rosterRepo   repositories.RosterRepository
	queryTimeout time.Duration
}

// NewRosterService creates a new roster service
func NewRosterService(rosterRepo repositories.RosterRepository, queryTimeout time.Duration) *RosterService {
	return &RosterService{rosterRepo: rosterRepo, queryTimeout: queryTimeout}
}

// RosterEntryInput is one service number to authorize
type RosterEntryInput struct {
	OfficerSVC    string `json:"officerSVC" validate:"required"`
	OfficerRank   string `json:"officerRank"`
	PoliceStation string `json:"policeStation"`
}

// AddRosterInput represents an admin bulk insert
type AddRosterInput struct {
	Entries []RosterEntryInput `json:"entries" validate:"required,min=1,dive"`
}

// ImportResult reports how many entries were inserted and skipped
type ImportResult struct {
	Inserted int64 `json:"inserted"`
	Skipped  int64 `json:"skipped"`
}

// ListRosterOutput represents a roster page
type ListRosterOutput struct {
	Entries    []*models.RosterEntry `json:"entries"`
	Pagination *pagination.Meta      `json:"pagination"`
}

// Add inserts entries; service numbers already on the roster are skipped
func (s *RosterService) Add(ctx context.Context, input *AddRosterInput) (*ImportResult, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(input.Entries))
	entries := make([]*models.RosterEntry, 0, len(input.Entries))
	for _, e := range input.Entries {
		svc := strings.TrimSpace(e.OfficerSVC)
		if svc == "" {
			return nil, domain.Validation("officerSVC is required")
		}
		if _, dup := seen[svc]; dup {
			continue
		}
		seen[svc] = struct{}{}
		entries = append(entries, &models.RosterEntry{
			OfficerSVC:    svc,
			OfficerRank:   strings.TrimSpace(e.OfficerRank),
			PoliceStation: strings.TrimSpace(e.PoliceStation),
			IsActive:      true,
		})
	}

	storeCtx, cancel := storeContext(ctx, s.queryTimeout)
	defer cancel()

	inserted, err := s.rosterRepo.BulkInsert(storeCtx, entries)
	if err != nil {
		return nil, fmt.Errorf("roster insert: %w", err)
	}

	result := &ImportResult{
		Inserted: inserted,
		Skipped:  int64(len(input.Entries)) - inserted,
	}
	log.Info().Int64("inserted", result.Inserted).Int64("skipped", result.Skipped).Msg("✅ Roster entries added")
	return result, nil
}

// ImportCSV reads officerSVC,officerRank,policeStation rows and adds them.
// A first row whose first cell is "officerSVC" is treated as a header.
func (s *RosterService) ImportCSV(ctx context.Context, r io.Reader) (*ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	input := &AddRosterInput{}
	for line := 1; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, domain.Validation("csv line %d: %v", line, err)
		}
		if len(record) == 0 || strings.TrimSpace(record[0]) == "" {
			continue
		}
		if line == 1 && strings.EqualFold(strings.TrimSpace(record[0]), "officerSVC") {
			continue
		}
		entry := RosterEntryInput{OfficerSVC: record[0]}
		if len(record) > 1 {
			entry.OfficerRank = record[1]
		}
		if len(record) > 2 {
			entry.PoliceStation = record[2]
		}
		input.Entries = append(input.Entries, entry)
	}

	if len(input.Entries) == 0 {
		return nil, domain.Validation("csv contains no roster entries")
	}
	return s.Add(ctx, input)
}

// List lists roster entries by service number
func (s *RosterService) List(ctx context.Context, params *pagination.Params) (*ListRosterOutput, error) {
	storeCtx, cancel := storeContext(ctx, s.queryTimeout)
	defer cancel()

	entries, total, err := s.rosterRepo.List(storeCtx, params.Offset, params.Limit)
	if err != nil {
		return nil, fmt.Errorf("list roster: %w", err)
	}
	return &ListRosterOutput{
		Entries:    entries,
		Pagination: pagination.GetMeta(params, total),
	}, nil
}

// Deactivate withdraws a service number's registration permission.
// Existing accounts are not affected.
func (s *RosterService) Deactivate(ctx context.Context, officerSVC string) error {
	storeCtx, cancel := storeContext(ctx, s.queryTimeout)
	defer cancel()

	if err := s.rosterRepo.Deactivate(storeCtx, strings.TrimSpace(officerSVC)); err != nil {
		if repositories.IsNotFound(err) {
			return domain.Errorf(domain.ErrNotFound, "Roster entry not found")
		}
		return fmt.Errorf("deactivate roster entry: %w", err)
	}
	log.Info().Str("officerSVC", officerSVC).Msg("✅ Roster entry deactivated")
	return nil
}
