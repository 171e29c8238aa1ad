package config

import (
	"context"

	"github.com/gimhantharuke456/policeappbackend/internal/adapters/persistence/models"
	"github.com/gimhantharuke456/policeappbackend/internal/adapters/persistence/repositories"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	roster repositories.RosterRepository
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{roster: repositories.NewRosterRepository(db)}
}

// Run executes all seeders
// This is for development/testing only; production rosters are imported with rosterctl
func (s *Seeder) Run(ctx context.Context, rosterSeed []string) error {
	log.Info().Msg("🌱 Running database seeders...")

	if err := s.seedRoster(ctx, rosterSeed); err != nil {
		log.Warn().Err(err).Msg("⚠️ Roster seeder skipped")
	}

	log.Info().Msg("✅ Database seeding completed")
	return nil
}

// seedRoster authorizes the listed service numbers for registration
func (s *Seeder) seedRoster(ctx context.Context, svcs []string) error {
	if len(svcs) == 0 {
		return nil
	}

	entries := make([]*models.RosterEntry, 0, len(svcs))
	for _, svc := range svcs {
		entries = append(entries, &models.RosterEntry{OfficerSVC: svc, IsActive: true})
	}

	inserted, err := s.roster.BulkInsert(ctx, entries)
	if err != nil {
		return err
	}

	log.Info().Int64("inserted", inserted).Int("requested", len(svcs)).Msg("✅ Roster seeded")
	return nil
}
