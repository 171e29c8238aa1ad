package repositories

import (
	"context"

	"github.com/gimhantharuke456/policeappbackend/internal/adapters/persistence/models"
)

// OfficerRepository defines officer account persistence
type OfficerRepository interface {
	Create(ctx context.Context, officer *models.Officer) error
	GetBySVC(ctx context.Context, officerSVC string) (*models.Officer, error)
	ExistsBySVC(ctx context.Context, officerSVC string) (bool, error)
	ExistsByEmailExcept(ctx context.Context, email, officerSVC string) (bool, error)
	UpdateFields(ctx context.Context, officerSVC string, fields map[string]interface{}) (*models.Officer, error)
	List(ctx context.Context, search string, offset, limit int) ([]*models.Officer, int64, error)
}

// RosterRepository defines access to the registration roster
type RosterRepository interface {
	Create(ctx context.Context, entry *models.RosterEntry) error
	BulkInsert(ctx context.Context, entries []*models.RosterEntry) (int64, error)
	GetActiveBySVC(ctx context.Context, officerSVC string) (*models.RosterEntry, error)
	Deactivate(ctx context.Context, officerSVC string) error
	List(ctx context.Context, offset, limit int) ([]*models.RosterEntry, int64, error)
}

// ViolationFilter holds optional equality/substring conditions; empty fields are ignored
type ViolationFilter struct {
	ID              string
	TouristName     string // case-insensitive substring
	TouristPassport string
	TouristCountry  string
	TouristID       string
	ViolationType   string
	ViolationDate   string
	OfficerID       string
	Status          string
}

// ViolationRepository defines violation record persistence
type ViolationRepository interface {
	Create(ctx context.Context, violation *models.Violation) error
	GetByID(ctx context.Context, id string) (*models.Violation, error)
	Find(ctx context.Context, filter ViolationFilter) ([]*models.Violation, int64, error)
	UpdateStatus(ctx context.Context, id string, fields map[string]interface{}) (*models.Violation, error)
}
