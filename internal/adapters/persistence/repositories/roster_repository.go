package repositories

import (
	"context"

	"github.com/gimhantharuke456/policeappbackend/internal/adapters/persistence/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// rosterBatchSize bounds a single multi-row insert
const rosterBatchSize = 500

// rosterRepository implements RosterRepository interface
type rosterRepository struct {
	db *gorm.DB
}

// NewRosterRepository creates a new roster repository
func NewRosterRepository(db *gorm.DB) RosterRepository {
	return &rosterRepository{db: db}
}

// Create inserts a single roster entry
func (r *rosterRepository) Create(ctx context.Context, entry *models.RosterEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// BulkInsert inserts entries, silently skipping service numbers already on the roster.
// Returns the number of rows actually inserted.
func (r *rosterRepository) BulkInsert(ctx context.Context, entries []*models.RosterEntry) (int64, error) {
	if len(entries) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "officer_svc"}}, DoNothing: true}).
		CreateInBatches(entries, rosterBatchSize)
	return result.RowsAffected, result.Error
}

// GetActiveBySVC gets the active roster entry for a service number
func (r *rosterRepository) GetActiveBySVC(ctx context.Context, officerSVC string) (*models.RosterEntry, error) {
	var entry models.RosterEntry
	err := r.db.WithContext(ctx).
		Where("officer_svc = ?", officerSVC).
		Where("is_active = ?", true).
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// Deactivate marks a roster entry inactive
func (r *rosterRepository) Deactivate(ctx context.Context, officerSVC string) error {
	var entry models.RosterEntry
	if err := r.db.WithContext(ctx).Where("officer_svc = ?", officerSVC).First(&entry).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Model(&entry).Update("is_active", false).Error
}

// List lists roster entries by service number
func (r *rosterRepository) List(ctx context.Context, offset, limit int) ([]*models.RosterEntry, int64, error) {
	var entries []*models.RosterEntry
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.RosterEntry{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).Order("officer_svc ASC").Offset(offset).Limit(limit).Find(&entries).Error; err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}
