package repositories

import (
	"context"

	"github.com/gimhantharuke456/policeappbackend/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// officerRepository implements OfficerRepository interface
type officerRepository struct {
	db *gorm.DB
}

// NewOfficerRepository creates a new officer repository
func NewOfficerRepository(db *gorm.DB) OfficerRepository {
	return &officerRepository{db: db}
}

// Create creates a new officer; a duplicate service number surfaces as a unique-key error
func (r *officerRepository) Create(ctx context.Context, officer *models.Officer) error {
	return r.db.WithContext(ctx).Create(officer).Error
}

// GetBySVC gets an officer by service number
func (r *officerRepository) GetBySVC(ctx context.Context, officerSVC string) (*models.Officer, error) {
	var officer models.Officer
	err := r.db.WithContext(ctx).Where("officer_svc = ?", officerSVC).First(&officer).Error
	if err != nil {
		return nil, err
	}
	return &officer, nil
}

// ExistsBySVC checks if a service number already has an account
func (r *officerRepository) ExistsBySVC(ctx context.Context, officerSVC string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Officer{}).Where("officer_svc = ?", officerSVC).Count(&count).Error
	return count > 0, err
}

// ExistsByEmailExcept checks if another officer already uses email
func (r *officerRepository) ExistsByEmailExcept(ctx context.Context, email, officerSVC string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Officer{}).
		Where("email = ?", email).
		Where("officer_svc <> ?", officerSVC).
		Count(&count).Error
	return count > 0, err
}

// UpdateFields applies a sparse update and returns the fresh row.
// updated_at is refreshed by gorm on every Updates call.
func (r *officerRepository) UpdateFields(ctx context.Context, officerSVC string, fields map[string]interface{}) (*models.Officer, error) {
	var officer models.Officer
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("officer_svc = ?", officerSVC).First(&officer).Error; err != nil {
			return err
		}
		if len(fields) == 0 {
			return nil
		}
		if err := tx.Model(&officer).Updates(fields).Error; err != nil {
			return err
		}
		return tx.Where("officer_svc = ?", officerSVC).First(&officer).Error
	})
	if err != nil {
		return nil, err
	}
	return &officer, nil
}

// List lists officers newest first, optionally filtered by a substring search
func (r *officerRepository) List(ctx context.Context, search string, offset, limit int) ([]*models.Officer, int64, error) {
	var officers []*models.Officer
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Officer{})
	if search != "" {
		pattern := likePattern(search)
		query = query.Where(
			"LOWER(full_name) LIKE ? ESCAPE '!' OR LOWER(officer_svc) LIKE ? ESCAPE '!' OR LOWER(officer_rank) LIKE ? ESCAPE '!' OR LOWER(police_station) LIKE ? ESCAPE '!'",
			pattern, pattern, pattern, pattern,
		)
	}
	query = query.Session(&gorm.Session{})

	// Count total
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("created_at DESC").Order("id DESC").Offset(offset).Limit(limit).Find(&officers).Error; err != nil {
		return nil, 0, err
	}

	return officers, total, nil
}
