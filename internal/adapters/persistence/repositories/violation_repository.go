package repositories

import (
	"context"

	"github.com/gimhantharuke456/policeappbackend/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// violationRepository implements ViolationRepository interface
type violationRepository struct {
	db *gorm.DB
}

// NewViolationRepository creates a new violation repository
func NewViolationRepository(db *gorm.DB) ViolationRepository {
	return &violationRepository{db: db}
}

// Create inserts a violation record
func (r *violationRepository) Create(ctx context.Context, violation *models.Violation) error {
	return r.db.WithContext(ctx).Create(violation).Error
}

// GetByID gets a violation by ID
func (r *violationRepository) GetByID(ctx context.Context, id string) (*models.Violation, error) {
	var violation models.Violation
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&violation).Error
	if err != nil {
		return nil, err
	}
	return &violation, nil
}

// Find returns violations matching every non-empty filter field, newest first
func (r *violationRepository) Find(ctx context.Context, filter ViolationFilter) ([]*models.Violation, int64, error) {
	var violations []*models.Violation
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Violation{})

	exact := []struct {
		column string
		value  string
	}{
		{"id", filter.ID},
		{"tourist_passport", filter.TouristPassport},
		{"tourist_country", filter.TouristCountry},
		{"tourist_identifier", filter.TouristID},
		{"violation_type", filter.ViolationType},
		{"violation_date", filter.ViolationDate},
		{"officer_identifier", filter.OfficerID},
		{"status", filter.Status},
	}
	for _, cond := range exact {
		if cond.value != "" {
			query = query.Where(cond.column+" = ?", cond.value)
		}
	}
	if filter.TouristName != "" {
		query = query.Where("LOWER(tourist_name) LIKE ? ESCAPE '!'", likePattern(filter.TouristName))
	}
	query = query.Session(&gorm.Session{})

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("created_at DESC").Order("id DESC").Find(&violations).Error; err != nil {
		return nil, 0, err
	}

	return violations, total, nil
}

// UpdateStatus applies fields to one violation and returns the fresh row
func (r *violationRepository) UpdateStatus(ctx context.Context, id string, fields map[string]interface{}) (*models.Violation, error) {
	var violation models.Violation
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&violation).Error; err != nil {
			return err
		}
		if err := tx.Model(&violation).Updates(fields).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).First(&violation).Error
	})
	if err != nil {
		return nil, err
	}
	return &violation, nil
}
