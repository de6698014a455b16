package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/medbook/clinic-scheduler/internal/domain/schedule"
	"github.com/medbook/clinic-scheduler/internal/models"
)

type ScheduleGormRepository struct {
	db *gorm.DB
}

func NewScheduleGormRepository(db *gorm.DB) *ScheduleGormRepository {
	return &ScheduleGormRepository{db: db}
}

// ReplaceWeek deletes the doctor's whole week and reinserts it in one
// transaction. Schedules are never patched row by row.
func (r *ScheduleGormRepository) ReplaceWeek(
	ctx context.Context,
	doctorID uint,
	rules []models.ScheduleRule,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("doctor_id = ?", doctorID).
			Delete(&models.ScheduleRule{}).Error; err != nil {
			return err
		}

		if len(rules) == 0 {
			return nil
		}
		return tx.Create(&rules).Error
	})
}

func (r *ScheduleGormRepository) ListRules(
	ctx context.Context,
	doctorID uint,
) ([]models.ScheduleRule, error) {

	var rules []models.ScheduleRule
	if err := r.db.WithContext(ctx).
		Where("doctor_id = ?", doctorID).
		Order("weekday ASC, start_time ASC").
		Find(&rules).Error; err != nil {
		return nil, err
	}

	return rules, nil
}

// Compile-time check
var _ domain.Repository = (*ScheduleGormRepository)(nil)
