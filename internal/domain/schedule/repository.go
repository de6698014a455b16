package schedule

import (
	"context"

	"github.com/medbook/clinic-scheduler/internal/models"
)

type Repository interface {
	// ReplaceWeek atomically deletes every rule for the doctor and
	// inserts the given set. Schedules are never partially patched.
	ReplaceWeek(
		ctx context.Context,
		doctorID uint,
		rules []models.ScheduleRule,
	) error

	ListRules(
		ctx context.Context,
		doctorID uint,
	) ([]models.ScheduleRule, error)
}
