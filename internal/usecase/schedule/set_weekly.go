package schedule

import (
	"context"
	"fmt"

	"github.com/medbook/clinic-scheduler/internal/audit"
	domain "github.com/medbook/clinic-scheduler/internal/domain/schedule"
	"github.com/medbook/clinic-scheduler/internal/models"
)

type SetWeeklyScheduleInput struct {
	DoctorID       uint
	SessionMinutes int
	Price          int64
	Days           []domain.DayConfig
}

type SetWeeklySchedule struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewSetWeeklySchedule(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *SetWeeklySchedule {
	return &SetWeeklySchedule{
		repo:  repo,
		audit: audit,
	}
}

func (uc *SetWeeklySchedule) Execute(
	ctx context.Context,
	in SetWeeklyScheduleInput,
) error {

	if err := domain.ValidateWeek(in.SessionMinutes, in.Price, in.Days); err != nil {
		return err
	}

	var rules []models.ScheduleRule
	for _, day := range in.Days {
		if !day.Enabled {
			continue
		}
		for _, w := range day.Windows {
			rules = append(rules, models.ScheduleRule{
				DoctorID:       in.DoctorID,
				Weekday:        day.Weekday,
				StartTime:      w.Start,
				EndTime:        w.End,
				SessionMinutes: in.SessionMinutes,
				Price:          in.Price,
			})
		}
	}

	if err := uc.repo.ReplaceWeek(ctx, in.DoctorID, rules); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.DoctorID,
		Action:   "schedule_replaced",
		Entity:   "schedule_rule",
		EntityID: fmt.Sprintf("doctor:%d", in.DoctorID),
		Metadata: map[string]any{"rules": len(rules)},
	})

	return nil
}
