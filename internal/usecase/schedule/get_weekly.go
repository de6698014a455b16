package schedule

import (
	"context"

	domain "github.com/medbook/clinic-scheduler/internal/domain/schedule"
)

// WeeklySchedule always carries all 7 weekdays. A weekday without rules
// is reported with Enabled=false rather than omitted, so clients never
// have to guess whether a missing day means "closed" or "unknown".
type WeeklySchedule struct {
	SessionMinutes int                `json:"session_minutes"`
	Price          int64              `json:"price"`
	Days           []domain.DayConfig `json:"days"`
}

type GetWeeklySchedule struct {
	repo domain.Repository
}

func NewGetWeeklySchedule(repo domain.Repository) *GetWeeklySchedule {
	return &GetWeeklySchedule{repo: repo}
}

func (uc *GetWeeklySchedule) Execute(
	ctx context.Context,
	doctorID uint,
) (*WeeklySchedule, error) {

	rules, err := uc.repo.ListRules(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	out := &WeeklySchedule{
		Days: make([]domain.DayConfig, 7),
	}
	for i := range out.Days {
		out.Days[i] = domain.DayConfig{
			Weekday: i + 1,
			Enabled: false,
			Windows: []domain.Window{},
		}
	}

	for _, r := range rules {
		if r.Weekday < 1 || r.Weekday > 7 {
			continue
		}
		day := &out.Days[r.Weekday-1]
		day.Enabled = true
		day.Windows = append(day.Windows, domain.Window{
			Start: r.StartTime,
			End:   r.EndTime,
		})

		// Session length and price are uniform across a doctor's week.
		out.SessionMinutes = r.SessionMinutes
		out.Price = r.Price
	}

	return out, nil
}
