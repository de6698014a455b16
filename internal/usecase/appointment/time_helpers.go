package appointment

import (
	"time"

	domain "github.com/medbook/clinic-scheduler/internal/domain/appointment"
	"github.com/medbook/clinic-scheduler/internal/models"
)

// isoWeekday maps Go's Sunday-based weekday to ISO 1=Monday ... 7=Sunday.
func isoWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

func dayBounds(date time.Time) (time.Time, time.Time) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return start, start.Add(24 * time.Hour)
}

// windowsOn resolves recurring rules onto a concrete date.
func windowsOn(date time.Time, rules []models.ScheduleRule) []domain.Window {
	loc := date.Location()

	parseHM := func(hm string) time.Time {
		t, _ := time.Parse("15:04", hm)
		return time.Date(
			date.Year(), date.Month(), date.Day(),
			t.Hour(), t.Minute(), 0, 0,
			loc,
		)
	}

	windows := make([]domain.Window, 0, len(rules))
	for _, r := range rules {
		windows = append(windows, domain.Window{
			Start:          parseHM(r.StartTime),
			End:            parseHM(r.EndTime),
			SessionMinutes: r.SessionMinutes,
			Price:          r.Price,
		})
	}

	return windows
}
