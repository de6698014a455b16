package schedule

import (
	"fmt"
	"time"

	"github.com/medbook/clinic-scheduler/internal/httperr"
)

// AllowedSessionMinutes is the fixed set of bookable session lengths.
var AllowedSessionMinutes = map[int]bool{
	10: true,
	15: true,
	20: true,
	30: true,
	60: true,
}

// Window is one "15:04"-formatted availability window within a day.
type Window struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// DayConfig describes one weekday of a doctor's weekly schedule.
// A disabled day carries no windows.
type DayConfig struct {
	Weekday int      `json:"weekday"` // 1 = Monday ... 7 = Sunday
	Enabled bool     `json:"enabled"`
	Windows []Window `json:"windows"`
}

func parseHM(hm string) (time.Time, error) {
	return time.Parse("15:04", hm)
}

// ValidateWeek checks a full weekly schedule before it replaces the
// doctor's rules. Errors name the offending day and slot so clients
// can point at the exact field.
func ValidateWeek(sessionMinutes int, price int64, days []DayConfig) error {
	if !AllowedSessionMinutes[sessionMinutes] {
		return httperr.Validation("invalid_session_length", fmt.Sprintf("Session length %d is not allowed; choose 10, 15, 20, 30 or 60 minutes.", sessionMinutes))
	}
	if price < 0 {
		return httperr.Validation("invalid_price", "Price must not be negative.")
	}

	seen := map[int]bool{}
	for _, day := range days {
		if day.Weekday < 1 || day.Weekday > 7 {
			return httperr.Validation("invalid_weekday", fmt.Sprintf("Weekday %d is out of range 1-7.", day.Weekday))
		}
		if seen[day.Weekday] {
			return httperr.Validation("duplicate_weekday", fmt.Sprintf("Weekday %d appears more than once.", day.Weekday))
		}
		seen[day.Weekday] = true

		if !day.Enabled {
			continue
		}

		var prevEnd time.Time
		for i, w := range day.Windows {
			start, err := parseHM(w.Start)
			if err != nil {
				return httperr.Validation("invalid_time", fmt.Sprintf("Weekday %d slot %d: start %q is not a valid HH:MM time.", day.Weekday, i, w.Start))
			}
			end, err := parseHM(w.End)
			if err != nil {
				return httperr.Validation("invalid_time", fmt.Sprintf("Weekday %d slot %d: end %q is not a valid HH:MM time.", day.Weekday, i, w.End))
			}
			if !start.Before(end) {
				return httperr.Validation("invalid_window", fmt.Sprintf("Weekday %d slot %d: start %s must be before end %s.", day.Weekday, i, w.Start, w.End))
			}
			if i > 0 && start.Before(prevEnd) {
				return httperr.Validation("overlapping_windows", fmt.Sprintf("Weekday %d slot %d starts at %s before the previous slot ends.", day.Weekday, i, w.Start))
			}
			prevEnd = end
		}
	}

	return nil
}
