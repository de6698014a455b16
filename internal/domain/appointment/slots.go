package appointment

import (
	"time"

	"github.com/medbook/clinic-scheduler/internal/models"
)

// Window is one availability window on a concrete date, resolved from a
// doctor's recurring weekly rule.
type Window struct {
	Start          time.Time
	End            time.Time
	SessionMinutes int
	Price          int64
}

// TimeSlot carries both the machine-readable instants and the display
// form clients render directly.
type TimeSlot struct {
	Start   string    `json:"start"` // "15:04"
	End     string    `json:"end"`
	StartAt time.Time `json:"start_at"`
	EndAt   time.Time `json:"end_at"`
	Price   int64     `json:"price"`
}

// Tile expands a window into consecutive session-length slots starting
// at the window start. A trailing remainder shorter than one session is
// dropped.
func Tile(w Window) []TimeSlot {
	if w.SessionMinutes <= 0 {
		return nil
	}

	d := time.Duration(w.SessionMinutes) * time.Minute
	var slots []TimeSlot

	for cur := w.Start; !cur.Add(d).After(w.End); cur = cur.Add(d) {
		slots = append(slots, TimeSlot{
			Start:   cur.Format("15:04"),
			End:     cur.Add(d).Format("15:04"),
			StartAt: cur,
			EndAt:   cur.Add(d),
			Price:   w.Price,
		})
	}

	return slots
}

// RemoveBooked drops every slot that overlaps one of the given
// appointments. Callers pass only conflict-relevant appointments
// (scheduled or in-process), already filtered by doctor and date.
func RemoveBooked(slots []TimeSlot, booked []models.Appointment) []TimeSlot {
	out := make([]TimeSlot, 0, len(slots))

	for _, s := range slots {
		conflict := false
		for _, ap := range booked {
			if Overlaps(s.StartAt, s.EndAt, ap.StartTime, ap.EndTime) {
				conflict = true
				break
			}
		}
		if !conflict {
			out = append(out, s)
		}
	}

	return out
}
