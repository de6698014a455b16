package appointment

import (
	"context"
	"sort"
	"time"

	domain "github.com/medbook/clinic-scheduler/internal/domain/appointment"
)

type GetAvailability struct {
	repo domain.Repository
}

func NewGetAvailability(repo domain.Repository) *GetAvailability {
	return &GetAvailability{repo: repo}
}

// Execute returns the doctor's open slots for the date, ascending.
// excludeID lets reschedule previews treat the appointment being moved
// as free.
//
// Slots earlier than the current time of day are returned as-is;
// hiding "already past" slots on today's date is left to the client.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	doctorID uint,
	date time.Time,
	excludeID string,
) ([]domain.TimeSlot, error) {

	rules, err := uc.repo.ListRulesForWeekday(ctx, doctorID, isoWeekday(date))
	if err != nil {
		return nil, err
	}
	if len(rules) == 0 {
		return []domain.TimeSlot{}, nil
	}

	dayStart, dayEnd := dayBounds(date)

	booked, err := uc.repo.ListActiveAppointmentsForDay(
		ctx,
		doctorID,
		dayStart,
		dayEnd,
		excludeID,
	)
	if err != nil {
		return nil, err
	}

	var slots []domain.TimeSlot
	for _, w := range windowsOn(date, rules) {
		slots = append(slots, domain.RemoveBooked(domain.Tile(w), booked)...)
	}

	sort.Slice(slots, func(i, j int) bool {
		return slots[i].StartAt.Before(slots[j].StartAt)
	})

	if slots == nil {
		slots = []domain.TimeSlot{}
	}
	return slots, nil
}

// bookableSlots tiles the doctor's windows for the date without
// removing booked intervals. Booking and reschedule use it to check
// that a client-supplied interval really is a generated slot; the
// conflict check happens separately inside the write transaction.
func bookableSlots(
	ctx context.Context,
	repo domain.Repository,
	doctorID uint,
	date time.Time,
) ([]domain.TimeSlot, error) {

	rules, err := repo.ListRulesForWeekday(ctx, doctorID, isoWeekday(date))
	if err != nil {
		return nil, err
	}

	var slots []domain.TimeSlot
	for _, w := range windowsOn(date, rules) {
		slots = append(slots, domain.Tile(w)...)
	}
	return slots, nil
}

func isGeneratedSlot(slots []domain.TimeSlot, start, end time.Time) bool {
	for _, s := range slots {
		if s.StartAt.Equal(start) && s.EndAt.Equal(end) {
			return true
		}
	}
	return false
}
