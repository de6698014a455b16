package appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/medbook/clinic-scheduler/internal/audit"
	domain "github.com/medbook/clinic-scheduler/internal/domain/appointment"
	"github.com/medbook/clinic-scheduler/internal/httperr"
	"github.com/medbook/clinic-scheduler/internal/lock"
	"github.com/medbook/clinic-scheduler/internal/models"
	"github.com/medbook/clinic-scheduler/internal/notify"
)

type RescheduleAppointmentInput struct {
	AppointmentID string
	PatientID     uint
	NewStart      time.Time
	NewEnd        time.Time
}

type RescheduleAppointment struct {
	repo     domain.Repository
	locker   lock.DoctorLocker
	audit    *audit.Dispatcher
	notifier *notify.Dispatcher
	now      func() time.Time
}

func NewRescheduleAppointment(
	repo domain.Repository,
	locker lock.DoctorLocker,
	audit *audit.Dispatcher,
	notifier *notify.Dispatcher,
	now func() time.Time,
) *RescheduleAppointment {
	return &RescheduleAppointment{
		repo:     repo,
		locker:   locker,
		audit:    audit,
		notifier: notifier,
		now:      now,
	}
}

func (uc *RescheduleAppointment) Execute(
	ctx context.Context,
	in RescheduleAppointmentInput,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentByID(ctx, in.AppointmentID)
	if err != nil {
		return nil, httperr.NotFound("appointment_not_found", "Appointment not found.")
	}

	oldStart := ap.StartTime

	if err := domain.Reschedule(ap, in.PatientID, in.NewStart, in.NewEnd, uc.now()); err != nil {
		return nil, err
	}

	// The new interval must be one of the doctor's generated slots on
	// the target date.
	slots, err := bookableSlots(ctx, uc.repo, ap.DoctorID, in.NewStart)
	if err != nil {
		return nil, err
	}
	if !isGeneratedSlot(slots, in.NewStart, in.NewEnd) {
		return nil, httperr.Validation("invalid_slot", "The requested interval is not a bookable slot for this doctor.")
	}

	note := fmt.Sprintf("rescheduled from %s to %s",
		oldStart.Format("2006-01-02 15:04"),
		ap.StartTime.Format("2006-01-02 15:04"),
	)

	err = uc.locker.WithDoctorLock(ctx, ap.DoctorID, in.NewStart, func(lockCtx context.Context) error {
		return uc.repo.RescheduleAppointment(lockCtx, ap, note)
	})
	if err != nil {
		if errors.Is(err, lock.ErrLockNotAcquired) {
			return nil, httperr.SlotConflict("booking_in_progress", "Another booking for this doctor is in progress, please retry.")
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.PatientID,
		Action:   "appointment_rescheduled",
		Entity:   "appointment",
		EntityID: ap.ID,
		Metadata: note,
	})

	uc.notifier.Notify(ap.DoctorID, notify.EventAppointmentRescheduled, map[string]any{
		"appointment_id": ap.ID,
		"start_time":     ap.StartTime,
	})

	return ap, nil
}
