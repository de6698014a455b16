package appointment

import (
	"context"
	"time"

	"github.com/medbook/clinic-scheduler/internal/audit"
	domain "github.com/medbook/clinic-scheduler/internal/domain/appointment"
	"github.com/medbook/clinic-scheduler/internal/httperr"
	"github.com/medbook/clinic-scheduler/internal/models"
	"github.com/medbook/clinic-scheduler/internal/notify"
)

type ConfirmAppointment struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	notifier *notify.Dispatcher
	now      func() time.Time
}

func NewConfirmAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	notifier *notify.Dispatcher,
	now func() time.Time,
) *ConfirmAppointment {
	return &ConfirmAppointment{
		repo:     repo,
		audit:    audit,
		notifier: notifier,
		now:      now,
	}
}

func (uc *ConfirmAppointment) Execute(
	ctx context.Context,
	appointmentID string,
	doctorID uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentByID(ctx, appointmentID)
	if err != nil {
		return nil, httperr.NotFound("appointment_not_found", "Appointment not found.")
	}

	old := domain.Status(ap.Status)
	if err := domain.Confirm(ap, doctorID, uc.now()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateStatus(ctx, ap, old, "visit started"); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &doctorID,
		Action:   "appointment_confirmed",
		Entity:   "appointment",
		EntityID: ap.ID,
	})

	uc.notifier.Notify(ap.PatientID, notify.EventAppointmentConfirmed, map[string]any{
		"appointment_id": ap.ID,
	})

	return ap, nil
}
