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

type CancelAppointment struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	notifier *notify.Dispatcher
	now      func() time.Time
}

func NewCancelAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	notifier *notify.Dispatcher,
	now func() time.Time,
) *CancelAppointment {
	return &CancelAppointment{
		repo:     repo,
		audit:    audit,
		notifier: notifier,
		now:      now,
	}
}

// Execute cancels the appointment on behalf of its patient. Any linked
// payment is left untouched; refunds are a separate admin workflow.
func (uc *CancelAppointment) Execute(
	ctx context.Context,
	appointmentID string,
	patientID uint,
	reason string,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentByID(ctx, appointmentID)
	if err != nil {
		return nil, httperr.NotFound("appointment_not_found", "Appointment not found.")
	}

	old := domain.Status(ap.Status)
	if err := domain.Cancel(ap, patientID, reason, uc.now()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateStatus(ctx, ap, old, reason); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &patientID,
		Action:   "appointment_canceled",
		Entity:   "appointment",
		EntityID: ap.ID,
		Metadata: map[string]any{"reason": reason},
	})

	uc.notifier.Notify(ap.DoctorID, notify.EventAppointmentCanceled, map[string]any{
		"appointment_id": ap.ID,
		"reason":         reason,
	})

	return ap, nil
}
