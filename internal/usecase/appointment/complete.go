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

type CompleteAppointment struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	notifier *notify.Dispatcher
	now      func() time.Time
}

func NewCompleteAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	notifier *notify.Dispatcher,
	now func() time.Time,
) *CompleteAppointment {
	return &CompleteAppointment{
		repo:     repo,
		audit:    audit,
		notifier: notifier,
		now:      now,
	}
}

// Execute is invoked when the doctor finishes the visit's medical
// report.
func (uc *CompleteAppointment) Execute(
	ctx context.Context,
	appointmentID string,
	doctorID uint,
	reportCompleted bool,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentByID(ctx, appointmentID)
	if err != nil {
		return nil, httperr.NotFound("appointment_not_found", "Appointment not found.")
	}

	old := domain.Status(ap.Status)
	if err := domain.Complete(ap, doctorID, reportCompleted, uc.now()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateStatus(ctx, ap, old, "visit completed"); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &doctorID,
		Action:   "appointment_completed",
		Entity:   "appointment",
		EntityID: ap.ID,
	})

	uc.notifier.Notify(ap.PatientID, notify.EventAppointmentCompleted, map[string]any{
		"appointment_id": ap.ID,
	})

	return ap, nil
}
