package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/medbook/clinic-scheduler/internal/audit"
	domain "github.com/medbook/clinic-scheduler/internal/domain/appointment"
	"github.com/medbook/clinic-scheduler/internal/httperr"
	"github.com/medbook/clinic-scheduler/internal/lock"
	"github.com/medbook/clinic-scheduler/internal/models"
	"github.com/medbook/clinic-scheduler/internal/notify"
)

type PaymentInput struct {
	Amount      int64
	Discount    int64
	Tax         int64
	TotalAmount int64
	Method      string
	Status      string
	PaidAt      *time.Time
}

type CreateAppointmentInput struct {
	DoctorID  uint
	PatientID uint

	Start time.Time
	End   time.Time

	Notes   string
	Consent bool

	Payment *PaymentInput
}

type CreateAppointment struct {
	repo     domain.Repository
	locker   lock.DoctorLocker
	audit    *audit.Dispatcher
	notifier *notify.Dispatcher
}

func NewCreateAppointment(
	repo domain.Repository,
	locker lock.DoctorLocker,
	audit *audit.Dispatcher,
	notifier *notify.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:     repo,
		locker:   locker,
		audit:    audit,
		notifier: notifier,
	}
}

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	doctor, err := uc.repo.GetUserByID(ctx, in.DoctorID)
	if err != nil {
		return nil, httperr.NotFound("doctor_not_found", "Doctor not found.")
	}
	if doctor.Role != models.RoleDoctor {
		return nil, httperr.BadRequest("not_a_doctor", "Appointments can only be booked under a doctor account.")
	}

	patient, err := uc.repo.GetUserByID(ctx, in.PatientID)
	if err != nil {
		return nil, httperr.NotFound("patient_not_found", "Patient not found.")
	}
	if patient.Role != models.RolePatient {
		return nil, httperr.BadRequest("not_a_patient", "Appointments can only be booked for a patient account.")
	}

	if !in.Start.Before(in.End) {
		return nil, httperr.Validation("invalid_interval", "Start time must be before end time.")
	}

	// The interval must be one of the doctor's generated slots, never
	// trusted from client input. Occupancy is re-checked inside the
	// write transaction.
	slots, err := bookableSlots(ctx, uc.repo, in.DoctorID, in.Start)
	if err != nil {
		return nil, err
	}
	if !isGeneratedSlot(slots, in.Start, in.End) {
		return nil, httperr.Validation("invalid_slot", "The requested interval is not a bookable slot for this doctor.")
	}

	ap := &models.Appointment{
		ID:        uuid.NewString(),
		PatientID: in.PatientID,
		DoctorID:  in.DoctorID,
		StartTime: in.Start,
		EndTime:   in.End,
		Status:    string(domain.StatusScheduled),
		Notes:     in.Notes,
		Consent:   in.Consent,
		CreatedBy: in.DoctorID,
		UpdatedBy: in.DoctorID,
	}

	var pay *models.Payment
	if in.Payment != nil {
		pay = &models.Payment{
			AppointmentID: ap.ID,
			Amount:        in.Payment.Amount,
			Discount:      in.Payment.Discount,
			Tax:           in.Payment.Tax,
			TotalAmount:   in.Payment.TotalAmount,
			Method:        in.Payment.Method,
			Status:        in.Payment.Status,
			PaidAt:        in.Payment.PaidAt,
		}
	}

	err = uc.locker.WithDoctorLock(ctx, in.DoctorID, in.Start, func(lockCtx context.Context) error {
		return uc.repo.CreateAppointment(lockCtx, ap, pay)
	})
	if err != nil {
		if errors.Is(err, lock.ErrLockNotAcquired) {
			return nil, httperr.SlotConflict("booking_in_progress", "Another booking for this doctor is in progress, please retry.")
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.DoctorID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: ap.ID,
	})

	uc.notifier.Notify(in.PatientID, notify.EventAppointmentBooked, map[string]any{
		"appointment_id": ap.ID,
		"doctor":         doctor.Name,
		"start_time":     ap.StartTime,
	})

	return ap, nil
}
