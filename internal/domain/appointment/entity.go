package appointment

import (
	"fmt"
	"time"

	"github.com/medbook/clinic-scheduler/internal/httperr"
	"github.com/medbook/clinic-scheduler/internal/models"
)

// Minimum notice a patient must give before the scheduled start.
// Boundaries are closed: exactly the notice period is still allowed.
const (
	RescheduleNotice = 4 * time.Hour
	CancelNotice     = 8 * time.Hour
)

// Confirm moves a visit to in-process. Only the assigned doctor may
// confirm, and never before the scheduled start.
func Confirm(ap *models.Appointment, doctorID uint, now time.Time) error {
	if ap.DoctorID != doctorID {
		return httperr.BadRequest("not_assigned_doctor", "Only the assigned doctor may confirm this appointment.")
	}
	if Status(ap.Status) != StatusScheduled {
		return httperr.BadRequest("invalid_status", fmt.Sprintf("Cannot confirm an appointment in status %q.", ap.Status))
	}
	if now.Before(ap.StartTime) {
		return httperr.BadRequest("too_early", "A visit cannot be started before its scheduled time.")
	}

	ap.Status = string(StatusInProcess)
	ap.UpdatedBy = doctorID
	return nil
}

// Reschedule moves the appointment to a new interval in place. The
// caller must have verified the new interval against the doctor's
// generated slots; this only enforces the actor, status and notice
// rules plus basic interval sanity.
func Reschedule(ap *models.Appointment, patientID uint, newStart, newEnd, now time.Time) error {
	if ap.PatientID != patientID {
		return httperr.BadRequest("not_appointment_patient", "Only the appointment's patient may reschedule it.")
	}
	if Status(ap.Status) != StatusScheduled {
		return httperr.BadRequest("invalid_status", fmt.Sprintf("Cannot reschedule an appointment in status %q.", ap.Status))
	}
	if ap.StartTime.Sub(now) < RescheduleNotice {
		return httperr.BadRequest("reschedule_window_closed", "Appointments can only be rescheduled at least 4 hours before the scheduled start.")
	}
	if !newStart.Before(newEnd) {
		return httperr.Validation("invalid_interval", "Start time must be before end time.")
	}

	ap.StartTime = newStart
	ap.EndTime = newEnd
	ap.UpdatedBy = patientID
	return nil
}

// Cancel marks the appointment canceled with the actor and reason.
func Cancel(ap *models.Appointment, patientID uint, reason string, now time.Time) error {
	if ap.PatientID != patientID {
		return httperr.BadRequest("not_appointment_patient", "Only the appointment's patient may cancel it.")
	}
	if Status(ap.Status) != StatusScheduled {
		return httperr.BadRequest("invalid_status", fmt.Sprintf("Cannot cancel an appointment in status %q.", ap.Status))
	}
	if ap.StartTime.Sub(now) < CancelNotice {
		return httperr.BadRequest("cancel_window_closed", "Appointments can only be canceled at least 8 hours before the scheduled start.")
	}

	ap.Status = string(StatusCanceled)
	ap.CancelReason = reason
	ap.CanceledBy = &patientID
	ap.CanceledAt = &now
	ap.UpdatedBy = patientID
	return nil
}

// Complete finishes an in-process visit once its medical report is done.
func Complete(ap *models.Appointment, doctorID uint, reportCompleted bool, now time.Time) error {
	if ap.DoctorID != doctorID {
		return httperr.BadRequest("not_assigned_doctor", "Only the assigned doctor may complete this appointment.")
	}
	if Status(ap.Status) != StatusInProcess {
		return httperr.BadRequest("invalid_status", fmt.Sprintf("Cannot complete an appointment in status %q.", ap.Status))
	}
	if !reportCompleted {
		return httperr.BadRequest("report_not_completed", "The medical report must be finished before completing the visit.")
	}

	ap.Status = string(StatusCompleted)
	ap.EndedAt = &now
	ap.UpdatedBy = doctorID
	return nil
}
