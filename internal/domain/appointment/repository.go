package appointment

import (
	"context"
	"time"

	"github.com/medbook/clinic-scheduler/internal/models"
)

type Repository interface {
	// -------- Users --------
	GetUserByID(
		ctx context.Context,
		id uint,
	) (*models.User, error)

	// -------- Availability --------
	ListRulesForWeekday(
		ctx context.Context,
		doctorID uint,
		weekday int,
	) ([]models.ScheduleRule, error)

	ListActiveAppointmentsForDay(
		ctx context.Context,
		doctorID uint,
		dayStart time.Time,
		dayEnd time.Time,
		excludeID string,
	) ([]models.Appointment, error)

	// -------- Appointment (create / move) --------
	// Both run the conflict check and the write in one transaction and
	// return a slot-conflict business error when another active
	// appointment overlaps.
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
		pay *models.Payment,
	) error

	RescheduleAppointment(
		ctx context.Context,
		ap *models.Appointment,
		note string,
	) error

	// -------- Appointment (state change) --------
	GetAppointmentByID(
		ctx context.Context,
		id string,
	) (*models.Appointment, error)

	UpdateStatus(
		ctx context.Context,
		ap *models.Appointment,
		old Status,
		note string,
	) error

	// -------- Listings --------
	ListAppointmentsForPeriod(
		ctx context.Context,
		doctorID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	ListStatusHistory(
		ctx context.Context,
		appointmentID string,
	) ([]models.AppointmentStatusHistory, error)
}
