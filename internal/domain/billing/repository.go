package billing

import (
	"context"
	"time"

	"github.com/medbook/clinic-scheduler/internal/models"
)

type Repository interface {
	// -------- Payments --------
	GetPaymentByID(
		ctx context.Context,
		id uint,
	) (*models.Payment, error)

	UpdatePayment(
		ctx context.Context,
		pay *models.Payment,
	) error

	GetAppointmentByID(
		ctx context.Context,
		id string,
	) (*models.Appointment, error)

	// -------- Payroll aggregation --------
	ListDoctors(
		ctx context.Context,
		search string,
	) ([]models.User, error)

	// Sum of PAID payment totals for the doctor's COMPLETED
	// appointments whose scheduled start falls in [start, end).
	SumPaidForCompleted(
		ctx context.Context,
		doctorID uint,
		start time.Time,
		end time.Time,
	) (int64, error)

	// Sum of REFUNDED payment totals for CANCELED appointments in the
	// same window. Informational only; never subtracted from gross.
	SumRefundedForCanceled(
		ctx context.Context,
		doctorID uint,
		start time.Time,
		end time.Time,
	) (int64, error)

	// -------- Payroll rows --------
	GetPayroll(
		ctx context.Context,
		doctorID uint,
		year int,
		month int,
	) (*models.DoctorPayroll, error)

	// UpsertUnsettled creates or refreshes the row for the period but
	// never touches a settled one.
	UpsertUnsettled(
		ctx context.Context,
		p *models.DoctorPayroll,
	) error

	// MarkSettled is a compare-and-set: it flips unsettled to settled
	// and reports how many rows changed, so a concurrent second settle
	// observes zero.
	MarkSettled(
		ctx context.Context,
		doctorID uint,
		year int,
		month int,
		note string,
		now time.Time,
	) (int64, error)
}
