package payment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/medbook/clinic-scheduler/internal/audit"
	appointmentdomain "github.com/medbook/clinic-scheduler/internal/domain/appointment"
	domain "github.com/medbook/clinic-scheduler/internal/domain/billing"
	"github.com/medbook/clinic-scheduler/internal/httperr"
	"github.com/medbook/clinic-scheduler/internal/models"
	"github.com/medbook/clinic-scheduler/internal/notify"
)

// memBillingRepo implements only the payment side of the billing
// repository; payroll methods are out of reach for this usecase.
type memBillingRepo struct {
	payments     map[uint]*models.Payment
	appointments map[string]*models.Appointment
}

func newMemBillingRepo() *memBillingRepo {
	return &memBillingRepo{
		payments:     map[uint]*models.Payment{},
		appointments: map[string]*models.Appointment{},
	}
}

func (r *memBillingRepo) GetPaymentByID(ctx context.Context, id uint) (*models.Payment, error) {
	p, ok := r.payments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *memBillingRepo) UpdatePayment(ctx context.Context, pay *models.Payment) error {
	cp := *pay
	r.payments[pay.ID] = &cp
	return nil
}

func (r *memBillingRepo) GetAppointmentByID(ctx context.Context, id string) (*models.Appointment, error) {
	ap, ok := r.appointments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *ap
	return &cp, nil
}

func (r *memBillingRepo) ListDoctors(ctx context.Context, search string) ([]models.User, error) {
	panic("not used by refund")
}

func (r *memBillingRepo) SumPaidForCompleted(ctx context.Context, doctorID uint, start, end time.Time) (int64, error) {
	panic("not used by refund")
}

func (r *memBillingRepo) SumRefundedForCanceled(ctx context.Context, doctorID uint, start, end time.Time) (int64, error) {
	panic("not used by refund")
}

func (r *memBillingRepo) GetPayroll(ctx context.Context, doctorID uint, year, month int) (*models.DoctorPayroll, error) {
	panic("not used by refund")
}

func (r *memBillingRepo) UpsertUnsettled(ctx context.Context, p *models.DoctorPayroll) error {
	panic("not used by refund")
}

func (r *memBillingRepo) MarkSettled(ctx context.Context, doctorID uint, year, month int, note string, now time.Time) (int64, error) {
	panic("not used by refund")
}

var _ domain.Repository = (*memBillingRepo)(nil)

type noopSink struct{}

func (noopSink) Log(userID *uint, action, entity, entityID string, metadata any) error {
	return nil
}

const (
	adminID       = uint(1)
	appointmentID = "11111111-1111-1111-1111-111111111111"
)

func seeded(appointmentStatus appointmentdomain.Status, paymentStatus string) *memBillingRepo {
	repo := newMemBillingRepo()
	repo.appointments[appointmentID] = &models.Appointment{
		ID:        appointmentID,
		PatientID: 10,
		DoctorID:  2,
		Status:    string(appointmentStatus),
	}
	repo.payments[5] = &models.Payment{
		ID:            5,
		AppointmentID: appointmentID,
		TotalAmount:   150000,
		Status:        paymentStatus,
	}
	return repo
}

func newRefundUC(repo *memBillingRepo, now time.Time) *ProcessRefund {
	log := zap.NewNop()
	return NewProcessRefund(
		repo,
		audit.NewDispatcher(noopSink{}, log),
		notify.NewDispatcher(notify.NewLogNotifier(log), log),
		func() time.Time { return now },
	)
}

func TestProcessRefund(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

	t.Run("refunds a pending payment on a canceled booking", func(t *testing.T) {
		repo := seeded(appointmentdomain.StatusCanceled, models.PaymentPending)
		uc := newRefundUC(repo, now)

		pay, err := uc.Execute(ctx, adminID, 5, appointmentID, "patient gave enough notice")
		require.NoError(t, err)

		assert.Equal(t, models.PaymentRefunded, pay.Status)
		assert.Equal(t, "patient gave enough notice", pay.RefundReason)
		require.NotNil(t, pay.RefundedBy)
		assert.Equal(t, adminID, *pay.RefundedBy)
		require.NotNil(t, pay.RefundedAt)
		assert.True(t, pay.RefundedAt.Equal(now))

		stored, _ := repo.GetPaymentByID(ctx, 5)
		assert.Equal(t, models.PaymentRefunded, stored.Status)
	})

	t.Run("rejects when the appointment is not canceled", func(t *testing.T) {
		repo := seeded(appointmentdomain.StatusScheduled, models.PaymentPending)
		uc := newRefundUC(repo, now)

		_, err := uc.Execute(ctx, adminID, 5, appointmentID, "")
		assert.True(t, httperr.IsCode(err, "appointment_not_canceled"))
		assert.True(t, httperr.IsKind(err, httperr.KindInvalidState))
	})

	t.Run("rejects a second refund", func(t *testing.T) {
		repo := seeded(appointmentdomain.StatusCanceled, models.PaymentRefunded)
		uc := newRefundUC(repo, now)

		_, err := uc.Execute(ctx, adminID, 5, appointmentID, "")
		assert.True(t, httperr.IsCode(err, "already_refunded"))
	})

	t.Run("rejects statuses outside the refund decision", func(t *testing.T) {
		for _, status := range []string{models.PaymentPaid, models.PaymentFailed} {
			repo := seeded(appointmentdomain.StatusCanceled, status)
			uc := newRefundUC(repo, now)

			_, err := uc.Execute(ctx, adminID, 5, appointmentID, "")
			assert.True(t, httperr.IsCode(err, "not_refundable"), "status=%s", status)
		}
	})

	t.Run("rejects a payment belonging to another appointment", func(t *testing.T) {
		repo := seeded(appointmentdomain.StatusCanceled, models.PaymentPending)
		uc := newRefundUC(repo, now)

		_, err := uc.Execute(ctx, adminID, 5, "22222222-2222-2222-2222-222222222222", "")
		assert.True(t, httperr.IsCode(err, "payment_mismatch"))
	})

	t.Run("unknown payment", func(t *testing.T) {
		repo := newMemBillingRepo()
		uc := newRefundUC(repo, now)

		_, err := uc.Execute(ctx, adminID, 99, appointmentID, "")
		assert.True(t, httperr.IsCode(err, "payment_not_found"))
	})
}
