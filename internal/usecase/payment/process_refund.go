package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/medbook/clinic-scheduler/internal/audit"
	appointmentdomain "github.com/medbook/clinic-scheduler/internal/domain/appointment"
	domain "github.com/medbook/clinic-scheduler/internal/domain/billing"
	"github.com/medbook/clinic-scheduler/internal/httperr"
	"github.com/medbook/clinic-scheduler/internal/models"
	"github.com/medbook/clinic-scheduler/internal/notify"
)

type ProcessRefund struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	notifier *notify.Dispatcher
	now      func() time.Time
}

func NewProcessRefund(
	repo domain.Repository,
	audit *audit.Dispatcher,
	notifier *notify.Dispatcher,
	now func() time.Time,
) *ProcessRefund {
	return &ProcessRefund{
		repo:     repo,
		audit:    audit,
		notifier: notifier,
		now:      now,
	}
}

// Execute refunds the payment of a canceled appointment. Admin only.
//
// A payment in "pending" on a canceled booking means "awaiting refund
// decision"; that overload is intentional business semantics, not a
// capture state.
func (uc *ProcessRefund) Execute(
	ctx context.Context,
	adminID uint,
	paymentID uint,
	appointmentID string,
	reason string,
) (*models.Payment, error) {

	pay, err := uc.repo.GetPaymentByID(ctx, paymentID)
	if err != nil {
		return nil, httperr.NotFound("payment_not_found", "Payment not found.")
	}
	if pay.AppointmentID != appointmentID {
		return nil, httperr.BadRequest("payment_mismatch", "Payment does not belong to the given appointment.")
	}

	ap, err := uc.repo.GetAppointmentByID(ctx, appointmentID)
	if err != nil {
		return nil, httperr.NotFound("appointment_not_found", "Appointment not found.")
	}
	if appointmentdomain.Status(ap.Status) != appointmentdomain.StatusCanceled {
		return nil, httperr.InvalidState("appointment_not_canceled", "Refunds are only processed for canceled appointments.")
	}

	if pay.Status == models.PaymentRefunded {
		return nil, httperr.InvalidState("already_refunded", "This payment has already been refunded.")
	}
	if pay.Status != models.PaymentPending {
		return nil, httperr.InvalidState("not_refundable", fmt.Sprintf("Payment in status %q is not awaiting a refund decision.", pay.Status))
	}

	now := uc.now()
	pay.Status = models.PaymentRefunded
	pay.RefundReason = reason
	pay.RefundedBy = &adminID
	pay.RefundedAt = &now

	if err := uc.repo.UpdatePayment(ctx, pay); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   "payment_refunded",
		Entity:   "payment",
		EntityID: pay.AppointmentID,
		Metadata: map[string]any{"reason": reason},
	})

	uc.notifier.Notify(ap.PatientID, notify.EventPaymentRefunded, map[string]any{
		"appointment_id": ap.ID,
		"total_amount":   pay.TotalAmount,
	})

	return pay, nil
}
