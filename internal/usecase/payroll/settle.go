package payroll

import (
	"context"
	"fmt"
	"time"

	"github.com/medbook/clinic-scheduler/internal/audit"
	domain "github.com/medbook/clinic-scheduler/internal/domain/billing"
	"github.com/medbook/clinic-scheduler/internal/httperr"
	"github.com/medbook/clinic-scheduler/internal/models"
	"github.com/medbook/clinic-scheduler/internal/notify"
)

type SettlePayroll struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	notifier *notify.Dispatcher
	now      func() time.Time
}

func NewSettlePayroll(
	repo domain.Repository,
	audit *audit.Dispatcher,
	notifier *notify.Dispatcher,
	now func() time.Time,
) *SettlePayroll {
	return &SettlePayroll{
		repo:     repo,
		audit:    audit,
		notifier: notifier,
		now:      now,
	}
}

// Execute freezes the period's payroll. Settling is one-way: a second
// call on the same period fails with an invalid-state error and the
// persisted amounts never change.
func (uc *SettlePayroll) Execute(
	ctx context.Context,
	adminID uint,
	doctorID uint,
	year int,
	month int,
	note string,
) error {

	p, err := uc.repo.GetPayroll(ctx, doctorID, year, month)
	if err != nil {
		return err
	}
	if p == nil {
		return httperr.NotFound("payroll_not_found", "No payroll record for this doctor and period.")
	}
	if p.Status == models.PayrollSettled {
		return httperr.InvalidState("already_settled", "This payroll period has already been settled.")
	}

	// Compare-and-set on status closes the race between two concurrent
	// settle clicks.
	affected, err := uc.repo.MarkSettled(ctx, doctorID, year, month, note, uc.now())
	if err != nil {
		return err
	}
	if affected == 0 {
		return httperr.InvalidState("already_settled", "This payroll period has already been settled.")
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   "payroll_settled",
		Entity:   "doctor_payroll",
		EntityID: fmt.Sprintf("doctor:%d:%d-%02d", doctorID, year, month),
		Metadata: map[string]any{"note": note},
	})

	uc.notifier.Notify(doctorID, notify.EventPayrollSettled, map[string]any{
		"year":       year,
		"month":      month,
		"net_amount": p.NetAmount,
	})

	return nil
}
