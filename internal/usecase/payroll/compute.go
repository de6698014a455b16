package payroll

import (
	"context"
	"time"

	domain "github.com/medbook/clinic-scheduler/internal/domain/billing"
	"github.com/medbook/clinic-scheduler/internal/dto"
	"github.com/medbook/clinic-scheduler/internal/models"
)

// PlatformFeePercent of gross revenue retained by the platform; the
// remainder is the doctor's salary.
const PlatformFeePercent = 15

// platformFee rounds half-up to the currency unit.
func platformFee(gross int64) int64 {
	return (gross*PlatformFeePercent + 50) / 100
}

type ComputePayrolls struct {
	repo domain.Repository
	loc  *time.Location
	now  func() time.Time
}

func NewComputePayrolls(
	repo domain.Repository,
	loc *time.Location,
	now func() time.Time,
) *ComputePayrolls {
	return &ComputePayrolls{
		repo: repo,
		loc:  loc,
		now:  now,
	}
}

// Execute aggregates every doctor's completed revenue for the month.
// Unsettled rows are recomputed and persisted on each run; settled rows
// are reported exactly as frozen.
func (uc *ComputePayrolls) Execute(
	ctx context.Context,
	year int,
	month int,
	search string,
) ([]dto.DoctorPayrollRow, error) {

	doctors, err := uc.repo.ListDoctors(ctx, search)
	if err != nil {
		return nil, err
	}

	periodStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, uc.loc)
	periodEnd := periodStart.AddDate(0, 1, 0)
	lastDay := periodEnd.AddDate(0, 0, -1)

	// Settlement opens on the last calendar day of the period.
	today := uc.now().In(uc.loc)
	todayDate := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, uc.loc)
	canSettle := !todayDate.Before(lastDay)

	rows := make([]dto.DoctorPayrollRow, 0, len(doctors))
	for _, doc := range doctors {
		row := dto.DoctorPayrollRow{
			DoctorID:  doc.ID,
			Doctor:    doc.Name,
			Specialty: doc.Specialty,
			Year:      year,
			Month:     month,
			Status:    models.PayrollUnsettled,
			CanSettle: canSettle,
		}

		existing, err := uc.repo.GetPayroll(ctx, doc.ID, year, month)
		if err != nil {
			return nil, err
		}

		if existing != nil && existing.Status == models.PayrollSettled {
			row.PayrollID = &existing.ID
			row.GrossRevenue = existing.GrossAmount
			row.PlatformFee = existing.PlatformFee
			row.DoctorSalary = existing.NetAmount
			row.Status = existing.Status
			row.SettledAt = existing.SettledAt
			row.CanSettle = false
			rows = append(rows, row)
			continue
		}

		gross, err := uc.repo.SumPaidForCompleted(ctx, doc.ID, periodStart, periodEnd)
		if err != nil {
			return nil, err
		}
		refunds, err := uc.repo.SumRefundedForCanceled(ctx, doc.ID, periodStart, periodEnd)
		if err != nil {
			return nil, err
		}

		fee := platformFee(gross)

		p := &models.DoctorPayroll{
			DoctorID:    doc.ID,
			Year:        year,
			Month:       month,
			GrossAmount: gross,
			PlatformFee: fee,
			NetAmount:   gross - fee,
			Status:      models.PayrollUnsettled,
		}
		if existing != nil {
			p.ID = existing.ID
		}
		if err := uc.repo.UpsertUnsettled(ctx, p); err != nil {
			return nil, err
		}

		row.PayrollID = &p.ID
		row.GrossRevenue = gross
		row.Refunds = refunds
		row.PlatformFee = fee
		row.DoctorSalary = gross - fee
		rows = append(rows, row)
	}

	return rows, nil
}
