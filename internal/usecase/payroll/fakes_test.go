package payroll

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/medbook/clinic-scheduler/internal/audit"
	domain "github.com/medbook/clinic-scheduler/internal/domain/billing"
	"github.com/medbook/clinic-scheduler/internal/models"
	"github.com/medbook/clinic-scheduler/internal/notify"
)

var _ domain.Repository = (*memBillingRepo)(nil)

// memBillingRepo implements the billing repository over maps. The
// revenue sums are precomputed per doctor since aggregation itself is
// SQL territory; what matters here is the payroll row lifecycle.
type memBillingRepo struct {
	mu sync.Mutex

	doctors     []models.User
	paidSums    map[uint]int64
	refundSums  map[uint]int64
	payrolls    map[string]*models.DoctorPayroll
	nextPayroll uint
}

func newMemBillingRepo() *memBillingRepo {
	return &memBillingRepo{
		paidSums:   map[uint]int64{},
		refundSums: map[uint]int64{},
		payrolls:   map[string]*models.DoctorPayroll{},
	}
}

func payrollKey(doctorID uint, year, month int) string {
	return fmt.Sprintf("%d:%d-%02d", doctorID, year, month)
}

func (r *memBillingRepo) GetPaymentByID(ctx context.Context, id uint) (*models.Payment, error) {
	panic("not used by payroll usecases")
}

func (r *memBillingRepo) UpdatePayment(ctx context.Context, pay *models.Payment) error {
	panic("not used by payroll usecases")
}

func (r *memBillingRepo) GetAppointmentByID(ctx context.Context, id string) (*models.Appointment, error) {
	panic("not used by payroll usecases")
}

func (r *memBillingRepo) ListDoctors(ctx context.Context, search string) ([]models.User, error) {
	if search == "" {
		return r.doctors, nil
	}
	q := strings.ToLower(search)
	var out []models.User
	for _, d := range r.doctors {
		if strings.Contains(strings.ToLower(d.Name), q) ||
			strings.Contains(strings.ToLower(d.Specialty), q) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *memBillingRepo) SumPaidForCompleted(ctx context.Context, doctorID uint, start, end time.Time) (int64, error) {
	return r.paidSums[doctorID], nil
}

func (r *memBillingRepo) SumRefundedForCanceled(ctx context.Context, doctorID uint, start, end time.Time) (int64, error) {
	return r.refundSums[doctorID], nil
}

func (r *memBillingRepo) GetPayroll(ctx context.Context, doctorID uint, year, month int) (*models.DoctorPayroll, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.payrolls[payrollKey(doctorID, year, month)]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memBillingRepo) UpsertUnsettled(ctx context.Context, p *models.DoctorPayroll) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := payrollKey(p.DoctorID, p.Year, p.Month)
	if existing, ok := r.payrolls[key]; ok {
		if existing.Status == models.PayrollSettled {
			return nil
		}
		p.ID = existing.ID
	} else {
		r.nextPayroll++
		p.ID = r.nextPayroll
	}
	cp := *p
	r.payrolls[key] = &cp
	return nil
}

func (r *memBillingRepo) MarkSettled(ctx context.Context, doctorID uint, year, month int, note string, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.payrolls[payrollKey(doctorID, year, month)]
	if !ok || p.Status != models.PayrollUnsettled {
		return 0, nil
	}
	p.Status = models.PayrollSettled
	p.Note = note
	p.SettledAt = &now
	return 1, nil
}

type noopSink struct{}

func (noopSink) Log(userID *uint, action, entity, entityID string, metadata any) error {
	return nil
}

func testDispatchers() (*audit.Dispatcher, *notify.Dispatcher) {
	log := zap.NewNop()
	return audit.NewDispatcher(noopSink{}, log),
		notify.NewDispatcher(notify.NewLogNotifier(log), log)
}
