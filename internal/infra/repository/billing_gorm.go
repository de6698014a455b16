package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	appointmentdomain "github.com/medbook/clinic-scheduler/internal/domain/appointment"
	domain "github.com/medbook/clinic-scheduler/internal/domain/billing"
	"github.com/medbook/clinic-scheduler/internal/models"
)

type BillingGormRepository struct {
	db *gorm.DB
}

func NewBillingGormRepository(db *gorm.DB) *BillingGormRepository {
	return &BillingGormRepository{db: db}
}

// --------------------------------------------------
// Payments
// --------------------------------------------------

func (r *BillingGormRepository) GetPaymentByID(
	ctx context.Context,
	id uint,
) (*models.Payment, error) {

	var pay models.Payment
	if err := r.db.WithContext(ctx).First(&pay, id).Error; err != nil {
		return nil, err
	}
	return &pay, nil
}

func (r *BillingGormRepository) UpdatePayment(
	ctx context.Context,
	pay *models.Payment,
) error {
	return r.db.WithContext(ctx).Save(pay).Error
}

func (r *BillingGormRepository) GetAppointmentByID(
	ctx context.Context,
	id string,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&ap).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

// --------------------------------------------------
// Payroll aggregation
// --------------------------------------------------

func (r *BillingGormRepository) ListDoctors(
	ctx context.Context,
	search string,
) ([]models.User, error) {

	q := r.db.WithContext(ctx).
		Where("role = ?", models.RoleDoctor)

	if s := strings.TrimSpace(strings.ToLower(search)); s != "" {
		like := "%" + s + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(specialty) LIKE ?", like, like)
	}

	var doctors []models.User
	if err := q.Order("name ASC").Find(&doctors).Error; err != nil {
		return nil, err
	}

	return doctors, nil
}

func (r *BillingGormRepository) SumPaidForCompleted(
	ctx context.Context,
	doctorID uint,
	start time.Time,
	end time.Time,
) (int64, error) {

	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Joins("JOIN appointments ON appointments.id = payments.appointment_id").
		Where(
			"appointments.doctor_id = ? AND appointments.status = ? AND payments.status = ? AND appointments.start_time >= ? AND appointments.start_time < ?",
			doctorID,
			string(appointmentdomain.StatusCompleted),
			models.PaymentPaid,
			start,
			end,
		).
		Select("COALESCE(SUM(payments.total_amount), 0)").
		Scan(&total).Error

	return total, err
}

func (r *BillingGormRepository) SumRefundedForCanceled(
	ctx context.Context,
	doctorID uint,
	start time.Time,
	end time.Time,
) (int64, error) {

	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Joins("JOIN appointments ON appointments.id = payments.appointment_id").
		Where(
			"appointments.doctor_id = ? AND appointments.status = ? AND payments.status = ? AND appointments.start_time >= ? AND appointments.start_time < ?",
			doctorID,
			string(appointmentdomain.StatusCanceled),
			models.PaymentRefunded,
			start,
			end,
		).
		Select("COALESCE(SUM(payments.total_amount), 0)").
		Scan(&total).Error

	return total, err
}

// --------------------------------------------------
// Payroll rows
// --------------------------------------------------

func (r *BillingGormRepository) GetPayroll(
	ctx context.Context,
	doctorID uint,
	year int,
	month int,
) (*models.DoctorPayroll, error) {

	var p models.DoctorPayroll
	err := r.db.WithContext(ctx).
		Where("doctor_id = ? AND year = ? AND month = ?", doctorID, year, month).
		First(&p).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *BillingGormRepository) UpsertUnsettled(
	ctx context.Context,
	p *models.DoctorPayroll,
) error {

	if p.ID == 0 {
		return r.db.WithContext(ctx).Create(p).Error
	}

	// Never touch a row that was settled since we read it.
	return r.db.WithContext(ctx).
		Model(&models.DoctorPayroll{}).
		Where("id = ? AND status = ?", p.ID, models.PayrollUnsettled).
		Updates(map[string]any{
			"gross_amount": p.GrossAmount,
			"platform_fee": p.PlatformFee,
			"net_amount":   p.NetAmount,
		}).Error
}

func (r *BillingGormRepository) MarkSettled(
	ctx context.Context,
	doctorID uint,
	year int,
	month int,
	note string,
	now time.Time,
) (int64, error) {

	res := r.db.WithContext(ctx).
		Model(&models.DoctorPayroll{}).
		Where(
			"doctor_id = ? AND year = ? AND month = ? AND status = ?",
			doctorID, year, month, models.PayrollUnsettled,
		).
		Updates(map[string]any{
			"status":     models.PayrollSettled,
			"settled_at": now,
			"note":       note,
		})

	return res.RowsAffected, res.Error
}

// Compile-time check
var _ domain.Repository = (*BillingGormRepository)(nil)
