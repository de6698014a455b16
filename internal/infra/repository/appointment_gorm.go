package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/medbook/clinic-scheduler/internal/domain/appointment"
	"github.com/medbook/clinic-scheduler/internal/httperr"
	"github.com/medbook/clinic-scheduler/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Users
// --------------------------------------------------

func (r *AppointmentGormRepository) GetUserByID(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *AppointmentGormRepository) ListRulesForWeekday(
	ctx context.Context,
	doctorID uint,
	weekday int,
) ([]models.ScheduleRule, error) {

	var rules []models.ScheduleRule
	if err := r.db.WithContext(ctx).
		Where("doctor_id = ? AND weekday = ?", doctorID, weekday).
		Order("start_time ASC").
		Find(&rules).Error; err != nil {
		return nil, err
	}

	return rules, nil
}

func (r *AppointmentGormRepository) ListActiveAppointmentsForDay(
	ctx context.Context,
	doctorID uint,
	dayStart time.Time,
	dayEnd time.Time,
	excludeID string,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Where(
			"doctor_id = ? AND status IN ? AND start_time >= ? AND start_time < ?",
			doctorID, domain.ActiveStatuses, dayStart, dayEnd,
		)

	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}

	var apps []models.Appointment
	if err := q.Order("start_time ASC").Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

// --------------------------------------------------
// Appointment (create / move)
// --------------------------------------------------

// conflictFor locks the doctor's overlapping rows and returns the first
// active appointment that overlaps [start, end), if any. Must run
// inside tx so the lock is held until the write commits.
func conflictFor(
	tx *gorm.DB,
	doctorID uint,
	start time.Time,
	end time.Time,
	excludeID string,
) (*models.Appointment, error) {

	q := tx.
		Model(&models.Appointment{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(
			"doctor_id = ? AND status IN ? AND start_time < ? AND end_time > ?",
			doctorID, domain.ActiveStatuses, end, start,
		)

	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}

	var other models.Appointment
	err := q.Order("start_time ASC").First(&other).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &other, nil
}

func slotConflictErr(other *models.Appointment) error {
	return httperr.SlotConflict(
		"slot_taken",
		fmt.Sprintf("Overlaps existing appointment %s-%s.",
			other.StartTime.Format("15:04"),
			other.EndTime.Format("15:04"),
		),
	)
}

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
	pay *models.Payment,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		other, err := conflictFor(tx, ap.DoctorID, ap.StartTime, ap.EndTime, "")
		if err != nil {
			return err
		}
		if other != nil {
			return slotConflictErr(other)
		}

		if err := tx.Create(ap).Error; err != nil {
			return err
		}

		hist := models.AppointmentStatusHistory{
			AppointmentID: ap.ID,
			OldStatus:     "",
			NewStatus:     ap.Status,
			ActorID:       ap.CreatedBy,
			Note:          "booked",
		}
		if err := tx.Create(&hist).Error; err != nil {
			return err
		}

		if pay != nil {
			if err := tx.Create(pay).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

func (r *AppointmentGormRepository) RescheduleAppointment(
	ctx context.Context,
	ap *models.Appointment,
	note string,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		other, err := conflictFor(tx, ap.DoctorID, ap.StartTime, ap.EndTime, ap.ID)
		if err != nil {
			return err
		}
		if other != nil {
			return slotConflictErr(other)
		}

		if err := tx.Save(ap).Error; err != nil {
			return err
		}

		hist := models.AppointmentStatusHistory{
			AppointmentID: ap.ID,
			OldStatus:     ap.Status,
			NewStatus:     ap.Status,
			ActorID:       ap.UpdatedBy,
			Note:          note,
		}
		return tx.Create(&hist).Error
	})
}

// --------------------------------------------------
// Appointment (state change)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointmentByID(
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

func (r *AppointmentGormRepository) UpdateStatus(
	ctx context.Context,
	ap *models.Appointment,
	old domain.Status,
	note string,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(ap).Error; err != nil {
			return err
		}

		hist := models.AppointmentStatusHistory{
			AppointmentID: ap.ID,
			OldStatus:     string(old),
			NewStatus:     ap.Status,
			ActorID:       ap.UpdatedBy,
			Note:          note,
		}
		return tx.Create(&hist).Error
	})
}

// --------------------------------------------------
// Listings
// --------------------------------------------------

func (r *AppointmentGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	doctorID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment

	err := r.db.WithContext(ctx).
		Preload("Patient").
		Preload("Doctor").
		Where(
			"doctor_id = ? AND start_time >= ? AND start_time < ?",
			doctorID,
			start,
			end,
		).
		Order("start_time ASC").
		Find(&apps).Error

	if err != nil {
		return nil, err
	}

	return apps, nil
}

func (r *AppointmentGormRepository) ListStatusHistory(
	ctx context.Context,
	appointmentID string,
) ([]models.AppointmentStatusHistory, error) {

	var hist []models.AppointmentStatusHistory
	if err := r.db.WithContext(ctx).
		Where("appointment_id = ?", appointmentID).
		Order("created_at DESC, id DESC").
		Find(&hist).Error; err != nil {
		return nil, err
	}

	return hist, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
