package appointment

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/medbook/clinic-scheduler/internal/audit"
	domain "github.com/medbook/clinic-scheduler/internal/domain/appointment"
	"github.com/medbook/clinic-scheduler/internal/httperr"
	"github.com/medbook/clinic-scheduler/internal/models"
	"github.com/medbook/clinic-scheduler/internal/notify"
)

// memRepo is an in-memory domain.Repository. All writes run under one
// mutex, mirroring the transactional conflict check of the real store.
type memRepo struct {
	mu           sync.Mutex
	users        map[uint]*models.User
	rules        []models.ScheduleRule
	appointments map[string]models.Appointment
	history      []models.AppointmentStatusHistory
	payments     []models.Payment
}

func newMemRepo() *memRepo {
	return &memRepo{
		users:        map[uint]*models.User{},
		appointments: map[string]models.Appointment{},
	}
}

func (r *memRepo) addUser(u models.User) {
	r.users[u.ID] = &u
}

func (r *memRepo) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memRepo) ListRulesForWeekday(ctx context.Context, doctorID uint, weekday int) ([]models.ScheduleRule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.ScheduleRule
	for _, rule := range r.rules {
		if rule.DoctorID == doctorID && rule.Weekday == weekday {
			out = append(out, rule)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime < out[j].StartTime })
	return out, nil
}

func (r *memRepo) ListActiveAppointmentsForDay(ctx context.Context, doctorID uint, dayStart, dayEnd time.Time, excludeID string) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.DoctorID != doctorID || ap.ID == excludeID {
			continue
		}
		if !domain.IsActive(domain.Status(ap.Status)) {
			continue
		}
		if ap.StartTime.Before(dayStart) || !ap.StartTime.Before(dayEnd) {
			continue
		}
		out = append(out, ap)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (r *memRepo) conflictLocked(doctorID uint, start, end time.Time, excludeID string) *models.Appointment {
	for _, ap := range r.appointments {
		if ap.DoctorID != doctorID || ap.ID == excludeID {
			continue
		}
		if !domain.IsActive(domain.Status(ap.Status)) {
			continue
		}
		if domain.Overlaps(start, end, ap.StartTime, ap.EndTime) {
			cp := ap
			return &cp
		}
	}
	return nil
}

func (r *memRepo) CreateAppointment(ctx context.Context, ap *models.Appointment, pay *models.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if other := r.conflictLocked(ap.DoctorID, ap.StartTime, ap.EndTime, ""); other != nil {
		return httperr.SlotConflict("slot_taken", "Overlaps existing appointment.")
	}

	r.appointments[ap.ID] = *ap
	r.history = append(r.history, models.AppointmentStatusHistory{
		AppointmentID: ap.ID,
		NewStatus:     ap.Status,
		ActorID:       ap.CreatedBy,
		Note:          "booked",
		CreatedAt:     time.Now(),
	})
	if pay != nil {
		r.payments = append(r.payments, *pay)
	}
	return nil
}

func (r *memRepo) RescheduleAppointment(ctx context.Context, ap *models.Appointment, note string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if other := r.conflictLocked(ap.DoctorID, ap.StartTime, ap.EndTime, ap.ID); other != nil {
		return httperr.SlotConflict("slot_taken", "Overlaps existing appointment.")
	}

	r.appointments[ap.ID] = *ap
	r.history = append(r.history, models.AppointmentStatusHistory{
		AppointmentID: ap.ID,
		OldStatus:     ap.Status,
		NewStatus:     ap.Status,
		ActorID:       ap.UpdatedBy,
		Note:          note,
		CreatedAt:     time.Now(),
	})
	return nil
}

func (r *memRepo) GetAppointmentByID(ctx context.Context, id string) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ap, ok := r.appointments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := ap
	return &cp, nil
}

func (r *memRepo) UpdateStatus(ctx context.Context, ap *models.Appointment, old domain.Status, note string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.appointments[ap.ID] = *ap
	r.history = append(r.history, models.AppointmentStatusHistory{
		AppointmentID: ap.ID,
		OldStatus:     string(old),
		NewStatus:     ap.Status,
		ActorID:       ap.UpdatedBy,
		Note:          note,
		CreatedAt:     time.Now(),
	})
	return nil
}

func (r *memRepo) ListAppointmentsForPeriod(ctx context.Context, doctorID uint, start, end time.Time) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.DoctorID != doctorID {
			continue
		}
		if ap.StartTime.Before(start) || !ap.StartTime.Before(end) {
			continue
		}
		out = append(out, ap)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (r *memRepo) ListStatusHistory(ctx context.Context, appointmentID string) ([]models.AppointmentStatusHistory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.AppointmentStatusHistory
	for i := len(r.history) - 1; i >= 0; i-- {
		if r.history[i].AppointmentID == appointmentID {
			out = append(out, r.history[i])
		}
	}
	return out, nil
}

func (r *memRepo) historyFor(id string) []models.AppointmentStatusHistory {
	out, _ := r.ListStatusHistory(context.Background(), id)
	return out
}

var _ domain.Repository = (*memRepo)(nil)

// fakeLocker serializes like the redis locker but in-process.
type fakeLocker struct {
	mu sync.Mutex
}

func (l *fakeLocker) WithDoctorLock(ctx context.Context, doctorID uint, day time.Time, fn func(ctx context.Context) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return fn(ctx)
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
