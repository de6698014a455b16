package appointment

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/medbook/clinic-scheduler/internal/domain/appointment"
	"github.com/medbook/clinic-scheduler/internal/httperr"
)

func newRescheduleUC(repo *memRepo, now time.Time) *RescheduleAppointment {
	auditd, notifd := testDispatchers()
	return NewRescheduleAppointment(repo, &fakeLocker{}, auditd, notifd, fixedNow(now))
}

func TestRescheduleAppointment(t *testing.T) {
	ctx := context.Background()

	t.Run("moves the appointment to another generated slot", func(t *testing.T) {
		repo := seededRepo()
		ap := storedAppointment(repo, domain.StatusScheduled)

		newStart, newEnd := slotAt(9, 30)
		uc := newRescheduleUC(repo, ap.StartTime.Add(-5*time.Hour))
		got, err := uc.Execute(ctx, RescheduleAppointmentInput{
			AppointmentID: ap.ID,
			PatientID:     testPatientID,
			NewStart:      newStart,
			NewEnd:        newEnd,
		})
		require.NoError(t, err)

		assert.True(t, got.StartTime.Equal(newStart))
		assert.True(t, got.EndTime.Equal(newEnd))
		assert.Equal(t, string(domain.StatusScheduled), got.Status)

		stored, _ := repo.GetAppointmentByID(ctx, ap.ID)
		assert.True(t, stored.StartTime.Equal(newStart))

		hist := repo.historyFor(ap.ID)
		require.Len(t, hist, 1)
		assert.True(t, strings.HasPrefix(hist[0].Note, "rescheduled from"))
		assert.Contains(t, hist[0].Note, "09:00")
		assert.Contains(t, hist[0].Note, "09:30")
	})

	t.Run("allows moving onto its own current slot", func(t *testing.T) {
		repo := seededRepo()
		ap := storedAppointment(repo, domain.StatusScheduled)

		uc := newRescheduleUC(repo, ap.StartTime.Add(-5*time.Hour))
		_, err := uc.Execute(ctx, RescheduleAppointmentInput{
			AppointmentID: ap.ID,
			PatientID:     testPatientID,
			NewStart:      ap.StartTime,
			NewEnd:        ap.EndTime,
		})
		assert.NoError(t, err, "the appointment's own interval must not count as a conflict")
	})

	t.Run("rejects inside the notice window", func(t *testing.T) {
		repo := seededRepo()
		ap := storedAppointment(repo, domain.StatusScheduled)

		newStart, newEnd := slotAt(9, 30)
		uc := newRescheduleUC(repo, ap.StartTime.Add(-4*time.Hour).Add(time.Second))
		_, err := uc.Execute(ctx, RescheduleAppointmentInput{
			AppointmentID: ap.ID,
			PatientID:     testPatientID,
			NewStart:      newStart,
			NewEnd:        newEnd,
		})
		assert.True(t, httperr.IsCode(err, "reschedule_window_closed"))

		stored, _ := repo.GetAppointmentByID(ctx, ap.ID)
		assert.True(t, stored.StartTime.Equal(ap.StartTime), "rejected move must not persist")
	})

	t.Run("rejects a target slot held by someone else", func(t *testing.T) {
		repo := seededRepo()
		ap := storedAppointment(repo, domain.StatusScheduled)

		otherStart, otherEnd := slotAt(9, 30)
		create := newCreateUC(repo)
		_, err := create.Execute(ctx, CreateAppointmentInput{
			DoctorID:  testDoctorID,
			PatientID: 11,
			Start:     otherStart,
			End:       otherEnd,
		})
		require.NoError(t, err)

		uc := newRescheduleUC(repo, ap.StartTime.Add(-5*time.Hour))
		_, err = uc.Execute(ctx, RescheduleAppointmentInput{
			AppointmentID: ap.ID,
			PatientID:     testPatientID,
			NewStart:      otherStart,
			NewEnd:        otherEnd,
		})
		assert.True(t, httperr.IsKind(err, httperr.KindSlotConflict))
	})

	t.Run("rejects a target interval that is not a generated slot", func(t *testing.T) {
		repo := seededRepo()
		ap := storedAppointment(repo, domain.StatusScheduled)

		// Wednesday has no rules for this doctor.
		wednesday := monday.Add(48 * time.Hour)
		uc := newRescheduleUC(repo, ap.StartTime.Add(-5*time.Hour))
		_, err := uc.Execute(ctx, RescheduleAppointmentInput{
			AppointmentID: ap.ID,
			PatientID:     testPatientID,
			NewStart:      wednesday.Add(9 * time.Hour),
			NewEnd:        wednesday.Add(9*time.Hour + 15*time.Minute),
		})
		assert.True(t, httperr.IsCode(err, "invalid_slot"))
	})

	t.Run("rejects once the visit is in process", func(t *testing.T) {
		repo := seededRepo()
		ap := storedAppointment(repo, domain.StatusInProcess)

		newStart, newEnd := slotAt(9, 30)
		uc := newRescheduleUC(repo, ap.StartTime.Add(-5*time.Hour))
		_, err := uc.Execute(ctx, RescheduleAppointmentInput{
			AppointmentID: ap.ID,
			PatientID:     testPatientID,
			NewStart:      newStart,
			NewEnd:        newEnd,
		})
		assert.True(t, httperr.IsCode(err, "invalid_status"))
	})
}
