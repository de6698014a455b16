package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medbook/clinic-scheduler/internal/httperr"
)

func week(days ...DayConfig) []DayConfig { return days }

func TestValidateWeek(t *testing.T) {
	t.Run("valid schedule", func(t *testing.T) {
		err := ValidateWeek(30, 150000, week(
			DayConfig{Weekday: 1, Enabled: true, Windows: []Window{
				{Start: "09:00", End: "12:00"},
				{Start: "13:00", End: "17:00"},
			}},
			DayConfig{Weekday: 2, Enabled: false},
		))
		require.NoError(t, err)
	})

	t.Run("touching windows are allowed", func(t *testing.T) {
		err := ValidateWeek(15, 0, week(
			DayConfig{Weekday: 3, Enabled: true, Windows: []Window{
				{Start: "09:00", End: "12:00"},
				{Start: "12:00", End: "15:00"},
			}},
		))
		require.NoError(t, err)
	})

	t.Run("session length outside the allowed set", func(t *testing.T) {
		err := ValidateWeek(45, 0, nil)
		assert.True(t, httperr.IsCode(err, "invalid_session_length"))
	})

	t.Run("negative price", func(t *testing.T) {
		err := ValidateWeek(30, -1, nil)
		assert.True(t, httperr.IsCode(err, "invalid_price"))
	})

	t.Run("weekday out of range", func(t *testing.T) {
		err := ValidateWeek(30, 0, week(DayConfig{Weekday: 8, Enabled: true}))
		assert.True(t, httperr.IsCode(err, "invalid_weekday"))
	})

	t.Run("duplicate weekday", func(t *testing.T) {
		err := ValidateWeek(30, 0, week(
			DayConfig{Weekday: 1},
			DayConfig{Weekday: 1},
		))
		assert.True(t, httperr.IsCode(err, "duplicate_weekday"))
	})

	t.Run("overlapping windows rejected", func(t *testing.T) {
		err := ValidateWeek(30, 0, week(
			DayConfig{Weekday: 5, Enabled: true, Windows: []Window{
				{Start: "09:00", End: "12:00"},
				{Start: "11:30", End: "14:00"},
			}},
		))
		assert.True(t, httperr.IsCode(err, "overlapping_windows"))
		assert.Contains(t, err.Error(), "Weekday 5 slot 1")
	})

	t.Run("inverted window", func(t *testing.T) {
		err := ValidateWeek(30, 0, week(
			DayConfig{Weekday: 4, Enabled: true, Windows: []Window{
				{Start: "12:00", End: "09:00"},
			}},
		))
		assert.True(t, httperr.IsCode(err, "invalid_window"))
	})

	t.Run("malformed time", func(t *testing.T) {
		err := ValidateWeek(30, 0, week(
			DayConfig{Weekday: 4, Enabled: true, Windows: []Window{
				{Start: "9am", End: "10:00"},
			}},
		))
		assert.True(t, httperr.IsCode(err, "invalid_time"))
	})

	t.Run("disabled day skips window checks", func(t *testing.T) {
		err := ValidateWeek(30, 0, week(
			DayConfig{Weekday: 6, Enabled: false, Windows: []Window{
				{Start: "bad", End: "worse"},
			}},
		))
		require.NoError(t, err)
	})
}
