package appointment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from Status
		to   Status
		want bool
	}{
		{"scheduled to in_process", StatusScheduled, StatusInProcess, true},
		{"scheduled to canceled", StatusScheduled, StatusCanceled, true},
		{"in_process to completed", StatusInProcess, StatusCompleted, true},
		{"in_process to canceled", StatusInProcess, StatusCanceled, true},
		{"scheduled to completed skips in_process", StatusScheduled, StatusCompleted, false},
		{"completed is terminal", StatusCompleted, StatusCanceled, false},
		{"canceled is terminal", StatusCanceled, StatusScheduled, false},
		{"canceled cannot complete", StatusCanceled, StatusCompleted, false},
		{"no self transition", StatusScheduled, StatusScheduled, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, IsTerminal(StatusCompleted))
	assert.True(t, IsTerminal(StatusCanceled))
	assert.False(t, IsTerminal(StatusScheduled))
	assert.False(t, IsTerminal(StatusInProcess))
}

func TestIsActive(t *testing.T) {
	assert.True(t, IsActive(StatusScheduled))
	assert.True(t, IsActive(StatusInProcess))
	assert.False(t, IsActive(StatusCompleted))
	assert.False(t, IsActive(StatusCanceled))
}
