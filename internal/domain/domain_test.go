package domain

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppointmentStatus_Transitions(t *testing.T) {
	assert.True(t, StatusConfirmed.CanTransitionTo(StatusCancelled))
	assert.True(t, StatusConfirmed.CanTransitionTo(StatusCompleted))
	assert.False(t, StatusConfirmed.CanTransitionTo(StatusConfirmed))
	assert.False(t, StatusCancelled.CanTransitionTo(StatusCompleted))
	assert.False(t, StatusCompleted.CanTransitionTo(StatusCancelled))
	assert.True(t, StatusCancelled.IsTerminal())
	assert.False(t, AppointmentStatus("pending").IsValid())
	assert.False(t, AppointmentStatus("pending").CanTransitionTo(StatusCancelled))
}

func TestOpeningHours_Validate(t *testing.T) {
	tests := []struct {
		name    string
		hours   OpeningHours
		wantErr bool
	}{
		{name: "open day", hours: OpeningHours{DayOfWeek: 1, OpenTime: "09:00", CloseTime: "17:00"}},
		{name: "closed day ignores times", hours: OpeningHours{DayOfWeek: 0, IsClosed: true, OpenTime: "bad"}},
		{name: "inverted range", hours: OpeningHours{DayOfWeek: 2, OpenTime: "17:00", CloseTime: "09:00"}, wantErr: true},
		{name: "empty range", hours: OpeningHours{DayOfWeek: 2, OpenTime: "09:00", CloseTime: "09:00"}, wantErr: true},
		{name: "bad day", hours: OpeningHours{DayOfWeek: 7, OpenTime: "09:00", CloseTime: "17:00"}, wantErr: true},
		{name: "bad time", hours: OpeningHours{DayOfWeek: 3, OpenTime: "9am", CloseTime: "17:00"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.hours.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMalformedOpeningHours)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestWeeklySchedule_FullFillsMissingDaysAsClosed(t *testing.T) {
	salonID := uuid.New()
	schedule := WeeklySchedule{
		{SalonID: salonID, DayOfWeek: 1, OpenTime: "09:00", CloseTime: "17:00"},
	}

	full := schedule.Full(salonID)
	require.Len(t, full, 7)
	for day, h := range full {
		assert.Equal(t, day, h.DayOfWeek)
		assert.Equal(t, day != 1, h.IsClosed)
	}
}

func TestSalon_Location(t *testing.T) {
	loc, err := (&Salon{}).Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)

	_, err = (&Salon{Timezone: "Mars/Olympus"}).Location()
	assert.ErrorIs(t, err, ErrInvalidTimezone)
}

func TestService_DurationDefault(t *testing.T) {
	assert.Equal(t, DefaultServiceDurationMinutes, (&Service{}).Duration())
	assert.Equal(t, 45, (&Service{DurationMinutes: 45}).Duration())
}

func TestValidationError(t *testing.T) {
	verr := NewValidationError()
	assert.NoError(t, verr.OrNil())

	verr.Add("email")
	verr.Add("date")
	err := fmt.Errorf("wrapped: %w", verr.OrNil())

	assert.ErrorIs(t, err, ErrValidation)
	var target *ValidationError
	require.True(t, errors.As(err, &target))
	assert.Equal(t, []string{"email", "date"}, target.Fields)
}
