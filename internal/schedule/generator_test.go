package schedule

import (
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// 2025-10-13 - понедельник
var monday = time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)

func weekdays(openTime, closeTime types.TimeString) domain.WeeklySchedule {
	schedule := make(domain.WeeklySchedule, 0, 7)
	for day := 1; day <= 5; day++ {
		schedule = append(schedule, domain.OpeningHours{DayOfWeek: day, OpenTime: openTime, CloseTime: closeTime})
	}
	return append(schedule, domain.OpeningHours{DayOfWeek: 0, IsClosed: true})
}

func times(slots []domain.TimeSlot) []string {
	result := make([]string, len(slots))
	for i, s := range slots {
		result[i] = s.Time.String()
	}
	return result
}

func TestGenerate_FullDayNoBookings(t *testing.T) {
	yesterday := monday.Add(-24 * time.Hour)

	slots, err := GenerateSlots(monday, 30, weekdays("09:00", "17:00"), yesterday, time.UTC, BookingOptions)
	require.NoError(t, err)

	require.Len(t, slots, 16)
	assert.Equal(t, "09:00", slots[0].Time.String())
	assert.Equal(t, "16:30", slots[15].Time.String())
	for _, s := range slots {
		assert.True(t, s.Available)
		assert.False(t, s.IsPast)
		assert.Equal(t, 30*time.Minute, s.End.Sub(s.Start))
	}
}

func TestGenerate_DurationOverflow(t *testing.T) {
	slots, err := GenerateSlots(monday, 45, weekdays("09:00", "10:00"), monday.Add(-time.Hour), time.UTC,
		BookingOptions)
	require.NoError(t, err)

	assert.Equal(t, []string{"09:00"}, times(slots))
}

func TestGenerate_DurationOverflowAgendaStep(t *testing.T) {
	slots, err := GenerateSlots(monday, 45, weekdays("09:00", "10:00"), monday.Add(-time.Hour), time.UTC,
		AgendaOptions)
	require.NoError(t, err)

	// 09:15 + 45 = 10:00 ещё помещается, 09:30 уже нет
	assert.Equal(t, []string{"09:00", "09:15"}, times(slots))
}

func TestGenerate_ClosedDay(t *testing.T) {
	sunday := monday.AddDate(0, 0, -1)

	slots, err := GenerateSlots(sunday, 30, weekdays("09:00", "17:00"), monday.AddDate(0, 0, -7), time.UTC, BookingOptions)
	require.NoError(t, err)
	assert.NotNil(t, slots)
	assert.Empty(t, slots)
}

func TestGenerate_MissingWeekdayIsClosed(t *testing.T) {
	saturday := monday.AddDate(0, 0, 5)

	slots, err := GenerateSlots(saturday, 30, weekdays("09:00", "17:00"), monday, time.UTC, AgendaOptions)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGenerate_PastSlots(t *testing.T) {
	now := monday.Add(10*time.Hour + 10*time.Minute) // 10:10

	t.Run("booking flow drops past slots", func(t *testing.T) {
		slots, err := GenerateSlots(monday, 30, weekdays("09:00", "12:00"), now, time.UTC, BookingOptions)
		require.NoError(t, err)
		assert.Equal(t, []string{"10:30", "11:00", "11:30"}, times(slots))
	})

	t.Run("agenda lists past slots as unavailable", func(t *testing.T) {
		slots, err := GenerateSlots(monday, 30, weekdays("09:00", "10:30"), now, time.UTC, AgendaOptions)
		require.NoError(t, err)
		require.Equal(t, []string{"09:00", "09:15", "09:30", "09:45", "10:00"}, times(slots))
		for _, s := range slots {
			assert.True(t, s.IsPast, s.Time)
			assert.False(t, s.Available, s.Time)
		}
	})

	t.Run("slot starting exactly now is not past", func(t *testing.T) {
		slots, err := GenerateSlots(monday, 30, weekdays("09:00", "12:00"), monday.Add(11*time.Hour), time.UTC, BookingOptions)
		require.NoError(t, err)
		assert.Equal(t, []string{"11:00", "11:30"}, times(slots))
	})
}

func TestGenerate_SalonTimezone(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Moscow")
	require.NoError(t, err)

	// Календарная дата берётся из самого значения, окно строится в поясе салона
	date := time.Date(2025, 10, 13, 0, 30, 0, 0, time.UTC)

	slots, err := GenerateSlots(date, 60, weekdays("09:00", "11:00"), monday.AddDate(0, 0, -1), loc, BookingOptions)
	require.NoError(t, err)
	require.Equal(t, []string{"09:00", "09:30", "10:00"}, times(slots))
	assert.Equal(t, time.Date(2025, 10, 13, 6, 0, 0, 0, time.UTC), slots[0].Start.UTC())
}

func TestGenerate_DaylightSavingGap(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	// 2025-03-30 - воскресенье, часы переводятся 02:00 -> 03:00
	date := time.Date(2025, 3, 30, 0, 0, 0, 0, loc)
	hours := domain.WeeklySchedule{{DayOfWeek: 0, OpenTime: "01:00", CloseTime: "04:00"}}

	slots, err := GenerateSlots(date, 30, hours, date.AddDate(0, 0, -1), loc, BookingOptions)
	require.NoError(t, err)

	// Окно длится 2 часа реального времени
	assert.Equal(t, []string{"01:00", "01:30", "03:00", "03:30"}, times(slots))
	for i := 1; i < len(slots); i++ {
		assert.Equal(t, 30*time.Minute, slots[i].Start.Sub(slots[i-1].Start))
	}
}

func TestGenerate_Errors(t *testing.T) {
	hours := weekdays("09:00", "17:00")

	_, err := GenerateSlots(monday, 0, hours, monday, time.UTC, BookingOptions)
	assert.ErrorIs(t, err, ErrInvalidDuration)

	_, err = GenerateSlots(monday, 30, hours, monday, time.UTC, Options{StepMinutes: 0})
	assert.ErrorIs(t, err, ErrInvalidStep)

	_, err = GenerateSlots(monday, 30, weekdays("17:00", "09:00"), monday, time.UTC, BookingOptions)
	assert.ErrorIs(t, err, ErrMalformedHours)

	_, err = GenerateSlots(monday, 30, weekdays("nine", "17:00"), monday, time.UTC, BookingOptions)
	assert.ErrorIs(t, err, ErrMalformedHours)
}

func TestGenerate_Properties(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))

	for i := 0; i < 200; i++ {
		openMin := rnd.Intn(12*60/15) * 15
		closeMin := openMin + 15 + rnd.Intn((24*60-openMin-15)/15)*15
		open, err := types.TimeString("00:00").AddMinutes(openMin)
		require.NoError(t, err)
		closeAt, err := types.TimeString("00:00").AddMinutes(closeMin)
		if err != nil {
			continue
		}
		duration := 15 + rnd.Intn(12)*15
		opts := []Options{BookingOptions, AgendaOptions}[rnd.Intn(2)]
		now := monday.Add(time.Duration(rnd.Intn(24*60)) * time.Minute)
		hours := weekdays(open, closeAt)

		first, err := GenerateSlots(monday, duration, hours, now, time.UTC, opts)
		require.NoError(t, err)
		second, err := GenerateSlots(monday, duration, hours, now, time.UTC, opts)
		require.NoError(t, err)

		// Идемпотентность
		assert.Equal(t, first, second)

		windowOpen := monday.Add(time.Duration(openMin) * time.Minute)
		windowClose := monday.Add(time.Duration(closeMin) * time.Minute)
		for j, s := range first {
			// Слот помещается в окно
			assert.False(t, s.Start.Before(windowOpen))
			assert.False(t, s.End.After(windowClose))
			// Порядок по возрастанию
			if j > 0 {
				assert.True(t, first[j-1].Start.Before(s.Start))
			}
			// Прошедшие слоты не предлагаются к записи
			if s.Start.Before(now) {
				assert.True(t, opts.IncludePast)
				assert.False(t, s.Available)
			}
		}
	}
}

func TestMarkAvailability_BlockingOverlap(t *testing.T) {
	slots, err := GenerateSlots(monday, 30, weekdays("09:00", "17:00"), monday.AddDate(0, 0, -1), time.UTC, BookingOptions)
	require.NoError(t, err)

	apt := &domain.Appointment{
		ID:        uuid.New(),
		StartTime: monday.Add(10 * time.Hour),
		EndTime:   monday.Add(10*time.Hour + 45*time.Minute),
		Status:    domain.StatusConfirmed,
	}

	marked := MarkAvailability(slots, []*domain.Appointment{apt})
	byTime := make(map[string]bool, len(marked))
	for _, s := range marked {
		byTime[s.Time.String()] = s.Available
	}

	assert.False(t, byTime["10:00"])
	assert.False(t, byTime["10:30"])
	assert.True(t, byTime["09:30"])
	assert.True(t, byTime["11:00"])

	// Исходные слоты не изменились
	for _, s := range slots {
		assert.True(t, s.Available)
	}
	assert.Len(t, BookableOnly(marked), 14)
}

func TestMarkAvailability_IgnoresNonConfirmed(t *testing.T) {
	slots, err := GenerateSlots(monday, 30, weekdays("09:00", "11:00"), monday.AddDate(0, 0, -1), time.UTC, BookingOptions)
	require.NoError(t, err)

	appointments := []*domain.Appointment{
		{StartTime: monday.Add(9 * time.Hour), EndTime: monday.Add(10 * time.Hour), Status: domain.StatusCancelled},
		{StartTime: monday.Add(10 * time.Hour), EndTime: monday.Add(11 * time.Hour), Status: domain.StatusCompleted},
	}

	assert.Len(t, BookableOnly(MarkAvailability(slots, appointments)), 4)
}

func TestMarkAvailability_NoOverlapInvariant(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	slots, err := GenerateSlots(monday, 45, weekdays("08:00", "20:00"), monday.AddDate(0, 0, -1), time.UTC, AgendaOptions)
	require.NoError(t, err)

	for i := 0; i < 100; i++ {
		appointments := make([]*domain.Appointment, 0)
		for n := rnd.Intn(6); n > 0; n-- {
			start := monday.Add(time.Duration(8*60+rnd.Intn(12*60)) * time.Minute)
			appointments = append(appointments, &domain.Appointment{
				StartTime: start,
				EndTime:   start.Add(time.Duration(5+rnd.Intn(120)) * time.Minute),
				Status:    domain.StatusConfirmed,
			})
		}

		for _, s := range BookableOnly(MarkAvailability(slots, appointments)) {
			for _, apt := range appointments {
				assert.False(t, Overlaps(s.Start, s.End, apt.StartTime, apt.EndTime))
			}
		}
	}
}

func TestOverlaps_HalfOpen(t *testing.T) {
	at := func(h, m int) time.Time { return monday.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute) }

	assert.True(t, Overlaps(at(11, 30), at(12, 0), at(11, 20), at(11, 40)))
	assert.False(t, Overlaps(at(11, 30), at(12, 0), at(11, 0), at(11, 30)))
	assert.False(t, Overlaps(at(11, 30), at(12, 0), at(12, 0), at(12, 30)))
	assert.True(t, Overlaps(at(11, 0), at(13, 0), at(11, 30), at(12, 0)))
}

func TestFindSlot(t *testing.T) {
	slots, err := GenerateSlots(monday, 30, weekdays("09:00", "10:00"), monday.AddDate(0, 0, -1), time.UTC, BookingOptions)
	require.NoError(t, err)

	slot, ok := FindSlot(slots, "09:30")
	require.True(t, ok)
	assert.Equal(t, monday.Add(9*time.Hour+30*time.Minute), slot.Start)

	_, ok = FindSlot(slots, "09:15")
	assert.False(t, ok)
}

func TestComposeInstant(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	got, err := ComposeInstant(time.Date(2025, 7, 4, 23, 0, 0, 0, time.UTC), "09:15", loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 7, 4, 13, 15, 0, 0, time.UTC), got.UTC())

	_, err = ComposeInstant(monday, "25:00", loc)
	assert.ErrorIs(t, err, types.ErrInvalidTimeString)

	start, end := DayRange(time.Date(2025, 11, 2, 12, 0, 0, 0, loc), loc)
	assert.Equal(t, 25*time.Hour, end.Sub(start))
}
