package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

type fakeSource struct {
	salon    *domain.Salon
	service  *domain.Service
	schedule domain.WeeklySchedule
	err      error
	calls    map[string]int
}

func newFakeSource() *fakeSource {
	return &fakeSource{calls: make(map[string]int)}
}

func (f *fakeSource) GetSalon(ctx context.Context, salonID uuid.UUID) (*domain.Salon, error) {
	f.calls["salon"]++
	return f.salon, f.err
}

func (f *fakeSource) GetService(ctx context.Context, salonID, serviceID uuid.UUID) (*domain.Service, error) {
	f.calls["service"]++
	return f.service, f.err
}

func (f *fakeSource) GetOpeningHours(ctx context.Context, salonID uuid.UUID) (domain.WeeklySchedule, error) {
	f.calls["hours"]++
	return f.schedule, f.err
}

type nopLogger struct{}

func (nopLogger) Warn(format string, v ...interface{}) {}

func newCache(t *testing.T, source Source) (*Calendar, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewCalendar(source, client, time.Minute, nopLogger{}), mr
}

func TestCalendar_OpeningHoursReadThrough(t *testing.T) {
	salonID := uuid.New()
	source := newFakeSource()
	source.schedule = domain.WeeklySchedule{
		{SalonID: salonID, DayOfWeek: 1, OpenTime: "09:00", CloseTime: "17:00"},
		{SalonID: salonID, DayOfWeek: 0, IsClosed: true},
	}
	c, mr := newCache(t, source)

	first, err := c.GetOpeningHours(context.Background(), salonID)
	require.NoError(t, err)
	second, err := c.GetOpeningHours(context.Background(), salonID)
	require.NoError(t, err)

	assert.Equal(t, 1, source.calls["hours"])
	assert.Equal(t, first, second)
	assert.True(t, mr.Exists(hoursKey(salonID)))

	require.NoError(t, c.InvalidateOpeningHours(context.Background(), salonID))
	_, err = c.GetOpeningHours(context.Background(), salonID)
	require.NoError(t, err)
	assert.Equal(t, 2, source.calls["hours"])
}

func TestCalendar_SalonAndServiceCached(t *testing.T) {
	salonID, serviceID := uuid.New(), uuid.New()
	source := newFakeSource()
	source.salon = &domain.Salon{ID: salonID, Name: "Barber", Timezone: "Europe/Moscow"}
	source.service = &domain.Service{ID: serviceID, SalonID: salonID, Name: "Beard", DurationMinutes: 20, Price: 10}
	c, _ := newCache(t, source)

	for i := 0; i < 3; i++ {
		salon, err := c.GetSalon(context.Background(), salonID)
		require.NoError(t, err)
		assert.Equal(t, "Europe/Moscow", salon.Timezone)

		service, err := c.GetService(context.Background(), salonID, serviceID)
		require.NoError(t, err)
		assert.Equal(t, 20, service.DurationMinutes)
	}

	assert.Equal(t, 1, source.calls["salon"])
	assert.Equal(t, 1, source.calls["service"])
}

func TestCalendar_SourceErrorNotCached(t *testing.T) {
	source := newFakeSource()
	source.err = errors.New("db down")
	c, mr := newCache(t, source)
	salonID := uuid.New()

	_, err := c.GetOpeningHours(context.Background(), salonID)
	assert.Error(t, err)
	assert.False(t, mr.Exists(hoursKey(salonID)))
}

func TestCalendar_RedisDownFallsBackToSource(t *testing.T) {
	salonID := uuid.New()
	source := newFakeSource()
	source.schedule = domain.WeeklySchedule{{SalonID: salonID, DayOfWeek: 2, OpenTime: "10:00", CloseTime: "18:00"}}
	c, mr := newCache(t, source)
	mr.Close()

	schedule, err := c.GetOpeningHours(context.Background(), salonID)
	require.NoError(t, err)
	assert.Len(t, schedule, 1)
	assert.Equal(t, 1, source.calls["hours"])
}
