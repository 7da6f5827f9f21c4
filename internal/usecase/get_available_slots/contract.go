package get_available_slots

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBooking/internal/service/calendar"
)

// CalendarSource адаптер календаря салона
type CalendarSource interface {
	Snapshot(ctx context.Context, salonID, serviceID uuid.UUID, date time.Time) (*calendar.Snapshot, error)
}

// SupersedeGuard отменяет предыдущий расчёт той же сессии клиента
type SupersedeGuard interface {
	Acquire(ctx context.Context, key string) (context.Context, func())
}

// Metrics метрики расчёта слотов
type Metrics interface {
	ObserveSlotQuery(mode string, elapsed time.Duration)
	IncSuperseded()
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
