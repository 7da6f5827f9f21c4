package opening_hours

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// CalendarSource чтение салона и его расписания
type CalendarSource interface {
	GetSalon(ctx context.Context, salonID uuid.UUID) (*domain.Salon, *time.Location, error)
	GetOpeningHours(ctx context.Context, salonID uuid.UUID) (domain.WeeklySchedule, error)
}

// HoursRepository запись расписания
type HoursRepository interface {
	ReplaceOpeningHours(ctx context.Context, salonID uuid.UUID, schedule domain.WeeklySchedule) error
}

// CacheInvalidator сбрасывает закэшированное расписание салона
type CacheInvalidator interface {
	InvalidateOpeningHours(ctx context.Context, salonID uuid.UUID) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
