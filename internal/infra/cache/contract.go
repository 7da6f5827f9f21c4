package cache

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// Source хранилище, поверх которого работает кэш
type Source interface {
	GetSalon(ctx context.Context, salonID uuid.UUID) (*domain.Salon, error)
	GetService(ctx context.Context, salonID, serviceID uuid.UUID) (*domain.Service, error)
	GetOpeningHours(ctx context.Context, salonID uuid.UUID) (domain.WeeklySchedule, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}
