package calendar

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// SalonSource салоны, услуги и часы работы
type SalonSource interface {
	GetSalon(ctx context.Context, salonID uuid.UUID) (*domain.Salon, error)
	GetService(ctx context.Context, salonID, serviceID uuid.UUID) (*domain.Service, error)
	GetOpeningHours(ctx context.Context, salonID uuid.UUID) (domain.WeeklySchedule, error)
}

// AppointmentSource подтверждённые записи салона
type AppointmentSource interface {
	GetConfirmedInRange(ctx context.Context, salonID uuid.UUID, from, to time.Time) ([]*domain.Appointment, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
