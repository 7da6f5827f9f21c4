package create_appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// CalendarSource адаптер календаря салона
type CalendarSource interface {
	GetSalon(ctx context.Context, salonID uuid.UUID) (*domain.Salon, *time.Location, error)
	GetService(ctx context.Context, salonID, serviceID uuid.UUID) (*domain.Service, error)
	GetOpeningHours(ctx context.Context, salonID uuid.UUID) (domain.WeeklySchedule, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetConfirmedInRange(ctx context.Context, salonID uuid.UUID, from, to time.Time) ([]*domain.Appointment, error)
	Create(ctx context.Context, apt *domain.Appointment) (*domain.Appointment, error)
}

// ClientRepository интерфейс репозитория клиентов
type ClientRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Client, error)
	GetOrCreate(ctx context.Context, salonID uuid.UUID, contact domain.ClientContact) (*domain.Client, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher публикует изменения записей
type EventPublisher interface {
	PublishAppointment(ctx context.Context, apt *domain.Appointment) error
}

// Metrics счётчики записей
type Metrics interface {
	IncAppointment(status string)
	IncConflict(source string)
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
