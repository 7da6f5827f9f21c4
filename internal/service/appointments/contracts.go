package appointments

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error)
	List(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
	Cancel(ctx context.Context, id uuid.UUID, reason *string, at time.Time) (*domain.Appointment, error)
	Complete(ctx context.Context, id uuid.UUID, at time.Time) (*domain.Appointment, error)
}

// ClientRepository интерфейс репозитория клиентов
type ClientRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Client, error)
}

// SalonSource источник данных салона (часовой пояс для периодов журнала)
type SalonSource interface {
	GetSalon(ctx context.Context, salonID uuid.UUID) (*domain.Salon, *time.Location, error)
}

// EventPublisher публикует изменения записей
type EventPublisher interface {
	PublishAppointment(ctx context.Context, apt *domain.Appointment) error
}

// Metrics счётчики записей
type Metrics interface {
	IncAppointment(status string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
