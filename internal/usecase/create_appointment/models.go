package create_appointment

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Mode сетка, по которой проверяется время записи
type Mode string

const (
	// ModeBooking клиент записывается сам: шаг 30 минут, действуют правила записи
	ModeBooking Mode = "booking"
	// ModeAgenda запись из журнала салона: шаг 15 минут, без минимального срока и горизонта
	ModeAgenda Mode = "agenda"
)

// Request модель запроса на создание записи
type Request struct {
	SalonID   uuid.UUID
	ServiceID uuid.UUID
	Date      time.Time        // календарная дата в часовом поясе салона
	StartTime types.TimeString // время начала слота, например "10:00"
	Notes     *string
	Mode      Mode // пусто = ModeBooking

	// ClientID известный клиент салона. Если не задан, нужен Client
	ClientID *uuid.UUID
	// Client контакты анонимного клиента
	Client *domain.ClientContact
}

// Rules ограничения записи из конфигурации
type Rules struct {
	MaxAdvanceDays   int // 0 - без ограничения
	MinNoticeMinutes int
}

// Response модель ответа с созданной записью
type Response struct {
	ID              uuid.UUID
	SalonID         uuid.UUID
	ServiceID       uuid.UUID
	ClientID        *uuid.UUID
	StartTime       time.Time
	EndTime         time.Time
	Time            types.TimeString // HH:MM в часовом поясе салона
	Timezone        string
	DurationMinutes int
	Status          string
	Notes           *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
