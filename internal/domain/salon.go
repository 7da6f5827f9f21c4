package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Salon салон (барбершоп), владелец расписания, услуг и записей
type Salon struct {
	ID       uuid.UUID
	Name     string
	Timezone string // IANA, например "Europe/Moscow"
}

// Location разрешает часовой пояс салона. Пустой пояс - UTC
func (s *Salon) Location() (*time.Location, error) {
	if s.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidTimezone, s.Timezone, err)
	}
	return loc, nil
}

// Service услуга салона. Для расчёта слотов важна только длительность
type Service struct {
	ID              uuid.UUID
	SalonID         uuid.UUID
	Name            string
	DurationMinutes int
	Price           float64
}

// Duration длительность услуги; неположительное значение заменяется значением по умолчанию
func (s *Service) Duration() int {
	if s.DurationMinutes <= 0 {
		return DefaultServiceDurationMinutes
	}
	return s.DurationMinutes
}

// Client карточка клиента салона
type Client struct {
	ID        uuid.UUID
	SalonID   uuid.UUID
	FirstName string
	LastName  string
	Email     string
	Phone     *string
	CreatedAt time.Time
}

// ClientContact контактные данные анонимного клиента из формы записи
type ClientContact struct {
	FirstName string
	LastName  string
	Email     string
	Phone     *string
}
