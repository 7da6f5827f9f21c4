package domain

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus статус записи
type AppointmentStatus string

const (
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusCompleted AppointmentStatus = "completed"
)

// IsValid returns true for a known status
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// IsTerminal returns true if no transition is defined away from the status
func (s AppointmentStatus) IsTerminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

// CanTransitionTo confirmed -> cancelled | completed; остальные переходы запрещены
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	if !s.IsValid() || s.IsTerminal() {
		return false
	}
	return next == StatusCancelled || next == StatusCompleted
}

// Appointment represents a booked interval [StartTime, EndTime) in a salon
type Appointment struct {
	ID        uuid.UUID
	SalonID   uuid.UUID
	ClientID  *uuid.UUID // nil для анонимной записи без карточки клиента
	ServiceID uuid.UUID
	StartTime time.Time
	EndTime   time.Time
	Status    AppointmentStatus
	Notes     *string

	CancellationReason *string
	CancelledAt        *time.Time
	CompletedAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsConfirmed returns true if the appointment blocks its interval
func (a *Appointment) IsConfirmed() bool {
	return a.Status == StatusConfirmed
}

// DurationMinutes длительность записи в минутах
func (a *Appointment) DurationMinutes() int {
	return int(a.EndTime.Sub(a.StartTime) / time.Minute)
}

// AppointmentsFilter фильтр списка записей салона или клиента
type AppointmentsFilter struct {
	SalonID  *uuid.UUID
	ClientID *uuid.UUID
	From     *time.Time         // начало периода включительно (по start_time)
	To       *time.Time         // конец периода не включительно
	Status   *AppointmentStatus // nil - все статусы
}
