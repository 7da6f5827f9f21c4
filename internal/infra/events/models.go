package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// EventType тип события о записи
type EventType string

const (
	AppointmentCreated   EventType = "appointment.created"
	AppointmentCancelled EventType = "appointment.cancelled"
	AppointmentCompleted EventType = "appointment.completed"
)

// AppointmentEvent тело сообщения
type AppointmentEvent struct {
	EventID    uuid.UUID        `json:"event_id"`
	EventType  EventType        `json:"event_type"`
	OccurredAt time.Time        `json:"occurred_at"`
	Data       AppointmentState `json:"data"`
}

// AppointmentState снимок записи на момент события
type AppointmentState struct {
	ID                 uuid.UUID  `json:"id"`
	SalonID            uuid.UUID  `json:"salon_id"`
	ClientID           *uuid.UUID `json:"client_id,omitempty"`
	ServiceID          uuid.UUID  `json:"service_id"`
	StartTime          time.Time  `json:"start_time"`
	EndTime            time.Time  `json:"end_time"`
	Status             string     `json:"status"`
	CancellationReason *string    `json:"cancellation_reason,omitempty"`
}

func stateOf(apt *domain.Appointment) AppointmentState {
	return AppointmentState{
		ID:                 apt.ID,
		SalonID:            apt.SalonID,
		ClientID:           apt.ClientID,
		ServiceID:          apt.ServiceID,
		StartTime:          apt.StartTime.UTC(),
		EndTime:            apt.EndTime.UTC(),
		Status:             string(apt.Status),
		CancellationReason: apt.CancellationReason,
	}
}

// eventTypeFor тип события по статусу записи
func eventTypeFor(status domain.AppointmentStatus) EventType {
	switch status {
	case domain.StatusCancelled:
		return AppointmentCancelled
	case domain.StatusCompleted:
		return AppointmentCompleted
	default:
		return AppointmentCreated
	}
}
