package supabase

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

type salonRow struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Timezone string    `json:"timezone"`
}

type serviceRow struct {
	ID              uuid.UUID `json:"id"`
	SalonID         uuid.UUID `json:"salon_id"`
	Name            string    `json:"name"`
	DurationMinutes int       `json:"duration_minutes"`
	Price           float64   `json:"price"`
}

// PostgREST отдаёт TIME как "HH:MM:SS"
type openingHoursRow struct {
	SalonID   uuid.UUID `json:"salon_id"`
	DayOfWeek int       `json:"day_of_week"`
	OpenTime  *string   `json:"open_time"`
	CloseTime *string   `json:"close_time"`
	IsClosed  bool      `json:"is_closed"`
}

type appointmentRow struct {
	ID                 uuid.UUID  `json:"id"`
	SalonID            uuid.UUID  `json:"salon_id"`
	ClientID           *uuid.UUID `json:"client_id"`
	ServiceID          uuid.UUID  `json:"service_id"`
	StartTime          time.Time  `json:"start_time"`
	EndTime            time.Time  `json:"end_time"`
	Status             string     `json:"status"`
	Notes              *string    `json:"notes"`
	CancellationReason *string    `json:"cancellation_reason"`
	CancelledAt        *time.Time `json:"cancelled_at"`
	CompletedAt        *time.Time `json:"completed_at"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

type appointmentInsert struct {
	ID        uuid.UUID  `json:"id"`
	SalonID   uuid.UUID  `json:"salon_id"`
	ClientID  *uuid.UUID `json:"client_id"`
	ServiceID uuid.UUID  `json:"service_id"`
	StartTime time.Time  `json:"start_time"`
	EndTime   time.Time  `json:"end_time"`
	Status    string     `json:"status"`
	Notes     *string    `json:"notes"`
}

type clientRow struct {
	ID        uuid.UUID `json:"id"`
	SalonID   uuid.UUID `json:"salon_id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

type clientInsert struct {
	ID        uuid.UUID `json:"id"`
	SalonID   uuid.UUID `json:"salon_id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone"`
}

func (r salonRow) toDomain() *domain.Salon {
	return &domain.Salon{ID: r.ID, Name: r.Name, Timezone: r.Timezone}
}

func (r serviceRow) toDomain() *domain.Service {
	return &domain.Service{
		ID:              r.ID,
		SalonID:         r.SalonID,
		Name:            r.Name,
		DurationMinutes: r.DurationMinutes,
		Price:           r.Price,
	}
}

func (r openingHoursRow) toDomain() (domain.OpeningHours, error) {
	h := domain.OpeningHours{SalonID: r.SalonID, DayOfWeek: r.DayOfWeek, IsClosed: r.IsClosed}
	if r.OpenTime != nil {
		if err := h.OpenTime.Scan(*r.OpenTime); err != nil {
			return h, err
		}
	}
	if r.CloseTime != nil {
		if err := h.CloseTime.Scan(*r.CloseTime); err != nil {
			return h, err
		}
	}
	return h, nil
}

func toOpeningHoursRow(salonID uuid.UUID, h domain.OpeningHours) openingHoursRow {
	row := openingHoursRow{SalonID: salonID, DayOfWeek: h.DayOfWeek, IsClosed: h.IsClosed}
	if !h.OpenTime.IsZero() {
		row.OpenTime = timePtr(h.OpenTime)
	}
	if !h.CloseTime.IsZero() {
		row.CloseTime = timePtr(h.CloseTime)
	}
	return row
}

func timePtr(t types.TimeString) *string {
	s := t.String()
	return &s
}

func (r appointmentRow) toDomain() *domain.Appointment {
	return &domain.Appointment{
		ID:                 r.ID,
		SalonID:            r.SalonID,
		ClientID:           r.ClientID,
		ServiceID:          r.ServiceID,
		StartTime:          r.StartTime,
		EndTime:            r.EndTime,
		Status:             domain.AppointmentStatus(r.Status),
		Notes:              r.Notes,
		CancellationReason: r.CancellationReason,
		CancelledAt:        r.CancelledAt,
		CompletedAt:        r.CompletedAt,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}
}

func (r clientRow) toDomain() *domain.Client {
	return &domain.Client{
		ID:        r.ID,
		SalonID:   r.SalonID,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Phone:     r.Phone,
		CreatedAt: r.CreatedAt,
	}
}
