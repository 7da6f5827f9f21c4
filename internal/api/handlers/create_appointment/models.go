package create_appointment

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	createAppointment "github.com/m04kA/SMC-SalonBooking/internal/usecase/create_appointment"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	SalonID   string         `json:"salonId"`
	ServiceID string         `json:"serviceId"`
	Date      string         `json:"date"`      // "2025-10-15"
	StartTime string         `json:"startTime"` // "10:00"
	Notes     *string        `json:"notes,omitempty"`
	ClientID  *string        `json:"clientId,omitempty"`
	Client    *ClientContact `json:"client,omitempty"`
}

// ClientContact контакты клиента без карточки
type ClientContact struct {
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Email     string  `json:"email"`
	Phone     *string `json:"phone,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID              uuid.UUID  `json:"id"`
	SalonID         uuid.UUID  `json:"salonId"`
	ServiceID       uuid.UUID  `json:"serviceId"`
	ClientID        *uuid.UUID `json:"clientId,omitempty"`
	Date            string     `json:"date"`
	Time            string     `json:"time"`
	Timezone        string     `json:"timezone"`
	StartTime       string     `json:"startTime"`
	EndTime         string     `json:"endTime"`
	DurationMinutes int        `json:"durationMinutes"`
	Status          string     `json:"status"`
	Notes           *string    `json:"notes,omitempty"`
	CreatedAt       string     `json:"createdAt"`
	UpdatedAt       string     `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case.
// Нераспознанные значения остаются пустыми: use case перечислит их в ошибке валидации
func (r *CreateAppointmentRequest) ToUseCaseRequest() *createAppointment.Request {
	req := &createAppointment.Request{
		StartTime: types.TimeString(r.StartTime),
		Notes:     r.Notes,
	}

	if id, err := uuid.Parse(r.SalonID); err == nil {
		req.SalonID = id
	}
	if id, err := uuid.Parse(r.ServiceID); err == nil {
		req.ServiceID = id
	}
	if date, err := time.Parse(domain.DateFormat, r.Date); err == nil {
		req.Date = date
	}
	if normalized, err := types.NewTimeStringFromString(r.StartTime); err == nil {
		req.StartTime = normalized
	}

	if r.ClientID != nil {
		clientID := uuid.Nil
		if id, err := uuid.Parse(*r.ClientID); err == nil {
			clientID = id
		}
		req.ClientID = &clientID
	}

	if r.Client != nil {
		req.Client = &domain.ClientContact{
			FirstName: r.Client.FirstName,
			LastName:  r.Client.LastName,
			Email:     r.Client.Email,
			Phone:     r.Client.Phone,
		}
	}

	return req
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	loc, err := time.LoadLocation(resp.Timezone)
	if err != nil {
		loc = time.UTC
	}

	return &AppointmentResponse{
		ID:              resp.ID,
		SalonID:         resp.SalonID,
		ServiceID:       resp.ServiceID,
		ClientID:        resp.ClientID,
		Date:            resp.StartTime.In(loc).Format(domain.DateFormat),
		Time:            resp.Time.String(),
		Timezone:        resp.Timezone,
		StartTime:       resp.StartTime.Format(time.RFC3339),
		EndTime:         resp.EndTime.Format(time.RFC3339),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
