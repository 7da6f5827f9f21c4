package models

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Request модели

// DayRequest часы работы в один день недели
type DayRequest struct {
	DayOfWeek int              `json:"dayOfWeek"` // 0 = воскресенье
	OpenTime  types.TimeString `json:"openTime,omitempty"`
	CloseTime types.TimeString `json:"closeTime,omitempty"`
	IsClosed  bool             `json:"isClosed"`
}

// ReplaceOpeningHoursRequest новое расписание салона целиком.
// Дни, которых нет в запросе, становятся закрытыми
type ReplaceOpeningHoursRequest struct {
	Days []DayRequest `json:"days"`
}

// ToDomainSchedule конвертирует request в domain расписание
func (r *ReplaceOpeningHoursRequest) ToDomainSchedule(salonID uuid.UUID) domain.WeeklySchedule {
	schedule := make(domain.WeeklySchedule, 0, len(r.Days))
	for _, d := range r.Days {
		h := domain.OpeningHours{
			SalonID:   salonID,
			DayOfWeek: d.DayOfWeek,
			IsClosed:  d.IsClosed,
		}
		if !d.IsClosed {
			h.OpenTime = d.OpenTime
			h.CloseTime = d.CloseTime
		}
		schedule = append(schedule, h)
	}
	return schedule
}

// Response модели

// DayResponse часы работы в один день недели
type DayResponse struct {
	DayOfWeek int     `json:"dayOfWeek"`
	OpenTime  *string `json:"openTime,omitempty"`
	CloseTime *string `json:"closeTime,omitempty"`
	IsClosed  bool    `json:"isClosed"`
}

// OpeningHoursResponse недельное расписание салона, всегда 7 дней
type OpeningHoursResponse struct {
	SalonID  uuid.UUID     `json:"salonId"`
	Timezone string        `json:"timezone"`
	Days     []DayResponse `json:"days"`
}

// FromDomainSchedule конвертирует полное расписание в DTO
func FromDomainSchedule(salonID uuid.UUID, timezone string, schedule domain.WeeklySchedule) *OpeningHoursResponse {
	resp := &OpeningHoursResponse{
		SalonID:  salonID,
		Timezone: timezone,
		Days:     make([]DayResponse, 0, len(schedule)),
	}

	for _, h := range schedule {
		day := DayResponse{DayOfWeek: h.DayOfWeek, IsClosed: h.IsClosed}
		if !h.IsClosed {
			open, closeAt := h.OpenTime.String(), h.CloseTime.String()
			day.OpenTime = &open
			day.CloseTime = &closeAt
		}
		resp.Days = append(resp.Days, day)
	}

	return resp
}
