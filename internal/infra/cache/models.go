package cache

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

type salonEntry struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Timezone string    `json:"timezone"`
}

type serviceEntry struct {
	ID              uuid.UUID `json:"id"`
	SalonID         uuid.UUID `json:"salon_id"`
	Name            string    `json:"name"`
	DurationMinutes int       `json:"duration_minutes"`
	Price           float64   `json:"price"`
}

type hoursEntry struct {
	DayOfWeek int              `json:"day_of_week"`
	OpenTime  types.TimeString `json:"open_time"`
	CloseTime types.TimeString `json:"close_time"`
	IsClosed  bool             `json:"is_closed"`
}

func toSalonEntry(s *domain.Salon) salonEntry {
	return salonEntry{ID: s.ID, Name: s.Name, Timezone: s.Timezone}
}

func (e salonEntry) toDomain() *domain.Salon {
	return &domain.Salon{ID: e.ID, Name: e.Name, Timezone: e.Timezone}
}

func toServiceEntry(s *domain.Service) serviceEntry {
	return serviceEntry{
		ID:              s.ID,
		SalonID:         s.SalonID,
		Name:            s.Name,
		DurationMinutes: s.DurationMinutes,
		Price:           s.Price,
	}
}

func (e serviceEntry) toDomain() *domain.Service {
	return &domain.Service{
		ID:              e.ID,
		SalonID:         e.SalonID,
		Name:            e.Name,
		DurationMinutes: e.DurationMinutes,
		Price:           e.Price,
	}
}

func toHoursEntries(schedule domain.WeeklySchedule) []hoursEntry {
	entries := make([]hoursEntry, len(schedule))
	for i, h := range schedule {
		entries[i] = hoursEntry{DayOfWeek: h.DayOfWeek, OpenTime: h.OpenTime, CloseTime: h.CloseTime, IsClosed: h.IsClosed}
	}
	return entries
}

func fromHoursEntries(salonID uuid.UUID, entries []hoursEntry) domain.WeeklySchedule {
	schedule := make(domain.WeeklySchedule, len(entries))
	for i, e := range entries {
		schedule[i] = domain.OpeningHours{
			SalonID:   salonID,
			DayOfWeek: e.DayOfWeek,
			OpenTime:  e.OpenTime,
			CloseTime: e.CloseTime,
			IsClosed:  e.IsClosed,
		}
	}
	return schedule
}
