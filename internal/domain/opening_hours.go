package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// OpeningHours часы работы салона в один день недели.
// DayOfWeek: 0 = воскресенье ... 6 = суббота (как time.Weekday)
type OpeningHours struct {
	SalonID   uuid.UUID
	DayOfWeek int
	OpenTime  types.TimeString
	CloseTime types.TimeString
	IsClosed  bool
}

// Weekday returns the day as time.Weekday
func (h OpeningHours) Weekday() time.Weekday {
	return time.Weekday(h.DayOfWeek)
}

// Validate проверяет запись. Для закрытого дня время не проверяется
func (h OpeningHours) Validate() error {
	if h.DayOfWeek < 0 || h.DayOfWeek > 6 {
		return fmt.Errorf("%w: day_of_week %d", ErrMalformedOpeningHours, h.DayOfWeek)
	}
	if h.IsClosed {
		return nil
	}
	if err := h.OpenTime.Validate(); err != nil {
		return fmt.Errorf("%w: open_time: %v", ErrMalformedOpeningHours, err)
	}
	if err := h.CloseTime.Validate(); err != nil {
		return fmt.Errorf("%w: close_time: %v", ErrMalformedOpeningHours, err)
	}
	if !h.OpenTime.IsBefore(h.CloseTime) {
		return fmt.Errorf("%w: open_time %s is not before close_time %s",
			ErrMalformedOpeningHours, h.OpenTime, h.CloseTime)
	}
	return nil
}

// WeeklySchedule недельное расписание. Отсутствующий день считается закрытым
type WeeklySchedule []OpeningHours

// ForWeekday возвращает запись для дня недели. ok=false - записи нет
func (w WeeklySchedule) ForWeekday(day time.Weekday) (OpeningHours, bool) {
	for _, h := range w {
		if h.DayOfWeek == int(day) {
			return h, true
		}
	}
	return OpeningHours{}, false
}

// Full возвращает расписание на все 7 дней: недостающие дни помечены закрытыми
func (w WeeklySchedule) Full(salonID uuid.UUID) WeeklySchedule {
	full := make(WeeklySchedule, 7)
	for day := 0; day < 7; day++ {
		if h, ok := w.ForWeekday(time.Weekday(day)); ok {
			full[day] = h
			continue
		}
		full[day] = OpeningHours{SalonID: salonID, DayOfWeek: day, IsClosed: true}
	}
	return full
}
