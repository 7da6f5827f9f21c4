package get_available_slots

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBooking/internal/schedule"
)

// validateRequest валидирует входные данные запроса и подставляет режим по умолчанию
func validateRequest(req *Request) error {
	if req.SalonID == uuid.Nil {
		return fmt.Errorf("%w: salonId is required", ErrInvalidInput)
	}

	if req.ServiceID == uuid.Nil {
		return fmt.Errorf("%w: serviceId is required", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	switch req.Mode {
	case "":
		req.Mode = ModeBooking
	case ModeBooking, ModeAgenda:
	default:
		return fmt.Errorf("%w: %w %q", ErrInvalidInput, ErrUnknownMode, req.Mode)
	}

	return nil
}

// optionsFor параметры генератора для режима
func optionsFor(mode Mode) schedule.Options {
	if mode == ModeAgenda {
		return schedule.AgendaOptions
	}
	return schedule.BookingOptions
}

// validateHorizon проверяет, что дата не дальше maxAdvanceDays от сегодняшнего дня салона.
// maxAdvanceDays = 0 - без ограничения
func validateHorizon(date, now time.Time, loc *time.Location, maxAdvanceDays int) error {
	if maxAdvanceDays == 0 {
		return nil
	}

	today := schedule.StartOfDay(now.In(loc), loc)
	maxDate := today.AddDate(0, 0, maxAdvanceDays)

	if schedule.StartOfDay(date, loc).After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, maxAdvanceDays)
	}

	return nil
}
