package create_appointment

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/schedule"
)

// validateRequest проверяет запрос целиком и возвращает все некорректные поля сразу
func validateRequest(req *Request) error {
	verr := domain.NewValidationError()

	if req.SalonID == uuid.Nil {
		verr.Add("salonId")
	}
	if req.ServiceID == uuid.Nil {
		verr.Add("serviceId")
	}
	if req.Date.IsZero() {
		verr.Add("date")
	}
	if req.StartTime.IsZero() || req.StartTime.Validate() != nil {
		verr.Add("startTime")
	}
	if req.Notes != nil && len([]rune(*req.Notes)) > domain.MaxNotesLength {
		verr.Add("notes")
	}

	switch req.Mode {
	case "":
		req.Mode = ModeBooking
	case ModeBooking, ModeAgenda:
	default:
		verr.Add("mode")
	}

	if req.ClientID == nil {
		validateContact(req.Client, verr)
	} else if *req.ClientID == uuid.Nil {
		verr.Add("clientId")
	}

	return verr.OrNil()
}

func validateContact(contact *domain.ClientContact, verr *domain.ValidationError) {
	if contact == nil {
		contact = &domain.ClientContact{}
	}
	if strings.TrimSpace(contact.FirstName) == "" {
		verr.Add("firstName")
	}
	if strings.TrimSpace(contact.LastName) == "" {
		verr.Add("lastName")
	}
	email := strings.TrimSpace(contact.Email)
	if email == "" {
		verr.Add("email")
	} else if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		verr.Add("email")
	}
}

// validateTiming проверяет, что начало записи не в прошлом, соблюдает минимальное
// время до визита и не выходит за горизонт записи. Журнал салона проверяет только прошлое
func validateTiming(start, now time.Time, loc *time.Location, mode Mode, rules Rules) error {
	if start.Before(now) {
		field := "startTime"
		if schedule.StartOfDay(start.In(loc), loc).Before(schedule.StartOfDay(now.In(loc), loc)) {
			field = "date"
		}
		return fmt.Errorf("%w: %w", ErrSlotInPast, domain.NewValidationError(field))
	}

	if mode == ModeAgenda {
		return nil
	}

	if rules.MinNoticeMinutes > 0 && start.Before(now.Add(time.Duration(rules.MinNoticeMinutes)*time.Minute)) {
		return fmt.Errorf("%w: must book at least %d minutes in advance", ErrTooLateToBook, rules.MinNoticeMinutes)
	}

	if rules.MaxAdvanceDays == 0 {
		return nil
	}

	maxDate := schedule.StartOfDay(now.In(loc), loc).AddDate(0, 0, rules.MaxAdvanceDays)
	if schedule.StartOfDay(start.In(loc), loc).After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, rules.MaxAdvanceDays)
	}

	return nil
}

func optionsFor(mode Mode) schedule.Options {
	if mode == ModeAgenda {
		return schedule.AgendaOptions
	}
	return schedule.BookingOptions
}
