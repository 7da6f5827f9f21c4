package calendar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	calendarRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/calendar"
	"github.com/m04kA/SMC-SalonBooking/internal/schedule"
)

// Snapshot всё, что нужно для расчёта слотов салона на один день
type Snapshot struct {
	Salon        *domain.Salon
	Location     *time.Location
	Service      *domain.Service
	Hours        domain.WeeklySchedule
	Appointments []*domain.Appointment
	// DayStart и DayEnd границы запрошенного дня в часовом поясе салона
	DayStart time.Time
	DayEnd   time.Time
}

// Service адаптер источника календаря: только чтение.
// Любая ошибка хранилища превращается в ErrSourceUnavailable, чтобы недоступный
// календарь никогда не выглядел как пустой (полностью свободный)
type Service struct {
	salons       SalonSource
	appointments AppointmentSource
	logger       Logger
}

// NewService создает новый экземпляр адаптера календаря
func NewService(salons SalonSource, appointments AppointmentSource, logger Logger) *Service {
	return &Service{
		salons:       salons,
		appointments: appointments,
		logger:       logger,
	}
}

// GetSalon получает салон и его часовой пояс
func (s *Service) GetSalon(ctx context.Context, salonID uuid.UUID) (*domain.Salon, *time.Location, error) {
	salon, err := s.salons.GetSalon(ctx, salonID)
	if err != nil {
		if errors.Is(err, calendarRepo.ErrSalonNotFound) {
			return nil, nil, ErrSalonNotFound
		}
		s.logger.Error("GetSalon: salon=%s: %v", salonID, err)
		return nil, nil, fmt.Errorf("%w: salon: %v", ErrSourceUnavailable, err)
	}

	loc, err := salon.Location()
	if err != nil {
		s.logger.Error("GetSalon: salon=%s: %v", salonID, err)
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidTimezone, err)
	}

	return salon, loc, nil
}

// GetService получает услугу салона
func (s *Service) GetService(ctx context.Context, salonID, serviceID uuid.UUID) (*domain.Service, error) {
	service, err := s.salons.GetService(ctx, salonID, serviceID)
	if err != nil {
		if errors.Is(err, calendarRepo.ErrServiceNotFound) {
			return nil, ErrServiceNotFound
		}
		s.logger.Error("GetService: salon=%s service=%s: %v", salonID, serviceID, err)
		return nil, fmt.Errorf("%w: service: %v", ErrSourceUnavailable, err)
	}
	return service, nil
}

// GetOpeningHours возвращает настроенные дни недели. Отсутствующий день закрыт
func (s *Service) GetOpeningHours(ctx context.Context, salonID uuid.UUID) (domain.WeeklySchedule, error) {
	hours, err := s.salons.GetOpeningHours(ctx, salonID)
	if err != nil {
		s.logger.Error("GetOpeningHours: salon=%s: %v", salonID, err)
		return nil, fmt.Errorf("%w: opening hours: %v", ErrSourceUnavailable, err)
	}
	return hours, nil
}

// GetConfirmedAppointments подтверждённые записи со start_time в [from, to)
func (s *Service) GetConfirmedAppointments(ctx context.Context, salonID uuid.UUID, from, to time.Time) ([]*domain.Appointment, error) {
	appointments, err := s.appointments.GetConfirmedInRange(ctx, salonID, from, to)
	if err != nil {
		s.logger.Error("GetConfirmedAppointments: salon=%s range=[%s, %s): %v",
			salonID, from.Format(time.RFC3339), to.Format(time.RFC3339), err)
		return nil, fmt.Errorf("%w: appointments: %v", ErrSourceUnavailable, err)
	}
	return appointments, nil
}

// Snapshot читает салон, затем параллельно услугу, часы работы и записи на день date.
// День определяется в часовом поясе салона по календарной дате date
func (s *Service) Snapshot(ctx context.Context, salonID, serviceID uuid.UUID, date time.Time) (*Snapshot, error) {
	salon, loc, err := s.GetSalon(ctx, salonID)
	if err != nil {
		return nil, err
	}

	dayStart, dayEnd := schedule.DayRange(date, loc)
	snap := &Snapshot{Salon: salon, Location: loc, DayStart: dayStart, DayEnd: dayEnd}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		service, err := s.GetService(gctx, salonID, serviceID)
		snap.Service = service
		return err
	})
	g.Go(func() error {
		hours, err := s.GetOpeningHours(gctx, salonID)
		snap.Hours = hours
		return err
	})
	g.Go(func() error {
		appointments, err := s.GetConfirmedAppointments(gctx, salonID, dayStart, dayEnd)
		snap.Appointments = appointments
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return snap, nil
}
