package opening_hours

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/calendar"
	"github.com/m04kA/SMC-SalonBooking/internal/service/opening_hours/models"
)

// Service сервис настроек часов работы салона
type Service struct {
	calendar  CalendarSource
	hoursRepo HoursRepository
	cache     CacheInvalidator
	txManager TransactionManager
	logger    Logger
}

// NewService создает новый экземпляр сервиса часов работы.
// cache может быть nil, если кэш выключен
func NewService(
	calendar CalendarSource,
	hoursRepo HoursRepository,
	cache CacheInvalidator,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		calendar:  calendar,
		hoursRepo: hoursRepo,
		cache:     cache,
		txManager: txManager,
		logger:    logger,
	}
}

// Get возвращает расписание на все 7 дней недели. Ненастроенные дни закрыты
func (s *Service) Get(ctx context.Context, salonID uuid.UUID) (*models.OpeningHoursResponse, error) {
	s.logger.Info("Get: fetching opening hours for salon=%s", salonID)

	salon, loc, err := s.calendar.GetSalon(ctx, salonID)
	if err != nil {
		return nil, s.mapCalendarError("Get", salonID, err)
	}

	hours, err := s.calendar.GetOpeningHours(ctx, salonID)
	if err != nil {
		return nil, s.mapCalendarError("Get", salonID, err)
	}

	return models.FromDomainSchedule(salon.ID, loc.String(), hours.Full(salonID)), nil
}

// Replace заменяет расписание салона целиком и сбрасывает кэш
func (s *Service) Replace(ctx context.Context, salonID uuid.UUID, req *models.ReplaceOpeningHoursRequest) (*models.OpeningHoursResponse, error) {
	s.logger.Info("Replace: replacing opening hours for salon=%s, days=%d", salonID, len(req.Days))

	// 1. Валидация всех дней сразу
	schedule := req.ToDomainSchedule(salonID)
	if err := validateSchedule(schedule); err != nil {
		s.logger.Warn("Replace: validation failed for salon=%s: %v", salonID, err)
		return nil, err
	}

	// 2. Салон должен существовать
	salon, loc, err := s.calendar.GetSalon(ctx, salonID)
	if err != nil {
		return nil, s.mapCalendarError("Replace", salonID, err)
	}

	// 3. Сброс до записи и после коммита: чтение между ними может снова положить старое расписание в кэш
	s.invalidateCache(ctx, salonID)

	// 4. Удаление и вставка в одной транзакции
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		return s.hoursRepo.ReplaceOpeningHours(txCtx, salonID, schedule)
	})
	if err != nil {
		s.logger.Error("Replace: repository error for salon=%s: %v", salonID, err)
		return nil, fmt.Errorf("%w: Replace - repository error: %v", ErrInternal, err)
	}

	s.invalidateCache(ctx, salonID)

	s.logger.Info("Replace: successfully replaced opening hours for salon=%s", salonID)
	return models.FromDomainSchedule(salon.ID, loc.String(), schedule.Full(salonID)), nil
}

func (s *Service) invalidateCache(ctx context.Context, salonID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateOpeningHours(ctx, salonID); err != nil {
		s.logger.Warn("Replace: failed to invalidate cache for salon=%s: %v", salonID, err)
	}
}

// validateSchedule проверяет каждый день и отсутствие повторов
func validateSchedule(schedule domain.WeeklySchedule) error {
	verr := domain.NewValidationError()
	seen := make(map[int]bool, len(schedule))

	for i, h := range schedule {
		if err := h.Validate(); err != nil {
			verr.Add(fmt.Sprintf("days[%d]", i))
			continue
		}
		if seen[h.DayOfWeek] {
			verr.Add(fmt.Sprintf("days[%d].dayOfWeek", i))
			continue
		}
		seen[h.DayOfWeek] = true
	}

	return verr.OrNil()
}

func (s *Service) mapCalendarError(op string, salonID uuid.UUID, err error) error {
	switch {
	case errors.Is(err, calendar.ErrSalonNotFound):
		s.logger.Warn("%s: salon id=%s not found", op, salonID)
		return ErrSalonNotFound
	case errors.Is(err, calendar.ErrSourceUnavailable):
		s.logger.Error("%s: salon=%s: %v", op, salonID, err)
		return fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	default:
		s.logger.Error("%s: salon=%s: %v", op, salonID, err)
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}
