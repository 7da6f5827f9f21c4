package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/schedule"
	"github.com/m04kA/SMC-SalonBooking/internal/service/calendar"
	"github.com/m04kA/SMC-SalonBooking/pkg/lastwins"
)

// UseCase use case для получения слотов салона на день
type UseCase struct {
	calendar       CalendarSource
	guard          SupersedeGuard
	metrics        Metrics
	timeProvider   TimeProvider
	logger         Logger
	maxAdvanceDays int
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	calendar CalendarSource,
	guard SupersedeGuard,
	metrics Metrics,
	maxAdvanceDays int,
	logger Logger,
) *UseCase {
	return &UseCase{
		calendar:       calendar,
		guard:          guard,
		metrics:        metrics,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
		maxAdvanceDays: maxAdvanceDays,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case получения слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("GetAvailableSlots: salon=%s, service=%s, date=%s, mode=%s",
		req.SalonID, req.ServiceID, req.Date.Format(domain.DateFormat), req.Mode)

	// 2. Регистрируем расчёт: предыдущий расчёт этой сессии отменяется
	ctx, release := uc.guard.Acquire(ctx, req.SessionKey)
	defer release()

	started := time.Now()
	defer func() { uc.metrics.ObserveSlotQuery(string(req.Mode), time.Since(started)) }()

	// 3. Текущий момент фиксируется один раз на запрос
	now := uc.timeProvider.Now()

	// 4. Читаем календарь: салон, услугу, часы работы и записи на день
	snap, err := uc.calendar.Snapshot(ctx, req.SalonID, req.ServiceID, req.Date)
	if lastwins.Superseded(ctx) {
		return nil, uc.superseded(req)
	}
	if err != nil {
		return nil, uc.mapCalendarError(req, err)
	}

	// 5. Горизонт записи действует только для клиентской записи
	if req.Mode == ModeBooking {
		if err := validateHorizon(req.Date, now, snap.Location, uc.maxAdvanceDays); err != nil {
			uc.logger.Warn("GetAvailableSlots: salon=%s: %v", req.SalonID, err)
			return nil, err
		}
	}

	// 6. Генерируем сетку и отмечаем занятые слоты
	raw, err := schedule.GenerateSlots(snap.DayStart, snap.Service.Duration(), snap.Hours, now, snap.Location, optionsFor(req.Mode))
	if err != nil {
		uc.logger.Error("GetAvailableSlots: salon=%s: failed to generate slots: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}
	marked := schedule.MarkAvailability(raw, snap.Appointments)

	// 7. Результат вытесненного расчёта не отдаём
	if lastwins.Superseded(ctx) {
		return nil, uc.superseded(req)
	}

	uc.logger.Info("GetAvailableSlots: salon=%s, date=%s: %d slots, %d available",
		req.SalonID, req.Date.Format(domain.DateFormat), len(marked), len(schedule.BookableOnly(marked)))

	return &Response{
		Date:            snap.DayStart,
		SalonID:         req.SalonID,
		ServiceID:       req.ServiceID,
		Mode:            req.Mode,
		Timezone:        snap.Location.String(),
		DurationMinutes: snap.Service.Duration(),
		Slots:           toSlots(marked),
	}, nil
}

func (uc *UseCase) superseded(req *Request) error {
	uc.metrics.IncSuperseded()
	uc.logger.Info("GetAvailableSlots: salon=%s, session=%s: superseded by a newer request", req.SalonID, req.SessionKey)
	return ErrSuperseded
}

func (uc *UseCase) mapCalendarError(req *Request, err error) error {
	switch {
	case errors.Is(err, calendar.ErrSalonNotFound):
		uc.logger.Warn("GetAvailableSlots: salon=%s not found", req.SalonID)
		return ErrSalonNotFound
	case errors.Is(err, calendar.ErrServiceNotFound):
		uc.logger.Warn("GetAvailableSlots: service=%s not found in salon=%s", req.ServiceID, req.SalonID)
		return ErrServiceNotFound
	case errors.Is(err, calendar.ErrSourceUnavailable):
		uc.logger.Error("GetAvailableSlots: salon=%s: %v", req.SalonID, err)
		return fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	default:
		uc.logger.Error("GetAvailableSlots: salon=%s: %v", req.SalonID, err)
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}

func toSlots(slots []domain.TimeSlot) []Slot {
	result := make([]Slot, len(slots))
	for i, s := range slots {
		result[i] = Slot{
			Time:      s.Time,
			Start:     s.Start,
			End:       s.End,
			Available: s.Available,
			IsPast:    s.IsPast,
		}
	}
	return result
}
