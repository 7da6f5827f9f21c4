package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/appointment"
	clientRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/client"
	"github.com/m04kA/SMC-SalonBooking/internal/schedule"
	"github.com/m04kA/SMC-SalonBooking/internal/service/calendar"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

const (
	conflictSourceRecheck    = "recheck"
	conflictSourceConstraint = "constraint"
)

// UseCase use case для создания записи в салон
type UseCase struct {
	calendar        CalendarSource
	appointmentRepo AppointmentRepository
	clientRepo      ClientRepository
	txManager       TransactionManager
	publisher       EventPublisher
	metrics         Metrics
	rules           Rules
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	calendar CalendarSource,
	appointmentRepo AppointmentRepository,
	clientRepo ClientRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics Metrics,
	rules Rules,
	logger Logger,
) *UseCase {
	return &UseCase{
		calendar:        calendar,
		appointmentRepo: appointmentRepo,
		clientRepo:      clientRepo,
		txManager:       txManager,
		publisher:       publisher,
		metrics:         metrics,
		rules:           rules,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case создания записи.
// Повторная проверка пересечений выполняется в сериализуемой транзакции непосредственно перед вставкой
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных: все ошибки полей сразу
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("CreateAppointment: salon=%s, service=%s, date=%s, time=%s, mode=%s",
		req.SalonID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime, req.Mode)

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Салон и его часовой пояс
	_, loc, err := uc.calendar.GetSalon(ctx, req.SalonID)
	if err != nil {
		return nil, uc.mapCalendarError("get salon", err)
	}

	// 4. Услуга: от неё зависит длительность записи
	service, err := uc.calendar.GetService(ctx, req.SalonID, req.ServiceID)
	if err != nil {
		return nil, uc.mapCalendarError("get service", err)
	}

	// 5. Часы работы на день недели даты
	hours, err := uc.calendar.GetOpeningHours(ctx, req.SalonID)
	if err != nil {
		return nil, uc.mapCalendarError("get opening hours", err)
	}

	day := schedule.StartOfDay(req.Date, loc)
	if entry, ok := hours.ForWeekday(day.Weekday()); !ok || entry.IsClosed {
		uc.logger.Warn("CreateAppointment: salon=%s is closed on %s", req.SalonID, req.Date.Format(domain.DateFormat))
		return nil, ErrSalonClosed
	}

	// 6. Начало и конец записи собираются так же, как при генерации слотов
	start, err := schedule.ComposeInstant(day, req.StartTime, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: compose start: %v", ErrInternal, err)
	}
	if err := validateTiming(start, now, loc, req.Mode, uc.rules); err != nil {
		uc.logger.Warn("CreateAppointment: salon=%s: %v", req.SalonID, err)
		return nil, err
	}

	// 7. Время должно совпадать со слотом сетки своего режима
	slots, err := schedule.GenerateSlots(day, service.Duration(), hours, now, loc, optionsFor(req.Mode))
	if err != nil {
		uc.logger.Error("CreateAppointment: salon=%s: failed to generate slots: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}
	slot, ok := schedule.FindSlot(slots, req.StartTime)
	if !ok {
		uc.logger.Warn("CreateAppointment: salon=%s: %s is not a bookable slot on %s",
			req.SalonID, req.StartTime, req.Date.Format(domain.DateFormat))
		return nil, ErrInvalidTimeSlot
	}

	var result *domain.Appointment

	// 8. Проверка и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 8.1. Свежие подтверждённые записи, которые могут пересечь слот (FOR UPDATE)
		from := slot.Start.Add(-time.Duration(domain.MaxServiceDurationMinutes) * time.Minute)
		existing, err := uc.appointmentRepo.GetConfirmedInRange(txCtx, req.SalonID, from, slot.End)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %w", ErrInternal, err)
		}

		// 8.2. Повторная проверка пересечений
		if conflicts := schedule.FindConflicts(slot.Start, slot.End, existing); len(conflicts) > 0 {
			uc.metrics.IncConflict(conflictSourceRecheck)
			uc.logger.Warn("CreateAppointment: salon=%s, %s conflicts with appointment id=%s",
				req.SalonID, slot.Time, conflicts[0].ID)
			return ErrConflictDetected
		}

		// 8.3. Карточка клиента
		client, err := uc.resolveClient(txCtx, req)
		if err != nil {
			return err
		}

		// 8.4. Сохраняем запись
		created, err := uc.appointmentRepo.Create(txCtx, &domain.Appointment{
			SalonID:   req.SalonID,
			ClientID:  &client.ID,
			ServiceID: req.ServiceID,
			StartTime: slot.Start,
			EndTime:   slot.End,
			Status:    domain.StatusConfirmed,
			Notes:     req.Notes,
		})
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrOverlap) {
				uc.metrics.IncConflict(conflictSourceConstraint)
				uc.logger.Warn("CreateAppointment: salon=%s, %s rejected by overlap constraint", req.SalonID, slot.Time)
				return ErrConflictDetected
			}
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %w", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.IncAppointment(string(domain.StatusConfirmed))
	uc.logger.Info("CreateAppointment: successfully created appointment id=%s", result.ID)

	// 9. Уведомление отправляется после коммита, его ошибка не отменяет запись
	if err := uc.publisher.PublishAppointment(ctx, result); err != nil {
		uc.logger.Warn("CreateAppointment: failed to publish event for id=%s: %v", result.ID, err)
	}

	return &Response{
		ID:              result.ID,
		SalonID:         result.SalonID,
		ServiceID:       result.ServiceID,
		ClientID:        result.ClientID,
		StartTime:       result.StartTime,
		EndTime:         result.EndTime,
		Time:            types.NewTimeString(result.StartTime.In(loc)),
		Timezone:        loc.String(),
		DurationMinutes: result.DurationMinutes(),
		Status:          string(result.Status),
		Notes:           result.Notes,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}

// resolveClient возвращает известного клиента салона или находит/создаёт карточку по email
func (uc *UseCase) resolveClient(ctx context.Context, req *Request) (*domain.Client, error) {
	if req.ClientID != nil {
		client, err := uc.clientRepo.GetByID(ctx, *req.ClientID)
		if err != nil {
			if errors.Is(err, clientRepo.ErrClientNotFound) {
				uc.logger.Warn("CreateAppointment: client id=%s not found", *req.ClientID)
				return nil, ErrClientNotFound
			}
			uc.logger.Error("CreateAppointment: failed to get client id=%s: %v", *req.ClientID, err)
			return nil, fmt.Errorf("%w: failed to get client: %w", ErrInternal, err)
		}
		if client.SalonID != req.SalonID {
			uc.logger.Warn("CreateAppointment: client id=%s belongs to another salon", client.ID)
			return nil, ErrClientNotFound
		}
		return client, nil
	}

	client, err := uc.clientRepo.GetOrCreate(ctx, req.SalonID, *req.Client)
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to get or create client: %v", err)
		return nil, fmt.Errorf("%w: failed to get or create client: %w", ErrInternal, err)
	}
	return client, nil
}

func (uc *UseCase) mapCalendarError(step string, err error) error {
	switch {
	case errors.Is(err, calendar.ErrSalonNotFound):
		uc.logger.Warn("CreateAppointment: %s: salon not found", step)
		return ErrSalonNotFound
	case errors.Is(err, calendar.ErrServiceNotFound):
		uc.logger.Warn("CreateAppointment: %s: service not found", step)
		return ErrServiceNotFound
	case errors.Is(err, calendar.ErrSourceUnavailable):
		uc.logger.Error("CreateAppointment: %s: %v", step, err)
		return fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	default:
		uc.logger.Error("CreateAppointment: %s: %v", step, err)
		return fmt.Errorf("%w: %s: %v", ErrInternal, step, err)
	}
}
