package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/appointment"
	clientRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/client"
	"github.com/m04kA/SMC-SalonBooking/internal/schedule"
	"github.com/m04kA/SMC-SalonBooking/internal/service/appointments/models"
	"github.com/m04kA/SMC-SalonBooking/internal/service/calendar"
)

// Service сервис для работы с записями: просмотр, журнал салона и смена статуса
type Service struct {
	appointmentRepo AppointmentRepository
	clientRepo      ClientRepository
	salons          SalonSource
	publisher       EventPublisher
	metrics         Metrics
	logger          Logger
	now             func() time.Time
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	clientRepo ClientRepository,
	salons SalonSource,
	publisher EventPublisher,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		clientRepo:      clientRepo,
		salons:          salons,
		publisher:       publisher,
		metrics:         metrics,
		logger:          logger,
		now:             time.Now,
	}
}

// GetByID получает запись по ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%s", id)

	apt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%s not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAppointment(apt), nil
}

// GetSalonAppointments журнал записей салона за период.
// Даты периода интерпретируются в часовом поясе салона, To включительно
func (s *Service) GetSalonAppointments(ctx context.Context, req *models.GetSalonAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetSalonAppointments: fetching appointments for salon=%s", req.SalonID)

	status, err := parseStatus(req.Status)
	if err != nil {
		s.logger.Warn("GetSalonAppointments: invalid status for salon=%s", req.SalonID)
		return nil, err
	}

	_, loc, err := s.salons.GetSalon(ctx, req.SalonID)
	if err != nil {
		if errors.Is(err, calendar.ErrSalonNotFound) {
			s.logger.Warn("GetSalonAppointments: salon id=%s not found", req.SalonID)
			return nil, ErrSalonNotFound
		}
		s.logger.Error("GetSalonAppointments: failed to get salon id=%s: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: failed to get salon: %v", ErrInternal, err)
	}

	filter := domain.AppointmentsFilter{SalonID: &req.SalonID, Status: status}
	if req.From != nil {
		from := schedule.StartOfDay(*req.From, loc)
		filter.From = &from
	}
	if req.To != nil {
		_, to := schedule.DayRange(*req.To, loc)
		filter.To = &to
	}
	if filter.From != nil && filter.To != nil && !filter.From.Before(*filter.To) {
		s.logger.Warn("GetSalonAppointments: invalid period for salon=%s", req.SalonID)
		return nil, ErrInvalidTimeRange
	}

	list, err := s.appointmentRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("GetSalonAppointments: repository error for salon=%s: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: GetSalonAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetSalonAppointments: successfully fetched %d appointments for salon=%s", len(list), req.SalonID)
	return models.FromDomainAppointmentList(list), nil
}

// GetClientAppointments история записей клиента, новые сверху
func (s *Service) GetClientAppointments(ctx context.Context, req *models.GetClientAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetClientAppointments: fetching appointments for client=%s", req.ClientID)

	status, err := parseStatus(req.Status)
	if err != nil {
		s.logger.Warn("GetClientAppointments: invalid status for client=%s", req.ClientID)
		return nil, err
	}

	if _, err := s.clientRepo.GetByID(ctx, req.ClientID); err != nil {
		if errors.Is(err, clientRepo.ErrClientNotFound) {
			s.logger.Warn("GetClientAppointments: client id=%s not found", req.ClientID)
			return nil, ErrClientNotFound
		}
		s.logger.Error("GetClientAppointments: failed to get client id=%s: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: failed to get client: %v", ErrInternal, err)
	}

	list, err := s.appointmentRepo.List(ctx, domain.AppointmentsFilter{ClientID: &req.ClientID, Status: status})
	if err != nil {
		s.logger.Error("GetClientAppointments: repository error for client=%s: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: GetClientAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetClientAppointments: successfully fetched %d appointments for client=%s", len(list), req.ClientID)
	return models.FromDomainAppointmentList(list), nil
}

// Cancel отменяет подтверждённую запись. Интервал сразу становится свободным
func (s *Service) Cancel(ctx context.Context, id uuid.UUID, req *models.CancelAppointmentRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("Cancel: cancelling appointment id=%s", id)

	if req.CancellationReason != nil && len([]rune(*req.CancellationReason)) > domain.MaxCancellationReasonLength {
		s.logger.Warn("Cancel: cancellation reason is too long for appointment id=%s", id)
		return nil, fmt.Errorf("%w: cancellationReason is too long", ErrInvalidInput)
	}

	if err := s.checkTransition(ctx, "Cancel", id, domain.StatusCancelled); err != nil {
		return nil, err
	}

	apt, err := s.appointmentRepo.Cancel(ctx, id, req.CancellationReason, s.now())
	if err != nil {
		return nil, s.mapTransitionError("Cancel", id, err)
	}

	s.afterTransition(ctx, "Cancel", apt)
	return models.FromDomainAppointment(apt), nil
}

// Complete отмечает запись как выполненную
func (s *Service) Complete(ctx context.Context, id uuid.UUID) (*models.AppointmentResponse, error) {
	s.logger.Info("Complete: completing appointment id=%s", id)

	if err := s.checkTransition(ctx, "Complete", id, domain.StatusCompleted); err != nil {
		return nil, err
	}

	apt, err := s.appointmentRepo.Complete(ctx, id, s.now())
	if err != nil {
		return nil, s.mapTransitionError("Complete", id, err)
	}

	s.afterTransition(ctx, "Complete", apt)
	return models.FromDomainAppointment(apt), nil
}

// Вспомогательные методы

func (s *Service) afterTransition(ctx context.Context, op string, apt *domain.Appointment) {
	s.metrics.IncAppointment(string(apt.Status))
	s.logger.Info("%s: appointment id=%s is now %s", op, apt.ID, apt.Status)

	if err := s.publisher.PublishAppointment(ctx, apt); err != nil {
		s.logger.Warn("%s: failed to publish event for id=%s: %v", op, apt.ID, err)
	}
}

// checkTransition отсекает запрещённый переход до записи.
// Условный UPDATE в репозитории остаётся последней проверкой при гонке
func (s *Service) checkTransition(ctx context.Context, op string, id uuid.UUID, next domain.AppointmentStatus) error {
	current, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		return s.mapTransitionError(op, id, err)
	}
	if !current.Status.CanTransitionTo(next) {
		s.logger.Warn("%s: appointment id=%s cannot move from %s to %s", op, id, current.Status, next)
		return ErrInvalidTransition
	}
	return nil
}

func (s *Service) mapTransitionError(op string, id uuid.UUID, err error) error {
	switch {
	case errors.Is(err, appointmentRepo.ErrAppointmentNotFound):
		s.logger.Warn("%s: appointment id=%s not found", op, id)
		return ErrAppointmentNotFound
	case errors.Is(err, appointmentRepo.ErrStatusConflict):
		s.logger.Warn("%s: appointment id=%s is not confirmed", op, id)
		return ErrInvalidTransition
	default:
		s.logger.Error("%s: repository error for appointment id=%s: %v", op, id, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
}

func parseStatus(raw *string) (*domain.AppointmentStatus, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	status, err := models.ToDomainStatus(*raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return &status, nil
}
