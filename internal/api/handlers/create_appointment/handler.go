package create_appointment

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	createAppointment "github.com/m04kA/SMC-SalonBooking/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgSalonNotFound      = "салон не найден"
	msgServiceNotFound    = "услуга не найдена"
	msgClientNotFound     = "клиент не найден"
	msgSalonClosed        = "салон закрыт в выбранную дату"
	msgInvalidTimeSlot    = "некорректный временной слот"
	msgInvalidSalonID     = "некорректный ID салона"
	msgSalonMismatch      = "ID салона в пути и в теле запроса не совпадают"
	msgTooLateToBook      = "слишком поздно для записи на это время"
	msgDateTooFar         = "дата записи слишком далеко в будущем"
	msgConflict           = "выбранное время уже занято"
	msgSourceUnavailable  = "календарь салона временно недоступен"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
	mode    createAppointment.Mode
	route   string
}

// NewHandler публичная запись клиента: POST /api/v1/appointments, всегда сетка booking
func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
		mode:    createAppointment.ModeBooking,
		route:   "POST /appointments",
	}
}

// NewAgendaHandler запись из журнала салона: POST /api/v1/salons/{salonId}/appointments, сетка agenda
func NewAgendaHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
		mode:    createAppointment.ModeAgenda,
		route:   "POST /salons/{salonId}/appointments",
	}
}

func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", h.route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if h.mode == createAppointment.ModeAgenda {
		pathSalonID, err := uuid.Parse(mux.Vars(r)["salonId"])
		if err != nil {
			h.logger.Warn("%s - Invalid salon ID: %v", h.route, err)
			handlers.RespondBadRequest(w, msgInvalidSalonID)
			return
		}
		if req.SalonID == "" {
			req.SalonID = pathSalonID.String()
		} else if bodySalonID, err := uuid.Parse(req.SalonID); err == nil && bodySalonID != pathSalonID {
			h.logger.Warn("%s - Salon mismatch: path=%s, body=%s", h.route, pathSalonID, req.SalonID)
			handlers.RespondBadRequest(w, msgSalonMismatch)
			return
		}
	}

	ucReq := req.ToUseCaseRequest()
	ucReq.Mode = h.mode

	result, err := h.useCase.Execute(r.Context(), ucReq)
	if err != nil {
		var verr *domain.ValidationError

		switch {
		case errors.As(err, &verr):
			h.logger.Warn("%s - Validation failed: fields=%v", h.route, verr.Fields)
			handlers.RespondValidationError(w, verr.Fields)

		case errors.Is(err, createAppointment.ErrConflictDetected):
			h.logger.Warn("%s - Slot conflict: salon_id=%s, date=%s, time=%s", h.route, req.SalonID, req.Date, req.StartTime)
			handlers.RespondConflict(w, msgConflict)

		case errors.Is(err, createAppointment.ErrSalonNotFound):
			h.logger.Warn("%s - Salon not found: salon_id=%s", h.route, req.SalonID)
			handlers.RespondNotFound(w, msgSalonNotFound)

		case errors.Is(err, createAppointment.ErrServiceNotFound):
			h.logger.Warn("%s - Service not found: salon_id=%s, service_id=%s", h.route, req.SalonID, req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createAppointment.ErrClientNotFound):
			h.logger.Warn("%s - Client not found: salon_id=%s", h.route, req.SalonID)
			handlers.RespondNotFound(w, msgClientNotFound)

		case errors.Is(err, createAppointment.ErrSalonClosed):
			h.logger.Warn("%s - Salon closed: salon_id=%s, date=%s", h.route, req.SalonID, req.Date)
			handlers.RespondBadRequest(w, msgSalonClosed)

		case errors.Is(err, createAppointment.ErrInvalidTimeSlot):
			h.logger.Warn("%s - Invalid time slot: salon_id=%s, time=%s", h.route, req.SalonID, req.StartTime)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, createAppointment.ErrTooLateToBook):
			h.logger.Warn("%s - Too late to book: salon_id=%s", h.route, req.SalonID)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, createAppointment.ErrDateTooFarInFuture):
			h.logger.Warn("%s - Date too far in future: salon_id=%s", h.route, req.SalonID)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createAppointment.ErrSourceUnavailable):
			h.logger.Error("%s - Source unavailable: salon_id=%s, error=%v", h.route, req.SalonID, err)
			handlers.RespondServiceUnavailable(w, msgSourceUnavailable)

		default:
			h.logger.Error("%s - Failed to create appointment: salon_id=%s, error=%v", h.route, req.SalonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("%s - Appointment created successfully: appointment_id=%s, salon_id=%s", h.route,
		result.ID, result.SalonID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
