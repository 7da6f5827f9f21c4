package update_opening_hours

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	openingHours "github.com/m04kA/SMC-SalonBooking/internal/service/opening_hours"
)

const (
	msgInvalidSalonID     = "некорректный ID салона"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgSalonNotFound      = "салон не найден"
)

type Handler struct {
	service OpeningHoursService
	logger  Logger
}

func NewHandler(service OpeningHoursService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/salons/{salonId}/opening-hours
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	salonID, err := uuid.Parse(mux.Vars(r)["salonId"])
	if err != nil {
		h.logger.Warn("PUT /salons/{id}/opening-hours - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	var req UpdateOpeningHoursRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /salons/{id}/opening-hours - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	hours, err := h.service.Replace(r.Context(), salonID, req.ToServiceRequest())
	if err != nil {
		var verr *domain.ValidationError

		switch {
		case errors.As(err, &verr):
			h.logger.Warn("PUT /salons/{id}/opening-hours - Validation failed: salon_id=%s, fields=%v", salonID, verr.Fields)
			handlers.RespondValidationError(w, verr.Fields)

		case errors.Is(err, openingHours.ErrSalonNotFound):
			h.logger.Warn("PUT /salons/{id}/opening-hours - Salon not found: salon_id=%s", salonID)
			handlers.RespondNotFound(w, msgSalonNotFound)

		default:
			h.logger.Error("PUT /salons/{id}/opening-hours - Failed to replace opening hours: salon_id=%s, error=%v", salonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /salons/{id}/opening-hours - Opening hours replaced successfully: salon_id=%s, days=%d",
		salonID, len(req.Days))
	handlers.RespondJSON(w, http.StatusOK, hours)
}
