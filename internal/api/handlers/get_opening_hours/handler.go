package get_opening_hours

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	openingHours "github.com/m04kA/SMC-SalonBooking/internal/service/opening_hours"
)

const (
	msgInvalidSalonID    = "некорректный ID салона"
	msgSalonNotFound     = "салон не найден"
	msgSourceUnavailable = "расписание салона временно недоступно"
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

// Handle GET /api/v1/salons/{salonId}/opening-hours
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	salonID, err := uuid.Parse(mux.Vars(r)["salonId"])
	if err != nil {
		h.logger.Warn("GET /salons/{id}/opening-hours - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	hours, err := h.service.Get(r.Context(), salonID)
	if err != nil {
		switch {
		case errors.Is(err, openingHours.ErrSalonNotFound):
			h.logger.Warn("GET /salons/{id}/opening-hours - Salon not found: salon_id=%s", salonID)
			handlers.RespondNotFound(w, msgSalonNotFound)

		case errors.Is(err, openingHours.ErrSourceUnavailable):
			h.logger.Error("GET /salons/{id}/opening-hours - Source unavailable: salon_id=%s, error=%v", salonID, err)
			handlers.RespondServiceUnavailable(w, msgSourceUnavailable)

		default:
			h.logger.Error("GET /salons/{id}/opening-hours - Failed to get opening hours: salon_id=%s, error=%v", salonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /salons/{id}/opening-hours - Opening hours retrieved successfully: salon_id=%s", salonID)
	handlers.RespondJSON(w, http.StatusOK, hours)
}
