package get_opening_hours

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBooking/internal/service/opening_hours/models"
)

type OpeningHoursService interface {
	Get(ctx context.Context, salonID uuid.UUID) (*models.OpeningHoursResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
