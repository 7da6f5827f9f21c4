package get_salon_appointments

import (
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/appointments/models"
)

// ToServiceRequest создает запрос сервиса из query параметров: from, to (YYYY-MM-DD), status
func ToServiceRequest(salonID uuid.UUID, query url.Values) (*models.GetSalonAppointmentsRequest, error) {
	req := &models.GetSalonAppointmentsRequest{SalonID: salonID}

	if s := query.Get("from"); s != "" {
		from, err := time.Parse(domain.DateFormat, s)
		if err != nil {
			return nil, err
		}
		req.From = &from
	}

	if s := query.Get("to"); s != "" {
		to, err := time.Parse(domain.DateFormat, s)
		if err != nil {
			return nil, err
		}
		req.To = &to
	}

	if s := query.Get("status"); s != "" {
		req.Status = &s
	}

	return req, nil
}
