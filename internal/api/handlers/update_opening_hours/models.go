package update_opening_hours

import (
	"github.com/m04kA/SMC-SalonBooking/internal/service/opening_hours/models"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// UpdateOpeningHoursRequest HTTP request model
type UpdateOpeningHoursRequest struct {
	Days []DayRequest `json:"days"`
}

// DayRequest часы работы в один день недели
type DayRequest struct {
	DayOfWeek int    `json:"dayOfWeek"` // 0 = воскресенье
	OpenTime  string `json:"openTime,omitempty"`
	CloseTime string `json:"closeTime,omitempty"`
	IsClosed  bool   `json:"isClosed"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateOpeningHoursRequest) ToServiceRequest() *models.ReplaceOpeningHoursRequest {
	days := make([]models.DayRequest, len(r.Days))
	for i, d := range r.Days {
		days[i] = models.DayRequest{
			DayOfWeek: d.DayOfWeek,
			OpenTime:  normalize(d.OpenTime),
			CloseTime: normalize(d.CloseTime),
			IsClosed:  d.IsClosed,
		}
	}
	return &models.ReplaceOpeningHoursRequest{Days: days}
}

// normalize приводит "9:00" к "09:00". Некорректное значение остаётся как есть для валидации
func normalize(s string) types.TimeString {
	if t, err := types.NewTimeStringFromString(s); err == nil {
		return t
	}
	return types.TimeString(s)
}
