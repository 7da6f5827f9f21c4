package calendar

import "errors"

var (
	// ErrSourceUnavailable календарь не удалось прочитать. Слоты по нему считать нельзя
	ErrSourceUnavailable = errors.New("calendar: source unavailable")

	// ErrSalonNotFound возвращается, когда салон не найден
	ErrSalonNotFound = errors.New("calendar: salon not found")

	// ErrServiceNotFound возвращается, когда услуга салона не найдена
	ErrServiceNotFound = errors.New("calendar: service not found")

	// ErrInvalidTimezone в салоне задан неизвестный часовой пояс
	ErrInvalidTimezone = errors.New("calendar: invalid salon timezone")
)
