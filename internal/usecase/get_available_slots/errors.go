package get_available_slots

import "errors"

var (
	// ErrSalonNotFound возвращается, когда салон не найден
	ErrSalonNotFound = errors.New("salon not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("service not found")

	// ErrSourceUnavailable календарь салона недоступен, слоты посчитать нельзя
	ErrSourceUnavailable = errors.New("calendar source unavailable")

	// ErrDateTooFarInFuture возвращается, когда дата превышает горизонт записи
	ErrDateTooFarInFuture = errors.New("date is too far in the future")

	// ErrSuperseded расчёт отменён более новым запросом той же сессии
	ErrSuperseded = errors.New("slot query superseded by a newer request")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrUnknownMode режим не booking и не agenda. Всегда вместе с ErrInvalidInput
	ErrUnknownMode = errors.New("unknown mode")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
