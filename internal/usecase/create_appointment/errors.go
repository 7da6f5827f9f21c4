package create_appointment

import "errors"

var (
	// ErrSalonNotFound возвращается, когда салон не найден
	ErrSalonNotFound = errors.New("create_appointment: salon not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_appointment: service not found")

	// ErrClientNotFound возвращается, когда указанный клиент не найден в салоне
	ErrClientNotFound = errors.New("create_appointment: client not found")

	// ErrSourceUnavailable календарь салона недоступен
	ErrSourceUnavailable = errors.New("create_appointment: calendar source unavailable")

	// ErrSalonClosed возвращается, когда салон закрыт в указанную дату
	ErrSalonClosed = errors.New("create_appointment: salon is closed on this date")

	// ErrInvalidTimeSlot время не попадает в сетку слотов или услуга не успевает до закрытия
	ErrInvalidTimeSlot = errors.New("create_appointment: invalid time slot")

	// ErrSlotInPast возвращается при попытке записаться на прошедшее время
	ErrSlotInPast = errors.New("create_appointment: slot is in the past")

	// ErrTooLateToBook возвращается, когда запись нарушает минимальное время до визита
	ErrTooLateToBook = errors.New("create_appointment: too late to book this slot")

	// ErrDateTooFarInFuture возвращается, когда дата превышает горизонт записи
	ErrDateTooFarInFuture = errors.New("create_appointment: date is too far in the future")

	// ErrConflictDetected слот занят подтверждённой записью
	ErrConflictDetected = errors.New("create_appointment: slot conflicts with a confirmed appointment")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
