package domain

import (
	"errors"
	"strings"
)

var (
	// ErrMalformedOpeningHours некорректная запись часов работы
	ErrMalformedOpeningHours = errors.New("domain: malformed opening hours")

	// ErrInvalidTimezone неизвестный часовой пояс салона
	ErrInvalidTimezone = errors.New("domain: invalid salon timezone")

	// ErrValidation базовая ошибка для ValidationError (errors.Is)
	ErrValidation = errors.New("domain: validation failed")
)

// ValidationError перечисляет все некорректные поля запроса
type ValidationError struct {
	Fields []string
}

// NewValidationError создает ошибку для списка полей
func NewValidationError(fields ...string) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Fields, ", ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Add добавляет поле
func (e *ValidationError) Add(field string) {
	e.Fields = append(e.Fields, field)
}

// HasErrors returns true if at least one field failed
func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

// OrNil возвращает nil, если ошибок нет
func (e *ValidationError) OrNil() error {
	if e == nil || !e.HasErrors() {
		return nil
	}
	return e
}
