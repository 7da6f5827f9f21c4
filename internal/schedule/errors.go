package schedule

import "errors"

var (
	// ErrInvalidDuration длительность услуги не положительна или больше суток
	ErrInvalidDuration = errors.New("schedule: invalid service duration")

	// ErrInvalidStep шаг сетки не положителен
	ErrInvalidStep = errors.New("schedule: invalid step")

	// ErrMalformedHours часы работы не образуют окно open < close
	ErrMalformedHours = errors.New("schedule: malformed opening hours")
)
