package schedule

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// ComposeInstant собирает абсолютный момент из календарной даты и времени HH:MM
// в часовом поясе салона. От date используются только год, месяц и день.
//
// Время, попадающее в "дыру" перехода на летнее время, нормализуется time.Date
// вперёд на величину перехода. Неоднозначное время при переходе назад
// разрешается в первое из двух вхождений.
func ComposeInstant(date time.Time, t types.TimeString, loc *time.Location) (time.Time, error) {
	h, m, err := t.Clock()
	if err != nil {
		return time.Time{}, err
	}
	y, mon, d := date.Date()
	return time.Date(y, mon, d, h, m, 0, 0, loc), nil
}

// StartOfDay полночь календарной даты в часовом поясе loc
func StartOfDay(date time.Time, loc *time.Location) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// DayRange возвращает [начало дня, начало следующего дня) в часовом поясе loc.
// Длина может отличаться от 24 часов в дни перехода на летнее время
func DayRange(date time.Time, loc *time.Location) (time.Time, time.Time) {
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc), time.Date(y, m, d+1, 0, 0, 0, 0, loc)
}

// Window окно работы салона [Open, Close) в конкретный день
type Window struct {
	Open  time.Time
	Close time.Time
}

func resolveWindow(date time.Time, openTime, closeTime types.TimeString, loc *time.Location) (Window, error) {
	openAt, err := ComposeInstant(date, openTime, loc)
	if err != nil {
		return Window{}, fmt.Errorf("%w: open_time: %v", ErrMalformedHours, err)
	}
	closeAt, err := ComposeInstant(date, closeTime, loc)
	if err != nil {
		return Window{}, fmt.Errorf("%w: close_time: %v", ErrMalformedHours, err)
	}
	if !openAt.Before(closeAt) {
		return Window{}, fmt.Errorf("%w: open %s is not before close %s", ErrMalformedHours, openTime, closeTime)
	}
	return Window{Open: openAt, Close: closeAt}, nil
}
