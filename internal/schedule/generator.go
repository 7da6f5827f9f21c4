package schedule

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Options параметры генерации слотов
type Options struct {
	// StepMinutes шаг сетки от времени открытия
	StepMinutes int
	// IncludePast оставлять прошедшие слоты в выдаче с IsPast=true и Available=false.
	// Если false, прошедшие слоты не попадают в результат
	IncludePast bool
}

var (
	// BookingOptions клиентская запись: шаг 30 минут, прошедшие слоты скрыты
	BookingOptions = Options{StepMinutes: domain.BookingStepMinutes, IncludePast: false}

	// AgendaOptions журнал салона: шаг 15 минут, прошедшие слоты показаны как недоступные
	AgendaOptions = Options{StepMinutes: domain.AgendaStepMinutes, IncludePast: true}
)

// Generator строит сетку слотов на день. Не хранит состояния и не читает часы:
// текущий момент передаётся явно
type Generator struct {
	opts Options
}

// NewGenerator создает генератор с указанными параметрами
func NewGenerator(opts Options) (*Generator, error) {
	if opts.StepMinutes <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidStep, opts.StepMinutes)
	}
	return &Generator{opts: opts}, nil
}

// Options возвращает параметры генератора
func (g *Generator) Options() Options {
	return g.opts
}

// Generate возвращает слоты на дату date для услуги длительностью durationMinutes.
//
// День недели определяется в часовом поясе loc. Если записи для дня нет или день
// закрыт, возвращается пустой срез без ошибки. Слот попадает в выдачу, только если
// услуга целиком помещается до закрытия: start + duration <= close.
// Результат упорядочен по возрастанию времени начала.
func (g *Generator) Generate(
	date time.Time,
	durationMinutes int,
	hours domain.WeeklySchedule,
	now time.Time,
	loc *time.Location,
) ([]domain.TimeSlot, error) {
	if durationMinutes <= 0 || durationMinutes > domain.MaxServiceDurationMinutes {
		return nil, fmt.Errorf("%w: %d minutes", ErrInvalidDuration, durationMinutes)
	}
	if loc == nil {
		loc = time.UTC
	}

	day := StartOfDay(date, loc)
	entry, ok := hours.ForWeekday(day.Weekday())
	if !ok || entry.IsClosed {
		return []domain.TimeSlot{}, nil
	}

	window, err := resolveWindow(day, entry.OpenTime, entry.CloseTime, loc)
	if err != nil {
		return nil, err
	}

	duration := time.Duration(durationMinutes) * time.Minute
	step := time.Duration(g.opts.StepMinutes) * time.Minute

	slots := make([]domain.TimeSlot, 0)
	for start := window.Open; !start.Add(duration).After(window.Close); start = start.Add(step) {
		isPast := start.Before(now)
		if isPast && !g.opts.IncludePast {
			continue
		}

		slots = append(slots, domain.TimeSlot{
			Time:      types.NewTimeString(start.In(loc)),
			Start:     start,
			End:       start.Add(duration),
			Available: !isPast,
			IsPast:    isPast,
		})
	}

	return slots, nil
}

// GenerateSlots генерирует слоты с указанными параметрами без создания Generator
func GenerateSlots(
	date time.Time,
	durationMinutes int,
	hours domain.WeeklySchedule,
	now time.Time,
	loc *time.Location,
	opts Options,
) ([]domain.TimeSlot, error) {
	g, err := NewGenerator(opts)
	if err != nil {
		return nil, err
	}
	return g.Generate(date, durationMinutes, hours, now, loc)
}
