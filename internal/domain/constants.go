package domain

const (
	DefaultServiceDurationMinutes = 30

	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxServiceDurationMinutes   = 24 * 60
)

// Шаг сетки слотов для двух сценариев
const (
	BookingStepMinutes = 30 // клиентская запись
	AgendaStepMinutes  = 15 // внутренний журнал салона
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
