package get_available_slots

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Mode сценарий отображения слотов
type Mode string

const (
	// ModeBooking клиентская запись: шаг 30 минут, прошедшие слоты скрыты
	ModeBooking Mode = "booking"
	// ModeAgenda журнал салона: шаг 15 минут, прошедшие слоты видны с IsPast
	ModeAgenda Mode = "agenda"
)

// Request модель запроса на получение слотов
type Request struct {
	SalonID   uuid.UUID
	ServiceID uuid.UUID
	Date      time.Time // календарная дата, время игнорируется
	Mode      Mode      // пусто = ModeBooking
	// SessionKey ключ сессии клиента. Новый запрос с тем же ключом отменяет предыдущий
	SessionKey string
}

// Response модель ответа со списком слотов
type Response struct {
	Date            time.Time
	SalonID         uuid.UUID
	ServiceID       uuid.UUID
	Mode            Mode
	Timezone        string
	DurationMinutes int
	Slots           []Slot
}

// Slot модель временного слота
type Slot struct {
	Time      types.TimeString // HH:MM в часовом поясе салона
	Start     time.Time
	End       time.Time
	Available bool
	IsPast    bool
}
