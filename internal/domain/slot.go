package domain

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// TimeSlot вычисляемый слот: [Start, End). Не хранится
type TimeSlot struct {
	Time      types.TimeString // HH:MM начала в часовом поясе салона
	Start     time.Time
	End       time.Time
	Available bool
	IsPast    bool
}
