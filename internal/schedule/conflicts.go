package schedule

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Overlaps проверяет пересечение половинчатых интервалов [aStart, aEnd) и [bStart, bEnd).
// Интервалы, которые только соприкасаются границами, не пересекаются
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// FindConflicts возвращает подтверждённые записи, пересекающиеся с [start, end)
func FindConflicts(start, end time.Time, appointments []*domain.Appointment) []*domain.Appointment {
	conflicts := make([]*domain.Appointment, 0)
	for _, apt := range appointments {
		if apt == nil || !apt.IsConfirmed() {
			continue
		}
		if Overlaps(start, end, apt.StartTime, apt.EndTime) {
			conflicts = append(conflicts, apt)
		}
	}
	return conflicts
}

// HasConflict true, если [start, end) пересекается хотя бы с одной подтверждённой записью
func HasConflict(start, end time.Time, appointments []*domain.Appointment) bool {
	return len(FindConflicts(start, end, appointments)) > 0
}

// MarkAvailability возвращает копию слотов, где Available=false у каждого слота,
// пересекающегося с подтверждённой записью. Прошедшие слоты остаются недоступными.
// Исходный срез и записи не изменяются
func MarkAvailability(slots []domain.TimeSlot, appointments []*domain.Appointment) []domain.TimeSlot {
	marked := make([]domain.TimeSlot, len(slots))
	for i, slot := range slots {
		slot.Available = !slot.IsPast && !HasConflict(slot.Start, slot.End, appointments)
		marked[i] = slot
	}
	return marked
}

// BookableOnly оставляет только доступные слоты
func BookableOnly(slots []domain.TimeSlot) []domain.TimeSlot {
	result := make([]domain.TimeSlot, 0, len(slots))
	for _, slot := range slots {
		if slot.Available {
			result = append(result, slot)
		}
	}
	return result
}

// FindSlot ищет слот по времени начала HH:MM
func FindSlot(slots []domain.TimeSlot, at types.TimeString) (domain.TimeSlot, bool) {
	for _, slot := range slots {
		if slot.Time == at {
			return slot, true
		}
	}
	return domain.TimeSlot{}, false
}
