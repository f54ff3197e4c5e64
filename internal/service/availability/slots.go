package availability

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// buildSlots перебирает старты с шагом StepMinutes внутри каждого окна дня
// и помечает каждый кандидат первой подходящей причиной недоступности:
// 1. интервал не помещается в окно (в том числе длительность больше суток)
// 2. старт раньше now
// 3. пересечений с занятыми интервалами >= MaxConcurrentPerSlot
func buildSlots(
	schedule domain.Schedule,
	date time.Time,
	durationMinutes int,
	now time.Time,
	occupied []domain.TimeInterval,
) []domain.SlotCandidate {
	loc := schedule.Location()
	step := time.Duration(schedule.StepMinutes) * time.Minute
	// Больше суток не влезает ни в одно окно, а time.Duration при таких значениях переполняется
	tooLong := durationMinutes > domain.MaxDurationMinutes
	duration := time.Duration(min(durationMinutes, domain.MaxDurationMinutes)) * time.Minute

	slots := make([]domain.SlotCandidate, 0)

	for _, window := range schedule.Hours.Windows {
		bounds := window.On(date, loc)

		for start := bounds.Start; start.Before(bounds.End); start = start.Add(step) {
			candidate := domain.TimeInterval{Start: start, End: start.Add(duration)}

			slot := domain.SlotCandidate{
				Start:       start,
				Label:       types.NewTimeString(start),
				IsAvailable: true,
			}

			switch {
			case tooLong || !candidate.IsValid() || !bounds.Contains(candidate):
				slot.IsAvailable = false
				slot.Reason = domain.ReasonDoesNotFit
			case start.Before(now):
				slot.IsAvailable = false
				slot.Reason = domain.ReasonTimePassed
			case candidate.CountOverlaps(occupied) >= schedule.MaxConcurrentPerSlot:
				slot.IsAvailable = false
				slot.Reason = domain.ReasonSlotTaken
			}

			slots = append(slots, slot)
		}
	}

	return slots
}
