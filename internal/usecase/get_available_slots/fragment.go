package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// isFragmentValid отбраковывает кандидатов, создающих бесполезно короткие
// простои. 10-минутная сетка иначе выдавала бы формально свободные слоты,
// после которых уже никогда не поместится следующая заявка
//
// Правило: простой между кандидатом и ближайшей границей занятости
// (или границей рабочего окна) либо нулевой, либо не меньше minGap.
// Исключения: простой, примыкающий к открытию (кандидат - первый слот дня),
// и простой, примыкающий к закрытию (кандидат - последний слот дня)
func isFragmentValid(cand domain.Candidate, ix *commitmentIndex, window domain.DayWindow, minGap time.Duration) bool {
	prevBoundary := window.Open
	prev, hasPrev := ix.prevBefore(cand.Start)
	if hasPrev {
		prevBoundary = prev.End
	}

	gapBefore := cand.Start.Sub(prevBoundary)
	if hasPrev && gapBefore > 0 && gapBefore < minGap {
		return false
	}

	nextBoundary := window.Close
	next, hasNext := ix.nextAfter(cand.End)
	if hasNext {
		nextBoundary = next.Start
	}

	gapAfter := nextBoundary.Sub(cand.End)
	if hasNext && gapAfter > 0 && gapAfter < minGap {
		return false
	}

	return true
}
