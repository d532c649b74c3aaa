package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/travel"
)

// travelPolicy операционная политика проверки поездок
type travelPolicy struct {
	// enforceReturnToBase делает возврат на базу в конце дня жёстким гейтом;
	// при false проверка конца дня не отбраковывает кандидатов
	enforceReturnToBase bool
}

// isTravelFeasible проверяет, что стыковки кандидата с соседними занятыми
// интервалами выполнимы по времени в пути
//
// Явная таблица 2x2 по (hasPrev, hasNext):
//
//	(нет, нет)  - первый и последний выезд дня: база -> кандидат и кандидат -> база
//	(нет, есть) - база -> кандидат и кандидат -> следующий выезд
//	(есть, нет) - предыдущий выезд -> кандидат и кандидат -> база
//	(есть, есть) - предыдущий выезд -> кандидат и кандидат -> следующий выезд
//
// Отсутствующее ребро графа трактуется как невыполнимость: недооценить
// время в пути хуже, чем отбраковать кандидата
func isTravelFeasible(
	cand domain.Candidate,
	ix *commitmentIndex,
	window domain.DayWindow,
	candidateAddress, baseAddress string,
	graph *travel.Graph,
	policy travelPolicy,
) bool {
	prev, hasPrev := ix.prevBefore(cand.Start)
	next, hasNext := ix.nextAfter(cand.End)

	fromBase := func() bool {
		// Техник выезжает с базы не раньше открытия
		return travelFits(graph, baseAddress, candidateAddress, window.Open, cand.Start)
	}
	fromPrev := func() bool {
		return travelFits(graph, prev.EndAddress, candidateAddress, prev.End, cand.Start)
	}
	toNext := func() bool {
		return travelFits(graph, candidateAddress, next.StartAddress, cand.End, next.Start)
	}
	returnToBase := func() bool {
		if !policy.enforceReturnToBase {
			return true
		}
		return travelFits(graph, candidateAddress, baseAddress, cand.End, window.Close)
	}

	switch {
	case !hasPrev && !hasNext:
		return fromBase() && returnToBase()
	case !hasPrev && hasNext:
		return fromBase() && toNext()
	case hasPrev && !hasNext:
		return fromPrev() && returnToBase()
	default:
		return fromPrev() && toNext()
	}
}

// travelFits проверяет, что поездка origin -> dest помещается в интервал
// [availableFrom, mustArriveBy]
func travelFits(graph *travel.Graph, origin, dest string, availableFrom, mustArriveBy time.Time) bool {
	minutes, ok := graph.Minutes(origin, dest)
	if !ok {
		return false
	}
	arrival := availableFrom.Add(time.Duration(minutes) * time.Minute)
	return !arrival.After(mustArriveBy)
}
