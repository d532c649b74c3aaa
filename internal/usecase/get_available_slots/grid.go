package get_available_slots

import (
	"iter"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// generateGrid перечисляет времена начала кандидатов от открытия до закрытия
// с фиксированным шагом granularityMinutes, исключая кандидатов, чей конец
// вышел бы за закрытие
//
// Ленивая конечная последовательность без побочных эффектов: зависит только
// от рабочего окна, шага сетки и длительности, перезапускается с начала
// при каждом обходе
func generateGrid(window domain.DayWindow, granularityMinutes, durationMinutes int) iter.Seq[time.Time] {
	step := time.Duration(granularityMinutes) * time.Minute
	duration := time.Duration(durationMinutes) * time.Minute

	return func(yield func(time.Time) bool) {
		for start := window.Open; start.Before(window.Close); start = start.Add(step) {
			if !window.Contains(start, start.Add(duration)) {
				return
			}
			if !yield(start) {
				return
			}
		}
	}
}
