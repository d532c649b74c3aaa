package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// shapeExposure сокращает плотный набор валидных кандидатов до ограниченного,
// равномерно распределённого списка времён, который показывается клиенту
//
// Каждый выживший 10-минутный кандидат показывать нельзя: десятки времён
// на день перегружают клиента и создают ложное ощущение точности
func shapeExposure(
	valid []domain.Candidate,
	ix *commitmentIndex,
	window domain.DayWindow,
	granularityMinutes int,
	wideGap time.Duration,
) []time.Time {
	if len(valid) == 0 {
		return []time.Time{}
	}

	// День без занятости: фиксированные якоря, равномерно покрывающие окно.
	// Якорь привязывается к первому валидному кандидату не раньше своего
	// времени - если начало дня недостижимо по дороге, якорь сдвигается
	// на первый достижимый слот
	if ix.empty() {
		return anchorTimes(valid, window)
	}

	step := time.Duration(granularityMinutes) * time.Minute
	exposed := make([]time.Time, 0, len(valid)/4+1)

	for start := 0; start < len(valid); {
		end := start + 1
		for end < len(valid) && valid[end].Start.Sub(valid[end-1].Start) == step {
			end++
		}
		run := valid[start:end]

		// Первый слот каждого достижимого открытого интервала показывается всегда
		exposed = append(exposed, run[0].Start)

		// Длина простоя, ограниченного ближайшей занятостью вокруг прогона
		gapStart := window.Open
		if prev, ok := ix.prevBefore(run[0].Start); ok {
			gapStart = prev.End
		}
		gapEnd := window.Close
		if next, ok := ix.nextAfter(run[len(run)-1].Start); ok {
			gapEnd = next.Start
		}

		if gapEnd.Sub(gapStart) > wideGap && len(run) > 1 {
			midpoint := gapStart.Add(gapEnd.Sub(gapStart) / 2)
			if extra := closestToMidpoint(run, midpoint); !extra.Equal(run[0].Start) {
				exposed = append(exposed, extra)
			}
		}

		start = end
	}

	return exposed
}

// anchorTimes выбирает не более len(AnchorOffsetsMinutes) якорных времён
// для пустого дня. Кандидаты уже отфильтрованы по границам окна и дороге,
// поэтому каждый якорь гарантированно заканчивается до закрытия
func anchorTimes(valid []domain.Candidate, window domain.DayWindow) []time.Time {
	anchors := make([]time.Time, 0, len(domain.AnchorOffsetsMinutes))

	for _, offset := range domain.AnchorOffsetsMinutes {
		target := window.Open.Add(time.Duration(offset) * time.Minute)

		for _, cand := range valid {
			if cand.Start.Before(target) {
				continue
			}
			if len(anchors) == 0 || anchors[len(anchors)-1].Before(cand.Start) {
				anchors = append(anchors, cand.Start)
			}
			break
		}
	}

	return anchors
}

// closestToMidpoint возвращает кандидата прогона, ближайшего к середине простоя
func closestToMidpoint(run []domain.Candidate, midpoint time.Time) time.Time {
	best := run[0].Start
	bestDelta := absDuration(midpoint.Sub(best))

	for _, cand := range run[1:] {
		delta := absDuration(midpoint.Sub(cand.Start))
		if delta < bestDelta {
			best = cand.Start
			bestDelta = delta
		}
	}

	return best
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
