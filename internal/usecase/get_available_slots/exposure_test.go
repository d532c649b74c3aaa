package get_available_slots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

func candidates(durationMinutes int, starts ...time.Time) []domain.Candidate {
	out := make([]domain.Candidate, len(starts))
	for i, s := range starts {
		out[i] = domain.NewCandidate(s, durationMinutes)
	}
	return out
}

func gridRange(durationMinutes int, from, to time.Time) []domain.Candidate {
	var out []domain.Candidate
	for s := from; !s.After(to); s = s.Add(10 * time.Minute) {
		out = append(out, domain.NewCandidate(s, durationMinutes))
	}
	return out
}

func TestShapeExposure_EmptyDayAnchors(t *testing.T) {
	window := testWindow()
	ix := newCommitmentIndex(nil)
	valid := gridRange(60, at(8, 0), at(17, 0))

	exposed := shapeExposure(valid, ix, window, 10, 4*time.Hour)

	assert.Equal(t, []time.Time{at(8, 0), at(10, 30), at(13, 0), at(15, 30)}, exposed)
}

func TestShapeExposure_AnchorsSnapForward(t *testing.T) {
	window := testWindow()
	ix := newCommitmentIndex(nil)

	// Дорога с базы съела начало дня: первый достижимый кандидат 08:50
	valid := gridRange(60, at(8, 50), at(17, 0))

	exposed := shapeExposure(valid, ix, window, 10, 4*time.Hour)

	assert.Equal(t, []time.Time{at(8, 50), at(10, 30), at(13, 0), at(15, 30)}, exposed)
}

func TestShapeExposure_AnchorsDeduped(t *testing.T) {
	window := testWindow()
	ix := newCommitmentIndex(nil)

	// Все якорные времена схлопываются в единственного позднего кандидата
	valid := candidates(60, at(16, 50), at(17, 0))

	exposed := shapeExposure(valid, ix, window, 10, 4*time.Hour)

	assert.Equal(t, []time.Time{at(16, 50)}, exposed)
}

func TestShapeExposure_SingletonRuns(t *testing.T) {
	window := testWindow()
	ix := newCommitmentIndex([]domain.Commitment{
		commitment(12, 0, 14, 0),
	})

	// Фильтр фрагментации оставил по паре изолированных кандидатов
	// вокруг занятости: каждый одиночный прогон выдаётся как есть
	valid := candidates(120, at(8, 0), at(10, 0), at(14, 0), at(16, 0))

	exposed := shapeExposure(valid, ix, window, 10, 4*time.Hour)

	assert.Equal(t, []time.Time{at(8, 0), at(10, 0), at(14, 0), at(16, 0)}, exposed)
}

func TestShapeExposure_WideGapExposesMidpoint(t *testing.T) {
	window := testWindow()
	ix := newCommitmentIndex([]domain.Commitment{
		commitment(16, 0, 18, 0),
	})

	// Простой 08:00-16:00 длиннее порога: кроме первого кандидата
	// выдаётся ближайший к середине простоя (12:00)
	valid := gridRange(60, at(8, 0), at(15, 0))

	exposed := shapeExposure(valid, ix, window, 10, 4*time.Hour)

	assert.Equal(t, []time.Time{at(8, 0), at(12, 0)}, exposed)
}

func TestShapeExposure_NarrowGapNoMidpoint(t *testing.T) {
	window := testWindow()
	ix := newCommitmentIndex([]domain.Commitment{
		commitment(12, 0, 18, 0),
	})

	// Простой 08:00-12:00 ровно равен порогу: дополнительного слота нет
	valid := gridRange(60, at(8, 0), at(11, 0))

	exposed := shapeExposure(valid, ix, window, 10, 4*time.Hour)

	assert.Equal(t, []time.Time{at(8, 0)}, exposed)
}

func TestShapeExposure_NoCandidates(t *testing.T) {
	window := testWindow()
	ix := newCommitmentIndex(nil)

	exposed := shapeExposure(nil, ix, window, 10, 4*time.Hour)

	assert.Empty(t, exposed)
	assert.NotNil(t, exposed)
}
