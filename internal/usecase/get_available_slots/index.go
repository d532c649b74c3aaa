package get_available_slots

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// commitmentIndex отсортированный неперекрывающийся список занятости
// с бинарным поиском ближайших границ
//
// Список нормализован загрузчиком (сортировка по началу, без пересечений),
// поэтому порядок по началу совпадает с порядком по концу - один массив
// обслуживает поиск и предыдущей, и следующей границы за O(log n)
// на кандидата вместо линейного скана
type commitmentIndex struct {
	items []domain.Commitment
}

func newCommitmentIndex(items []domain.Commitment) *commitmentIndex {
	return &commitmentIndex{items: items}
}

func (ix *commitmentIndex) empty() bool {
	return len(ix.items) == 0
}

// overlapsAny проверяет строгое пересечение кандидата хотя бы с одним
// занятым интервалом
func (ix *commitmentIndex) overlapsAny(cand domain.Candidate) bool {
	// Первый интервал, заканчивающийся строго позже начала кандидата
	i := sort.Search(len(ix.items), func(i int) bool {
		return ix.items[i].End.After(cand.Start)
	})
	return i < len(ix.items) && ix.items[i].Start.Before(cand.End)
}

// prevBefore возвращает последний интервал, заканчивающийся не позже t
func (ix *commitmentIndex) prevBefore(t time.Time) (domain.Commitment, bool) {
	// Первый интервал с End > t; предыдущий перед ним - искомый
	i := sort.Search(len(ix.items), func(i int) bool {
		return ix.items[i].End.After(t)
	})
	if i == 0 {
		return domain.Commitment{}, false
	}
	return ix.items[i-1], true
}

// nextAfter возвращает первый интервал, начинающийся не раньше t
func (ix *commitmentIndex) nextAfter(t time.Time) (domain.Commitment, bool) {
	i := sort.Search(len(ix.items), func(i int) bool {
		return !ix.items[i].Start.Before(t)
	})
	if i == len(ix.items) {
		return domain.Commitment{}, false
	}
	return ix.items[i], true
}
