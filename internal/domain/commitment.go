package domain

import "time"

// CommitmentKind тип занятого интервала
type CommitmentKind string

const (
	// KindConfirmed подтверждённый блок из внешнего календаря
	KindConfirmed CommitmentKind = "confirmed"
	// KindTentative предварительная запись из хранилища заявок (pending/confirmed)
	KindTentative CommitmentKind = "tentative"
)

// Commitment занятый интервал времени, блокирующий запись
// Инвариант: Start < End, оба значения в UTC
//
// StartAddress и EndAddress различаются только у слитых интервалов:
// при слиянии двух пересекающихся интервалов техник начинает слитый блок
// по адресу первого и заканчивает по адресу последнего
type Commitment struct {
	Start        time.Time
	End          time.Time
	StartAddress string
	EndAddress   string
	Kind         CommitmentKind
}

// Overlaps проверяет строгое пересечение с интервалом [start, end)
// Граничащие интервалы (конец одного == начало другого) НЕ считаются пересечением
func (c Commitment) Overlaps(start, end time.Time) bool {
	return c.Start.Before(end) && c.End.After(start)
}

// Duration возвращает длительность интервала
func (c Commitment) Duration() time.Duration {
	return c.End.Sub(c.Start)
}
