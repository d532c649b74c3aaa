package domain

import "time"

// Candidate represents a provisional slot start time under evaluation
// Генерируется на каждый запрос заново и никогда не персистится
type Candidate struct {
	Start time.Time
	End   time.Time // Start + запрошенная длительность
}

// NewCandidate создает кандидата из времени начала и длительности услуги
func NewCandidate(start time.Time, durationMinutes int) Candidate {
	return Candidate{
		Start: start,
		End:   start.Add(time.Duration(durationMinutes) * time.Minute),
	}
}
