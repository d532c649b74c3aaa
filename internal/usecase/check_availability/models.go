package check_availability

import "time"

// Request модель запроса проверки интервала
type Request struct {
	Start time.Time // Начало интервала, UTC
	End   time.Time // Конец интервала, UTC
}

// Response модель ответа проверки интервала
type Response struct {
	Available bool // true, если интервал не пересекает ни одну занятость
}
