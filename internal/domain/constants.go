package domain

import "time"

// Default engine values
const (
	// SlotGranularityMinutes шаг сетки кандидатов
	SlotGranularityMinutes = 10

	// MinBookableGapMinutes минимальный полезный простой: более короткий
	// положительный зазор никогда не вместит ещё одну заявку
	MinBookableGapMinutes = 120

	// WideGapExposureMinutes порог, после которого в открытом интервале
	// показывается дополнительный слот около середины
	WideGapExposureMinutes = 240

	// DefaultTravelMinutes консервативная замена времени в пути
	// при недоступности маршрутного сервиса
	DefaultTravelMinutes = 30

	DefaultOpenHour  = 8
	DefaultCloseHour = 18
)

// AnchorOffsetsMinutes смещения якорных слотов от открытия для дня без занятости
var AnchorOffsetsMinutes = []int{0, 150, 300, 450}

// DefaultAllowedWeekdays рабочие дни по умолчанию (пн-пт)
var DefaultAllowedWeekdays = []time.Weekday{
	time.Monday,
	time.Tuesday,
	time.Wednesday,
	time.Thursday,
	time.Friday,
}

// Business validation constants
const (
	MinDurationMinutes = 10
	MaxDurationMinutes = 600 // Дольше рабочего дня услуга не бывает
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// OccupyingStatuses статусы заявок, которые учитываются как жёсткая занятость
// при расчёте доступных слотов
var OccupyingStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
}

// InactiveStatuses статусы, освобождающие интервал заявки
var InactiveStatuses = []AppointmentStatus{
	StatusCancelled,
	StatusDenied,
}
