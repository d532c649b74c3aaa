package get_available_slots

import "time"

// Request модель запроса на получение доступных слотов
type Request struct {
	Date            time.Time // Календарная дата в бизнес-зоне (без времени)
	DurationMinutes int       // Длительность услуги в минутах
	Address         string    // Адрес выезда; пустой означает базовый адрес
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date    time.Time   // Дата, на которую запрашивались слоты
	Address string      // Фактический адрес расчёта
	Slots   []time.Time // Времена начала по возрастанию, UTC
}
