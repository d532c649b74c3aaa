package calendar

import "time"

// Event событие внешнего календаря
// Для событий "весь день" Start/End нулевые, занятость разворачивается
// загрузчиком до границ рабочего окна запрошенной даты
type Event struct {
	Start     time.Time
	End       time.Time
	AllDay    bool
	Cancelled bool
	Location  string
}

// eventTime временная метка события в wire-формате календаря:
// либо dateTime (RFC 3339), либо date (YYYY-MM-DD) для событий "весь день"
type eventTime struct {
	DateTime string `json:"dateTime,omitempty"`
	Date     string `json:"date,omitempty"`
}

// wireEvent событие в wire-формате календарного сервиса
type wireEvent struct {
	Status   string    `json:"status"`
	Start    eventTime `json:"start"`
	End      eventTime `json:"end"`
	Location string    `json:"location,omitempty"`
}

// wireResponse ответ календарного сервиса на запрос списка событий
type wireResponse struct {
	Items []wireEvent `json:"items"`
}
