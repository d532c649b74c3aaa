package domain

import (
	"fmt"
	"time"
)

// BusinessRules represents the working window of the single mobile technician
// Supports exactly one resource: no multi-technician routing exists in this service
type BusinessRules struct {
	OpenHour        int            // Час открытия в локальном времени (0-23)
	CloseHour       int            // Час закрытия в локальном времени (1-24)
	AllowedWeekdays []time.Weekday // Рабочие дни недели
	TimeZone        string         // IANA имя зоны, например "America/Chicago"
	BaseAddress     string         // Домашний адрес техника (старт и финиш дня)
}

// DayWindow абсолютные границы рабочего дня в UTC
// Вычисляется один раз на запрос из локальной календарной даты
type DayWindow struct {
	Open  time.Time
	Close time.Time
}

// Contains проверяет, что интервал [start, end) целиком лежит внутри окна
func (w DayWindow) Contains(start, end time.Time) bool {
	return !start.Before(w.Open) && !end.After(w.Close)
}

// Minutes возвращает длину окна в минутах
func (w DayWindow) Minutes() int {
	return int(w.Close.Sub(w.Open).Minutes())
}

// IsAllowedWeekday проверяет, что дата приходится на рабочий день недели
func (r BusinessRules) IsAllowedWeekday(year int, month time.Month, day int) bool {
	// Полдень исключает сюрпризы на датах перевода часов:
	// в зонах с DST локальная полночь может не существовать
	loc, err := time.LoadLocation(r.TimeZone)
	if err != nil {
		return false
	}
	weekday := time.Date(year, month, day, 12, 0, 0, 0, loc).Weekday()
	for _, allowed := range r.AllowedWeekdays {
		if weekday == allowed {
			return true
		}
	}
	return false
}

// ResolveDayWindow переводит локальную календарную дату в абсолютные UTC
// моменты открытия и закрытия для ЭТОЙ конкретной даты
//
// time.Date с загруженной *time.Location корректно учитывает смещение зоны
// на заданную дату, включая переходы на летнее/зимнее время - вся
// зонная арифметика сервиса изолирована в этой функции
func (r BusinessRules) ResolveDayWindow(year int, month time.Month, day int) (DayWindow, error) {
	loc, err := time.LoadLocation(r.TimeZone)
	if err != nil {
		return DayWindow{}, fmt.Errorf("load business time zone %q: %w", r.TimeZone, err)
	}

	open := time.Date(year, month, day, r.OpenHour, 0, 0, 0, loc).UTC()
	close := time.Date(year, month, day, r.CloseHour, 0, 0, 0, loc).UTC()

	if !open.Before(close) {
		return DayWindow{}, fmt.Errorf("business window is empty: open hour %d, close hour %d", r.OpenHour, r.CloseHour)
	}

	return DayWindow{Open: open, Close: close}, nil
}
