package geocoding

import "errors"

var (
	// ErrGeocodeFailed возвращается, когда адрес не удалось привязать к координатам
	// Адрес, который невозможно найти, невозможно и запланировать -
	// эта ошибка фатальна для запроса доступности
	ErrGeocodeFailed = errors.New("geocoding client: geocode failed")

	// ErrUnavailable возвращается, когда сервис геокодирования недоступен
	ErrUnavailable = errors.New("geocoding client: service unavailable")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("geocoding client: internal error")
)
