package calendar

import "errors"

var (
	// ErrUnavailable возвращается, когда календарный сервис недоступен
	// Календарь - единственный источник подтверждённой занятости,
	// поэтому эта ошибка всегда фатальна для запроса
	ErrUnavailable = errors.New("calendar client: service unavailable")

	// ErrInvalidResponse возвращается при некорректном ответе сервиса
	ErrInvalidResponse = errors.New("calendar client: invalid response")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("calendar client: internal error")
)
