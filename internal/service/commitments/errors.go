package commitments

import "errors"

var (
	// ErrCalendarUnavailable возвращается, когда внешний календарь недоступен
	// Календарь - единственный доверенный источник подтверждённой занятости,
	// молча пропускать его нельзя: ошибка всегда фатальна для запроса
	ErrCalendarUnavailable = errors.New("commitments.service: calendar unavailable")

	// ErrStoreUnavailable возвращается при сбое хранилища заявок
	ErrStoreUnavailable = errors.New("commitments.service: appointment store unavailable")
)
