package travel

import "errors"

var (
	// ErrAddressUnresolvable возвращается, когда адрес не удалось геокодировать
	// Фатально для запроса: адрес без координат невозможно запланировать
	ErrAddressUnresolvable = errors.New("travel.service: address cannot be resolved")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("travel.service: internal error")
)
