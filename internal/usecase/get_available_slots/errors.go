package get_available_slots

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrAddressUnresolvable возвращается, когда адрес не геокодируется
	// Частичный список слотов в этом случае не возвращается никогда
	ErrAddressUnresolvable = errors.New("address cannot be resolved")

	// ErrOccupancyUnavailable возвращается при недоступности источников занятости
	// (календарь или хранилище заявок) - безопасного фолбэка не существует
	ErrOccupancyUnavailable = errors.New("occupancy sources unavailable")

	// ErrTimeout возвращается при истечении дедлайна запроса
	// Fail-closed: вместо частичного результата возвращается ошибка
	ErrTimeout = errors.New("availability computation timed out")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
