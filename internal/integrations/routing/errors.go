package routing

import "errors"

var (
	// ErrNoRoute возвращается, когда маршрут между координатами не найден
	// Вызывающая сторона подставляет консервативную длительность по умолчанию
	ErrNoRoute = errors.New("routing client: no route found")

	// ErrUnavailable возвращается, когда маршрутный сервис недоступен
	// Нефатально: резолвер поездок деградирует до длительности по умолчанию
	ErrUnavailable = errors.New("routing client: service unavailable")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("routing client: internal error")
)
