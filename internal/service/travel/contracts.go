package travel

import (
	"context"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// Geocoder интерфейс клиента геокодирования
type Geocoder interface {
	Geocode(ctx context.Context, address string) (domain.Coordinates, error)
}

// Router интерфейс маршрутного клиента
type Router interface {
	RouteMinutes(ctx context.Context, origin, dest domain.Coordinates) (float64, error)
}

// PersistentCache межзапросный персистентный кеш геоданных
// Реализации: PostgreSQL репозиторий и Redis, выбираются конфигурацией
// Записи идемпотентны для одной и той же пары адресов - last-write-wins допустим
type PersistentCache interface {
	GetCoordinates(ctx context.Context, address string) (domain.Coordinates, bool, error)
	SaveCoordinates(ctx context.Context, address string, coords domain.Coordinates) error
	GetTravelMinutes(ctx context.Context, origin, dest domain.Coordinates) (int, bool, error)
	SaveTravelMinutes(ctx context.Context, origin, dest domain.Coordinates, minutes int) error
}

// Logger интерфейс для логирования
type Logger interface {
	Debug(format string, v ...interface{})
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
