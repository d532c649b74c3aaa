package get_available_slots

import (
	"context"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/travel"
)

// CommitmentLoader интерфейс загрузчика занятости дня
type CommitmentLoader interface {
	Load(ctx context.Context, window domain.DayWindow) ([]domain.Commitment, error)
}

// TravelResolver интерфейс резолвера поездок
type TravelResolver interface {
	BuildGraph(ctx context.Context, addresses []string) (*travel.Graph, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Debug(format string, v ...interface{})
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
