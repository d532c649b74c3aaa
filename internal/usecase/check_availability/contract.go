package check_availability

import (
	"context"
	"time"
)

// CommitmentChecker интерфейс проверки пересечения с подтверждённой занятостью
type CommitmentChecker interface {
	HasConfirmedOverlap(ctx context.Context, start, end time.Time) (bool, error)
}

// AppointmentRepository интерфейс проверки пересечения с активными заявками
type AppointmentRepository interface {
	HasOverlapping(ctx context.Context, start, end time.Time) (bool, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Debug(format string, v ...interface{})
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
