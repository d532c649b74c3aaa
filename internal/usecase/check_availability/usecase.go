package check_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/commitments"
)

// UseCase точечная проверка занятости интервала [start, end)
//
// В отличие от расчёта слотов здесь нет сетки, фильтра фрагментации
// и гейта по дороге: вызывающая сторона уже выбрала конкретный интервал
// и спрашивает только, свободен ли он прямо сейчас
type UseCase struct {
	commitments  CommitmentChecker
	appointments AppointmentRepository
	log          Logger
}

// NewUseCase создает новый экземпляр usecase проверки интервала
func NewUseCase(commitmentChecker CommitmentChecker, appointments AppointmentRepository, log Logger) *UseCase {
	return &UseCase{
		commitments:  commitmentChecker,
		appointments: appointments,
		log:          log,
	}
}

// Execute проверяет пересечение интервала с календарными блоками
// и активными заявками. Пересечение строгое: интервалы, касающиеся
// только границами, считаются свободными
func (u *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	busy, err := u.commitments.HasConfirmedOverlap(ctx, req.Start, req.End)
	if err != nil {
		return nil, u.mapError(err, "check calendar")
	}
	if busy {
		u.log.Debug("CheckAvailability: [%s, %s) blocked by calendar",
			req.Start.Format(time.RFC3339), req.End.Format(time.RFC3339))
		return &Response{Available: false}, nil
	}

	busy, err = u.appointments.HasOverlapping(ctx, req.Start, req.End)
	if err != nil {
		return nil, u.mapError(err, "check appointments")
	}
	if busy {
		u.log.Debug("CheckAvailability: [%s, %s) blocked by appointment",
			req.Start.Format(time.RFC3339), req.End.Format(time.RFC3339))
		return &Response{Available: false}, nil
	}

	return &Response{Available: true}, nil
}

func (u *UseCase) mapError(err error, op string) error {
	switch {
	case errors.Is(err, commitments.ErrCalendarUnavailable),
		errors.Is(err, appointment.ErrExecQuery),
		errors.Is(err, appointment.ErrScanRow),
		errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %s: %v", ErrOccupancyUnavailable, op, err)
	default:
		return fmt.Errorf("%w: %s: %v", ErrInternal, op, err)
	}
}
