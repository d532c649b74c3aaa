package appointment

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/psqlbuilder"
)

// Repository репозиторий для чтения заявок
// Движок доступности консультируется с хранилищем только на чтение:
// жизненный цикл заявки (создание, подтверждение, отмена) живёт в другом сервисе
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория заявок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetOverlapping получает заявки, пересекающие период фильтра
// Выборка overlap-safe: заявка попадает в результат, если начинается до конца
// периода И заканчивается после его начала - граничащие интервалы не попадают
func (r *Repository) GetOverlapping(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	statusStrings := make([]string, len(filter.Statuses))
	for i, s := range filter.Statuses {
		statusStrings[i] = string(s)
	}

	query, args, err := psqlbuilder.Select(
		"id",
		"customer_name",
		"service_address",
		"scheduled_start",
		"scheduled_end",
		"duration_minutes",
		"status",
		"notes",
		"created_at",
		"updated_at",
	).
		From("appointments").
		Where(squirrel.Lt{"scheduled_start": filter.To}).
		Where(squirrel.Gt{"scheduled_end": filter.From}).
		Where(squirrel.Eq{"status": statusStrings}).
		OrderBy("scheduled_start ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetOverlapping - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanAppointments(rows)
}

// HasOverlapping проверяет, существует ли хотя бы одна активная заявка,
// строго пересекающая интервал [start, end)
// Неактивные статусы (cancelled, denied) освобождают интервал
func (r *Repository) HasOverlapping(ctx context.Context, start, end time.Time) (bool, error) {
	inactiveStrings := make([]string, len(domain.InactiveStatuses))
	for i, s := range domain.InactiveStatuses {
		inactiveStrings[i] = string(s)
	}

	query, args, err := psqlbuilder.Select("1").
		From("appointments").
		Where(squirrel.Lt{"scheduled_start": end}).
		Where(squirrel.Gt{"scheduled_end": start}).
		Where(squirrel.NotEq{"status": inactiveStrings}).
		Limit(1).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: HasOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: HasOverlapping - scan row: %v", ErrScanRow, err)
	}

	return true, nil
}

// scanAppointments сканирует результаты запроса в слайс заявок
func (r *Repository) scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)

	for rows.Next() {
		var appt domain.Appointment
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&appt.ID,
			&appt.CustomerName,
			&appt.ServiceAddress,
			&appt.ScheduledStart,
			&appt.ScheduledEnd,
			&appt.DurationMinutes,
			&appt.Status,
			&appt.Notes,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - scan row: %v", ErrScanRow, err)
		}

		appt.CreatedAt = createdAt.Time
		appt.UpdatedAt = updatedAt.Time
		appt.ScheduledStart = appt.ScheduledStart.UTC()
		appt.ScheduledEnd = appt.ScheduledEnd.UTC()

		appointments = append(appointments, &appt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAppointments - rows error: %v", ErrScanRow, err)
	}

	return appointments, nil
}
