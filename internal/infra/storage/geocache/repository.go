package geocache

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/psqlbuilder"
)

// Переиспользуем интерфейс исполнителя из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// Repository персистентный межзапросный кеш геоданных в PostgreSQL
// Две таблицы: geocode_cache (адрес -> координаты) и travel_cache
// (пара координат -> минуты). Записи идемпотентны, поэтому при гонке
// дубликатов last-write-wins на upsert безопасен
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр гео-кеш репозитория
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetCoordinates ищет координаты адреса в кеше
// Второе возвращаемое значение false означает промах кеша
func (r *Repository) GetCoordinates(ctx context.Context, address string) (domain.Coordinates, bool, error) {
	query, args, err := psqlbuilder.Select("lat", "lng").
		From("geocode_cache").
		Where(squirrel.Eq{"address_text": address}).
		ToSql()

	if err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("%w: GetCoordinates - build select query: %v", ErrBuildQuery, err)
	}

	var coords domain.Coordinates
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&coords.Lat, &coords.Lng)
	if err == sql.ErrNoRows {
		return domain.Coordinates{}, false, nil
	}
	if err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("%w: GetCoordinates - scan row: %v", ErrScanRow, err)
	}

	return coords, true, nil
}

// SaveCoordinates сохраняет координаты адреса (upsert)
func (r *Repository) SaveCoordinates(ctx context.Context, address string, coords domain.Coordinates) error {
	query, args, err := psqlbuilder.Insert("geocode_cache").
		Columns("address_text", "lat", "lng").
		Values(address, coords.Lat, coords.Lng).
		Suffix("ON CONFLICT (address_text) DO UPDATE SET lat = EXCLUDED.lat, lng = EXCLUDED.lng, updated_at = NOW()").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SaveCoordinates - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: SaveCoordinates - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetTravelMinutes ищет длительность поездки между парами координат в кеше
func (r *Repository) GetTravelMinutes(ctx context.Context, origin, dest domain.Coordinates) (int, bool, error) {
	query, args, err := psqlbuilder.Select("minutes_rounded").
		From("travel_cache").
		Where(squirrel.Eq{
			"origin_lat": origin.Lat,
			"origin_lng": origin.Lng,
			"dest_lat":   dest.Lat,
			"dest_lng":   dest.Lng,
		}).
		ToSql()

	if err != nil {
		return 0, false, fmt.Errorf("%w: GetTravelMinutes - build select query: %v", ErrBuildQuery, err)
	}

	var minutes int
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&minutes)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("%w: GetTravelMinutes - scan row: %v", ErrScanRow, err)
	}

	return minutes, true, nil
}

// SaveTravelMinutes сохраняет округлённую длительность поездки (upsert)
func (r *Repository) SaveTravelMinutes(ctx context.Context, origin, dest domain.Coordinates, minutes int) error {
	query, args, err := psqlbuilder.Insert("travel_cache").
		Columns("origin_lat", "origin_lng", "dest_lat", "dest_lng", "minutes_rounded").
		Values(origin.Lat, origin.Lng, dest.Lat, dest.Lng, minutes).
		Suffix("ON CONFLICT (origin_lat, origin_lng, dest_lat, dest_lng) DO UPDATE SET minutes_rounded = EXCLUDED.minutes_rounded, updated_at = NOW()").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SaveTravelMinutes - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: SaveTravelMinutes - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}
