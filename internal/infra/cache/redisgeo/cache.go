package redisgeo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// Cache персистентный гео-кеш в Redis
// Альтернатива PostgreSQL-бэкенду: тот же контракт, выбирается конфигурацией
type Cache struct {
	client *redis.Client
}

// NewCache создает новый экземпляр Redis гео-кеша
func NewCache(addr, password string, db int) *Cache {
	return &Cache{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
	}
}

// Ping проверяет соединение с Redis
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close закрывает соединение с Redis
func (c *Cache) Close() error {
	return c.client.Close()
}

type storedCoordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func addressKey(address string) string {
	return "geo:addr:" + address
}

func routeKey(origin, dest domain.Coordinates) string {
	return fmt.Sprintf("geo:route:%f,%f:%f,%f", origin.Lat, origin.Lng, dest.Lat, dest.Lng)
}

// GetCoordinates ищет координаты адреса в кеше
func (c *Cache) GetCoordinates(ctx context.Context, address string) (domain.Coordinates, bool, error) {
	val, err := c.client.Get(ctx, addressKey(address)).Result()
	if err == redis.Nil {
		return domain.Coordinates{}, false, nil
	}
	if err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("redisgeo: get coordinates: %w", err)
	}

	var stored storedCoordinates
	if err := json.Unmarshal([]byte(val), &stored); err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("redisgeo: decode coordinates: %w", err)
	}

	return domain.Coordinates{Lat: stored.Lat, Lng: stored.Lng}, true, nil
}

// SaveCoordinates сохраняет координаты адреса без TTL
// Геокод адреса стабилен, инвалидация не требуется
func (c *Cache) SaveCoordinates(ctx context.Context, address string, coords domain.Coordinates) error {
	raw, err := json.Marshal(storedCoordinates{Lat: coords.Lat, Lng: coords.Lng})
	if err != nil {
		return fmt.Errorf("redisgeo: encode coordinates: %w", err)
	}
	if err := c.client.Set(ctx, addressKey(address), raw, 0).Err(); err != nil {
		return fmt.Errorf("redisgeo: save coordinates: %w", err)
	}
	return nil
}

// GetTravelMinutes ищет длительность поездки между парой координат в кеше
func (c *Cache) GetTravelMinutes(ctx context.Context, origin, dest domain.Coordinates) (int, bool, error) {
	minutes, err := c.client.Get(ctx, routeKey(origin, dest)).Int()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("redisgeo: get travel minutes: %w", err)
	}
	return minutes, true, nil
}

// SaveTravelMinutes сохраняет округлённую длительность поездки
func (c *Cache) SaveTravelMinutes(ctx context.Context, origin, dest domain.Coordinates, minutes int) error {
	if err := c.client.Set(ctx, routeKey(origin, dest), minutes, 0).Err(); err != nil {
		return fmt.Errorf("redisgeo: save travel minutes: %w", err)
	}
	return nil
}
