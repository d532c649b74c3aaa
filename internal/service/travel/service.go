package travel

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/maypok86/otter/v2"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/metrics"
)

// Config настройки резолвера поездок
type Config struct {
	GranularityMinutes   int           // Шаг округления длительностей (вверх)
	DefaultTravelMinutes int           // Замена при сбое маршрутного сервиса
	HotCacheTTL          time.Duration // TTL горячего in-memory уровня
	MaxConcurrent        int           // Ограничение параллельных расчётов рёбер графа
}

// Service резолвер времени в пути между адресами
//
// Двухуровневый кеш: горячий in-memory (otter, межзапросный, с TTL)
// перед персистентным хранилищем. Промах обоих уровней стоит два внешних
// вызова (геокод + маршрут), результат пишется обратно в оба уровня
type Service struct {
	geocoder   Geocoder
	router     Router
	persistent PersistentCache

	coordsCache *otter.Cache[string, domain.Coordinates]
	routeCache  *otter.Cache[string, int]

	cfg     Config
	metrics *metrics.Metrics // nil, если метрики выключены
	log     Logger
}

// NewService создает новый экземпляр резолвера поездок
func NewService(geocoder Geocoder, router Router, persistent PersistentCache, cfg Config, m *metrics.Metrics, log Logger) *Service {
	coordsCache := otter.Must(&otter.Options[string, domain.Coordinates]{
		MaximumSize:      10_000,
		InitialCapacity:  256,
		ExpiryCalculator: otter.ExpiryWriting[string, domain.Coordinates](cfg.HotCacheTTL),
	})
	routeCache := otter.Must(&otter.Options[string, int]{
		MaximumSize:      100_000,
		InitialCapacity:  1024,
		ExpiryCalculator: otter.ExpiryWriting[string, int](cfg.HotCacheTTL),
	})

	return &Service{
		geocoder:    geocoder,
		router:      router,
		persistent:  persistent,
		coordsCache: coordsCache,
		routeCache:  routeCache,
		cfg:         cfg,
		metrics:     m,
		log:         log,
	}
}

// ResolveMinutes возвращает время в пути от originAddress до destAddress,
// округлённое ВВЕРХ до шага сетки - округление к ближайшему занижало бы
// необходимое время и позволяло бы невыполнимые стыковки
//
// Сбой геокодирования фатален (ErrAddressUnresolvable). Сбой маршрутного
// сервиса нефатален: подставляется консервативная длительность по умолчанию
func (s *Service) ResolveMinutes(ctx context.Context, originAddress, destAddress string) (int, error) {
	if originAddress == destAddress {
		return 0, nil
	}

	routeKey := originAddress + "\x00" + destAddress

	if minutes, found := s.routeCache.GetIfPresent(routeKey); found {
		s.cacheLookup("memory", "hit")
		return minutes, nil
	}
	s.cacheLookup("memory", "miss")

	origin, err := s.resolveCoordinates(ctx, originAddress)
	if err != nil {
		return 0, err
	}
	dest, err := s.resolveCoordinates(ctx, destAddress)
	if err != nil {
		return 0, err
	}

	minutes, found, err := s.persistent.GetTravelMinutes(ctx, origin, dest)
	if err != nil {
		// Ошибка чтения кеша не блокирует расчёт - считаем промахом
		s.log.Warn("Travel: persistent cache read failed for %q -> %q: %v", originAddress, destAddress, err)
	}
	if found {
		s.cacheLookup("persistent", "hit")
		s.routeCache.Set(routeKey, minutes)
		return minutes, nil
	}
	s.cacheLookup("persistent", "miss")

	rawMinutes, err := s.router.RouteMinutes(ctx, origin, dest)
	if err != nil {
		// Деградация: маршрутный сервис недоступен или маршрута нет.
		// Результат НЕ кешируется, чтобы транзиентный сбой не пережил запрос
		fallback := s.roundUp(float64(s.cfg.DefaultTravelMinutes))
		s.log.Warn("Travel: routing failed for %q -> %q, using default %d min: %v",
			originAddress, destAddress, fallback, err)
		if s.metrics != nil {
			s.metrics.RoutingFallbacks.Inc()
		}
		return fallback, nil
	}

	rounded := s.roundUp(rawMinutes)

	if err := s.persistent.SaveTravelMinutes(ctx, origin, dest, rounded); err != nil {
		s.log.Warn("Travel: persistent cache write failed for %q -> %q: %v", originAddress, destAddress, err)
	}
	s.routeCache.Set(routeKey, rounded)

	return rounded, nil
}

// resolveCoordinates геокодирует адрес через два уровня кеша
func (s *Service) resolveCoordinates(ctx context.Context, address string) (domain.Coordinates, error) {
	if coords, found := s.coordsCache.GetIfPresent(address); found {
		s.cacheLookup("memory", "hit")
		return coords, nil
	}
	s.cacheLookup("memory", "miss")

	coords, found, err := s.persistent.GetCoordinates(ctx, address)
	if err != nil {
		s.log.Warn("Travel: persistent geocode cache read failed for %q: %v", address, err)
	}
	if found {
		s.cacheLookup("persistent", "hit")
		s.coordsCache.Set(address, coords)
		return coords, nil
	}
	s.cacheLookup("persistent", "miss")

	coords, err = s.geocoder.Geocode(ctx, address)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("%w: %q: %v", ErrAddressUnresolvable, address, err)
	}

	if err := s.persistent.SaveCoordinates(ctx, address, coords); err != nil {
		s.log.Warn("Travel: persistent geocode cache write failed for %q: %v", address, err)
	}
	s.coordsCache.Set(address, coords)

	return coords, nil
}

// roundUp округляет минуты вверх до шага сетки
func (s *Service) roundUp(minutes float64) int {
	granularity := s.cfg.GranularityMinutes
	if granularity <= 0 {
		granularity = domain.SlotGranularityMinutes
	}
	if minutes <= 0 {
		return 0
	}
	return int(math.Ceil(minutes/float64(granularity))) * granularity
}

func (s *Service) cacheLookup(level, result string) {
	if s.metrics != nil {
		s.metrics.TravelCacheLookupsTotal.WithLabelValues(level, result).Inc()
	}
}
