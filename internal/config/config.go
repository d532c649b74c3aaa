package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// Config конфигурация сервиса
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Redis     RedisConfig     `toml:"redis"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Calendar  CalendarConfig  `toml:"calendar"`
	Geocoding GeocodingConfig `toml:"geocoding"`
	Routing   RoutingConfig   `toml:"routing"`
	Business  BusinessConfig  `toml:"business"`
	Engine    EngineConfig    `toml:"engine"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	RequestTimeout  int `toml:"request_timeout"`  // секунды, дедлайн одного расчёта доступности
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN возвращает строку подключения к PostgreSQL
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// RedisConfig настройки Redis для персистентного гео-кеша
// Если Enabled = false, кеш живёт в таблицах PostgreSQL
type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// CalendarConfig настройки клиента внешнего календаря
type CalendarConfig struct {
	URL        string `toml:"url"`
	CalendarID string `toml:"calendar_id"`
	Timeout    int    `toml:"timeout"` // секунды
}

// GeocodingConfig настройки клиента геокодирования
type GeocodingConfig struct {
	URL     string `toml:"url"`
	APIKey  string `toml:"api_key"`
	Timeout int    `toml:"timeout"` // секунды
}

// RoutingConfig настройки клиента маршрутизации
type RoutingConfig struct {
	URL     string `toml:"url"`
	APIKey  string `toml:"api_key"`
	Timeout int    `toml:"timeout"` // секунды
}

// BusinessConfig рабочее окно и базовый адрес техника
type BusinessConfig struct {
	TimeZone        string `toml:"time_zone"`
	OpenHour        int    `toml:"open_hour"`
	CloseHour       int    `toml:"close_hour"`
	AllowedWeekdays []int  `toml:"allowed_weekdays"` // 0 = воскресенье ... 6 = суббота
	BaseAddress     string `toml:"base_address"`
}

// EngineConfig настройки движка расчёта слотов
type EngineConfig struct {
	SlotGranularityMinutes  int  `toml:"slot_granularity_minutes"`
	MinBookableGapMinutes   int  `toml:"min_bookable_gap_minutes"`
	WideGapExposureMinutes  int  `toml:"wide_gap_exposure_minutes"`
	DefaultTravelMinutes    int  `toml:"default_travel_minutes"`
	EnforceReturnToBase     bool `toml:"enforce_return_to_base"`
	TravelCacheTTLHours     int  `toml:"travel_cache_ttl_hours"` // TTL горячего in-memory уровня
	MaxConcurrentTravelCalc int  `toml:"max_concurrent_travel_calc"`
}

// Load загружает конфигурацию из TOML файла и валидирует её
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("decode config file %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// defaultConfig возвращает конфигурацию с разумными значениями по умолчанию
func defaultConfig() *Config {
	weekdays := make([]int, len(domain.DefaultAllowedWeekdays))
	for i, wd := range domain.DefaultAllowedWeekdays {
		weekdays[i] = int(wd)
	}

	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    30,
			IdleTimeout:     60,
			RequestTimeout:  25,
			ShutdownTimeout: 15,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "availability-service",
		},
		Calendar:  CalendarConfig{Timeout: 10},
		Geocoding: GeocodingConfig{Timeout: 10},
		Routing:   RoutingConfig{Timeout: 10},
		Business: BusinessConfig{
			TimeZone:        "UTC",
			OpenHour:        domain.DefaultOpenHour,
			CloseHour:       domain.DefaultCloseHour,
			AllowedWeekdays: weekdays,
		},
		Engine: EngineConfig{
			SlotGranularityMinutes:  domain.SlotGranularityMinutes,
			MinBookableGapMinutes:   domain.MinBookableGapMinutes,
			WideGapExposureMinutes:  domain.WideGapExposureMinutes,
			DefaultTravelMinutes:    domain.DefaultTravelMinutes,
			EnforceReturnToBase:     true,
			TravelCacheTTLHours:     24,
			MaxConcurrentTravelCalc: 8,
		},
	}
}

func (c *Config) validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("invalid http_port: %d", c.Server.HTTPPort)
	}

	if c.Business.OpenHour < 0 || c.Business.OpenHour > 23 {
		return fmt.Errorf("invalid open_hour: %d", c.Business.OpenHour)
	}
	if c.Business.CloseHour < 1 || c.Business.CloseHour > 24 {
		return fmt.Errorf("invalid close_hour: %d", c.Business.CloseHour)
	}
	if c.Business.OpenHour >= c.Business.CloseHour {
		return fmt.Errorf("open_hour %d must be before close_hour %d", c.Business.OpenHour, c.Business.CloseHour)
	}
	if c.Business.BaseAddress == "" {
		return fmt.Errorf("base_address is required")
	}
	if _, err := time.LoadLocation(c.Business.TimeZone); err != nil {
		return fmt.Errorf("invalid time_zone %q: %w", c.Business.TimeZone, err)
	}
	for _, wd := range c.Business.AllowedWeekdays {
		if wd < 0 || wd > 6 {
			return fmt.Errorf("invalid weekday: %d", wd)
		}
	}

	if c.Engine.SlotGranularityMinutes <= 0 {
		return fmt.Errorf("slot_granularity_minutes must be positive")
	}
	if c.Engine.MinBookableGapMinutes < 0 {
		return fmt.Errorf("min_bookable_gap_minutes must be non-negative")
	}
	if c.Engine.DefaultTravelMinutes < 0 {
		return fmt.Errorf("default_travel_minutes must be non-negative")
	}
	if c.Engine.MaxConcurrentTravelCalc <= 0 {
		return fmt.Errorf("max_concurrent_travel_calc must be positive")
	}

	if c.Calendar.URL == "" {
		return fmt.Errorf("calendar url is required")
	}
	if c.Geocoding.URL == "" {
		return fmt.Errorf("geocoding url is required")
	}
	if c.Routing.URL == "" {
		return fmt.Errorf("routing url is required")
	}

	return nil
}

// BusinessRules собирает доменные правила рабочего окна из конфигурации
func (c *Config) BusinessRules() domain.BusinessRules {
	weekdays := make([]time.Weekday, len(c.Business.AllowedWeekdays))
	for i, wd := range c.Business.AllowedWeekdays {
		weekdays[i] = time.Weekday(wd)
	}

	return domain.BusinessRules{
		OpenHour:        c.Business.OpenHour,
		CloseHour:       c.Business.CloseHour,
		AllowedWeekdays: weekdays,
		TimeZone:        c.Business.TimeZone,
		BaseAddress:     c.Business.BaseAddress,
	}
}
