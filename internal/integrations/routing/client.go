package routing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/codeGROOVE-dev/retry"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/metrics"
)

const integrationName = "routing"

// Logger интерфейс для логирования
type Logger interface {
	Debug(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент маршрутного сервиса (пара координат -> длительность поездки)
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	metrics    *metrics.Metrics // nil, если метрики выключены
	log        Logger
}

// NewClient создает новый экземпляр маршрутного клиента
func NewClient(baseURL, apiKey string, timeout time.Duration, m *metrics.Metrics, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		metrics: m,
		log:     log,
	}
}

// latLng координаты в wire-формате маршрутного сервиса
type latLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type waypoint struct {
	Location struct {
		LatLng latLng `json:"latLng"`
	} `json:"location"`
}

// computeRequest запрос расчёта маршрута
type computeRequest struct {
	Origin      waypoint `json:"origin"`
	Destination waypoint `json:"destination"`
	TravelMode  string   `json:"travelMode"`
}

// computeResponse ответ маршрутного сервиса
// duration приходит строкой вида "1234s"
type computeResponse struct {
	Routes []struct {
		Duration string `json:"duration"`
	} `json:"routes"`
}

// RouteMinutes возвращает длительность поездки между координатами в минутах
// Округление до шага сетки выполняет вызывающая сторона
func (c *Client) RouteMinutes(ctx context.Context, origin, dest domain.Coordinates) (float64, error) {
	start := time.Now()
	minutes, err := c.routeMinutes(ctx, origin, dest)
	c.observe(start, err)
	return minutes, err
}

func (c *Client) routeMinutes(ctx context.Context, origin, dest domain.Coordinates) (float64, error) {
	payload := computeRequest{TravelMode: "DRIVE"}
	payload.Origin.Location.LatLng = latLng{Latitude: origin.Lat, Longitude: origin.Lng}
	payload.Destination.Location.LatLng = latLng{Latitude: dest.Lat, Longitude: dest.Lng}

	rawPayload, err := json.Marshal(payload)
	if err != nil {
		return 0, fmt.Errorf("%w: marshal request: %v", ErrInternal, err)
	}

	reqURL := c.baseURL + "/directions/v2:computeRoutes"

	var body []byte
	err = retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(rawPayload))
			if err != nil {
				return retry.Unrecoverable(fmt.Errorf("%w: create request: %v", ErrInternal, err))
			}
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("X-Goog-Api-Key", c.apiKey)

			resp, err := c.httpClient.Do(req)
			if err != nil {
				return fmt.Errorf("%w: execute request: %v", ErrUnavailable, err)
			}
			defer resp.Body.Close()

			if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError {
				return fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
			}
			if resp.StatusCode != http.StatusOK {
				raw, _ := io.ReadAll(resp.Body)
				return retry.Unrecoverable(fmt.Errorf("%w: unexpected status %d: %s", ErrUnavailable, resp.StatusCode, string(raw)))
			}

			body, err = io.ReadAll(resp.Body)
			if err != nil {
				return fmt.Errorf("%w: read body: %v", ErrUnavailable, err)
			}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(3),
		retry.Delay(200*time.Millisecond),
		retry.MaxDelay(3*time.Second),
		retry.DelayType(retry.FullJitterBackoffDelay),
		retry.OnRetry(func(n uint, err error) {
			c.log.Warn("Routing: retrying, attempt=%d, error=%v", n+1, err)
		}),
	)
	if err != nil {
		return 0, err
	}

	var result computeResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return 0, fmt.Errorf("%w: decode response: %v", ErrUnavailable, err)
	}

	if len(result.Routes) == 0 {
		return 0, ErrNoRoute
	}

	seconds, err := strconv.ParseFloat(strings.TrimSuffix(result.Routes[0].Duration, "s"), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: parse duration %q: %v", ErrUnavailable, result.Routes[0].Duration, err)
	}

	return seconds / 60, nil
}

func (c *Client) observe(start time.Time, err error) {
	if c.metrics == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	c.metrics.IntegrationRequestsTotal.WithLabelValues(integrationName, outcome).Inc()
	c.metrics.IntegrationRequestDuration.WithLabelValues(integrationName).Observe(time.Since(start).Seconds())
}
