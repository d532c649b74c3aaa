package geocoding

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/codeGROOVE-dev/retry"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/metrics"
)

const integrationName = "geocoding"

// Logger интерфейс для логирования
type Logger interface {
	Debug(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент сервиса геокодирования (address -> lat/lng)
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	metrics    *metrics.Metrics // nil, если метрики выключены
	log        Logger
}

// NewClient создает новый экземпляр клиента геокодирования
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

// geocodeResponse ответ сервиса геокодирования
type geocodeResponse struct {
	Results []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
	Status string `json:"status"`
}

// Geocode преобразует строку адреса в координаты
// Пустой список результатов означает ненайденный адрес - ErrGeocodeFailed
func (c *Client) Geocode(ctx context.Context, address string) (domain.Coordinates, error) {
	start := time.Now()
	coords, err := c.geocode(ctx, address)
	c.observe(start, err)
	return coords, err
}

func (c *Client) geocode(ctx context.Context, address string) (domain.Coordinates, error) {
	reqURL := fmt.Sprintf("%s/geocode/json?address=%s&key=%s",
		c.baseURL, url.QueryEscape(address), url.QueryEscape(c.apiKey))

	var body []byte
	err := retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
			if err != nil {
				return retry.Unrecoverable(fmt.Errorf("%w: create request: %v", ErrInternal, err))
			}

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
			c.log.Warn("Geocoding: retrying, attempt=%d, error=%v", n+1, err)
		}),
	)
	if err != nil {
		return domain.Coordinates{}, err
	}

	var result geocodeResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return domain.Coordinates{}, fmt.Errorf("%w: decode response: %v", ErrGeocodeFailed, err)
	}

	if result.Status != "OK" || len(result.Results) == 0 {
		c.log.Error("Geocoding: no results for address=%q, status=%s", address, result.Status)
		return domain.Coordinates{}, fmt.Errorf("%w: address=%q, status=%s", ErrGeocodeFailed, address, result.Status)
	}

	loc := result.Results[0].Geometry.Location
	return domain.Coordinates{Lat: loc.Lat, Lng: loc.Lng}, nil
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
