package calendar

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/codeGROOVE-dev/retry"

	"github.com/m04kA/SMC-AvailabilityService/pkg/metrics"
)

const integrationName = "calendar"

// Logger интерфейс для логирования
type Logger interface {
	Debug(format string, v ...interface{})
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент внешнего календарного сервиса (read-only)
type Client struct {
	baseURL    string
	calendarID string
	httpClient *http.Client
	metrics    *metrics.Metrics // nil, если метрики выключены
	log        Logger
}

// NewClient создает новый экземпляр календарного клиента
func NewClient(baseURL, calendarID string, timeout time.Duration, m *metrics.Metrics, log Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		calendarID: calendarID,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		metrics: m,
		log:     log,
	}
}

// ListEvents возвращает события календаря, пересекающие окно [timeMin, timeMax)
// Отменённые события отфильтровываются на стороне клиента
//
// Транзиентные сбои (5xx, 429, сетевые ошибки) ретраятся с экспоненциальной
// задержкой; после исчерпания попыток возвращается ErrUnavailable -
// вызывающая сторона обязана прервать расчёт доступности
func (c *Client) ListEvents(ctx context.Context, timeMin, timeMax time.Time) ([]Event, error) {
	start := time.Now()
	events, err := c.listEvents(ctx, timeMin, timeMax)
	c.observe(start, err)
	return events, err
}

func (c *Client) listEvents(ctx context.Context, timeMin, timeMax time.Time) ([]Event, error) {
	reqURL := fmt.Sprintf("%s/calendars/%s/events?timeMin=%s&timeMax=%s&singleEvents=true&orderBy=startTime",
		c.baseURL,
		url.PathEscape(c.calendarID),
		url.QueryEscape(timeMin.UTC().Format(time.RFC3339)),
		url.QueryEscape(timeMax.UTC().Format(time.RFC3339)),
	)

	var body []byte
	err := retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
			if err != nil {
				return retry.Unrecoverable(fmt.Errorf("%w: create request: %v", ErrInternal, err))
			}
			req.Header.Set("Accept", "application/json")

			resp, err := c.httpClient.Do(req)
			if err != nil {
				return fmt.Errorf("%w: execute request: %v", ErrUnavailable, err)
			}
			defer resp.Body.Close()

			switch {
			case resp.StatusCode == http.StatusOK:
				body, err = io.ReadAll(resp.Body)
				if err != nil {
					return fmt.Errorf("%w: read body: %v", ErrUnavailable, err)
				}
				return nil
			case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError:
				return fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
			default:
				raw, _ := io.ReadAll(resp.Body)
				return retry.Unrecoverable(fmt.Errorf("%w: unexpected status %d: %s", ErrInvalidResponse, resp.StatusCode, string(raw)))
			}
		},
		retry.Context(ctx),
		retry.Attempts(3),
		retry.Delay(200*time.Millisecond),
		retry.MaxDelay(3*time.Second),
		retry.DelayType(retry.FullJitterBackoffDelay),
		retry.OnRetry(func(n uint, err error) {
			c.log.Warn("Calendar: retrying events list, attempt=%d, error=%v", n+1, err)
		}),
	)
	if err != nil {
		return nil, err
	}

	var wire wireResponse
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, fmt.Errorf("%w: decode events: %v", ErrInvalidResponse, err)
	}

	events := make([]Event, 0, len(wire.Items))
	for _, item := range wire.Items {
		event, err := item.toEvent()
		if err != nil {
			return nil, err
		}
		if event.Cancelled {
			continue
		}
		events = append(events, event)
	}

	c.log.Debug("Calendar: fetched %d events for [%s, %s)", len(events),
		timeMin.UTC().Format(time.RFC3339), timeMax.UTC().Format(time.RFC3339))

	return events, nil
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

// toEvent конвертирует wire-событие в модель клиента
func (e wireEvent) toEvent() (Event, error) {
	event := Event{
		Cancelled: e.Status == "cancelled",
		Location:  e.Location,
	}

	// Событие "весь день" приходит с date вместо dateTime
	if e.Start.Date != "" && e.End.Date != "" {
		event.AllDay = true
		return event, nil
	}

	start, err := time.Parse(time.RFC3339, e.Start.DateTime)
	if err != nil {
		return Event{}, fmt.Errorf("%w: parse event start %q: %v", ErrInvalidResponse, e.Start.DateTime, err)
	}
	end, err := time.Parse(time.RFC3339, e.End.DateTime)
	if err != nil {
		return Event{}, fmt.Errorf("%w: parse event end %q: %v", ErrInvalidResponse, e.End.DateTime, err)
	}

	event.Start = start.UTC()
	event.End = end.UTC()
	return event, nil
}
