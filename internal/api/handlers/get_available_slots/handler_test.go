package get_available_slots

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	getAvailableSlots "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_available_slots"
)

type fakeUseCase struct {
	resp *getAvailableSlots.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, _ *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func doRequest(h *Handler, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_Success(t *testing.T) {
	date := time.Date(2026, time.July, 15, 0, 0, 0, 0, time.UTC)
	uc := &fakeUseCase{resp: &getAvailableSlots.Response{
		Date:    date,
		Address: "client ave 2",
		Slots: []time.Time{
			time.Date(2026, time.July, 15, 8, 50, 0, 0, time.UTC),
			time.Date(2026, time.July, 15, 13, 0, 0, 0, time.UTC),
		},
	}}
	h := NewHandler(uc, nopLogger{})

	rec := doRequest(h, "/api/v1/availability?date=2026-07-15&durationMinutes=60&address=client+ave+2")

	require.Equal(t, http.StatusOK, rec.Code)

	var body AvailableSlotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "2026-07-15", body.Date)
	assert.Equal(t, "client ave 2", body.Address)
	assert.Equal(t, []string{"2026-07-15T08:50:00Z", "2026-07-15T13:00:00Z"}, body.Slots)
}

func TestHandle_MissingDate(t *testing.T) {
	h := NewHandler(&fakeUseCase{}, nopLogger{})

	rec := doRequest(h, "/api/v1/availability?durationMinutes=60")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_MalformedParams(t *testing.T) {
	h := NewHandler(&fakeUseCase{}, nopLogger{})

	tests := []struct {
		name   string
		target string
	}{
		{"bad date", "/api/v1/availability?date=15-07-2026&durationMinutes=60"},
		{"bad duration", "/api/v1/availability?date=2026-07-15&durationMinutes=hour"},
		{"missing duration", "/api/v1/availability?date=2026-07-15"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(h, tt.target)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestHandle_UseCaseErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"invalid input", fmt.Errorf("%w: bad", getAvailableSlots.ErrInvalidInput), http.StatusBadRequest},
		{"address unresolvable", fmt.Errorf("%w: nope", getAvailableSlots.ErrAddressUnresolvable), http.StatusUnprocessableEntity},
		{"occupancy unavailable", fmt.Errorf("%w: down", getAvailableSlots.ErrOccupancyUnavailable), http.StatusServiceUnavailable},
		{"timeout", fmt.Errorf("%w: slow", getAvailableSlots.ErrTimeout), http.StatusGatewayTimeout},
		{"internal", fmt.Errorf("%w: boom", getAvailableSlots.ErrInternal), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeUseCase{err: tt.err}, nopLogger{})
			rec := doRequest(h, "/api/v1/availability?date=2026-07-15&durationMinutes=60")
			assert.Equal(t, tt.code, rec.Code)
		})
	}
}
