package check_availability

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/service/commitments"
)

type fakeChecker struct {
	busy bool
	err  error
}

func (f *fakeChecker) HasConfirmedOverlap(_ context.Context, _, _ time.Time) (bool, error) {
	return f.busy, f.err
}

type fakeAppointments struct {
	busy   bool
	err    error
	called bool
}

func (f *fakeAppointments) HasOverlapping(_ context.Context, _, _ time.Time) (bool, error) {
	f.called = true
	return f.busy, f.err
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func interval() (time.Time, time.Time) {
	start := time.Date(2026, time.July, 15, 10, 0, 0, 0, time.UTC)
	return start, start.Add(time.Hour)
}

func TestExecute_FreeInterval(t *testing.T) {
	uc := NewUseCase(&fakeChecker{}, &fakeAppointments{}, nopLogger{})
	start, end := interval()

	resp, err := uc.Execute(context.Background(), &Request{Start: start, End: end})
	require.NoError(t, err)

	assert.True(t, resp.Available)
}

func TestExecute_CalendarBlocks(t *testing.T) {
	appts := &fakeAppointments{}
	uc := NewUseCase(&fakeChecker{busy: true}, appts, nopLogger{})
	start, end := interval()

	resp, err := uc.Execute(context.Background(), &Request{Start: start, End: end})
	require.NoError(t, err)

	assert.False(t, resp.Available)
	// Занятый календарь отвечает сразу, без похода в хранилище заявок
	assert.False(t, appts.called)
}

func TestExecute_AppointmentBlocks(t *testing.T) {
	uc := NewUseCase(&fakeChecker{}, &fakeAppointments{busy: true}, nopLogger{})
	start, end := interval()

	resp, err := uc.Execute(context.Background(), &Request{Start: start, End: end})
	require.NoError(t, err)

	assert.False(t, resp.Available)
}

func TestExecute_InvalidInterval(t *testing.T) {
	uc := NewUseCase(&fakeChecker{}, &fakeAppointments{}, nopLogger{})
	start, end := interval()

	tests := []struct {
		name string
		req  *Request
	}{
		{"zero start", &Request{End: end}},
		{"zero end", &Request{Start: start}},
		{"start equals end", &Request{Start: start, End: start}},
		{"start after end", &Request{Start: end, End: start}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_CalendarFailure(t *testing.T) {
	checker := &fakeChecker{err: fmt.Errorf("%w: boom", commitments.ErrCalendarUnavailable)}
	uc := NewUseCase(checker, &fakeAppointments{}, nopLogger{})
	start, end := interval()

	_, err := uc.Execute(context.Background(), &Request{Start: start, End: end})
	assert.ErrorIs(t, err, ErrOccupancyUnavailable)
}
