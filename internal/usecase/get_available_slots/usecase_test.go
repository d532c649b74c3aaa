package get_available_slots

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/commitments"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/travel"
)

type fakeLoader struct {
	items []domain.Commitment
	err   error
}

func (f *fakeLoader) Load(_ context.Context, _ domain.DayWindow) ([]domain.Commitment, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.items, nil
}

type fakeTravel struct {
	graph     *travel.Graph
	err       error
	addresses []string
}

func (f *fakeTravel) BuildGraph(_ context.Context, addresses []string) (*travel.Graph, error) {
	f.addresses = addresses
	if f.err != nil {
		return nil, f.err
	}
	return f.graph, nil
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func utcRules() domain.BusinessRules {
	return domain.BusinessRules{
		OpenHour:        8,
		CloseHour:       18,
		AllowedWeekdays: domain.DefaultAllowedWeekdays,
		TimeZone:        "UTC",
		BaseAddress:     baseAddr,
	}
}

func defaultSettings() Settings {
	return Settings{
		SlotGranularityMinutes: 10,
		MinBookableGapMinutes:  120,
		WideGapExposureMinutes: 240,
		EnforceReturnToBase:    true,
	}
}

func newTestUseCase(loader *fakeLoader, tr *fakeTravel) *UseCase {
	return NewUseCase(loader, tr, utcRules(), defaultSettings(), nil, nopLogger{})
}

// 15 июля 2026 - среда
func testDate() time.Time {
	return time.Date(2026, time.July, 15, 0, 0, 0, 0, time.UTC)
}

func TestExecute_EmptyDayAnchors(t *testing.T) {
	loader := &fakeLoader{}
	tr := &fakeTravel{graph: travel.NewGraph(nil)}
	uc := newTestUseCase(loader, tr)

	// Адрес не задан: расчёт на базовом адресе, дорога нулевая
	resp, err := uc.Execute(context.Background(), &Request{Date: testDate(), DurationMinutes: 60})
	require.NoError(t, err)

	assert.Equal(t, baseAddr, resp.Address)
	assert.Equal(t, []time.Time{at(8, 0), at(10, 30), at(13, 0), at(15, 30)}, resp.Slots)
}

func TestExecute_TravelShiftsFirstSlot(t *testing.T) {
	loader := &fakeLoader{}
	tr := &fakeTravel{graph: uniformGraph(50, baseAddr, clientAddr)}
	uc := newTestUseCase(loader, tr)

	resp, err := uc.Execute(context.Background(), &Request{
		Date:            testDate(),
		DurationMinutes: 45,
		Address:         clientAddr,
	})
	require.NoError(t, err)

	// Дорога с базы 50 минут: якорь открытия сдвигается на 08:50
	require.NotEmpty(t, resp.Slots)
	assert.Equal(t, at(8, 50), resp.Slots[0])
}

func TestExecute_CommitmentSplitsDay(t *testing.T) {
	loader := &fakeLoader{items: []domain.Commitment{
		{Start: at(12, 0), End: at(14, 0), StartAddress: baseAddr, EndAddress: baseAddr},
	}}
	tr := &fakeTravel{graph: travel.NewGraph(nil)}
	uc := newTestUseCase(loader, tr)

	resp, err := uc.Execute(context.Background(), &Request{Date: testDate(), DurationMinutes: 120})
	require.NoError(t, err)

	// Валидны только кандидаты, примыкающие к занятости или оставляющие
	// бронируемый простой: 08:00, 10:00, 14:00, 16:00
	assert.Equal(t, []time.Time{at(8, 0), at(10, 0), at(14, 0), at(16, 0)}, resp.Slots)
}

func TestExecute_SlotsSortedAndWithinWindow(t *testing.T) {
	loader := &fakeLoader{items: []domain.Commitment{
		{Start: at(10, 0), End: at(11, 0), StartAddress: baseAddr, EndAddress: baseAddr},
		{Start: at(15, 0), End: at(15, 30), StartAddress: baseAddr, EndAddress: baseAddr},
	}}
	tr := &fakeTravel{graph: travel.NewGraph(nil)}
	uc := newTestUseCase(loader, tr)

	resp, err := uc.Execute(context.Background(), &Request{Date: testDate(), DurationMinutes: 30})
	require.NoError(t, err)

	for i, slot := range resp.Slots {
		assert.True(t, !slot.Before(at(8, 0)), "slot %s before open", slot)
		assert.True(t, !slot.Add(30*time.Minute).After(at(18, 0)), "slot %s ends after close", slot)
		if i > 0 {
			assert.True(t, resp.Slots[i-1].Before(slot), "slots not strictly ascending")
		}
	}
}

func TestExecute_Deterministic(t *testing.T) {
	loader := &fakeLoader{items: []domain.Commitment{
		{Start: at(11, 0), End: at(12, 30), StartAddress: otherAddr, EndAddress: otherAddr},
	}}
	tr := &fakeTravel{graph: uniformGraph(20, baseAddr, clientAddr, otherAddr)}
	uc := newTestUseCase(loader, tr)

	req := &Request{Date: testDate(), DurationMinutes: 60, Address: clientAddr}

	first, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	second, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestExecute_ClosedWeekday(t *testing.T) {
	loader := &fakeLoader{}
	tr := &fakeTravel{graph: travel.NewGraph(nil)}
	uc := newTestUseCase(loader, tr)

	// 18 июля 2026 - суббота: пустой успешный ответ
	resp, err := uc.Execute(context.Background(), &Request{
		Date:            time.Date(2026, time.July, 18, 0, 0, 0, 0, time.UTC),
		DurationMinutes: 60,
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
	assert.NotNil(t, resp.Slots)
}

func TestExecute_GraphAddressesIncludeCommitments(t *testing.T) {
	loader := &fakeLoader{items: []domain.Commitment{
		{Start: at(10, 0), End: at(11, 0), StartAddress: otherAddr, EndAddress: otherAddr},
	}}
	tr := &fakeTravel{graph: uniformGraph(10, baseAddr, clientAddr, otherAddr)}
	uc := newTestUseCase(loader, tr)

	_, err := uc.Execute(context.Background(), &Request{
		Date:            testDate(),
		DurationMinutes: 60,
		Address:         clientAddr,
	})
	require.NoError(t, err)

	assert.Contains(t, tr.addresses, baseAddr)
	assert.Contains(t, tr.addresses, clientAddr)
	assert.Contains(t, tr.addresses, otherAddr)
}

func TestExecute_ValidationErrors(t *testing.T) {
	uc := newTestUseCase(&fakeLoader{}, &fakeTravel{graph: travel.NewGraph(nil)})

	tests := []struct {
		name string
		req  *Request
	}{
		{"zero date", &Request{DurationMinutes: 60}},
		{"zero duration", &Request{Date: testDate()}},
		{"negative duration", &Request{Date: testDate(), DurationMinutes: -30}},
		{"too long", &Request{Date: testDate(), DurationMinutes: 601}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_ErrorMapping(t *testing.T) {
	tests := []struct {
		name      string
		loaderErr error
		travelErr error
		want      error
	}{
		{
			name:      "calendar down",
			loaderErr: fmt.Errorf("%w: boom", commitments.ErrCalendarUnavailable),
			want:      ErrOccupancyUnavailable,
		},
		{
			name:      "store down",
			loaderErr: fmt.Errorf("%w: boom", commitments.ErrStoreUnavailable),
			want:      ErrOccupancyUnavailable,
		},
		{
			name:      "geocode failed",
			travelErr: fmt.Errorf("%w: %q", travel.ErrAddressUnresolvable, "nowhere"),
			want:      ErrAddressUnresolvable,
		},
		{
			name:      "deadline exceeded",
			travelErr: context.DeadlineExceeded,
			want:      ErrTimeout,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader := &fakeLoader{err: tt.loaderErr}
			tr := &fakeTravel{graph: travel.NewGraph(nil), err: tt.travelErr}
			uc := newTestUseCase(loader, tr)

			_, err := uc.Execute(context.Background(), &Request{Date: testDate(), DurationMinutes: 60})
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
