package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/commitments"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/travel"
	"github.com/m04kA/SMC-AvailabilityService/pkg/metrics"
)

// Settings параметры движка расчёта слотов
type Settings struct {
	SlotGranularityMinutes int
	MinBookableGapMinutes  int
	WideGapExposureMinutes int
	EnforceReturnToBase    bool
}

// UseCase расчёт доступных слотов на одну календарную дату
type UseCase struct {
	commitments CommitmentLoader
	travel      TravelResolver
	rules       domain.BusinessRules
	settings    Settings
	metrics     *metrics.Metrics // nil, если метрики выключены
	log         Logger
}

// NewUseCase создает новый экземпляр usecase расчёта доступных слотов
func NewUseCase(
	commitmentLoader CommitmentLoader,
	travelResolver TravelResolver,
	rules domain.BusinessRules,
	settings Settings,
	m *metrics.Metrics,
	log Logger,
) *UseCase {
	return &UseCase{
		commitments: commitmentLoader,
		travel:      travelResolver,
		rules:       rules,
		settings:    settings,
		metrics:     m,
		log:         log,
	}
}

// Execute вычисляет список доступных времён начала для запрошенной даты,
// длительности и адреса
//
// Конвейер: сетка кандидатов -> пересечение с занятостью -> фильтр
// фрагментации -> гейт по времени в пути -> прореживание выдачи.
// Детерминированность: одинаковые входы при одинаковой занятости дают
// байт-в-байт одинаковый ответ, скрытого состояния между запросами нет
func (u *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		u.countRequest("invalid_input")
		return nil, err
	}

	address := req.Address
	if address == "" {
		address = u.rules.BaseAddress
	}

	year, month, day := req.Date.Date()

	// Нерабочий день недели: пустой успешный ответ, а не ошибка
	if !u.rules.IsAllowedWeekday(year, month, day) {
		u.countRequest("closed_day")
		return &Response{Date: req.Date, Address: address, Slots: []time.Time{}}, nil
	}

	window, err := u.rules.ResolveDayWindow(year, month, day)
	if err != nil {
		u.countRequest("internal_error")
		return nil, fmt.Errorf("%w: resolve day window: %v", ErrInternal, err)
	}

	loaded, err := u.commitments.Load(ctx, window)
	if err != nil {
		return nil, u.mapError(err, "load commitments")
	}

	graph, err := u.travel.BuildGraph(ctx, graphAddresses(u.rules.BaseAddress, address, loaded))
	if err != nil {
		return nil, u.mapError(err, "build travel graph")
	}

	ix := newCommitmentIndex(loaded)
	minGap := time.Duration(u.settings.MinBookableGapMinutes) * time.Minute
	policy := travelPolicy{enforceReturnToBase: u.settings.EnforceReturnToBase}

	valid := make([]domain.Candidate, 0, window.Minutes()/u.settings.SlotGranularityMinutes)
	for start := range generateGrid(window, u.settings.SlotGranularityMinutes, req.DurationMinutes) {
		cand := domain.NewCandidate(start, req.DurationMinutes)

		if ix.overlapsAny(cand) {
			continue
		}
		if !isFragmentValid(cand, ix, window, minGap) {
			continue
		}
		if !isTravelFeasible(cand, ix, window, address, u.rules.BaseAddress, graph, policy) {
			continue
		}

		valid = append(valid, cand)
	}

	slots := shapeExposure(valid, ix, window,
		u.settings.SlotGranularityMinutes,
		time.Duration(u.settings.WideGapExposureMinutes)*time.Minute)

	u.countRequest("success")
	if u.metrics != nil {
		u.metrics.SlotsReturnedTotal.Add(float64(len(slots)))
	}

	u.log.Info("Availability: date=%s, duration=%d, commitments=%d, candidates=%d, exposed=%d",
		req.Date.Format(domain.DateFormat), req.DurationMinutes, len(loaded), len(valid), len(slots))

	return &Response{Date: req.Date, Address: address, Slots: slots}, nil
}

// graphAddresses собирает все адреса, рёбра между которыми могут понадобиться
// гейту: база, адрес кандидата и обе границы каждого занятого интервала
func graphAddresses(baseAddress, candidateAddress string, loaded []domain.Commitment) []string {
	addresses := make([]string, 0, 2+2*len(loaded))
	addresses = append(addresses, baseAddress, candidateAddress)
	for _, c := range loaded {
		addresses = append(addresses, c.StartAddress, c.EndAddress)
	}
	return addresses
}

// mapError переводит ошибки нижних слоёв в sentinel-ошибки usecase
// Fail-closed: любой сбой источника данных или дедлайн превращается
// в ошибку целиком, частичный список слотов не возвращается никогда
func (u *UseCase) mapError(err error, op string) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		u.countRequest("timeout")
		return fmt.Errorf("%w: %s: %v", ErrTimeout, op, err)
	case errors.Is(err, travel.ErrAddressUnresolvable):
		u.countRequest("address_unresolvable")
		return fmt.Errorf("%w: %s: %v", ErrAddressUnresolvable, op, err)
	case errors.Is(err, commitments.ErrCalendarUnavailable), errors.Is(err, commitments.ErrStoreUnavailable):
		u.countRequest("occupancy_unavailable")
		return fmt.Errorf("%w: %s: %v", ErrOccupancyUnavailable, op, err)
	default:
		u.countRequest("internal_error")
		return fmt.Errorf("%w: %s: %v", ErrInternal, op, err)
	}
}

func (u *UseCase) countRequest(outcome string) {
	if u.metrics != nil {
		u.metrics.SlotRequestsTotal.WithLabelValues(outcome).Inc()
	}
}
