package commitments

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// Service загрузчик занятости дня
// Сливает подтверждённые блоки внешнего календаря и предварительные заявки
// хранилища в единый нормализованный список занятых интервалов
type Service struct {
	calendar     CalendarClient
	appointments AppointmentRepository
	baseAddress  string
	log          Logger
}

// NewService создает новый экземпляр загрузчика занятости
func NewService(calendar CalendarClient, appointments AppointmentRepository, baseAddress string, log Logger) *Service {
	return &Service{
		calendar:     calendar,
		appointments: appointments,
		baseAddress:  baseAddress,
		log:          log,
	}
}

// Load возвращает отсортированный неперекрывающийся список занятых интервалов
// рабочего окна. Результат читается заново на каждый запрос и никогда
// не кешируется между запросами
func (s *Service) Load(ctx context.Context, window domain.DayWindow) ([]domain.Commitment, error) {
	events, err := s.calendar.ListEvents(ctx, window.Open, window.Close)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCalendarUnavailable, err)
	}

	raw := make([]domain.Commitment, 0, len(events))
	for _, event := range events {
		address := event.Location
		if address == "" {
			// Календарь редактирует детали событий: блок без адреса
			// считается происходящим на базовом адресе
			address = s.baseAddress
		}

		if event.AllDay {
			// Событие "весь день" разворачивается до границ рабочего окна этой даты
			raw = append(raw, domain.Commitment{
				Start:        window.Open,
				End:          window.Close,
				StartAddress: address,
				EndAddress:   address,
				Kind:         domain.KindConfirmed,
			})
			continue
		}

		raw = append(raw, domain.Commitment{
			Start:        event.Start,
			End:          event.End,
			StartAddress: address,
			EndAddress:   address,
			Kind:         domain.KindConfirmed,
		})
	}

	appts, err := s.appointments.GetOverlapping(ctx, domain.AppointmentsFilter{
		From:     window.Open,
		To:       window.Close,
		Statuses: domain.OccupyingStatuses,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	for _, appt := range appts {
		raw = append(raw, domain.Commitment{
			Start:        appt.ScheduledStart,
			End:          appt.ScheduledEnd,
			StartAddress: appt.ServiceAddress,
			EndAddress:   appt.ServiceAddress,
			Kind:         domain.KindTentative,
		})
	}

	normalized := normalize(raw, window)

	s.log.Debug("Commitments: day window [%s, %s), calendar=%d, appointments=%d, normalized=%d",
		window.Open.Format(time.RFC3339), window.Close.Format(time.RFC3339),
		len(events), len(appts), len(normalized))

	return normalized, nil
}

// HasConfirmedOverlap проверяет, пересекает ли хотя бы один подтверждённый
// календарный блок интервал [start, end)
func (s *Service) HasConfirmedOverlap(ctx context.Context, start, end time.Time) (bool, error) {
	events, err := s.calendar.ListEvents(ctx, start, end)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrCalendarUnavailable, err)
	}

	for _, event := range events {
		if event.AllDay {
			return true, nil
		}
		if event.Start.Before(end) && event.End.After(start) {
			return true, nil
		}
	}

	return false, nil
}

// normalize обрезает интервалы по рабочему окну и сливает
// пересекающиеся/смежные в отсортированный неперекрывающийся список
func normalize(raw []domain.Commitment, window domain.DayWindow) []domain.Commitment {
	clamped := make([]domain.Commitment, 0, len(raw))
	for _, c := range raw {
		// Целиком за пределами окна - отбрасываем
		if !c.Start.Before(window.Close) || !c.End.After(window.Open) {
			continue
		}
		if c.Start.Before(window.Open) {
			c.Start = window.Open
		}
		if c.End.After(window.Close) {
			c.End = window.Close
		}
		if !c.Start.Before(c.End) {
			continue
		}
		clamped = append(clamped, c)
	}

	if len(clamped) == 0 {
		return clamped
	}

	sort.Slice(clamped, func(i, j int) bool {
		if clamped[i].Start.Equal(clamped[j].Start) {
			return clamped[i].End.Before(clamped[j].End)
		}
		return clamped[i].Start.Before(clamped[j].Start)
	})

	merged := make([]domain.Commitment, 0, len(clamped))
	current := clamped[0]

	for _, next := range clamped[1:] {
		// Смежные интервалы (конец == начало) тоже сливаются:
		// между ними нет простоя, в который можно было бы поставить заявку
		if !next.Start.After(current.End) {
			if next.End.After(current.End) {
				current.End = next.End
				// Слитый блок техник заканчивает по адресу последнего интервала
				current.EndAddress = next.EndAddress
			}
			continue
		}
		merged = append(merged, current)
		current = next
	}
	merged = append(merged, current)

	return merged
}
