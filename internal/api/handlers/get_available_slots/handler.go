package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_available_slots"
)

const (
	msgMissingDate         = "дата обязательна"
	msgInvalidParams       = "некорректные параметры, ожидается date=YYYY-MM-DD и durationMinutes > 0"
	msgInvalidInput        = "некорректные входные данные"
	msgAddressUnresolvable = "адрес не удалось геокодировать"
	msgOccupancyDown       = "источники занятости недоступны, повторите запрос позже"
	msgTimeout             = "расчёт доступности не уложился в отведённое время"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability
// Query params: date (required, YYYY-MM-DD), durationMinutes (required),
// address (optional, по умолчанию базовый адрес)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	dateStr := query.Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /availability - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	durationStr := query.Get("durationMinutes")
	address := query.Get("address")

	useCaseReq, err := ToUseCaseRequest(dateStr, durationStr, address)
	if err != nil {
		h.logger.Warn("GET /availability - Invalid params: date=%q, durationMinutes=%q: %v", dateStr, durationStr, err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /availability - Invalid input: date=%s, duration=%d: %v",
				dateStr, useCaseReq.DurationMinutes, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, getAvailableSlots.ErrAddressUnresolvable):
			h.logger.Warn("GET /availability - Address unresolvable: %q: %v", address, err)
			handlers.RespondUnprocessable(w, msgAddressUnresolvable)

		case errors.Is(err, getAvailableSlots.ErrOccupancyUnavailable):
			h.logger.Error("GET /availability - Occupancy sources unavailable: date=%s: %v", dateStr, err)
			handlers.RespondServiceUnavailable(w, msgOccupancyDown)

		case errors.Is(err, getAvailableSlots.ErrTimeout):
			h.logger.Error("GET /availability - Computation timed out: date=%s: %v", dateStr, err)
			handlers.RespondGatewayTimeout(w, msgTimeout)

		default:
			h.logger.Error("GET /availability - Failed to compute slots: date=%s, duration=%d, error=%v",
				dateStr, useCaseReq.DurationMinutes, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /availability - Slots computed successfully: date=%s, duration=%d, slots_count=%d",
		dateStr, useCaseReq.DurationMinutes, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
