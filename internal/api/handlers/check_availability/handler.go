package check_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	checkAvailability "github.com/m04kA/SMC-AvailabilityService/internal/usecase/check_availability"
)

const (
	msgMissingInterval = "параметры start и end обязательны"
	msgInvalidInterval = "некорректный интервал, ожидается start и end в RFC3339, start < end"
	msgOccupancyDown   = "источники занятости недоступны, повторите запрос позже"
)

type Handler struct {
	useCase CheckAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase CheckAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability/check
// Query params: start (required, RFC3339), end (required, RFC3339)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	startStr := query.Get("start")
	endStr := query.Get("end")
	if startStr == "" || endStr == "" {
		h.logger.Warn("GET /availability/check - Missing interval bounds")
		handlers.RespondBadRequest(w, msgMissingInterval)
		return
	}

	useCaseReq, err := ToUseCaseRequest(startStr, endStr)
	if err != nil {
		h.logger.Warn("GET /availability/check - Invalid interval: start=%q, end=%q: %v", startStr, endStr, err)
		handlers.RespondBadRequest(w, msgInvalidInterval)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, checkAvailability.ErrInvalidInput):
			h.logger.Warn("GET /availability/check - Invalid input: start=%q, end=%q: %v", startStr, endStr, err)
			handlers.RespondBadRequest(w, msgInvalidInterval)

		case errors.Is(err, checkAvailability.ErrOccupancyUnavailable):
			h.logger.Error("GET /availability/check - Occupancy sources unavailable: %v", err)
			handlers.RespondServiceUnavailable(w, msgOccupancyDown)

		default:
			h.logger.Error("GET /availability/check - Failed to check interval: start=%q, end=%q, error=%v",
				startStr, endStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /availability/check - Interval checked: start=%s, end=%s, available=%t",
		startStr, endStr, result.Available)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
