package get_available_slots

import (
	"strconv"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date    string   `json:"date"`
	Address string   `json:"address"`
	Slots   []string `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
// Времена слотов сериализуются в RFC3339 (UTC)
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]string, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = slot.UTC().Format(time.RFC3339)
	}

	return &AvailableSlotsResponse{
		Date:    resp.Date.Format(domain.DateFormat),
		Address: resp.Address,
		Slots:   slots,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(dateStr, durationStr, address string) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	duration, err := strconv.Atoi(durationStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		Date:            date,
		DurationMinutes: duration,
		Address:         address,
	}, nil
}
