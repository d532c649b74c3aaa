package check_availability

import (
	"time"

	checkAvailability "github.com/m04kA/SMC-AvailabilityService/internal/usecase/check_availability"
)

// CheckAvailabilityResponse HTTP response model
type CheckAvailabilityResponse struct {
	Available bool `json:"available"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkAvailability.Response) *CheckAvailabilityResponse {
	return &CheckAvailabilityResponse{Available: resp.Available}
}

// ToUseCaseRequest создает запрос use case из query параметров
// Границы интервала принимаются в RFC3339
func ToUseCaseRequest(startStr, endStr string) (*checkAvailability.Request, error) {
	start, err := time.Parse(time.RFC3339, startStr)
	if err != nil {
		return nil, err
	}

	end, err := time.Parse(time.RFC3339, endStr)
	if err != nil {
		return nil, err
	}

	return &checkAvailability.Request{
		Start: start.UTC(),
		End:   end.UTC(),
	}, nil
}
