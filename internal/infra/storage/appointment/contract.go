package appointment

import (
	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
)

// Переиспользуем интерфейс исполнителя из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor
