package override

import (
	"github.com/m04kA/SMC-SlotCapacity/pkg/dbmetrics"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor
