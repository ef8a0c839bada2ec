package override

import "errors"

var (
	// ErrOverrideNotFound возвращается, когда override не найден
	ErrOverrideNotFound = errors.New("override.repository: override not found")

	// ErrDuplicateOverride возвращается, когда на (date, time_slot) уже есть активный override
	ErrDuplicateOverride = errors.New("override.repository: active override already exists for date and time slot")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("override.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("override.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("override.repository: failed to scan row")
)
