package history

import "errors"

var (
	// ErrHistoryNotFound возвращается, когда запись истории не найдена
	ErrHistoryNotFound = errors.New("history.repository: history record not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("history.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("history.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("history.repository: failed to scan row")
)
