package box

import "errors"

var (
	// ErrBoxNotFound возвращается, когда бокс не найден
	ErrBoxNotFound = errors.New("box.repository: box not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("box.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("box.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("box.repository: failed to scan row")
)
