package pricing

import "context"

// CompletedCounter интерфейс подсчета завершенных записей клиента.
// Количество всегда вычисляется живым запросом к хранилищу, а не хранится
// отдельным счетчиком.
type CompletedCounter interface {
	CountCompletedByCustomer(ctx context.Context, customerID int64) (int, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
