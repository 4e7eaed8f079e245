package create_appointment

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/STO-AppointmentService/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	UserID    *int64           // ID пользователя в AuthService, nil для гостя
	ServiceID int64            // ID услуги
	Date      time.Time        // Дата записи (без времени)
	StartTime types.TimeString // Время начала слота (например, "10:00")

	// Контактные данные гостя, обязательны при UserID == nil
	GuestName  string
	GuestPhone string
	GuestEmail string

	Notes *string // Дополнительные заметки (опционально)
}

// Response модель ответа с созданной записью
type Response struct {
	ID              int64            // ID созданной записи
	CustomerID      *int64           // ID клиента, nil для гостя
	GuestName       string           // Имя гостя
	GuestPhone      string           // Телефон гостя
	GuestEmail      string           // Email гостя
	ServiceID       int64            // ID услуги
	BoxID           int64            // ID подобранного бокса
	AppointmentDate time.Time        // Дата записи
	StartTime       types.TimeString // Время начала
	DurationMinutes int              // Длительность в минутах
	Status          string           // Статус записи
	TotalPrice      decimal.Decimal  // Итоговая цена со скидкой
	Notes           *string          // Заметки

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
