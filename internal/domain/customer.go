package domain

import "time"

// Customer профиль зарегистрированного клиента.
// Количество завершенных записей для расчета скидки всегда вычисляется
// запросом к хранилищу и не хранится в этой структуре.
type Customer struct {
	ID            int64
	UserID        int64
	IsBlocked     bool
	LoyaltyPoints int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
