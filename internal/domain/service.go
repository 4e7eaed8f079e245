package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Service услуга из каталога.
// Каталогом управляет отдельный сервис, планировщик использует
// услугу как неизменяемые входные данные.
type Service struct {
	ID              int64
	CategoryID      int64
	Name            string
	Description     string
	Price           decimal.Decimal
	DurationMinutes int
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// EffectiveDuration возвращает длительность услуги, подставляя значение
// по умолчанию, если длительность не задана
func (s *Service) EffectiveDuration() int {
	if s.DurationMinutes <= 0 {
		return DefaultServiceDurationMinutes
	}
	return s.DurationMinutes
}
