package pricing

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/m04kA/STO-AppointmentService/internal/domain"
)

var (
	discountPerCompleted = decimal.RequireFromString(domain.DiscountPerCompletedPercent)
	maxDiscount          = decimal.RequireFromString(domain.MaxDiscountPercent)
	oneHundred           = decimal.NewFromInt(100)
)

// Engine рассчитывает итоговую цену услуги с учетом скидки лояльности.
// Все денежные вычисления выполняются в decimal, чтобы исключить дрейф
// двоичной плавающей точки на валюте.
type Engine struct {
	counter CompletedCounter
	logger  Logger
}

// NewEngine создает новый Engine
func NewEngine(counter CompletedCounter, logger Logger) *Engine {
	return &Engine{
		counter: counter,
		logger:  logger,
	}
}

// DiscountPercent возвращает процент скидки клиента:
// 0.5% за каждую завершенную запись, но не больше 10%.
// Для гостей (customerID == nil) скидка всегда 0.
func (e *Engine) DiscountPercent(ctx context.Context, customerID *int64) (decimal.Decimal, error) {
	if customerID == nil {
		return decimal.Zero, nil
	}

	completed, err := e.counter.CountCompletedByCustomer(ctx, *customerID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("pricing: count completed appointments for customer=%d: %w", *customerID, err)
	}

	discount := decimal.NewFromInt(int64(completed)).Mul(discountPerCompleted)
	if discount.GreaterThan(maxDiscount) {
		discount = maxDiscount
	}

	return discount, nil
}

// PriceFor возвращает итоговую цену услуги с применением скидки,
// округленную до 2 знаков (half-up)
func (e *Engine) PriceFor(ctx context.Context, customerID *int64, service *domain.Service) (decimal.Decimal, error) {
	discount, err := e.DiscountPercent(ctx, customerID)
	if err != nil {
		return decimal.Zero, err
	}

	price := ApplyDiscount(service.Price, discount)

	if customerID != nil && discount.IsPositive() {
		e.logger.Info("PriceFor: customer=%d discount=%s%% price=%s -> %s",
			*customerID, discount, service.Price, price)
	}

	return price, nil
}

// ApplyDiscount применяет процент скидки к базовой цене:
// final = base * (1 - discount/100), округление half-up до 2 знаков
func ApplyDiscount(basePrice, discountPercent decimal.Decimal) decimal.Decimal {
	multiplier := decimal.NewFromInt(1).Sub(discountPercent.Div(oneHundred))
	// Round у decimal округляет половину от нуля, для положительных цен
	// это и есть half-up
	return basePrice.Mul(multiplier).Round(2)
}
