package pricing

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/STO-AppointmentService/internal/domain"
)

type fakeCounter struct {
	completed map[int64]int
}

func (f *fakeCounter) CountCompletedByCustomer(_ context.Context, customerID int64) (int, error) {
	return f.completed[customerID], nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestEngine_PriceFor_DiscountTiers(t *testing.T) {
	service := &domain.Service{
		ID:    1,
		Price: decimal.RequireFromString("1000.00"),
	}

	tests := []struct {
		name      string
		completed int
		wantPrice string
	}{
		{name: "no visits", completed: 0, wantPrice: "1000.00"},
		{name: "four visits", completed: 4, wantPrice: "980.00"},
		{name: "five visits", completed: 5, wantPrice: "975.00"},
		{name: "capped at ten percent", completed: 25, wantPrice: "900.00"},
		{name: "far past the cap", completed: 100, wantPrice: "900.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			customerID := int64(1)
			engine := NewEngine(&fakeCounter{completed: map[int64]int{customerID: tt.completed}}, nopLogger{})

			price, err := engine.PriceFor(context.Background(), &customerID, service)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPrice, price.StringFixed(2))
		})
	}
}

func TestEngine_PriceFor_Guest(t *testing.T) {
	engine := NewEngine(&fakeCounter{completed: map[int64]int{}}, nopLogger{})
	service := &domain.Service{Price: decimal.RequireFromString("500.00")}

	price, err := engine.PriceFor(context.Background(), nil, service)
	require.NoError(t, err)
	assert.Equal(t, "500.00", price.StringFixed(2))
}

func TestEngine_DiscountPercent(t *testing.T) {
	customerID := int64(7)
	engine := NewEngine(&fakeCounter{completed: map[int64]int{customerID: 5}}, nopLogger{})

	discount, err := engine.DiscountPercent(context.Background(), &customerID)
	require.NoError(t, err)
	assert.True(t, discount.Equal(decimal.RequireFromString("2.5")))

	discount, err = engine.DiscountPercent(context.Background(), nil)
	require.NoError(t, err)
	assert.True(t, discount.IsZero())
}

func TestApplyDiscount_RoundHalfUp(t *testing.T) {
	// 333.33 со скидкой 0.5%: 333.33 * 0.995 = 331.66335 -> 331.66
	price := ApplyDiscount(decimal.RequireFromString("333.33"), decimal.RequireFromString("0.5"))
	assert.Equal(t, "331.66", price.StringFixed(2))

	// 100.01 со скидкой 2.5%: 100.01 * 0.975 = 97.50975 -> 97.51 (половина вверх)
	price = ApplyDiscount(decimal.RequireFromString("100.01"), decimal.RequireFromString("2.5"))
	assert.Equal(t, "97.51", price.StringFixed(2))

	price = ApplyDiscount(decimal.RequireFromString("1000.00"), decimal.Zero)
	assert.Equal(t, "1000.00", price.StringFixed(2))
}
