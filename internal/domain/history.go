package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ServiceHistory запись истории обслуживания, создается при завершении записи
type ServiceHistory struct {
	ID             int64
	AppointmentID  int64
	CompletedAt    time.Time
	MechanicNotes  string
	ActualDuration int
	FinalPrice     decimal.Decimal
}
