package domain

import "time"

// Константы планировщика
const (
	// SlotStepMinutes фиксированный шаг сетки кандидатов времени начала.
	// Это константа конфигурации движка, не зависящая от длительности услуги.
	SlotStepMinutes = 30

	// DefaultServiceDurationMinutes используется, когда у услуги не задана
	// длительность или связанная услуга больше не существует.
	DefaultServiceDurationMinutes = 60

	// AvailabilityHorizonDays горизонт расчета доступных дат.
	AvailabilityHorizonDays = 30

	// EditCutoff минимальное время до начала записи, после которого
	// самостоятельное редактирование запрещено.
	EditCutoff = 2 * time.Hour
)

// Константы скидки лояльности
const (
	// DiscountPerCompletedPercent скидка за каждую завершенную запись.
	DiscountPerCompletedPercent = "0.5"

	// MaxDiscountPercent верхняя граница скидки.
	MaxDiscountPercent = "10"
)

// Константы валидации
const (
	MaxNotesLength      = 500
	MaxGuestNameLength  = 100
	MaxGuestPhoneLength = 20
)

// Форматы времени и даты
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses статусы, при которых запись занимает слот бокса.
// Используются при проверке конфликтов и запросах доступности.
var ActiveStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
	StatusInProgress,
}
