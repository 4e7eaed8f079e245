package get_availability

import "time"

// DatesRequest модель запроса доступных дат
type DatesRequest struct {
	ServiceID            int64
	ExcludeAppointmentID *int64 // Запись, исключаемая из проверки конфликтов (при редактировании)
}

// DatesResponse модель ответа с доступными датами
type DatesResponse struct {
	ServiceID int64    `json:"serviceId"`
	Dates     []string `json:"dates"` // "2025-10-15"
}

// TimesRequest модель запроса доступных времен на дату
type TimesRequest struct {
	ServiceID            int64
	Date                 time.Time
	ExcludeAppointmentID *int64
}

// TimesResponse модель ответа с доступными временами начала
type TimesResponse struct {
	ServiceID int64    `json:"serviceId"`
	Date      string   `json:"date"`  // "2025-10-15"
	Times     []string `json:"times"` // "10:00"
}
