package edit_appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("edit_appointment: appointment not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("edit_appointment: service not found")

	// ErrActorNotFound возвращается, когда пользователь не найден в AuthService
	ErrActorNotFound = errors.New("edit_appointment: user not found")

	// ErrNotOwner возвращается, когда запись принадлежит другому клиенту
	ErrNotOwner = errors.New("edit_appointment: appointment belongs to another customer")

	// ErrWrongStatus возвращается, когда запись уже не в статусе pending
	ErrWrongStatus = errors.New("edit_appointment: appointment is not editable in its current status")

	// ErrTooSoon возвращается, когда до начала записи осталось меньше допустимого срока
	ErrTooSoon = errors.New("edit_appointment: too close to appointment start")

	// ErrNoCapacity возвращается, когда ни один бокс не свободен в новый слот
	ErrNoCapacity = errors.New("edit_appointment: no free box for requested slot")

	// ErrInvalidDate возвращается при некорректной дате записи
	ErrInvalidDate = errors.New("edit_appointment: invalid appointment date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("edit_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("edit_appointment: internal error")
)
