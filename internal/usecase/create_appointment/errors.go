package create_appointment

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_appointment: service not found")

	// ErrActorNotFound возвращается, когда пользователь не найден в AuthService
	ErrActorNotFound = errors.New("create_appointment: user not found")

	// ErrCustomerBlocked возвращается, когда клиент заблокирован
	ErrCustomerBlocked = errors.New("create_appointment: customer is blocked")

	// ErrNoCapacity возвращается, когда ни один бокс не свободен в запрошенный слот
	ErrNoCapacity = errors.New("create_appointment: no free box for requested slot")

	// ErrInvalidDate возвращается при некорректной дате записи
	ErrInvalidDate = errors.New("create_appointment: invalid appointment date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
