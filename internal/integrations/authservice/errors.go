package authservice

import "errors"

var (
	// ErrActorNotFound возвращается, когда пользователь не найден в AuthService
	ErrActorNotFound = errors.New("authservice client: actor not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("authservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("authservice client: invalid response")
)
