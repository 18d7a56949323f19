// Package errors содержит общие доменные ошибки приложения.
//
// Ошибки используются в service и repository слоях
// и маппятся на HTTP-статусы в api слое:
//
//	ErrInvalidInput, ErrBadJSON          -> 400
//	ErrUnauthorized, ErrInvalidCredentials -> 401
//	ErrNotFound                          -> 404
//	ErrAlreadyExists                     -> 409
//	ErrInternal                          -> 500
package errors

import "errors"

var (
	// Входные данные невалидны (пустые поля, неправильный формат и т.п.)
	ErrInvalidInput = errors.New("invalid input")
	// Неверные учётные данные
	ErrInvalidCredentials = errors.New("invalid credentials")
	// Получена непредвиденная ошибка (в т.ч. недоступно хранилище)
	ErrInternal = errors.New("internal error")
	// Полученные JSON данные с ошибками
	ErrBadJSON = errors.New("bad json")
	// Неавторизован: нет токена, токен невалиден или истёк
	ErrUnauthorized = errors.New("unauthorized")
	// Ресурс уже существует (например email уже занят)
	ErrAlreadyExists = errors.New("already exists")
	// Ресурс не найден
	ErrNotFound = errors.New("not found")
	// ожидаемая ошибка
	ErrExpectedError = errors.New("expected error")
	// неожидаемая ошибка
	ErrUnexpectedError = errors.New("unexpected error")
)

// только для проектов
var (
	ErrInvalidProjectID = errors.New("invalid project id")
	ErrUnknownStatus    = errors.New("unknown project status")
)
