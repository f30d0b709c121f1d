package domain

import "errors"

var (
	// ErrValidation некорректный ввод, показывается пользователю
	ErrValidation = errors.New("validation error")
	// ErrNotFound id не найден у владельца
	ErrNotFound = errors.New("not found")
)
