package models

import "errors"

// Ошибки доменного уровня. Все слои оборачивают их через %w,
// обработчики сопоставляют через errors.Is.
var (
	ErrUnknownZone       = errors.New("unknown zone")
	ErrUnknownIncident   = errors.New("unknown incident")
	ErrUnknownUnit       = errors.New("unknown unit")
	ErrDuplicateID       = errors.New("duplicate id")
	ErrOutOfRange        = errors.New("value out of range")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrInvalidState      = errors.New("invalid state")
)
