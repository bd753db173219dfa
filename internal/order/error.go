package order

import "errors"

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrItemNotFound      = errors.New("item not found")
	ErrLineNotFound      = errors.New("order line not found")
	ErrOrderNotOpen      = errors.New("order is not open")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrDuplicateLine     = errors.New("item already in order")
	ErrValidation        = errors.New("validation failed")
)
