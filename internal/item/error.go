package item

import "errors"

var (
	ErrItemNotFound = errors.New("item not found")
	ErrInvalidTags  = errors.New("invalid tags")
	ErrValidation   = errors.New("validation failed")
)
