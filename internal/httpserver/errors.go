package httpserver

import (
	"errors"
	"net/http"

	"erp-be/internal/item"
	"erp-be/internal/order"
	"erp-be/internal/tag"
	"erp-be/internal/user"

	"github.com/labstack/echo/v4"
)

type errorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// writeError translates domain sentinel errors into HTTP status codes.
// Anything unrecognized is a 500 with a generic body so internals do
// not leak to clients.
func writeError(c echo.Context, err error) error {
	code := http.StatusInternalServerError
	msg := "internal server error"

	switch {
	case errors.Is(err, order.ErrOrderNotFound),
		errors.Is(err, order.ErrItemNotFound),
		errors.Is(err, order.ErrLineNotFound),
		errors.Is(err, item.ErrItemNotFound),
		errors.Is(err, tag.ErrTagNotFound):
		code = http.StatusNotFound
		msg = err.Error()

	case errors.Is(err, order.ErrDuplicateLine),
		errors.Is(err, user.ErrEmailExists):
		code = http.StatusConflict
		msg = err.Error()

	case errors.Is(err, order.ErrOrderNotOpen),
		errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, order.ErrInsufficientStock):
		code = http.StatusUnprocessableEntity
		msg = err.Error()

	case errors.Is(err, order.ErrValidation),
		errors.Is(err, item.ErrValidation),
		errors.Is(err, item.ErrInvalidTags),
		errors.Is(err, tag.ErrValidation):
		code = http.StatusBadRequest
		msg = err.Error()
	}

	return c.JSON(code, errorResponse{Status: "error", Message: msg})
}
