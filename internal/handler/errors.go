package handler

import (
	"errors"
	"net/http"

	"pos-service/internal/service"
)

// statusFor maps a workflow error onto an HTTP status and the message the
// client sees. Internal causes are never leaked; everything unclassified is
// a generic 500.
func statusFor(err error) (int, string) {
	var validationErr *service.ValidationError
	var unknownProduct *service.UnknownProductError
	var notStocked *service.NotStockedError
	var stockErr *service.StockError
	var unknownItem *service.UnknownOrderItemError
	var refundQty *service.RefundQuantityError

	switch {
	case errors.Is(err, service.ErrOrderNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, service.ErrNoAssignedStore),
		errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden, "Forbidden: " + err.Error()
	case errors.As(err, &validationErr),
		errors.As(err, &unknownProduct),
		errors.As(err, &notStocked),
		errors.As(err, &stockErr),
		errors.As(err, &unknownItem),
		errors.As(err, &refundQty),
		errors.Is(err, service.ErrInsufficientStock):
		return http.StatusBadRequest, err.Error()
	}
	return http.StatusInternalServerError, "internal server error"
}
