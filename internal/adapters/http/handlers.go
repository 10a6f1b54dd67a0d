package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// Messages shared by the todo endpoints
const (
	msgBackendWorking = "Backend is working!"
	msgTodoDeleted    = "Todo deleted successfully"
	msgTodoNotFound   = "Todo not found"
	msgInvalidRequest = "Invalid request format"
)

// Request/Response types
type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// parseID reads a positive integer path parameter. Anything else can never
// match a stored id, so it is reported as a missing todo.
func parseID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusNotFound, msgTodoNotFound)
	}
	return id, nil
}

// storeError converts a failure from the data store into a 500 whose
// message is the store's own error text.
func storeError(err error) *echo.HTTPError {
	return echo.NewHTTPError(http.StatusInternalServerError, rootCause(err).Error()).SetInternal(err)
}

// rootCause strips the wrapping added on the way up from the repository.
func rootCause(err error) error {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
}
