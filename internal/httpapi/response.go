package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// errorBody is the error shape on every non-2xx response.
type errorBody struct {
	Detail string `json:"detail"`
}

func detail(c echo.Context, code int, message string) error {
	return c.JSON(code, errorBody{Detail: message})
}

func badRequest(c echo.Context, message string) error {
	return detail(c, http.StatusBadRequest, message)
}

func internalError(c echo.Context, message string) error {
	return detail(c, http.StatusInternalServerError, message)
}
