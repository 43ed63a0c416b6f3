package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/SivakumaranJathurshan/CourseWork/internal/services"

	"github.com/labstack/echo/v4"
)

// serviceError maps the services error taxonomy onto HTTP status codes.
func serviceError(err error) error {
	switch {
	case errors.Is(err, services.ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrConflict):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid email or password")
	case errors.Is(err, services.ErrConfiguration):
		return echo.NewHTTPError(http.StatusInternalServerError, "server is misconfigured").SetInternal(err)
	}
	return echo.NewHTTPError(http.StatusInternalServerError, "internal server error").SetInternal(err)
}

func parseID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return uint(id), nil
}

// withDetails reads the optional details query flag. Lists include their
// related records unless details=false.
func withDetails(c echo.Context) (bool, error) {
	raw := c.QueryParam("details")
	if raw == "" {
		return true, nil
	}
	details, err := strconv.ParseBool(raw)
	if err != nil {
		return false, echo.NewHTTPError(http.StatusBadRequest, "invalid details flag")
	}
	return details, nil
}

// bind decodes the request body into input and runs the registered validator.
func bind(c echo.Context, input interface{}) error {
	if err := c.Bind(input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	return c.Validate(input)
}

func created(c echo.Context, location string, body interface{}) error {
	c.Response().Header().Set(echo.HeaderLocation, location)
	return c.JSON(http.StatusCreated, body)
}

// found turns a (bool, error) service result into notFound when ok is false.
func found(ok bool, err error, notFound error) error {
	if err != nil {
		return serviceError(err)
	}
	if !ok {
		return serviceError(notFound)
	}
	return nil
}
