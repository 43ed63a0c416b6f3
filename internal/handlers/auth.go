package handlers

import (
	"net/http"

	"github.com/SivakumaranJathurshan/CourseWork/internal/middleware"
	"github.com/SivakumaranJathurshan/CourseWork/internal/services"

	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c echo.Context) error {
	var input services.RegisterInput
	if err := bind(c, &input); err != nil {
		return err
	}

	if err := h.authService.Register(c.Request().Context(), input); err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Registered successfully.",
	})
}

func (h *AuthHandler) Signin(c echo.Context) error {
	var input services.SigninInput
	if err := bind(c, &input); err != nil {
		return err
	}

	result, err := h.authService.Signin(c.Request().Context(), input)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, result)
}

func (h *AuthHandler) GetCurrentUser(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	user, err := h.authService.GetUser(c.Request().Context(), userID)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"user": user.ToResponse(),
	})
}
