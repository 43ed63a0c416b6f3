package handlers

import (
	"fmt"
	"net/http"

	"github.com/SivakumaranJathurshan/CourseWork/internal/services"

	"github.com/labstack/echo/v4"
)

type CategoryHandler struct {
	categoryService *services.CategoryService
}

func NewCategoryHandler(categoryService *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

func (h *CategoryHandler) List(c echo.Context) error {
	categories, err := h.categoryService.GetAll(c.Request().Context())
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, categories)
}

func (h *CategoryHandler) ListWithProducts(c echo.Context) error {
	categories, err := h.categoryService.GetWithProducts(c.Request().Context())
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, categories)
}

func (h *CategoryHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	category, err := h.categoryService.GetByID(c.Request().Context(), id)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) Create(c echo.Context) error {
	var input services.CategoryInput
	if err := bind(c, &input); err != nil {
		return err
	}

	category, err := h.categoryService.Create(c.Request().Context(), input)
	if err != nil {
		return serviceError(err)
	}
	return created(c, fmt.Sprintf("/api/categories/%d", category.ID), category)
}

func (h *CategoryHandler) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var input services.CategoryInput
	if err := bind(c, &input); err != nil {
		return err
	}

	category, err := h.categoryService.Update(c.Request().Context(), id, input)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	ok, err := h.categoryService.Delete(c.Request().Context(), id)
	if err := found(ok, err, services.ErrCategoryNotFound); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
